package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oaiiae/contactbook/model"
	"github.com/oaiiae/contactbook/validation"
)

func valid() model.Contact {
	return model.Contact{
		FirstName: "John",
		LastName:  "Smith",
		Country:   "France",
		City:      "Paris",
		Street:    "1 rue de Rivoli",
		Zipcode:   "75001",
		Phone:     "0102030405",
		Email:     "john@example.com",
		Groups:    []model.Group{{ID: 3, Name: "VIP"}},
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*model.Contact)
		want   validation.Errors
	}{
		{
			name:   "fully populated",
			modify: func(*model.Contact) {},
			want:   validation.Errors{},
		},
		{
			name: "optional fields empty",
			modify: func(c *model.Contact) {
				c.Street, c.Zipcode, c.Email, c.Groups = "", "", "", nil
			},
			want: validation.Errors{},
		},
		{
			name:   "blank first name",
			modify: func(c *model.Contact) { c.FirstName = "   " },
			want:   validation.Errors{"firstName": "First Name is required"},
		},
		{
			name:   "missing phone",
			modify: func(c *model.Contact) { c.Phone = "" },
			want:   validation.Errors{"phone": "Phone is required"},
		},
		{
			name:   "phone with letters",
			modify: func(c *model.Contact) { c.Phone = "01-02-abc" },
			want:   validation.Errors{"phone": "Phone number is invalid"},
		},
		{
			name:   "signed phone",
			modify: func(c *model.Contact) { c.Phone = "+33102030405" },
			want:   validation.Errors{"phone": "Phone number is invalid"},
		},
		{
			name:   "bad email",
			modify: func(c *model.Contact) { c.Email = "john.example.com" },
			want:   validation.Errors{"email": "Email is invalid"},
		},
		{
			name:   "negative group id",
			modify: func(c *model.Contact) { c.Groups = []model.Group{{ID: -1, Name: "VIP"}} },
			want:   validation.Errors{"groups[0].id": "Group id must be a positive integer"},
		},
		{
			name: "second group unnamed",
			modify: func(c *model.Contact) {
				c.Groups = append(c.Groups, model.Group{ID: 4, Name: " "})
			},
			want: validation.Errors{"groups[1].name": "Group name is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			assert.Equal(t, tt.want, validation.Contact(&c))
		})
	}
}

func TestContactPartialForm(t *testing.T) {
	errs := validation.Contact(&model.Contact{FirstName: "", LastName: "Doe", Phone: "12345"})
	assert.Contains(t, errs, "firstName")
	assert.NotContains(t, errs, "lastName")
	assert.NotContains(t, errs, "phone", "digits-only phone of any length is accepted")
	assert.Error(t, errs.Err())
}

func TestErrors(t *testing.T) {
	assert.NoError(t, validation.Errors{}.Err())
	assert.EqualError(t,
		validation.Errors{"phone": "Phone is required", "city": "City is required"},
		"validation: city: City is required; phone: Phone is required")
}

func TestCustomRules(t *testing.T) {
	v := validation.New(validation.Rule{
		Field: "email", Value: func(c *model.Contact) string { return c.Email },
		Required: true, RequiredMessage: "Email is required",
		Format: "email", FormatMessage: "Email is invalid",
	})
	assert.Equal(t, validation.Errors{"email": "Email is required"}, v.Contact(&model.Contact{}))
}
