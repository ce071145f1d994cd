// Package validation checks contact form submissions against a table of field rules.
package validation

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oaiiae/contactbook/model"
)

// Errors maps a field name to a human-readable message. It is empty when the
// submission is valid.
type Errors map[string]string

func (e Errors) Error() string {
	var b strings.Builder
	b.WriteString("validation: ")
	for i, field := range slices.Sorted(maps.Keys(e)) {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field + ": " + e[field])
	}
	return b.String()
}

// Err returns e as an error, or nil when e is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Rule describes one contact form field.
type Rule struct {
	Field    string
	Value    func(*model.Contact) string
	Required bool
	// Format is a validator tag checked when the value is not empty.
	Format string

	RequiredMessage string
	FormatMessage   string
}

// ContactRules are the rules of the contact form. Email is optional but must
// be well formed when given; phone is digits only.
var ContactRules = []Rule{ //nolint: gochecknoglobals
	{
		Field: "firstName", Value: func(c *model.Contact) string { return c.FirstName },
		Required: true, RequiredMessage: "First Name is required",
	},
	{
		Field: "lastName", Value: func(c *model.Contact) string { return c.LastName },
		Required: true, RequiredMessage: "Last Name is required",
	},
	{
		Field: "country", Value: func(c *model.Contact) string { return c.Country },
		Required: true, RequiredMessage: "Country is required",
	},
	{
		Field: "city", Value: func(c *model.Contact) string { return c.City },
		Required: true, RequiredMessage: "City is required",
	},
	{
		Field: "street", Value: func(c *model.Contact) string { return c.Street },
	},
	{
		Field: "zipcode", Value: func(c *model.Contact) string { return c.Zipcode },
	},
	{
		Field: "phone", Value: func(c *model.Contact) string { return c.Phone },
		Required: true, RequiredMessage: "Phone is required",
		Format: "number", FormatMessage: "Phone number is invalid",
	},
	{
		Field: "email", Value: func(c *model.Contact) string { return c.Email },
		Format: "email", FormatMessage: "Email is invalid",
	},
}

type Validator struct {
	validate *validator.Validate
	rules    []Rule
}

// New returns a validator for rules, or [ContactRules] if none are given.
func New(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = ContactRules
	}
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		rules:    rules,
	}
}

// Contact validates c, including its group snapshots.
func (v *Validator) Contact(c *model.Contact) Errors {
	errs := Errors{}
	for _, rule := range v.rules {
		value := strings.TrimSpace(rule.Value(c))
		switch {
		case value == "":
			if rule.Required {
				errs[rule.Field] = rule.RequiredMessage
			}
		case rule.Format != "":
			if v.validate.Var(value, rule.Format) != nil {
				errs[rule.Field] = rule.FormatMessage
			}
		}
	}

	for i, g := range c.Groups {
		prefix := "groups[" + strconv.Itoa(i) + "]."
		if v.validate.Var(g.ID, "gt=0") != nil {
			errs[prefix+"id"] = "Group id must be a positive integer"
		}
		if strings.TrimSpace(g.Name) == "" {
			errs[prefix+"name"] = "Group name is required"
		}
	}
	return errs
}

var std = New() //nolint: gochecknoglobals

// Contact validates c with [ContactRules].
func Contact(c *model.Contact) Errors { return std.Contact(c) }
