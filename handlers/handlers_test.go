package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/oaiiae/contactbook/datastores"
	"github.com/oaiiae/contactbook/handlers"
)

func TestContacts(t *testing.T) {
	var handled []error
	_, api := humatest.New(t)
	huma.AutoRegister(api, &handlers.Contacts{
		Store:        ds.NewContactsInmem(&ds.Contact{Firstname: "john", Lastname: "smith", Phone: "555"}),
		ErrorHandler: func(_ context.Context, err error) { handled = append(handled, err) },
	})

	resp := api.Post("/contacts", map[string]any{
		"firstName": "jane",
		"lastName":  "doe",
		"phone":     "0102030405",
		"groups":    []map[string]any{{"id": 3, "name": "VIP"}},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created handlers.ContactModel
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, ds.ContactID(2), created.ID)
	assert.Equal(t, []handlers.ContactGroupRef{{ID: 3, Name: "VIP"}}, created.Groups)

	resp = api.Post("/contacts", map[string]any{"lastName": "doe", "phone": "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Put("/contacts/2", map[string]any{
		"firstName": "janet",
		"lastName":  "doe",
		"phone":     "0102030405",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Put("/contacts/42", map[string]any{
		"firstName": "nobody",
		"lastName":  "doe",
		"phone":     "1",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/contacts")
	require.Equal(t, http.StatusOK, resp.Code)
	var list []handlers.ContactModel
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "janet", list[1].FirstName)
	assert.Empty(t, list[1].Groups)

	assert.Equal(t, http.StatusNoContent, api.Delete("/contacts/1").Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/contacts/1").Code)

	// both 404s went through the error handler
	assert.Len(t, handled, 2)
}

func TestGroups(t *testing.T) {
	_, api := humatest.New(t)
	huma.AutoRegister(api, &handlers.Groups{Store: ds.NewGroupsInmem()})

	resp := api.Post("/groups", map[string]any{"name": "VIP"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created handlers.GroupModel
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, handlers.GroupModel{ID: 1, Name: "VIP"}, created)

	assert.Equal(t, http.StatusUnprocessableEntity, api.Post("/groups", map[string]any{"name": ""}).Code)

	resp = api.Get("/groups")
	require.Equal(t, http.StatusOK, resp.Code)
	var list []handlers.GroupModel
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Equal(t, []handlers.GroupModel{{ID: 1, Name: "VIP"}}, list)

	assert.Equal(t, http.StatusNoContent, api.Delete("/groups/1").Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/groups/1").Code)
}
