package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/oaiiae/contactbook/model"
)

func (c *Client) ListContacts(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	err := c.do(ctx, http.MethodGet, "/contacts", "/contacts", nil, &contacts)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

// CreateContact posts contact without its ID and returns the persisted record.
func (c *Client) CreateContact(ctx context.Context, contact model.Contact) (model.Contact, error) {
	contact.ID = 0
	var created model.Contact
	err := c.do(ctx, http.MethodPost, "/contacts", "/contacts", &contact, &created)
	return created, err
}

func (c *Client) UpdateContact(ctx context.Context, id model.ContactID, contact model.Contact) (model.Contact, error) {
	contact.ID = 0 // the path carries the id
	var updated model.Contact
	err := c.do(ctx, http.MethodPut, "/contacts/{id}", contactPath(id), &contact, &updated)
	return updated, err
}

func (c *Client) DeleteContact(ctx context.Context, id model.ContactID) error {
	return c.do(ctx, http.MethodDelete, "/contacts/{id}", contactPath(id), nil, nil)
}

func contactPath(id model.ContactID) string {
	return "/contacts/" + strconv.FormatInt(id, 10)
}
