package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	ds "github.com/oaiiae/contactbook/datastores"
)

type Contacts struct {
	Store        ds.ContactsStore
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	ID ds.ContactID `json:"id" readOnly:"true" example:"12"`

	FirstName string            `json:"firstName"         minLength:"1" example:"john"`
	LastName  string            `json:"lastName"          minLength:"1" example:"smith"`
	Country   string            `json:"country,omitempty"               example:"France"`
	City      string            `json:"city,omitempty"                  example:"Paris"`
	Street    string            `json:"street,omitempty"                example:"1 rue de Rivoli"`
	Zipcode   string            `json:"zipcode,omitempty"               example:"75001"`
	Phone     string            `json:"phone"             minLength:"1" example:"0102030405"`
	Email     string            `json:"email,omitempty"   format:"email" example:"john@example.com"`
	Groups    []ContactGroupRef `json:"groups,omitempty"`
}

type ContactGroupRef struct {
	ID   ds.GroupID `json:"id"   minimum:"1"   example:"3"`
	Name string     `json:"name" minLength:"1" example:"VIP"`
}

func contactModel(c *ds.Contact) ContactModel {
	m := ContactModel{
		ID:        c.ID,
		FirstName: c.Firstname,
		LastName:  c.Lastname,
		Country:   c.Country,
		City:      c.City,
		Street:    c.Street,
		Zipcode:   c.Zipcode,
		Phone:     c.Phone,
		Email:     c.Email,
	}
	for _, g := range c.Groups {
		m.Groups = append(m.Groups, ContactGroupRef{ID: g.ID, Name: g.Name})
	}
	return m
}

func (m *ContactModel) contact() *ds.Contact {
	c := &ds.Contact{
		ID:        m.ID,
		Firstname: m.FirstName,
		Lastname:  m.LastName,
		Country:   m.Country,
		City:      m.City,
		Street:    m.Street,
		Zipcode:   m.Zipcode,
		Phone:     m.Phone,
		Email:     m.Email,
	}
	for _, g := range m.Groups {
		c.Groups = append(c.Groups, ds.GroupRef{ID: g.ID, Name: g.Name})
	}
	return c
}

func (h *Contacts) RegisterList(api huma.API) { // called by [huma.AutoRegister]
	huma.Get(api, "/contacts",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	body := make([]ContactModel, 0, len(contacts))
	for _, contact := range contacts {
		body = append(body, contactModel(contact))
	}

	return &ContactsListOutput{Body: body}, nil
}

func (h *Contacts) RegisterCreate(api huma.API) { // called by [huma.AutoRegister]
	huma.Post(api, "/contacts",
		handlerWithErrorHandler(h.create, h.ErrorHandler),
		opStatus(http.StatusCreated),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

type ContactsOutput struct {
	Body ContactModel
}

func (h *Contacts) create(ctx context.Context, input *struct {
	Body ContactModel
}) (*ContactsOutput, error) {
	contact := input.Body.contact()
	id, err := h.Store.Create(ctx, contact)
	if err != nil {
		return nil, err
	}
	contact.ID = id
	return &ContactsOutput{Body: contactModel(contact)}, nil
}

func (h *Contacts) RegisterUpdate(api huma.API) { // called by [huma.AutoRegister]
	huma.Put(api, "/contacts/{id}",
		handlerWithErrorHandler(h.update, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
}

func (h *Contacts) update(ctx context.Context, input *struct {
	ID   ds.ContactID `path:"id" doc:"ID of the contact to update"`
	Body ContactModel
}) (*ContactsOutput, error) {
	contact := input.Body.contact()
	contact.ID = input.ID
	err := h.Store.Update(ctx, input.ID, contact)
	switch {
	case err == nil:
		return &ContactsOutput{Body: contactModel(contact)}, nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return nil, huma.Error404NotFound("id not found", err)

	default:
		return nil, err
	}
}

func (h *Contacts) RegisterDelete(api huma.API) { // called by [huma.AutoRegister]
	huma.Delete(api, "/contacts/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
}

func (h *Contacts) del(ctx context.Context, input *struct {
	ID ds.ContactID `path:"id" doc:"ID of the contact to delete"`
}) (*struct{}, error) {
	err := h.Store.Delete(ctx, input.ID)
	if errors.Is(err, ds.ErrObjectNotFound) {
		return nil, huma.Error404NotFound("id not found", err)
	}
	return nil, err
}
