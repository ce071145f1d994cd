package datastores

import (
	"context"
	"errors"
)

type (
	ContactID = int64
	GroupID   = int64

	Contact struct {
		ID        ContactID
		Firstname string
		Lastname  string
		Country   string
		City      string
		Street    string
		Zipcode   string
		Phone     string
		Email     string
		Groups    []GroupRef
	}

	// GroupRef is the copy of a group embedded in a contact.
	GroupRef struct {
		ID   GroupID
		Name string
	}

	Group struct {
		ID   GroupID
		Name string
	}
)

type ContactsStore interface {
	Create(context.Context, *Contact) (ContactID, error)
	List(context.Context) ([]*Contact, error)
	Get(context.Context, ContactID) (*Contact, error)
	Update(context.Context, ContactID, *Contact) error
	Delete(context.Context, ContactID) error
}

type GroupsStore interface {
	Create(context.Context, *Group) (GroupID, error)
	List(context.Context) ([]*Group, error)
	Delete(context.Context, GroupID) error
}

var ErrObjectNotFound = errors.New("store: object not found")
