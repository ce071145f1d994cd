// Package model holds the contact and group records exchanged with the
// contacts API.
package model

import "slices"

type (
	ContactID = int64
	GroupID   = int64
)

// Contact is a person record. ID is zero until the server persists it.
type Contact struct {
	ID ContactID `json:"id,omitempty"`

	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Country   string  `json:"country,omitempty"`
	City      string  `json:"city,omitempty"`
	Street    string  `json:"street,omitempty"`
	Zipcode   string  `json:"zipcode,omitempty"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email,omitempty"`
	Groups    []Group `json:"groups,omitempty"`
}

// Group is a named tag. Inside [Contact.Groups] it is a snapshot taken when
// the contact was last saved, not a live reference.
type Group struct {
	ID   GroupID `json:"id"`
	Name string  `json:"name"`
}

// InGroup reports whether c is tagged with the group id.
func (c *Contact) InGroup(id GroupID) bool {
	return slices.ContainsFunc(c.Groups, func(g Group) bool { return g.ID == id })
}

// Clone returns a deep copy of c.
func (c Contact) Clone() Contact {
	c.Groups = slices.Clone(c.Groups)
	return c
}

// CloneContacts deep copies a contact list. A nil list stays nil.
func CloneContacts(cs []Contact) []Contact {
	if cs == nil {
		return nil
	}
	out := make([]Contact, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}
