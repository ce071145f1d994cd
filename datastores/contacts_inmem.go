package datastores

import (
	"context"
	"slices"
	"sync"
)

// ContactsInmem implements [ContactsStore].
type ContactsInmem struct {
	mu       sync.Mutex
	seq      ContactID
	index    map[ContactID]int
	contacts []*Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

// NewContactsInmem returns a store preloaded with cs. Their IDs are reassigned.
func NewContactsInmem(cs ...*Contact) *ContactsInmem {
	s := &ContactsInmem{index: make(map[ContactID]int, len(cs))}
	for _, c := range cs {
		s.insert(c)
	}
	return s
}

func (s *ContactsInmem) insert(c *Contact) ContactID {
	s.seq++
	c.ID = s.seq
	s.index[c.ID] = len(s.contacts)
	s.contacts = append(s.contacts, c)
	return c.ID
}

func (s *ContactsInmem) reindex() {
	clear(s.index)
	for i, c := range s.contacts {
		s.index[c.ID] = i
	}
}

func (s *ContactsInmem) Create(_ context.Context, c *Contact) (ContactID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(copyContact(c)), nil
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, copyContact(c))
	}
	return contacts, nil
}

func (s *ContactsInmem) Get(_ context.Context, id ContactID) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return copyContact(s.contacts[index]), nil
}

func (s *ContactsInmem) Update(_ context.Context, id ContactID, c *Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return ErrObjectNotFound
	}
	c = copyContact(c)
	c.ID = id
	s.contacts[index] = c
	return nil
}

func (s *ContactsInmem) Delete(_ context.Context, id ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, ok := s.index[id]
	if !ok {
		return ErrObjectNotFound
	}
	s.contacts = slices.Delete(s.contacts, index, index+1)
	s.reindex()
	return nil
}

func copyContact(c *Contact) *Contact {
	cc := *c
	cc.Groups = slices.Clone(c.Groups)
	return &cc
}
