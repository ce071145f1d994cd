package datastores

import (
	"context"
	"slices"
	"sync"
)

// GroupsInmem implements [GroupsStore].
type GroupsInmem struct {
	mu     sync.Mutex
	seq    GroupID
	groups []*Group
}

var _ GroupsStore = (*GroupsInmem)(nil)

// NewGroupsInmem returns a store preloaded with gs. Their IDs are reassigned.
func NewGroupsInmem(gs ...*Group) *GroupsInmem {
	s := &GroupsInmem{}
	for _, g := range gs {
		s.seq++
		g.ID = s.seq
		s.groups = append(s.groups, g)
	}
	return s
}

func (s *GroupsInmem) Create(_ context.Context, g *Group) (GroupID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.groups = append(s.groups, &Group{ID: s.seq, Name: g.Name})
	return s.seq, nil
}

func (s *GroupsInmem) List(_ context.Context) ([]*Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		gg := *g
		groups = append(groups, &gg)
	}
	return groups, nil
}

func (s *GroupsInmem) Delete(_ context.Context, id GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.groups, func(g *Group) bool { return g.ID == id })
	if i < 0 {
		return ErrObjectNotFound
	}
	s.groups = slices.Delete(s.groups, i, i+1)
	return nil
}
