// Package contactstore keeps the session's copy of the contacts and groups
// in line with the server.
//
// The collections are only ever replaced wholesale by the latest list the
// gateway returned: every successful mutation is followed by a refresh.
package contactstore

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oaiiae/contactbook/model"
	"github.com/oaiiae/contactbook/validation"
)

// Gateway is the backend the store synchronizes with.
type Gateway interface {
	ListContacts(context.Context) ([]model.Contact, error)
	CreateContact(context.Context, model.Contact) (model.Contact, error)
	UpdateContact(context.Context, model.ContactID, model.Contact) (model.Contact, error)
	DeleteContact(context.Context, model.ContactID) error
	ListGroups(context.Context) ([]model.Group, error)
	CreateGroup(ctx context.Context, name string) (model.Group, error)
}

type Store struct {
	gateway   Gateway
	notifier  Notifier
	logger    *slog.Logger
	validator *validation.Validator
	deletes   int

	mu       sync.RWMutex
	contacts []model.Contact
	groups   []model.Group
	loading  bool
	revision uint64
}

type Option func(*Store)

func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

func WithLogger(logger *slog.Logger) Option { return func(s *Store) { s.logger = logger } }

func WithValidator(v *validation.Validator) Option { return func(s *Store) { s.validator = v } }

// WithDeleteConcurrency bounds the number of deletes in flight. Zero or
// negative means no limit.
func WithDeleteConcurrency(n int) Option { return func(s *Store) { s.deletes = n } }

func New(gateway Gateway, opts ...Option) *Store {
	s := &Store{
		gateway:   gateway,
		notifier:  discard,
		logger:    slog.New(slog.DiscardHandler),
		validator: validation.New(),
		contacts:  []model.Contact{},
		groups:    []model.Group{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	Contacts []model.Contact
	Groups   []model.Group
	Loading  bool
	// Revision changes every time Contacts is replaced.
	Revision uint64
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Contacts: model.CloneContacts(s.contacts),
		Groups:   slices.Clone(s.groups),
		Loading:  s.loading,
		Revision: s.revision,
	}
}

func (s *Store) Contacts() []model.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneContacts(s.contacts)
}

func (s *Store) Groups() []model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.groups)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Store) notify(ctx context.Context, kind Kind, message string, err error) {
	s.notifier.Notify(ctx, Notice{Kind: kind, Message: message, Err: err})
}

// RefreshContacts replaces the contacts with the gateway's list. On failure
// the contacts are kept. Loading is cleared whatever happens.
func (s *Store) RefreshContacts(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	contacts, err := s.gateway.ListContacts(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "could not list contacts", slog.Any("err", err))
		s.notify(ctx, KindError, "Failed to load contacts", err)
		return err
	}

	s.mu.Lock()
	s.contacts = model.CloneContacts(contacts)
	s.revision++
	s.mu.Unlock()
	return nil
}

// RefreshGroups replaces the groups with the gateway's list. On failure the
// groups are kept. Loading is cleared whatever happens.
func (s *Store) RefreshGroups(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	groups, err := s.gateway.ListGroups(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "could not list groups", slog.Any("err", err))
		s.notify(ctx, KindError, "Failed to load groups", err)
		return err
	}

	s.mu.Lock()
	s.groups = slices.Clone(groups)
	s.mu.Unlock()
	return nil
}

// SaveContact creates data when existingID is zero and updates the contact
// existingID otherwise, then refreshes the contacts. It returns once the
// refresh is done. Invalid data is rejected with [validation.Errors] before
// any request is made.
func (s *Store) SaveContact(ctx context.Context, data model.Contact, existingID model.ContactID) (model.Contact, error) {
	if err := s.validator.Contact(&data).Err(); err != nil {
		return model.Contact{}, err
	}

	verb, save := "save", func() (model.Contact, error) { return s.gateway.CreateContact(ctx, data) }
	if existingID != 0 {
		verb, save = "update", func() (model.Contact, error) { return s.gateway.UpdateContact(ctx, existingID, data) }
	}

	s.setLoading(true)
	defer s.setLoading(false)

	s.notify(ctx, KindLoading, "Saving...", nil)
	saved, err := save()
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "could not "+verb+" contact",
			slog.Int64("id", existingID), slog.Any("err", err))
		s.notify(ctx, KindError, "Failed to "+verb+" contact", err)
		return model.Contact{}, err
	}

	if existingID != 0 {
		s.notify(ctx, KindSuccess, "Contact updated", nil)
	} else {
		s.notify(ctx, KindSuccess, "Contact saved", nil)
	}
	if err := s.RefreshContacts(ctx); err != nil {
		return saved, fmt.Errorf("contactstore: refresh after %s: %w", verb, err)
	}
	return saved, nil
}

// DeleteContacts deletes ids concurrently and waits for all of them. Some
// may fail while others succeed: the contacts are refreshed in any case and
// the failures are returned as a [*BatchError].
func (s *Store) DeleteContacts(ctx context.Context, ids []model.ContactID) error {
	if len(ids) == 0 {
		return nil
	}

	unique := slices.Compact(slices.Sorted(slices.Values(ids)))
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed = map[model.ContactID]error{}
	)
	if s.deletes > 0 {
		g.SetLimit(s.deletes)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	for _, id := range unique {
		g.Go(func() error {
			err := s.gateway.DeleteContact(ctx, id)
			if err != nil {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "could not delete contact",
					slog.Int64("id", id), slog.Any("err", err))
				mu.Lock()
				failed[id] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines never fail, failures are collected

	total := len(unique)
	var batchErr error
	if len(failed) > 0 {
		batchErr = &BatchError{Total: total, Failed: failed}
		s.notify(ctx, KindError, fmt.Sprintf("Failed to delete %d of %d contact(s)", len(failed), total), batchErr)
	} else {
		s.notify(ctx, KindSuccess, fmt.Sprintf("Deleted %d contact(s)", total), nil)
	}

	if err := s.RefreshContacts(ctx); err != nil {
		if batchErr != nil {
			return fmt.Errorf("%w; refresh: %w", batchErr, err)
		}
		return fmt.Errorf("contactstore: refresh after delete: %w", err)
	}
	return batchErr
}

// SaveGroup creates a group named name, then refreshes the groups.
func (s *Store) SaveGroup(ctx context.Context, name string) (model.Group, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	group, err := s.gateway.CreateGroup(ctx, name)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "could not save group", slog.Any("err", err))
		s.notify(ctx, KindError, "Failed to save group", err)
		return model.Group{}, err
	}
	s.notify(ctx, KindSuccess, "Group saved", nil)

	if err := s.RefreshGroups(ctx); err != nil {
		return group, fmt.Errorf("contactstore: refresh after group save: %w", err)
	}
	return group, nil
}

// GroupRefs resolves ids to snapshots of the known groups.
func (s *Store) GroupRefs(ids []model.GroupID) ([]model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make([]model.Group, 0, len(ids))
	for _, id := range ids {
		i := slices.IndexFunc(s.groups, func(g model.Group) bool { return g.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("contactstore: unknown group %d", id)
		}
		refs = append(refs, s.groups[i])
	}
	return refs, nil
}
