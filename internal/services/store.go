// Package services owns the locally persisted services directory: an ordered
// list of models.Service mirrored, whole-list, to a Storage after every
// mutation.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// Mutation names passed to a Recorder.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Observer receives the committed list after each mutation. It runs while the
// store lock is held, so it must not block or call back into the Store.
type Observer func(items []models.Service)

// Recorder is told the outcome of every mutation attempt.
type Recorder func(op string, err error)

// Store is the sole owner and writer of the persisted service list.
type Store struct {
	mu        sync.RWMutex
	storage   Storage
	items     []models.Service
	seed      []models.Service
	observers []Observer
	record    Recorder
	log       logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithSeed replaces DefaultServices as the first-load list.
func WithSeed(seed []models.Service) Option {
	return func(s *Store) { s.seed = clone(seed) }
}

// WithObserver registers fn for committed changes.
func WithObserver(fn Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, fn) }
}

// WithRecorder registers fn for mutation outcomes.
func WithRecorder(fn Recorder) Option {
	return func(s *Store) { s.record = fn }
}

// WithLogger sets the logger (logrus standard logger by default).
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// New reads the list once from storage. When nothing is stored yet the seed
// list is used and persisted immediately.
func New(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	s := &Store{
		storage: storage,
		seed:    DefaultServices(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	items, found, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	if found {
		s.items = items
		s.log.WithField("count", len(items)).Debug("services loaded from storage")
		return s, nil
	}

	if err := storage.Save(ctx, s.seed); err != nil {
		return nil, fmt.Errorf("persist seed services: %w", err)
	}
	s.items = clone(s.seed)
	s.log.WithField("count", len(s.items)).Info("services seeded")
	return s, nil
}

// Subscribe adds an observer after construction.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Services returns a copy of the list in insertion order.
func (s *Store) Services() []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

// Get returns the service with the given id.
func (s *Store) Get(id int) (models.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.items {
		if svc.ID == id {
			return svc, true
		}
	}
	return models.Service{}, false
}

// Add appends a service whose id is one greater than the current maximum
// (1 for an empty list).
func (s *Store) Add(ctx context.Context, fields models.ServiceFields) (models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fields.Icon == "" {
		fields.Icon = models.DefaultServiceIcon
	}
	svc := models.Service{
		ID:          nextID(s.items),
		Title:       fields.Title,
		Description: fields.Description,
		Category:    fields.Category,
		Icon:        fields.Icon,
	}
	next := append(clone(s.items), svc)
	if err := s.commit(ctx, OpAdd, next); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// Update merges patch into the service with the given id. An unknown id
// leaves the list untouched and reports false.
func (s *Store) Update(ctx context.Context, id int, patch models.ServicePatch) (models.Service, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Service{}, false, nil
	}
	next := clone(s.items)
	next[idx] = next[idx].Apply(patch)
	if err := s.commit(ctx, OpUpdate, next); err != nil {
		return models.Service{}, true, err
	}
	return next[idx], true, nil
}

// Delete removes the service with the given id. An unknown id leaves the list
// untouched and reports false.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	next := make([]models.Service, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	if err := s.commit(ctx, OpDelete, next); err != nil {
		return true, err
	}
	return true, nil
}

// commit persists next and only then makes it the in-memory list, so a failed
// write leaves both sides at the previous state. Caller holds s.mu.
func (s *Store) commit(ctx context.Context, op string, next []models.Service) error {
	err := s.storage.Save(ctx, next)
	if s.record != nil {
		s.record(op, err)
	}
	if err != nil {
		s.log.WithError(err).WithField("op", op).Error("failed to persist services")
		return fmt.Errorf("%s service: %w", op, err)
	}
	s.items = next
	s.log.WithFields(logrus.Fields{"op": op, "count": len(next)}).Debug("services persisted")
	for _, fn := range s.observers {
		fn(clone(next))
	}
	return nil
}

func (s *Store) indexOf(id int) int {
	for i, svc := range s.items {
		if svc.ID == id {
			return i
		}
	}
	return -1
}

func nextID(items []models.Service) int {
	highest := 0
	for _, svc := range items {
		if svc.ID > highest {
			highest = svc.ID
		}
	}
	return highest + 1
}

func clone(items []models.Service) []models.Service {
	out := make([]models.Service, len(items))
	copy(out, items)
	return out
}
