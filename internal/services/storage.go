package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// StorageKey names the persisted entry holding the whole service list.
const StorageKey = "services"

// Storage is the persistence port of the Store: whole-list reads and writes.
type Storage interface {
	Load(ctx context.Context) ([]models.Service, bool, error)
	Save(ctx context.Context, items []models.Service) error
}

// KeyValue is the subset of db.LocalStorage the JSON adapter needs.
type KeyValue interface {
	GetItem(ctx context.Context, key string) ([]byte, bool, error)
	SetItem(ctx context.Context, key string, value []byte) error
}

// JSONStorage serializes the list as one JSON document under a key.
type JSONStorage struct {
	kv  KeyValue
	key string
}

// NewJSONStorage stores the list under key (StorageKey when empty).
func NewJSONStorage(kv KeyValue, key string) *JSONStorage {
	if key == "" {
		key = StorageKey
	}
	return &JSONStorage{kv: kv, key: key}
}

// Load decodes the persisted list.
func (s *JSONStorage) Load(ctx context.Context) ([]models.Service, bool, error) {
	raw, found, err := s.kv.GetItem(ctx, s.key)
	if err != nil || !found {
		return nil, false, err
	}
	var items []models.Service
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode %q: %w", s.key, err)
	}
	return items, true, nil
}

// Save replaces the persisted list.
func (s *JSONStorage) Save(ctx context.Context, items []models.Service) error {
	if items == nil {
		items = []models.Service{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %q: %w", s.key, err)
	}
	return s.kv.SetItem(ctx, s.key, raw)
}
