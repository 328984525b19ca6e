package services

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheustorresii/vitrine-sorocabana/internal/db"
	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// fakeStorage keeps the last saved list and can be told to fail.
type fakeStorage struct {
	items   []models.Service
	found   bool
	saves   int
	failErr error
}

func (f *fakeStorage) Load(context.Context) ([]models.Service, bool, error) {
	return clone(f.items), f.found, nil
}

func (f *fakeStorage) Save(_ context.Context, items []models.Service) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.items = clone(items)
	f.found = true
	f.saves++
	return nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newStore(t *testing.T, storage Storage, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	s, err := New(context.Background(), storage, opts...)
	require.NoError(t, err)
	return s
}

func TestNew_SeedsAndPersistsDefaults(t *testing.T) {
	storage := &fakeStorage{}
	s := newStore(t, storage)

	assert.Len(t, s.Services(), 6)
	assert.Equal(t, DefaultServices(), s.Services())
	assert.Equal(t, DefaultServices(), storage.items)
}

func TestNew_UsesStoredList(t *testing.T) {
	stored := []models.Service{{ID: 9, Title: "A", Description: "B", Category: "C", Icon: "x"}}
	storage := &fakeStorage{items: stored, found: true}
	s := newStore(t, storage)

	assert.Equal(t, stored, s.Services())
	assert.Zero(t, storage.saves)
}

func TestNew_StoredEmptyListIsKept(t *testing.T) {
	storage := &fakeStorage{items: []models.Service{}, found: true}
	s := newStore(t, storage)
	assert.Empty(t, s.Services())
}

func TestNew_LoadFailure(t *testing.T) {
	kv := db.NewMemoryStorage()
	require.NoError(t, kv.SetItem(context.Background(), StorageKey, []byte("{not json")))

	_, err := New(context.Background(), NewJSONStorage(kv, ""), WithLogger(quietLogger()))
	assert.Error(t, err)
}

func TestAdd_AssignsMaxPlusOne(t *testing.T) {
	storage := &fakeStorage{items: []models.Service{{ID: 3}, {ID: 10}, {ID: 7}}, found: true}
	s := newStore(t, storage)

	svc, err := s.Add(context.Background(), models.ServiceFields{Title: "T", Description: "D", Category: "C", Icon: "🔧"})
	require.NoError(t, err)
	assert.Equal(t, 11, svc.ID)
	assert.Equal(t, svc, s.Services()[3])
}

func TestAdd_EmptyListStartsAtOne(t *testing.T) {
	s := newStore(t, &fakeStorage{items: []models.Service{}, found: true})

	svc, err := s.Add(context.Background(), models.ServiceFields{Title: "T", Description: "D", Category: "C"})
	require.NoError(t, err)
	assert.Equal(t, 1, svc.ID)
	assert.Equal(t, models.DefaultServiceIcon, svc.Icon)
}

func TestAdd_IDsNotReusedAfterDeletingOthers(t *testing.T) {
	s := newStore(t, &fakeStorage{})
	ctx := context.Background()

	_, err := s.Delete(ctx, 2)
	require.NoError(t, err)
	svc, err := s.Add(ctx, models.ServiceFields{Title: "T", Description: "D", Category: "C"})
	require.NoError(t, err)
	assert.Equal(t, 7, svc.ID)
}

func TestUpdate_MergesFields(t *testing.T) {
	s := newStore(t, &fakeStorage{})
	title := "Novo título"

	got, found, err := s.Update(context.Background(), 2, models.ServicePatch{Title: &title})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Novo título", got.Title)
	assert.Equal(t, "Marketing", got.Category)

	stored, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	storage := &fakeStorage{}
	s := newStore(t, storage)
	before := s.Services()
	savesBefore := storage.saves
	title := "x"

	_, found, err := s.Update(context.Background(), 99, models.ServicePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, s.Services())
	assert.Equal(t, savesBefore, storage.saves)
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	s := newStore(t, &fakeStorage{})
	before := s.Services()

	found, err := s.Delete(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, before, s.Services())
}

func TestDelete_RemovesAndKeepsOrder(t *testing.T) {
	s := newStore(t, &fakeStorage{})

	found, err := s.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, found)

	ids := []int{}
	for _, svc := range s.Services() {
		ids = append(ids, svc.ID)
	}
	assert.Equal(t, []int{1, 2, 4, 5, 6}, ids)
}

func TestMutation_SaveFailureRollsBack(t *testing.T) {
	storage := &fakeStorage{}
	var recorded []string
	s := newStore(t, storage, WithRecorder(func(op string, err error) {
		if err != nil {
			recorded = append(recorded, op)
		}
	}))
	before := s.Services()
	storage.failErr = errors.New("quota exceeded")
	ctx := context.Background()

	_, err := s.Add(ctx, models.ServiceFields{Title: "T", Description: "D", Category: "C"})
	assert.ErrorIs(t, err, storage.failErr)
	_, _, err = s.Update(ctx, 1, models.ServiceFields{Title: "T", Description: "D", Category: "C"}.Patch())
	assert.ErrorIs(t, err, storage.failErr)
	_, err = s.Delete(ctx, 1)
	assert.ErrorIs(t, err, storage.failErr)

	assert.Equal(t, before, s.Services())
	assert.Equal(t, before, storage.items)
	assert.Equal(t, []string{OpAdd, OpUpdate, OpDelete}, recorded)
}

func TestObserver_ReceivesCommittedList(t *testing.T) {
	var seen [][]models.Service
	s := newStore(t, &fakeStorage{}, WithObserver(func(items []models.Service) {
		seen = append(seen, items)
	}))

	_, err := s.Delete(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, s.Services(), seen[0])
}

func TestWriteThrough_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	for round := 0; round < 50; round++ {
		kv := db.NewMemoryStorage()
		storage := NewJSONStorage(kv, "")
		s := newStore(t, storage)

		for step := 0; step < 40; step++ {
			id := rng.Intn(12)
			switch rng.Intn(3) {
			case 0:
				_, err := s.Add(ctx, models.ServiceFields{Title: "T", Description: "D", Category: "C"})
				require.NoError(t, err)
			case 1:
				cat := "Cat"
				_, _, err := s.Update(ctx, id, models.ServicePatch{Category: &cat})
				require.NoError(t, err)
			case 2:
				_, err := s.Delete(ctx, id)
				require.NoError(t, err)
			}

			persisted, found, err := storage.Load(ctx)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, s.Services(), persisted, "round %d step %d", round, step)
		}
	}
}

func TestStore_Subscribe(t *testing.T) {
	store := newStore(t, &fakeStorage{})
	var got []models.Service
	store.Subscribe(func(items []models.Service) { got = items })

	_, err := store.Add(context.Background(), models.ServiceFields{Title: "Aulas", Description: "Reforço", Category: "Educação"})
	require.NoError(t, err)
	assert.Equal(t, store.Services(), got)
}
