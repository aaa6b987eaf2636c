package in_mem

import (
	"context"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/box-bench/internal/storage"
	"github.com/google/uuid"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]storage.Run
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]storage.Run),
	}
}

func (s *InMemStorer) Save(ctx context.Context, run storage.Run) (uuid.UUID, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StoredAt.IsZero() {
		run.StoredAt = time.Now().UTC()
	}
	s.storage[run.ID] = run
	return run.ID, nil
}

func (s *InMemStorer) SaveBulk(ctx context.Context, runs []storage.Run) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, run := range runs {
		if run.ID == uuid.Nil {
			run.ID = uuid.New()
		}
		if run.StoredAt.IsZero() {
			run.StoredAt = time.Now().UTC()
		}
		s.storage[run.ID] = run
	}
	return nil
}

func (s *InMemStorer) Get(id uuid.UUID) (storage.Run, bool) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	run, ok := s.storage[id]
	return run, ok
}

func (s *InMemStorer) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return len(s.storage)
}
