package moments

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rgehrsitz/famcalc/internal/domain"
)

// MemoryStore keeps lists in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string][]domain.LoggedMoment
	runs  map[string][]domain.CalculatorRun
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lists: make(map[string][]domain.LoggedMoment),
		runs:  make(map[string][]domain.CalculatorRun),
		now:   time.Now,
	}
}

func (s *MemoryStore) List(_ context.Context, key string) ([]domain.LoggedMoment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.lists[key]
	if list == nil {
		return []domain.LoggedMoment{}, nil
	}
	return slices.Clone(list), nil
}

func (s *MemoryStore) Add(_ context.Context, key string, m domain.LoggedMoment) (domain.LoggedMoment, error) {
	m, err := prepare(key, m, s.now())
	if err != nil {
		return domain.LoggedMoment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[key] = append(s.lists[key], m)
	return m, nil
}

func (s *MemoryStore) Remove(_ context.Context, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.lists[key]
	i := slices.IndexFunc(list, func(m domain.LoggedMoment) bool { return m.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	s.lists[key] = slices.Delete(list, i, i+1)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, key)
	return nil
}

func (s *MemoryStore) RecordRun(_ context.Context, key string, run domain.CalculatorRun) error {
	run, err := prepareRun(key, run, s.now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[key] = append(s.runs[key], run)
	return nil
}

func (s *MemoryStore) Runs(_ context.Context, key string) ([]domain.CalculatorRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CalculatorRun, len(s.runs[key]))
	copy(out, s.runs[key])
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
