package repository

import (
	"context"
	"sync"

	"github.com/sundayts/portfolio/internal/newsletter/domain"
)

// Store persists newsletter subscribers. Add reports
// domain.ErrAlreadySubscribed for an email that is already stored.
type Store interface {
	Add(ctx context.Context, sub domain.Subscriber) error
	Count(ctx context.Context) (int64, error)
}

// MemoryStore keeps subscribers in process memory. Used when redis is not
// configured; signups are lost on restart.
type MemoryStore struct {
	mu   sync.Mutex
	subs map[string]domain.Subscriber
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[string]domain.Subscriber)}
}

func (s *MemoryStore) Add(_ context.Context, sub domain.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[sub.Email]; ok {
		return domain.ErrAlreadySubscribed
	}
	s.subs[sub.Email] = sub
	return nil
}

func (s *MemoryStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.subs)), nil
}
