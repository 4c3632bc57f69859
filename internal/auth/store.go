package auth

import (
	"errors"
	"sync"

	"github.com/avezina/signalhub/internal/domain"
)

var ErrEmailTaken = errors.New("email already registered")

// Store persists signed-up accounts. The server ships with the
// in-memory implementation below; anything backed by a real database
// just has to honor the same two calls.
type Store interface {
	FindByEmail(email string) (*domain.Account, bool)
	Create(acct *domain.Account) error
}

type memoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.Account
}

func NewMemoryStore() Store {
	return &memoryStore{byEmail: make(map[string]*domain.Account)}
}

func (s *memoryStore) FindByEmail(email string) (*domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byEmail[email]
	return acct, ok
}

func (s *memoryStore) Create(acct *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[acct.Email]; ok {
		return ErrEmailTaken
	}
	s.byEmail[acct.Email] = acct
	return nil
}
