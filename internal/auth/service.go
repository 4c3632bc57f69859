// Package auth implements user signup: hash a password, keep an
// account row. It sits next to the signaling core, which never
// consults it — rooms stay unauthenticated.
package auth

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/avezina/signalhub/internal/domain"
)

type Service struct {
	store Store
	cost  int
}

func NewService(store Store, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{store: store, cost: cost}
}

// SignUp creates an account for a new email address. The returned
// account carries the hash internally but it is never serialized.
func (s *Service) SignUp(name, email, password string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, ok := s.store.FindByEmail(email); ok {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := domain.NewAccount(name, email, hash)
	if err := s.store.Create(acct); err != nil {
		// Lost a race with a concurrent signup for the same email.
		return nil, err
	}

	log.Info().Str("module", "auth").Str("account", string(acct.ID)).Msg("account created")
	return acct, nil
}
