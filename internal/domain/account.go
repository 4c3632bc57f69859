// Package domain contains entities without logic, just meta-data.
package domain

import "github.com/google/uuid"

type AccountID string

// Account is a signed-up user. Signup is a plain CRUD surface next to
// the signaling core; room membership never consults it.
type Account struct {
	ID           AccountID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
}

// NewAccount is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewAccount(name, email string, passwordHash []byte) *Account {
	return &Account{
		ID:           AccountID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
}
