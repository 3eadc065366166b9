package credentials

import (
	"errors"
	"fmt"

	"github.com/desertthunder/mvx/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// Hasher encodes passwords for storage and checks candidates against stored values.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) (bool, error)
}

// PlainHasher stores passwords as entered.
//
// Anyone who can read the credentials file can read every password. It exists so files written by earlier
// versions keep working; prefer [BcryptHasher] for new installs.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Verify(password, stored string) (bool, error) {
	return password == stored, nil
}

// BcryptHasher stores bcrypt hashes of passwords.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a [BcryptHasher]. A cost below [bcrypt.MinCost] falls back to [bcrypt.DefaultCost].
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hashed), nil
}

// Verify reports a mismatch as false with no error. A stored value that is not a bcrypt hash is an error.
func (h *BcryptHasher) Verify(password, stored string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("error comparing password with hash: %w", err)
	}
}

// NewHasher returns the [Hasher] named by an auth.hasher config value.
func NewHasher(name string, cost int) (Hasher, error) {
	switch name {
	case "", shared.HasherPlain:
		return PlainHasher{}, nil
	case shared.HasherBcrypt:
		return NewBcryptHasher(cost), nil
	default:
		return nil, fmt.Errorf("%w: unknown hasher %q", shared.ErrInvalidConfig, name)
	}
}
