package security

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed   = errors.New("password hashing failed")
	ErrPasswordInvalid = errors.New("password does not match")
)

const (
	HashingNone   = "none"
	HashingBcrypt = "bcrypt"
)

// PasswordHasher prepares passwords for storage and compares candidates
// against the stored form.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
}

// NewPasswordHasher returns the hasher for the configured scheme.
func NewPasswordHasher(scheme string, cost int) (PasswordHasher, error) {
	switch strings.ToLower(scheme) {
	case "", HashingNone:
		return NewPlaintextHasher(), nil
	case HashingBcrypt:
		return NewBcryptHasher(cost), nil
	default:
		return nil, fmt.Errorf("unknown password hashing scheme %q", scheme)
	}
}

type plaintextHasher struct{}

// NewPlaintextHasher stores passwords as given and compares them in constant time.
func NewPlaintextHasher() PasswordHasher {
	return plaintextHasher{}
}

func (plaintextHasher) Hash(password string) (string, error) {
	return password, nil
}

func (plaintextHasher) Compare(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrPasswordInvalid
	}
	return nil
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new password hasher using bcrypt
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}
	return string(bytes), nil
}

func (b *bcryptHasher) Compare(stored, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrPasswordInvalid
	}
	return nil
}
