package services

import (
	"fmt"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"

	authErrors "github.com/rashikbuksh/Synaptech-Backend/auth/errors"
)

// PasswordHasher hashes passwords with bcrypt after a strength check
type PasswordHasher struct {
	cost     int
	minScore int
}

// NewPasswordHasher uses cost as the bcrypt cost; minScore 0 accepts any password
func NewPasswordHasher(cost, minScore int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost, minScore: minScore}
}

// Hash rejects empty and weak passwords and returns the bcrypt hash
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", authErrors.ErrMissingPassword
	}
	if h.minScore > 0 && zxcvbn.PasswordStrength(password, nil).Score < h.minScore {
		return "", authErrors.ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare returns ErrInvalidPassword when password does not match hashed
func (h *PasswordHasher) Compare(hashed, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return authErrors.ErrInvalidPassword
	}
	return nil
}

// HashField replaces values["pass"] with its hash when present
func (h *PasswordHasher) HashField(values map[string]interface{}) error {
	raw, ok := values["pass"]
	if !ok {
		return nil
	}
	pass, _ := raw.(string)
	hashed, err := h.Hash(pass)
	if err != nil {
		return err
	}
	values["pass"] = hashed
	return nil
}
