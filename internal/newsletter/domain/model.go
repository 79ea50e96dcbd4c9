package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadySubscribed = errors.New("email already subscribed")
)

// Subscriber is one newsletter signup.
type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// NormalizeEmail trims and lowercases addr and checks that it is a bare
// address (no display name).
func NormalizeEmail(addr string) (string, error) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidEmail)
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, addr)
	}
	if !strings.Contains(addr[strings.LastIndexByte(addr, '@')+1:], ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, addr)
	}
	return addr, nil
}
