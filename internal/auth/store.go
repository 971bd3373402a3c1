package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")

// User carries the stored credential hash; it never crosses the HTTP
// boundary in this form.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}

type Store interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, username, passwordHash string) (User, error)
	Close() error
}

// NewStore picks postgres when a database URL is configured and an
// in-memory store otherwise.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return NewMemoryStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}
