package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	created, err := svc.Register(ctx, "ada", "hunter22")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Register() returned empty id")
	}
	if created.PasswordHash == "hunter22" || !strings.HasPrefix(created.PasswordHash, "$2") {
		t.Fatalf("password stored without bcrypt hashing: %q", created.PasswordHash)
	}

	logged, err := svc.Login(ctx, "ada", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if logged.ID != created.ID {
		t.Fatalf("Login() id = %q, want %q from registration", logged.ID, created.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada", "hunter22"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Login(ctx, "ada", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(unknown user) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada", "first"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, "ada", "second"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register(duplicate) error = %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterRejectsEmptyInput(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Register(empty username) error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Register(ctx, "ada", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Register(empty password) error = %v, want ErrInvalidInput", err)
	}
}
