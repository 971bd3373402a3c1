package session

import (
	"errors"
	"testing"
	"time"
)

func TestCreateAndResolve(t *testing.T) {
	m := NewManager(time.Hour)

	created := m.Create("u1", "ada")
	if created.Token == "" {
		t.Fatalf("Create() returned empty token")
	}

	resolved, err := m.Resolve(created.Token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.UserID != "u1" || resolved.Username != "ada" {
		t.Fatalf("Resolve() = %+v, want user u1/ada", resolved)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	m := NewManager(time.Hour)
	if _, err := m.Resolve("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDestroyEndsSession(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create("u1", "ada")

	m.Destroy(s.Token)
	if _, err := m.Resolve(s.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve after Destroy error = %v, want ErrNotFound", err)
	}
	// Double destroy must not panic.
	m.Destroy(s.Token)
}

func TestResolveExpiredSession(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create("u1", "ada")

	m.mu.Lock()
	m.sessions[s.Token].LastActivityAt = time.Now().UTC().Add(-2 * time.Hour)
	m.mu.Unlock()

	if _, err := m.Resolve(s.Token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve(expired) error = %v, want ErrNotFound", err)
	}
	if m.ActiveCount() != 0 {
		t.Fatalf("ActiveCount() = %d after expiry, want 0", m.ActiveCount())
	}
}

func TestResolveRefreshesActivity(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create("u1", "ada")

	m.mu.Lock()
	m.sessions[s.Token].LastActivityAt = time.Now().UTC().Add(-50 * time.Minute)
	m.mu.Unlock()

	if _, err := m.Resolve(s.Token); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	m.mu.RLock()
	last := m.sessions[s.Token].LastActivityAt
	m.mu.RUnlock()
	if time.Since(last) > time.Minute {
		t.Fatalf("LastActivityAt not refreshed by Resolve: %v", last)
	}
}
