package plans

import (
	"context"
	"errors"
	"testing"
)

func TestCreateThenGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreatePlan(ctx, "u1", CreateRequest{
		Title:       "Write report",
		Description: "quarterly numbers",
		Priority:    PriorityHigh,
		Category:    CategoryWork,
		Deadline:    "2026-09-01",
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("CreatePlan() did not assign id/createdAt: %+v", created)
	}
	if created.Status != StatusPending {
		t.Fatalf("Status = %q, want default pending", created.Status)
	}

	got, err := s.GetPlan(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("GetPlan() error = %v", err)
	}
	if got != created {
		t.Fatalf("GetPlan() = %+v, want %+v", got, created)
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	s := NewMemoryStore()
	created, err := s.CreatePlan(context.Background(), "u1", CreateRequest{Title: "bare"})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if created.Priority != PriorityMedium || created.Category != CategoryPersonal || created.Status != StatusPending {
		t.Fatalf("defaults = %s/%s/%s, want medium/personal/pending", created.Priority, created.Category, created.Status)
	}
}

func TestPartialUpdateLeavesOtherFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreatePlan(ctx, "u1", CreateRequest{
		Title:       "Stretch",
		Description: "morning routine",
		Priority:    PriorityLow,
		Category:    CategoryHealth,
		Deadline:    "2026-01-01",
	})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	done := StatusCompleted
	updated, err := s.UpdatePlan(ctx, "u1", created.ID, UpdateRequest{Status: &done})
	if err != nil {
		t.Fatalf("UpdatePlan() error = %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Fatalf("Status = %q, want completed", updated.Status)
	}
	if updated.Title != created.Title ||
		updated.Description != created.Description ||
		updated.Priority != created.Priority ||
		updated.Category != created.Category ||
		updated.Deadline != created.Deadline {
		t.Fatalf("partial update touched other fields: %+v", updated)
	}
}

func TestOwnerScoping(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreatePlan(ctx, "owner", CreateRequest{Title: "private"})
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}

	if _, err := s.GetPlan(ctx, "intruder", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPlan(other owner) error = %v, want ErrNotFound", err)
	}
	title := "hijacked"
	if _, err := s.UpdatePlan(ctx, "intruder", created.ID, UpdateRequest{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatePlan(other owner) error = %v, want ErrNotFound", err)
	}
	if err := s.DeletePlan(ctx, "intruder", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeletePlan(other owner) error = %v, want ErrNotFound", err)
	}

	list, err := s.ListPlans(ctx, "intruder")
	if err != nil {
		t.Fatalf("ListPlans() error = %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("ListPlans(other owner) = %v, want empty", list)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	s := NewMemoryStore()
	if err := s.DeletePlan(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("DeletePlan(unknown) error = %v, want ErrNotFound", err)
	}
}
