package plans

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService() *Service {
	return NewService(NewMemoryStore(), nil)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "   "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Create(blank title) error = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "x", Priority: "urgent"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Create(bad priority) error = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "x", Category: "chores"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Create(bad category) error = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "x", Status: "paused"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Create(bad status) error = %v, want ErrValidation", err)
	}
}

func TestServiceUpdateValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", CreateRequest{Title: "x"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	empty := "  "
	if _, err := svc.Update(ctx, "u1", created.ID, UpdateRequest{Title: &empty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Update(blank title) error = %v, want ErrValidation", err)
	}
	bad := Priority("urgent")
	if _, err := svc.Update(ctx, "u1", created.ID, UpdateRequest{Priority: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Update(bad priority) error = %v, want ErrValidation", err)
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := newTestService()
	title := "new"
	if _, err := svc.Update(context.Background(), "u1", "missing", UpdateRequest{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(unknown id) error = %v, want ErrNotFound", err)
	}
}

func TestServiceCacheInvalidatedOnMutationSuccess(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "first"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("List() = %d plans, want 1", len(first))
	}

	// A successful mutation must stale the cached view.
	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "second"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("List() after mutation = %d plans, want 2 (cache not invalidated)", len(second))
	}
}

func TestServiceCacheKeptOnMutationFailure(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "only"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.List(ctx, "u1"); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// Failed mutations leave the last known-good view cached.
	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: ""}); err == nil {
		t.Fatalf("Create(invalid) expected error")
	}
	if _, ok := svc.cache.Get("u1"); !ok {
		t.Fatalf("cache dropped after failed mutation")
	}
}

func TestServiceCacheScopedPerOwner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "mine"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.List(ctx, "u2"); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// u1's mutation must not serve u1 plans from u2's cache or vice versa.
	mine, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("List(u1) = %d, want 1", len(mine))
	}
	theirs, err := svc.List(ctx, "u2")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(theirs) != 0 {
		t.Fatalf("List(u2) = %d, want 0", len(theirs))
	}
}

func TestServicePublishesChangeEvents(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	events, cancel := svc.Subscribe("u1")
	defer cancel()

	created, err := svc.Create(ctx, "u1", CreateRequest{Title: "watched"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	select {
	case ev := <-events:
		if ev.Type != EventPlanCreated || ev.PlanID != created.ID {
			t.Fatalf("event = %+v, want plan_created for %s", ev, created.ID)
		}
	case <-time.After(time.Second):
		t.Fatalf("no change event after create")
	}

	if err := svc.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	select {
	case ev := <-events:
		if ev.Type != EventPlanDeleted {
			t.Fatalf("event = %+v, want plan_deleted", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no change event after delete")
	}
}

func TestServiceStats(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "open"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateRequest{Title: "done", Status: StatusCompleted}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if got.Total != 2 || got.Completed != 1 || got.Pending != 1 || got.CompletionRate != 50 {
		t.Fatalf("Stats() = %+v, want total 2 / completed 1 / pending 1 / rate 50", got)
	}
}
