package plans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initPlanSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func initPlanSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'medium',
			category TEXT NOT NULL DEFAULT 'personal',
			status TEXT NOT NULL DEFAULT 'pending',
			deadline TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plans_user_created ON plans (user_id, created_at DESC);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init plan schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) ListPlans(ctx context.Context, userID string) ([]Plan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, title, description, priority, category, status, deadline, created_at
		   FROM plans WHERE user_id=$1 ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	out := make([]Plan, 0, 16)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) GetPlan(ctx context.Context, userID, planID string) (Plan, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, title, description, priority, category, status, deadline, created_at
		   FROM plans WHERE id=$1 AND user_id=$2`,
		planID, userID,
	)
	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) CreatePlan(ctx context.Context, userID string, req CreateRequest) (Plan, error) {
	req = applyDefaults(req)
	p := Plan{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
		Deadline:    req.Deadline,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO plans (id, user_id, title, description, priority, category, status, deadline, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.UserID, p.Title, p.Description, string(p.Priority), string(p.Category), string(p.Status), p.Deadline, p.CreatedAt,
	)
	if err != nil {
		return Plan{}, fmt.Errorf("insert plan: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) UpdatePlan(ctx context.Context, userID, planID string, req UpdateRequest) (Plan, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE plans SET
			title       = COALESCE($3, title),
			description = COALESCE($4, description),
			priority    = COALESCE($5, priority),
			category    = COALESCE($6, category),
			status      = COALESCE($7, status),
			deadline    = COALESCE($8, deadline)
		  WHERE id=$1 AND user_id=$2
		  RETURNING id, user_id, title, description, priority, category, status, deadline, created_at`,
		planID, userID,
		req.Title, req.Description, stringPtr(req.Priority), stringPtr(req.Category), stringPtr(req.Status), req.Deadline,
	)
	p, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, fmt.Errorf("update plan: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) DeletePlan(ctx context.Context, userID, planID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM plans WHERE id=$1 AND user_id=$2`, planID, userID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPlan(row pgx.Row) (Plan, error) {
	var (
		p        Plan
		priority string
		category string
		status   string
	)
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Description,
		&priority,
		&category,
		&status,
		&p.Deadline,
		&p.CreatedAt,
	); err != nil {
		return Plan{}, err
	}
	p.Priority = Priority(priority)
	p.Category = Category(category)
	p.Status = Status(status)
	return p, nil
}

func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
