package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and applies the schema.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

	container, err := testpostgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		testpostgres.WithDatabase("testdb"),
		testpostgres.WithUsername("testuser"),
		testpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		cancel()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		cancel()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := applySchema(ctx, pool); err != nil {
		pool.Close()
		cancel()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		cancel()
		_ = container.Terminate(context.Background())
	})

	return pool
}

// applySchema mirrors 0001_init.up.sql.
func applySchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE users (
			id            VARCHAR(36) PRIMARY KEY,
			email         VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			token         TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE events (
			id          CHAR(26) PRIMARY KEY,
			name        VARCHAR(255) NOT NULL,
			description TEXT,
			longitude   DOUBLE PRECISION NOT NULL,
			latitude    DOUBLE PRECISION NOT NULL,
			starts_at   TIMESTAMPTZ NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE user_events (
			id       SERIAL PRIMARY KEY,
			event_id CHAR(26) NOT NULL REFERENCES events (id),
			user_id  VARCHAR(36) NOT NULL REFERENCES users (id),
			owner    BOOLEAN NOT NULL DEFAULT false
		);
	`)
	return err
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	user := users.User{
		ID:           "6f1c0e2a-98f3-4a17-9c90-2f4bb9a4e51d",
		Email:        "a@example.com",
		PasswordHash: "$2a$12$fakehashfakehashfakehashfakehashfakehashfakehashfake",
		Token:        "header.payload.signature",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != user.ID || byEmail.Token != user.Token {
		t.Fatalf("unexpected record: %#v", byEmail)
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != user.Email {
		t.Fatalf("unexpected record: %#v", byID)
	}

	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	first := users.User{ID: "user-1", Email: "dup@example.com", PasswordHash: "h", Token: "t"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create user: %v", err)
	}

	second := users.User{ID: "user-2", Email: "dup@example.com", PasswordHash: "h2", Token: "t2"}
	if err := repo.Create(ctx, second); !errors.Is(err, users.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE email = $1`, "dup@example.com").Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one record, got %d", count)
	}
}

func TestEventRepositoryCreateIsAtomic(t *testing.T) {
	pool := setupTestDB(t)
	userRepo := NewUserRepository(pool)
	eventRepo := NewEventRepository(pool)
	ctx := context.Background()

	owner := users.User{ID: "user-1", Email: "owner@example.com", PasswordHash: "h", Token: "t"}
	if err := userRepo.Create(ctx, owner); err != nil {
		t.Fatalf("create user: %v", err)
	}

	event := events.Event{
		ID:        "01HYX3KQW7ERTV9XNBM2P8QJZF",
		Name:      "Rooftop Jazz",
		Longitude: 21.01,
		Latitude:  52.23,
		StartsAt:  time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC),
	}
	if err := eventRepo.Create(ctx, event, owner.ID); err != nil {
		t.Fatalf("create event: %v", err)
	}

	mine, err := eventRepo.ListForUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Rooftop Jazz" {
		t.Fatalf("unexpected events: %#v", mine)
	}

	// A missing owner row must roll the event insert back too.
	orphan := events.Event{
		ID:        "01HYX3KQW7ERTV9XNBM2P8QJZG",
		Name:      "Orphan",
		Longitude: 0,
		Latitude:  0,
		StartsAt:  time.Now(),
	}
	if err := eventRepo.Create(ctx, orphan, "no-such-user"); err == nil {
		t.Fatal("expected create with unknown owner to fail")
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM events WHERE id = $1`, orphan.ID).Scan(&count); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected orphan event rolled back, found %d rows", count)
	}
}
