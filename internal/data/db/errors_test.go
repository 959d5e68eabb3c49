package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestIsIntegrityViolation(t *testing.T) {
	d := postgres.New(postgres.Config{})

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique", &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}, true},
		{"foreign key wrapped", fmt.Errorf("insert action: %w", &pgconn.PgError{Code: "23503"}), true},
		{"check", &pgconn.PgError{Code: "23514"}, true},
		{"syntax", &pgconn.PgError{Code: "42601"}, false},
		{"gorm duplicated", fmt.Errorf("x: %w", gorm.ErrDuplicatedKey), true},
		{"gorm fk", gorm.ErrForeignKeyViolated, true},
		{"plain", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := IsIntegrityViolation(d, tc.err); got != tc.want {
				t.Fatalf("IsIntegrityViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestConnectionStringPrefersDSN(t *testing.T) {
	cfg := PostgresConfig{DSN: " postgres://a@b/c ", Host: "ignored"}
	if got := cfg.ConnectionString(); got != "postgres://a@b/c" {
		t.Fatalf("unexpected dsn: %q", got)
	}
}

func TestConnectionStringEscapesPassword(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: "5432", User: "svc", Password: "p@ss/word", Name: "feedback", SSLMode: "require"}
	got := cfg.ConnectionString()
	want := "postgres://svc:p%40ss%2Fword@db:5432/feedback?sslmode=require"
	if got != want {
		t.Fatalf("ConnectionString:\n got=%s\nwant=%s", got, want)
	}
}
