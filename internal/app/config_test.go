package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "from-env")

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Port != "8000" || cfg.Addr() != ":8000" {
		t.Fatalf("port: %q addr=%q", cfg.Port, cfg.Addr())
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("max body bytes: %d", cfg.MaxBodyBytes)
	}
	if cfg.ExposeErrorDetail {
		t.Fatal("error detail must be hidden by default")
	}
	if cfg.Postgres.Password != "from-env" || cfg.Postgres.Name != "sales_feedback" {
		t.Fatalf("postgres: %+v", cfg.Postgres)
	}
	if cfg.Postgres.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("conn max lifetime: %v", cfg.Postgres.ConnMaxLifetime)
	}
	if cfg.Otel.Enabled || cfg.Otel.SampleRatio != 0.1 {
		t.Fatalf("otel: %+v", cfg.Otel)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("EXPOSE_ERROR_DETAIL", "true")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc,x-team=sales")

	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("addr: %q", cfg.Addr())
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://b.example.com" {
		t.Fatalf("cors origins: %#v", cfg.CORSAllowOrigins)
	}
	if !cfg.ExposeErrorDetail {
		t.Fatal("EXPOSE_ERROR_DETAIL not applied")
	}
	if cfg.Postgres.ConnectionString() != "postgres://u:p@db:5432/x" {
		t.Fatalf("dsn: %q", cfg.Postgres.ConnectionString())
	}
	if cfg.Otel.Headers["x-team"] != "sales" {
		t.Fatalf("otel headers: %#v", cfg.Otel.Headers)
	}
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"MAX_BODY_BYTES":     "0",
		"GIN_MODE":           "verbose",
		"OTEL_SAMPLER_RATIO": "1.5",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := ParseConfig(); err == nil {
				t.Fatalf("%s=%s should be rejected", key, val)
			}
		})
	}
}

func TestLoadEnvSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PLANBRIDGE_TEST_ONLY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("PLANBRIDGE_TEST_ONLY") })

	n, err := LoadEnv([]string{filepath.Join(dir, "missing.env"), path})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("loaded %d files, want 1", n)
	}
	if got := os.Getenv("PLANBRIDGE_TEST_ONLY"); got != "from-file" {
		t.Fatalf("env from file: %q", got)
	}
}
