package logger

import "testing"

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	in := []interface{}{
		"host", "db.internal",
		"POSTGRES_PASSWORD", "hunter2",
		"dsn", "postgres://u:p@h/db",
		"request_id", "abc",
	}
	out := sanitizeKVs(in)
	if len(out) != len(in) {
		t.Fatalf("len mismatch: got=%d want=%d", len(out), len(in))
	}
	want := map[string]interface{}{
		"host":              "db.internal",
		"POSTGRES_PASSWORD": "[REDACTED]",
		"dsn":               "[REDACTED]",
		"request_id":        "abc",
	}
	for i := 0; i < len(out); i += 2 {
		k := out[i].(string)
		if out[i+1] != want[k] {
			t.Fatalf("key %q: got=%v want=%v", k, out[i+1], want[k])
		}
	}
}

func TestSanitizeKVsOddTrailingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestNewTestModeIsNop(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("k", "v").Info("discarded", "password", "x")
	log.Sync()
}
