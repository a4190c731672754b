package logger

import (
	"strings"
	"testing"
)

func TestSanitizeValueRedacts(t *testing.T) {
	if got := sanitizeValue("neo4j_password", "hunter2"); got != "[REDACTED]" {
		t.Fatalf("password = %v", got)
	}
	if got := sanitizeValue("home_address", "1600 Penn Ave"); got != "[REDACTED]" {
		t.Fatalf("address = %v", got)
	}
	if got := sanitizeValue("ticker", "LMT"); got != "LMT" {
		t.Fatalf("benign key must pass through, got %v", got)
	}
}

func TestSanitizeValueHashes(t *testing.T) {
	got, ok := sanitizeValue("sec_cik", "0000936468").(string)
	if !ok || !strings.HasPrefix(got, "hash:") {
		t.Fatalf("sec_cik = %v", got)
	}
	again, _ := sanitizeValue("sec_cik", "0000936468").(string)
	if got != again {
		t.Fatalf("hashing must be stable: %q vs %q", got, again)
	}
	if other, _ := sanitizeValue("full_name", "someone else").(string); other == got {
		t.Fatalf("different values must hash differently")
	}
}

func TestSanitizeMapRecurses(t *testing.T) {
	out := sanitizeMap(map[string]interface{}{
		"Password": "x",
		"nested":   map[string]interface{}{"api_key": "y", "limit": 5},
	})
	if out["Password"] != "[REDACTED]" {
		t.Fatalf("map key casing must not bypass redaction: %v", out)
	}
	nested := out["nested"].(map[string]interface{})
	if nested["api_key"] != "[REDACTED]" || nested["limit"] != 5 {
		t.Fatalf("nested = %v", nested)
	}
}

func TestHashValueEmpty(t *testing.T) {
	if hashValue("") != "" {
		t.Fatalf("empty values stay empty")
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("mode %q: %v", mode, err)
		}
		if log.SugaredLogger == nil {
			t.Fatalf("mode %q: nil inner logger", mode)
		}
	}
}
