package domain

import (
	"encoding/json"
	"testing"
)

func TestParsePortfolioData_RoundTrip(t *testing.T) {
	t.Parallel()

	original := DefaultPortfolioData()
	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	parsed, err := ParsePortfolioData(raw)
	if err != nil {
		t.Fatalf("ParsePortfolioData error: %v", err)
	}
	if parsed.Hero.Headline != original.Hero.Headline {
		t.Fatalf("hero headline mismatch: %q", parsed.Hero.Headline)
	}
	if parsed.Contact.Email != original.Contact.Email {
		t.Fatalf("contact email mismatch: %q", parsed.Contact.Email)
	}
}

func TestParsePortfolioData_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParsePortfolioData([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParsePortfolioData_MissingSection(t *testing.T) {
	t.Parallel()

	// Structurally valid JSON that drops required sections must fail
	// loudly instead of propagating a half-empty document.
	if _, err := ParsePortfolioData([]byte(`{"name":"x"}`)); err == nil {
		t.Fatal("expected validation error for missing sections")
	}
}

func TestValidate_RequiresContactEmail(t *testing.T) {
	t.Parallel()

	// The backfill shim is read-path only: a payload submitted for write
	// must carry the contact email itself.
	data := DefaultPortfolioData()
	data.Contact.Email = ""
	if err := data.Validate(); err == nil {
		t.Fatal("expected validation error for missing contact email")
	}
}

func TestParsePortfolioData_BackfillsContactEmail(t *testing.T) {
	t.Parallel()

	data := DefaultPortfolioData()
	data.Contact.Email = ""
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	parsed, err := ParsePortfolioData(raw)
	if err != nil {
		t.Fatalf("ParsePortfolioData error: %v", err)
	}
	if parsed.Contact.Email != "your@email.com" {
		t.Fatalf("expected placeholder backfill, got %q", parsed.Contact.Email)
	}
}
