package ledger

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanMerchant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  WHOLE FOODS  ", "WHOLE FOODS"},
		{"collapses separators", "UBER   *TRIP\t HELP.UBER.COM", "UBER *TRIP HELP.UBER.COM"},
		{"preserves case", "Trader Joe's #123", "Trader Joe's #123"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMerchant(tt.input); got != tt.want {
				t.Errorf("CleanMerchant(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanMerchantTruncates(t *testing.T) {
	long := strings.Repeat("A", MaxMerchantLen+100)
	got := CleanMerchant(long)
	if len(got) != MaxMerchantLen {
		t.Errorf("len = %d, want %d", len(got), MaxMerchantLen)
	}
}

func TestCleanMerchantTruncatesOnRuneBoundary(t *testing.T) {
	multibyte := strings.Repeat("A", MaxMerchantLen-1) + "日本語"
	got := CleanMerchant(multibyte)
	if n := utf8.RuneCountInString(got); n != MaxMerchantLen {
		t.Errorf("rune count = %d, want %d", n, MaxMerchantLen)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncation split a rune: %q", got[len(got)-4:])
	}
	if !strings.HasSuffix(got, "日") {
		t.Errorf("last rune = %q, want the whole character kept", got[len(got)-4:])
	}
}

func TestInsertOutcomeString(t *testing.T) {
	if Inserted.String() != "inserted" || DuplicateSkipped.String() != "duplicate-skipped" {
		t.Errorf("unexpected outcome strings: %q, %q", Inserted, DuplicateSkipped)
	}
	if OutcomeUnknown.String() != "unknown" {
		t.Errorf("unexpected zero outcome string: %q", OutcomeUnknown)
	}
}
