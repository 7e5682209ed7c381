// Package ledger holds the domain types shared across the ingestion
// pipeline: the raw extracted row, the normalized transaction, and the
// persistence outcomes.
package ledger

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxMerchantLen is the storage bound for merchant_name.
const MaxMerchantLen = 1045

// RawRecord is one extracted row before cleaning, keyed by the source
// file's own column names. Amounts and dates are still strings.
type RawRecord map[string]string

// Transaction is the common normalized unit. Amounts are signed with
// spend positive; refunds and credits stay as negative amounts.
// CategoryName is empty until the resolver has run.
type Transaction struct {
	Amount       decimal.Decimal
	MerchantName string
	CategoryName string
	Person       string
	AccountType  string
	Date         time.Time
}

// InsertOutcome is the terminal result of a duplicate-safe insert.
type InsertOutcome int

const (
	// OutcomeUnknown is the zero value, returned alongside errors so a
	// failed insert can never read as Inserted.
	OutcomeUnknown InsertOutcome = iota
	// Inserted means a new row was written.
	Inserted
	// DuplicateSkipped means the row already existed. This is a routine
	// success outcome, not a failure.
	DuplicateSkipped
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case DuplicateSkipped:
		return "duplicate-skipped"
	default:
		return "unknown"
	}
}

// CleanMerchant trims the merchant name, collapses runs of whitespace
// into single spaces and truncates to the storage bound. The bound is
// counted in runes to match the character-typed column, so the cut
// never splits a character. Case is preserved.
func CleanMerchant(name string) string {
	cleaned := strings.Join(strings.Fields(name), " ")
	if utf8.RuneCountInString(cleaned) > MaxMerchantLen {
		cleaned = string([]rune(cleaned)[:MaxMerchantLen])
	}
	return cleaned
}
