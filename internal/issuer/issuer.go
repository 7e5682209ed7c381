// Package issuer implements the per-issuer sources: row extraction and
// normalization into the common transaction shape. Each issuer is one
// small variant behind the Source interface; the orchestrator selects
// the variant by folder.
package issuer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hhernandez/money-review/internal/ledger"
)

// Source is the capability set an issuer variant provides.
type Source interface {
	// AccountType is the card label stored with every transaction,
	// e.g. "Apple Card".
	AccountType() string
	// Folder is the source directory name for this issuer.
	Folder() string
	// Pattern is the file glob within the folder.
	Pattern() string
	// Read extracts the raw rows from one file. Read-only: deletion is
	// the orchestrator's responsibility.
	Read(path string) ([]ledger.RawRecord, error)
	// Normalize maps one raw record into the common shape, applying the
	// issuer's sign convention, date format and merchant cleaning.
	// Person and AccountType are filled in by the caller.
	Normalize(rec ledger.RawRecord, now time.Time) (ledger.Transaction, error)
}

// All returns every supported issuer in processing order. now is the
// run clock, handed to the variants whose extraction needs a date; nil
// means the wall clock.
func All(now func() time.Time) []Source {
	return []Source{Apple{}, Chase{Now: now}, Amex{}, Citi{}}
}

// InvalidDateError rejects a row whose parsed date lies in the future.
// Future dates come from format ambiguities (2-digit year rollover) and
// must never be stored silently.
type InvalidDateError struct {
	Raw  string
	Date time.Time
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid transaction date %q: %s is in the future", e.Raw, e.Date.Format("2006-01-02"))
}

// RowRejectedError rejects a row missing its amount or merchant. The
// caller counts it into the run summary and continues the batch.
type RowRejectedError struct {
	Record ledger.RawRecord
	Reason string
}

func (e *RowRejectedError) Error() string {
	return fmt.Sprintf("row rejected: %s", e.Reason)
}

// parseAmount turns an issuer amount string into a decimal, stripping
// currency symbols and thousands separators.
func parseAmount(rec ledger.RawRecord, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(rec[key])
	if raw == "" {
		return decimal.Decimal{}, &RowRejectedError{Record: rec, Reason: "missing amount"}
	}
	raw = strings.NewReplacer("$", "", ",", "").Replace(raw)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &RowRejectedError{Record: rec, Reason: fmt.Sprintf("unparsable amount %q", rec[key])}
	}
	return amount, nil
}

// parseDate parses an issuer date and rejects anything strictly after
// the run's current date.
func parseDate(rec ledger.RawRecord, key, layout string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(rec[key])
	date, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, &RowRejectedError{Record: rec, Reason: fmt.Sprintf("unparsable date %q", raw)}
	}
	if date.After(now) {
		return time.Time{}, &InvalidDateError{Raw: raw, Date: date}
	}
	return date, nil
}

// merchant cleans the merchant column and rejects rows without one.
func merchant(rec ledger.RawRecord, key string) (string, error) {
	name := ledger.CleanMerchant(rec[key])
	if name == "" {
		return "", &RowRejectedError{Record: rec, Reason: "missing merchant"}
	}
	return name, nil
}
