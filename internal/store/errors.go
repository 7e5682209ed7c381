package store

import (
	"fmt"

	"github.com/hhernandez/money-review/internal/ledger"
)

// UnknownPersonError means the configured account owner has no row in
// persons. Persons are seeded by the operator, never auto-created, so
// this aborts the batch.
type UnknownPersonError struct {
	Name string
}

func (e *UnknownPersonError) Error() string {
	return fmt.Sprintf("unknown person %q: persons are seeded by the operator, not created by the pipeline", e.Name)
}

// PersistenceError wraps a store-level fault on a single insert. It
// carries the offending transaction for the run summary. Inserts are
// never retried: an ambiguous failure retried silently risks a double
// count, so the row is surfaced instead and its source file kept.
type PersistenceError struct {
	Tx  ledger.Transaction
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting transaction %q (%s): %v", e.Tx.MerchantName, e.Tx.Date.Format("2006-01-02"), e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
