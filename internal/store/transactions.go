package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hhernandez/money-review/internal/ledger"
)

// InsertTransaction materializes the reference ids and attempts a
// duplicate-safe insert guarded by the unique_transaction constraint on
// (amount, merchant_name, category_id, person_id, transaction_date).
//
// A conflict returns DuplicateSkipped with no error: duplicates are the
// expected outcome of re-running over the same file. Any other fault
// comes back as a PersistenceError carrying the row; UnknownPersonError
// passes through untouched so the caller can abort the batch.
func (s *Store) InsertTransaction(ctx context.Context, tx ledger.Transaction) (ledger.InsertOutcome, error) {
	personID, err := s.PersonID(ctx, tx.Person)
	if err != nil {
		var unknown *UnknownPersonError
		if errors.As(err, &unknown) {
			return ledger.OutcomeUnknown, err
		}
		return ledger.OutcomeUnknown, &PersistenceError{Tx: tx, Err: err}
	}
	categoryID, err := s.CategoryID(ctx, tx.CategoryName)
	if err != nil {
		return ledger.OutcomeUnknown, &PersistenceError{Tx: tx, Err: err}
	}
	accountTypeID, err := s.AccountTypeID(ctx, tx.AccountType)
	if err != nil {
		return ledger.OutcomeUnknown, &PersistenceError{Tx: tx, Err: err}
	}

	tag, err := s.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s.transactions (
			amount, merchant_name, category_id, person_id, transaction_date, account_type_id
		) VALUES ($1::numeric, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT unique_transaction DO NOTHING`, s.schema),
		tx.Amount.StringFixed(2), tx.MerchantName, categoryID, personID, tx.Date, accountTypeID,
	)
	if err != nil {
		return ledger.OutcomeUnknown, &PersistenceError{Tx: tx, Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ledger.DuplicateSkipped, nil
	}
	return ledger.Inserted, nil
}

// MerchantRow is a transaction id with its merchant, as needed by the
// recategorize maintenance command.
type MerchantRow struct {
	ID       int64
	Merchant string
}

// UncategorizedTransactions lists rows whose category reference is
// NULL (typically from a category deletion, which nulls rather than
// cascades).
func (s *Store) UncategorizedTransactions(ctx context.Context) ([]MerchantRow, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(
		`SELECT id, merchant_name FROM %s.transactions WHERE category_id IS NULL ORDER BY id`, s.schema,
	))
	if err != nil {
		return nil, fmt.Errorf("UncategorizedTransactions: %w", err)
	}
	defer rows.Close()

	var out []MerchantRow
	for rows.Next() {
		var r MerchantRow
		if err := rows.Scan(&r.ID, &r.Merchant); err != nil {
			return nil, fmt.Errorf("UncategorizedTransactions: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetTransactionCategory repoints one transaction at a category.
func (s *Store) SetTransactionCategory(ctx context.Context, id, categoryID int64) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(
		`UPDATE %s.transactions SET category_id = $1 WHERE id = $2`, s.schema,
	), categoryID, id)
	if err != nil {
		return fmt.Errorf("SetTransactionCategory %d: %w", id, err)
	}
	return nil
}

// DatedRow is a transaction id with its stored date, as needed by the
// fixdates maintenance command.
type DatedRow struct {
	ID   int64
	Date time.Time
}

// FutureDatedTransactions lists rows dated after now. These come from
// historical 2-digit-year parsing bugs; new ingests reject them.
func (s *Store) FutureDatedTransactions(ctx context.Context, now time.Time) ([]DatedRow, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(
		`SELECT id, transaction_date FROM %s.transactions WHERE transaction_date > $1 ORDER BY id`, s.schema,
	), now)
	if err != nil {
		return nil, fmt.Errorf("FutureDatedTransactions: %w", err)
	}
	defer rows.Close()

	var out []DatedRow
	for rows.Next() {
		var r DatedRow
		if err := rows.Scan(&r.ID, &r.Date); err != nil {
			return nil, fmt.Errorf("FutureDatedTransactions: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SetTransactionDate rewrites one transaction's date.
func (s *Store) SetTransactionDate(ctx context.Context, id int64, date time.Time) error {
	_, err := s.db.Exec(ctx, fmt.Sprintf(
		`UPDATE %s.transactions SET transaction_date = $1 WHERE id = $2`, s.schema,
	), date, id)
	if err != nil {
		return fmt.Errorf("SetTransactionDate %d: %w", id, err)
	}
	return nil
}
