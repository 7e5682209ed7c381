package issuer

import (
	"time"

	"github.com/hhernandez/money-review/internal/ledger"
	"github.com/hhernandez/money-review/internal/reader"
)

// Chase handles Chase PDF statements. The statement's activity table
// lists purchases positive and payments/credits negative, which already
// matches the stored convention. Statement rows carry no category, so
// every row goes through the resolver.
type Chase struct {
	// Now supplies the clock used to recover a statement year when the
	// document carries no period range. Nil means time.Now.
	Now func() time.Time
}

func (Chase) AccountType() string { return "Chase Card" }
func (Chase) Folder() string      { return "chase_files" }
func (Chase) Pattern() string     { return "*.pdf" }

func (c Chase) Read(path string) ([]ledger.RawRecord, error) {
	return reader.ReadStatement(path, c.fallbackYear())
}

func (c Chase) fallbackYear() int {
	if c.Now != nil {
		return c.Now().Year()
	}
	return time.Now().Year()
}

func (Chase) Normalize(rec ledger.RawRecord, now time.Time) (ledger.Transaction, error) {
	date, err := parseDate(rec, reader.StatementDateKey, "2006-01-02", now)
	if err != nil {
		return ledger.Transaction{}, err
	}
	amount, err := parseAmount(rec, reader.StatementAmountKey)
	if err != nil {
		return ledger.Transaction{}, err
	}
	name, err := merchant(rec, reader.StatementDescriptionKey)
	if err != nil {
		return ledger.Transaction{}, err
	}
	return ledger.Transaction{
		Amount:       amount,
		MerchantName: name,
		Date:         date,
	}, nil
}
