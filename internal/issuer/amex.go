package issuer

import (
	"time"

	"github.com/hhernandez/money-review/internal/ledger"
	"github.com/hhernandez/money-review/internal/reader"
)

// Amex handles Amex CSV exports. Amounts are exported with spend
// positive, matching the stored convention, and there is no category
// column; every row goes through the resolver.
type Amex struct{}

func (Amex) AccountType() string { return "Amex Card" }
func (Amex) Folder() string      { return "Amex_files" }
func (Amex) Pattern() string     { return "*.csv" }

func (Amex) Read(path string) ([]ledger.RawRecord, error) {
	return reader.ReadDelimited(path, []string{"Date", "Description", "Amount"})
}

func (Amex) Normalize(rec ledger.RawRecord, now time.Time) (ledger.Transaction, error) {
	date, err := parseDate(rec, "Date", "01/02/2006", now)
	if err != nil {
		return ledger.Transaction{}, err
	}
	amount, err := parseAmount(rec, "Amount")
	if err != nil {
		return ledger.Transaction{}, err
	}
	name, err := merchant(rec, "Description")
	if err != nil {
		return ledger.Transaction{}, err
	}
	return ledger.Transaction{
		Amount:       amount,
		MerchantName: name,
		Date:         date,
	}, nil
}
