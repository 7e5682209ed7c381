package issuer

import (
	"time"

	"github.com/hhernandez/money-review/internal/ledger"
	"github.com/hhernandez/money-review/internal/reader"
)

// Citi handles Citi CSV exports. Citi exports spend as negative, so
// amounts are negated into the stored convention. The export's own
// Category column is kept as a resolver hint.
type Citi struct{}

func (Citi) AccountType() string { return "Citi Card" }
func (Citi) Folder() string      { return "Citi_files" }
func (Citi) Pattern() string     { return "*.CSV" }

func (Citi) Read(path string) ([]ledger.RawRecord, error) {
	return reader.ReadDelimited(path, []string{"Date", "Description", "Amount"})
}

func (Citi) Normalize(rec ledger.RawRecord, now time.Time) (ledger.Transaction, error) {
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
		Amount:       amount.Neg(),
		MerchantName: name,
		CategoryName: rec["Category"],
		Date:         date,
	}, nil
}
