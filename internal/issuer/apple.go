package issuer

import (
	"time"

	"github.com/hhernandez/money-review/internal/ledger"
	"github.com/hhernandez/money-review/internal/reader"
)

// Apple handles Apple Card CSV exports. Amounts are already signed with
// spend positive; the export carries its own Category column, which is
// kept as a hint for the resolver.
type Apple struct{}

func (Apple) AccountType() string { return "Apple Card" }
func (Apple) Folder() string      { return "apple_files" }
func (Apple) Pattern() string     { return "*.csv" }

func (Apple) Read(path string) ([]ledger.RawRecord, error) {
	return reader.ReadDelimited(path, []string{"Transaction Date", "Merchant", "Amount (USD)"})
}

func (Apple) Normalize(rec ledger.RawRecord, now time.Time) (ledger.Transaction, error) {
	date, err := parseDate(rec, "Transaction Date", "01/02/2006", now)
	if err != nil {
		return ledger.Transaction{}, err
	}
	amount, err := parseAmount(rec, "Amount (USD)")
	if err != nil {
		return ledger.Transaction{}, err
	}
	name, err := merchant(rec, "Merchant")
	if err != nil {
		return ledger.Transaction{}, err
	}
	return ledger.Transaction{
		Amount:       amount,
		MerchantName: name,
		CategoryName: rec["Category"],
		Date:         date,
	}, nil
}
