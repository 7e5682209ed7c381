package issuer

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hhernandez/money-review/internal/ledger"
	"github.com/hhernandez/money-review/internal/reader"
)

var runDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func requireAmount(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("amount = %s, want %s", got, want)
	}
}

func TestAppleNormalize(t *testing.T) {
	rec := ledger.RawRecord{
		"Transaction Date": "01/15/2025",
		"Merchant":         "  Trader   Joe's ",
		"Amount (USD)":     "$1,042.50",
		"Category":         "Grocery",
	}
	tx, err := Apple{}.Normalize(rec, runDate)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	requireAmount(t, tx.Amount, "1042.50")
	if tx.MerchantName != "Trader Joe's" {
		t.Errorf("merchant = %q", tx.MerchantName)
	}
	if tx.CategoryName != "Grocery" {
		t.Errorf("category hint = %q", tx.CategoryName)
	}
	if !tx.Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", tx.Date)
	}
}

func TestAmexNormalizeKeepsSign(t *testing.T) {
	// Amex exports spend positive; refunds stay negative.
	tests := []struct {
		raw  string
		want string
	}{
		{"25.00", "25.00"},
		{"-13.37", "-13.37"},
	}
	for _, tt := range tests {
		rec := ledger.RawRecord{"Date": "02/01/2025", "Description": "NETFLIX.COM", "Amount": tt.raw}
		tx, err := Amex{}.Normalize(rec, runDate)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tt.raw, err)
		}
		requireAmount(t, tx.Amount, tt.want)
	}
}

func TestCitiNormalizeFlipsSign(t *testing.T) {
	// Citi exports spend negative; the stored convention is spend
	// positive, so amounts are negated.
	rec := ledger.RawRecord{"Date": "02/01/2025", "Description": "SAFEWAY #123", "Amount": "-54.10", "Category": "Groceries"}
	tx, err := Citi{}.Normalize(rec, runDate)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	requireAmount(t, tx.Amount, "54.10")
}

func TestChaseNormalize(t *testing.T) {
	rec := ledger.RawRecord{
		reader.StatementDateKey:        "2025-05-20",
		reader.StatementDescriptionKey: "UBER *TRIP",
		reader.StatementAmountKey:      "23.40",
	}
	tx, err := Chase{}.Normalize(rec, runDate)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	requireAmount(t, tx.Amount, "23.40")
	if tx.CategoryName != "" {
		t.Errorf("statement rows carry no category, got %q", tx.CategoryName)
	}
}

func TestChasePaymentLine(t *testing.T) {
	// Payment lines come out of the statement uncategorized like every
	// other row; the pattern tier labels them downstream.
	records, err := reader.ParseStatementPages("stmt.pdf",
		[]string{"05/22 Payment Thank You-Mobile -1,500.00"}, 2025)
	if err != nil {
		t.Fatalf("ParseStatementPages: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	tx, err := Chase{}.Normalize(records[0], runDate)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	requireAmount(t, tx.Amount, "-1500.00")
	if tx.CategoryName != "" {
		t.Errorf("CategoryName = %q, want empty for the resolver", tx.CategoryName)
	}
}

func TestChaseFallbackYearUsesClock(t *testing.T) {
	c := Chase{Now: func() time.Time { return time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC) }}
	if got := c.fallbackYear(); got != 2023 {
		t.Errorf("fallbackYear = %d, want 2023", got)
	}
	if got := (Chase{}).fallbackYear(); got != time.Now().Year() {
		t.Errorf("fallbackYear = %d, want the wall clock year", got)
	}
}

func TestNormalizeRejectsFutureDate(t *testing.T) {
	rec := ledger.RawRecord{"Date": "02/01/2026", "Description": "TIME MACHINE", "Amount": "10.00"}
	_, err := Amex{}.Normalize(rec, runDate)
	var invalid *InvalidDateError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidDateError", err)
	}
}

func TestNormalizeRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		rec  ledger.RawRecord
	}{
		{"missing amount", ledger.RawRecord{"Date": "02/01/2025", "Description": "SAFEWAY"}},
		{"missing merchant", ledger.RawRecord{"Date": "02/01/2025", "Description": "  ", "Amount": "5.00"}},
		{"garbage amount", ledger.RawRecord{"Date": "02/01/2025", "Description": "SAFEWAY", "Amount": "n/a"}},
		{"garbage date", ledger.RawRecord{"Date": "tomorrow", "Description": "SAFEWAY", "Amount": "5.00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Amex{}.Normalize(tt.rec, runDate)
			var rejected *RowRejectedError
			if !errors.As(err, &rejected) {
				t.Fatalf("err = %v, want RowRejectedError", err)
			}
		})
	}
}

func TestAllCoversEveryFolder(t *testing.T) {
	folders := make(map[string]bool)
	for _, src := range All(nil) {
		if src.AccountType() == "" || src.Folder() == "" || src.Pattern() == "" {
			t.Errorf("incomplete source %T", src)
		}
		if folders[src.Folder()] {
			t.Errorf("duplicate folder %q", src.Folder())
		}
		folders[src.Folder()] = true
	}
	if len(folders) != 4 {
		t.Errorf("got %d issuers, want 4", len(folders))
	}
}
