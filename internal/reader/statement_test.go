package reader

import (
	"errors"
	"testing"
)

const samplePage = `CHASE CARD SERVICES
Opening/Closing Date 11/16/25 - 12/15/25

ACCOUNT ACTIVITY
Date of Transaction Merchant Name or Transaction Description $ Amount
11/20 AMAZON MKTPL*A12BC 45.67
11/22 Payment Thank You-Mobile -1,500.00
12/01 COSTCO WHSE #0423 212.88
`

func TestParseStatementPages(t *testing.T) {
	records, err := ParseStatementPages("stmt.pdf", []string{samplePage}, 2020)
	if err != nil {
		t.Fatalf("ParseStatementPages: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if first[StatementDateKey] != "2025-11-20" {
		t.Errorf("date = %q, want statement year applied", first[StatementDateKey])
	}
	if first[StatementDescriptionKey] != "AMAZON MKTPL*A12BC" {
		t.Errorf("description = %q", first[StatementDescriptionKey])
	}
	if first[StatementAmountKey] != "45.67" {
		t.Errorf("amount = %q", first[StatementAmountKey])
	}

	if records[1][StatementAmountKey] != "-1500.00" {
		t.Errorf("credit amount = %q, want -1500.00", records[1][StatementAmountKey])
	}
}

func TestParseStatementPagesUnrecognized(t *testing.T) {
	pages := []string{"TERMS AND CONDITIONS\nNothing resembling a table here.\n"}
	_, err := ParseStatementPages("stmt.pdf", pages, 2025)
	var layout *UnrecognizedLayoutError
	if !errors.As(err, &layout) {
		t.Fatalf("err = %v, want UnrecognizedLayoutError", err)
	}
}

func TestParseStatementPagesPartial(t *testing.T) {
	page := samplePage + "12/02 TRAILING LINE WITHOUT AMOUNT pending\n"
	records, err := ParseStatementPages("stmt.pdf", []string{page}, 2020)

	var partial *PartialExtractionError
	if !errors.As(err, &partial) {
		t.Fatalf("err = %v, want PartialExtractionError", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records alongside the error, want 3", len(records))
	}
	if len(partial.BadLines) != 1 {
		t.Errorf("BadLines = %v, want 1 line", partial.BadLines)
	}
}

func TestStatementYear(t *testing.T) {
	tests := []struct {
		name string
		page string
		want int
	}{
		{"two digit years", "Opening/Closing Date 11/16/25 - 12/15/25", 2025},
		{"four digit years", "Statement Period: 11/16/2024 - 12/15/2024", 2024},
		{"crossing new year", "Opening/Closing Date 12/16/24 - 01/15/25", 2025},
		{"no period line", "no dates here", 2021},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatementYear(tt.page, 2021); got != tt.want {
				t.Errorf("StatementYear = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseStatementLineParenAmount(t *testing.T) {
	rec, ok := parseStatementLine("11/30 REFUND VENDOR (25.00)", 2025)
	if !ok {
		t.Fatal("line should parse")
	}
	if rec[StatementAmountKey] != "-25.00" {
		t.Errorf("amount = %q, want -25.00", rec[StatementAmountKey])
	}
}
