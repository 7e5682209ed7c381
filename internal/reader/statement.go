package reader

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/hhernandez/money-review/internal/ledger"
)

// Statement records use these keys, since PDF statements carry no
// header row of their own.
const (
	StatementDateKey        = "date"
	StatementDescriptionKey = "description"
	StatementAmountKey      = "amount"
)

var (
	// Transaction lines start with MM/DD. The amount is the last field.
	txLineRe = regexp.MustCompile(`^\d{2}/\d{2}\b`)
	amountRe = regexp.MustCompile(`^-?\d+\.\d{2}$`)

	// Statement period, e.g. "Opening/Closing Date 11/16/25 - 12/15/25".
	// The year of the closing date dates the whole statement.
	periodRe = regexp.MustCompile(`\d{1,2}/\d{1,2}/(?:\d{4}|\d{2})\s*-\s*\d{1,2}/\d{1,2}/(\d{4}|\d{2})`)
)

// ReadStatement extracts the transaction table of a paginated card
// statement. Records come back in document order with ISO dates.
//
// A statement with no recognizable transaction region fails with an
// UnrecognizedLayoutError. When some lines parse and others do not, the
// parsed records are returned together with a PartialExtractionError so
// the caller can log it and keep the file.
func ReadStatement(path string, fallbackYear int) ([]ledger.RawRecord, error) {
	pages, err := extractPages(path)
	if err != nil {
		return nil, fmt.Errorf("ReadStatement: %s: %w", path, err)
	}
	return ParseStatementPages(path, pages, fallbackYear)
}

// ParseStatementPages locates and parses the transaction region in
// already-extracted page text. Split out from ReadStatement so the
// layout logic is testable without a PDF fixture.
func ParseStatementPages(path string, pages []string, fallbackYear int) ([]ledger.RawRecord, error) {
	if len(pages) == 0 {
		return nil, &UnrecognizedLayoutError{Path: path}
	}

	year := StatementYear(pages[0], fallbackYear)

	var records []ledger.RawRecord
	var badLines []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, "ACCOUNT ACTIVITY") || strings.Contains(line, "Date of") {
				continue
			}
			if !txLineRe.MatchString(line) {
				continue
			}
			rec, ok := parseStatementLine(line, year)
			if !ok {
				badLines = append(badLines, line)
				continue
			}
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, &UnrecognizedLayoutError{Path: path}
	}
	if len(badLines) > 0 {
		return records, &PartialExtractionError{Path: path, BadLines: badLines}
	}
	return records, nil
}

// parseStatementLine splits "MM/DD DESCRIPTION ... AMOUNT" into a raw
// record, attaching the statement year to the date.
func parseStatementLine(line string, year int) (ledger.RawRecord, bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return nil, false
	}

	amount := strings.NewReplacer("$", "", ",", "").Replace(parts[len(parts)-1])
	if strings.HasPrefix(amount, "(") && strings.HasSuffix(amount, ")") {
		amount = "-" + amount[1:len(amount)-1]
	}
	if !amountRe.MatchString(amount) {
		return nil, false
	}

	date, err := time.Parse("01/02/2006", fmt.Sprintf("%s/%d", parts[0], year))
	if err != nil {
		return nil, false
	}

	return ledger.RawRecord{
		StatementDateKey:        date.Format("2006-01-02"),
		StatementDescriptionKey: strings.Join(parts[1:len(parts)-1], " "),
		StatementAmountKey:      amount,
	}, true
}

// StatementYear recovers the statement year from the closing date of
// the period range on the first page. Two-digit years are taken as
// 2000+YY. Falls back to the given year when no range is found.
func StatementYear(firstPage string, fallback int) int {
	m := periodRe.FindStringSubmatch(firstPage)
	if m == nil {
		return fallback
	}
	year := 0
	for _, c := range m[1] {
		year = year*10 + int(c-'0')
	}
	if len(m[1]) == 2 {
		year += 2000
	}
	return year
}

// extractPages returns the plain text of each page of the PDF.
func extractPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
