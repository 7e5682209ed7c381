package pipeline

import (
	"fmt"
	"strings"
)

// IssuerSummary aggregates the terminal outcome of every row and file
// of one issuer batch.
type IssuerSummary struct {
	Issuer string

	Files        int
	FilesRetired int
	FilesFailed  int

	RowsRead   int
	Inserted   int
	Duplicates int
	Rejected   int
	Fallbacks  int
	Failed     int

	// Err is set when the batch aborted (unknown person, unreadable
	// folder); row and file errors are counted, not stored.
	Err error
}

func (s *IssuerSummary) add(r fileResult) {
	s.Files++
	s.RowsRead += r.read
	s.Inserted += r.inserted
	s.Duplicates += r.duplicate
	s.Rejected += r.rejected
	s.Fallbacks += r.fallback
	s.Failed += r.failed
	if r.retired {
		s.FilesRetired++
	}
	if r.fileErr {
		s.FilesFailed++
	}
}

// Summary is the run report: per-issuer counts plus totals. It is the
// operator-facing output of a run, alongside database state and the
// retired files.
type Summary struct {
	RunID   string
	Issuers []IssuerSummary
}

// Totals sums the issuer summaries.
func (s *Summary) Totals() IssuerSummary {
	var t IssuerSummary
	t.Issuer = "total"
	for _, is := range s.Issuers {
		t.Files += is.Files
		t.FilesRetired += is.FilesRetired
		t.FilesFailed += is.FilesFailed
		t.RowsRead += is.RowsRead
		t.Inserted += is.Inserted
		t.Duplicates += is.Duplicates
		t.Rejected += is.Rejected
		t.Fallbacks += is.Fallbacks
		t.Failed += is.Failed
	}
	return t
}

// String renders the report as a fixed-width table.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", s.RunID)
	fmt.Fprintf(&b, "%-14s %6s %6s %6s %6s %6s %6s %6s %6s\n",
		"issuer", "files", "retire", "rows", "insert", "dup", "reject", "fallbk", "failed")
	rows := append(append([]IssuerSummary{}, s.Issuers...), s.Totals())
	for _, is := range rows {
		fmt.Fprintf(&b, "%-14s %6d %6d %6d %6d %6d %6d %6d %6d\n",
			is.Issuer, is.Files, is.FilesRetired, is.RowsRead,
			is.Inserted, is.Duplicates, is.Rejected, is.Fallbacks, is.Failed)
		if is.Err != nil {
			fmt.Fprintf(&b, "  %s: batch aborted: %v\n", is.Issuer, is.Err)
		}
	}
	return b.String()
}
