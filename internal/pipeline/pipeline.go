// Package pipeline drives the ingestion run: readers → normalization →
// categorization → persistence per issuer batch, with source files
// deleted only once every extracted row has reached a terminal outcome.
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hhernandez/money-review/internal/issuer"
	"github.com/hhernandez/money-review/internal/ledger"
	"github.com/hhernandez/money-review/internal/reader"
	"github.com/hhernandez/money-review/internal/store"
)

// TransactionStore is the persistence boundary the run needs.
type TransactionStore interface {
	ListCategories(ctx context.Context) ([]string, error)
	PersonID(ctx context.Context, name string) (int64, error)
	InsertTransaction(ctx context.Context, tx ledger.Transaction) (ledger.InsertOutcome, error)
}

// CategoryResolver is the two-tier resolution boundary.
type CategoryResolver interface {
	// Resolve returns the category for a merchant and whether the
	// fallback category was used; a non-nil error is diagnostic only.
	Resolve(ctx context.Context, merchantName string) (string, bool, error)
	// Known reports whether a name is in the closed category list.
	Known(name string) bool
	// Canonical returns the list spelling of a known name.
	Canonical(name string) string
}

// Run holds the state of one pipeline execution. All shared state
// (reference caches inside the store, the categorization memo inside
// the resolver) is scoped to the Run, so tests can execute several
// isolated runs in one process.
type Run struct {
	ID       uuid.UUID
	Store    TransactionStore
	Resolver CategoryResolver
	Person   string
	Log      zerolog.Logger

	// Now is the run's clock; rows dated after Now() are rejected.
	Now func() time.Time
}

// New builds a Run with a fresh id and the real clock.
func New(st TransactionStore, res CategoryResolver, person string, log zerolog.Logger) *Run {
	return &Run{
		ID:       uuid.New(),
		Store:    st,
		Resolver: res,
		Person:   person,
		Log:      log,
		Now:      time.Now,
	}
}

// ProcessIssuer processes every file of one issuer folder in order and
// returns that issuer's summary. The batch is aborted only for an
// unknown person; every other failure is scoped to its file or row.
func (r *Run) ProcessIssuer(ctx context.Context, src issuer.Source, root string) IssuerSummary {
	sum := IssuerSummary{Issuer: src.AccountType()}
	log := r.Log.With().Str("run_id", r.ID.String()).Str("issuer", src.AccountType()).Logger()

	// Fail the batch before touching files if the owner is not seeded.
	if _, err := r.Store.PersonID(ctx, r.Person); err != nil {
		log.Error().Err(err).Msg("issuer batch aborted")
		sum.Err = err
		return sum
	}

	pattern := filepath.Join(root, src.Folder(), src.Pattern())
	files, err := filepath.Glob(pattern)
	if err != nil {
		sum.Err = err
		return sum
	}
	if len(files) == 0 {
		log.Info().Str("pattern", pattern).Msg("no files found")
		return sum
	}

	for _, path := range files {
		res := r.processFile(ctx, src, path, log)
		sum.add(res)
		if res.err != nil {
			var unknown *store.UnknownPersonError
			if errors.As(res.err, &unknown) {
				sum.Err = res.err
				return sum
			}
		}
	}
	return sum
}

// fileResult accounts for every row extracted from one file.
type fileResult struct {
	read      int
	inserted  int
	duplicate int
	rejected  int
	fallback  int
	failed    int
	retired   bool
	fileErr   bool
	err       error
}

func (r *Run) processFile(ctx context.Context, src issuer.Source, path string, log zerolog.Logger) fileResult {
	var res fileResult
	log = log.With().Str("file", filepath.Base(path)).Logger()

	records, err := src.Read(path)
	partial := false
	if err != nil {
		var pe *reader.PartialExtractionError
		if errors.As(err, &pe) {
			// Non-fatal: keep the parsed rows, but the unparsed lines
			// make the file the only record of those transactions, so
			// it is never retired.
			partial = true
			res.rejected += len(pe.BadLines)
			log.Warn().Int("bad_lines", len(pe.BadLines)).Msg("partial extraction")
		} else {
			res.fileErr = true
			res.err = err
			log.Error().Err(err).Msg("file skipped")
			return res
		}
	}
	res.read = len(records)

	now := r.Now()
	for _, rec := range records {
		tx, err := src.Normalize(rec, now)
		if err != nil {
			res.rejected++
			log.Warn().Err(err).Msg("row rejected")
			continue
		}

		r.categorize(ctx, &tx, &res, log)
		tx.Person = r.Person
		tx.AccountType = src.AccountType()

		outcome, err := r.Store.InsertTransaction(ctx, tx)
		if err != nil {
			var unknown *store.UnknownPersonError
			if errors.As(err, &unknown) {
				res.err = err
				return res
			}
			res.failed++
			log.Error().Err(err).Str("merchant", tx.MerchantName).Msg("row not persisted")
			continue
		}
		switch outcome {
		case ledger.Inserted:
			res.inserted++
		case ledger.DuplicateSkipped:
			res.duplicate++
		}
	}

	// Retire the source only once every extracted row is terminal and
	// none failed; a failed row keeps the file as the recovery record.
	if res.failed == 0 && !partial {
		if err := os.Remove(path); err != nil {
			log.Error().Err(err).Msg("could not delete retired file")
		} else {
			res.retired = true
			log.Info().Int("rows", res.read).Msg("file retired")
		}
	}
	return res
}

// categorize fills CategoryName: a known issuer-provided label is
// trusted, everything else goes through the two-tier resolver.
func (r *Run) categorize(ctx context.Context, tx *ledger.Transaction, res *fileResult, log zerolog.Logger) {
	if tx.CategoryName != "" && r.Resolver.Known(tx.CategoryName) {
		tx.CategoryName = r.Resolver.Canonical(tx.CategoryName)
		return
	}
	category, fellBack, err := r.Resolver.Resolve(ctx, tx.MerchantName)
	if err != nil {
		log.Warn().Err(err).Str("merchant", tx.MerchantName).Msg("categorization degraded to fallback")
	}
	if fellBack {
		res.fallback++
	}
	tx.CategoryName = category
}
