// Command recategorize re-resolves the category of transactions whose
// category reference is NULL, using the same two-tier resolver as the
// ingestion run. Rows the resolver can only send to the fallback
// category are left NULL for a later pass.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hhernandez/money-review/internal/categorize"
	"github.com/hhernandez/money-review/internal/config"
	"github.com/hhernandez/money-review/internal/logger"
	"github.com/hhernandez/money-review/internal/store"
)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	dryRun := flag.Bool("dry-run", false, "resolve and report without updating rows")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer pool.Close()

	st := store.New(pool, cfg.DBSchema)

	categories, err := st.ListCategories(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("loading category list")
	}

	classifier, err := categorize.NewGeminiClassifier(ctx, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("generative tier required for recategorization")
	}
	resolver := categorize.NewResolver(categorize.DefaultRules, classifier, categories)

	rows, err := st.UncategorizedTransactions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing uncategorized transactions")
	}
	log.Info().Int("count", len(rows)).Msg("uncategorized transactions found")

	updated, skipped := 0, 0
	for _, row := range rows {
		category, fellBack, resolveErr := resolver.Resolve(ctx, row.Merchant)
		if resolveErr != nil {
			log.Warn().Err(resolveErr).Str("merchant", row.Merchant).Msg("resolution degraded")
		}
		if fellBack {
			skipped++
			continue
		}
		if *dryRun {
			log.Info().Int64("id", row.ID).Str("merchant", row.Merchant).Str("category", category).Msg("would update")
			updated++
			continue
		}
		categoryID, err := st.CategoryID(ctx, category)
		if err != nil {
			log.Error().Err(err).Str("category", category).Msg("resolving category id")
			continue
		}
		if err := st.SetTransactionCategory(ctx, row.ID, categoryID); err != nil {
			log.Error().Err(err).Int64("id", row.ID).Msg("updating transaction")
			continue
		}
		updated++
	}

	log.Info().Int("updated", updated).Int("left_uncategorized", skipped).Msg("recategorization complete")
}
