package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hhernandez/money-review/internal/categorize"
	"github.com/hhernandez/money-review/internal/config"
	"github.com/hhernandez/money-review/internal/issuer"
	"github.com/hhernandez/money-review/internal/logger"
	"github.com/hhernandez/money-review/internal/pipeline"
	"github.com/hhernandez/money-review/internal/store"
)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	dataRoot := flag.String("data-root", cfg.DataRoot, "directory containing the per-issuer folders")
	person := flag.String("person", cfg.Person, "account owner the transactions belong to")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

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

	var classifier categorize.Classifier
	if os.Getenv("GEMINI_API_KEY") != "" {
		gemini, err := categorize.NewGeminiClassifier(ctx, cfg.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("generative tier unavailable, unmatched merchants fall back")
		} else {
			classifier = gemini
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, unmatched merchants fall back")
	}
	resolver := categorize.NewResolver(categorize.DefaultRules, classifier, categories)

	run := pipeline.New(st, resolver, *person, log)
	log.Info().Str("run_id", run.ID.String()).Str("data_root", *dataRoot).Msg("starting ingestion run")

	summary := pipeline.Summary{RunID: run.ID.String()}
	for _, src := range issuer.All(run.Now) {
		summary.Issuers = append(summary.Issuers, run.ProcessIssuer(ctx, src, *dataRoot))
	}

	fmt.Print(summary.String())

	if t := summary.Totals(); t.Failed > 0 || t.FilesFailed > 0 {
		os.Exit(1)
	}
}
