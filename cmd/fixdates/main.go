// Command fixdates repairs transactions stored with a future date.
// These rows predate the ingest-time future-date rejection and came
// from 2-digit statement years parsed into the wrong century or year;
// rolling the date back one year restores the intended value.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hhernandez/money-review/internal/config"
	"github.com/hhernandez/money-review/internal/logger"
	"github.com/hhernandez/money-review/internal/store"
)

func main() {
	log := logger.New()
	cfg := config.FromEnv()

	dryRun := flag.Bool("dry-run", false, "report without updating rows")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer pool.Close()

	st := store.New(pool, cfg.DBSchema)

	rows, err := st.FutureDatedTransactions(ctx, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("listing future-dated transactions")
	}
	log.Info().Int("count", len(rows)).Msg("future-dated transactions found")

	fixed := 0
	for _, row := range rows {
		corrected := row.Date.AddDate(-1, 0, 0)
		if *dryRun {
			log.Info().Int64("id", row.ID).
				Str("from", row.Date.Format("2006-01-02")).
				Str("to", corrected.Format("2006-01-02")).
				Msg("would update")
			fixed++
			continue
		}
		if err := st.SetTransactionDate(ctx, row.ID, corrected); err != nil {
			log.Error().Err(err).Int64("id", row.ID).Msg("updating date")
			continue
		}
		fixed++
	}

	log.Info().Int("fixed", fixed).Msg("date repair complete")
}
