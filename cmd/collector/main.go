package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yasai-watch/radar/configs"
	"github.com/yasai-watch/radar/internal/extract"
	"github.com/yasai-watch/radar/internal/scraper"
	"github.com/yasai-watch/radar/internal/storage"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// runOnce performs one collection: extract the current workbook and append
// the new dates. Failures are logged here and the schedule keeps going; a
// failed run commits nothing.
func runOnce(ctx context.Context, logger *logrus.Logger, pipeline *extract.Pipeline, store storage.Store) {
	records, err := pipeline.Run(ctx)
	if err != nil {
		logger.WithError(err).Error("Collection run failed")
		return
	}

	appended, err := store.AppendRecords(ctx, records)
	if err != nil {
		logger.WithError(err).Error("Appending records failed")
		return
	}

	logger.WithFields(logrus.Fields{
		"extracted": len(records),
		"appended":  appended,
	}).Info("Collection run completed")
}

// nextRun returns the next occurrence of the scheduled hour in Tokyo time.
func nextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func main() {
	once := flag.Bool("once", false, "Run a single collection and exit")
	flag.Parse()

	appConfig := configs.AppLoad()
	logger := newLogger()

	db, err := storage.Open(appConfig.StorePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer db.Close()
	store := storage.NewSQLiteStore(db)

	fetcherConfig := scraper.DefaultFetcherConfig(appConfig.Market.RequestsPerSecond)
	fetcherConfig.RequestTimeout = time.Duration(appConfig.Market.RequestTimeoutSeconds) * time.Second
	fetcher := scraper.NewFetcher(fetcherConfig, logger)
	resolver := scraper.NewYasaiLinkResolver(appConfig.Market.BaseURL)
	pipeline := extract.NewPipeline(fetcher, resolver, appConfig.Market.ListingURL, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		runOnce(ctx, logger, pipeline, store)
		return
	}

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		logger.WithError(err).Fatal("Failed to load Asia/Tokyo location")
	}

	logger.WithField("hour", appConfig.Collector.ScheduleHour).Info("Collector started")
	for {
		next := nextRun(time.Now(), appConfig.Collector.ScheduleHour, tokyo)
		logger.WithField("next_run", next.Format(time.RFC3339)).Info("Waiting for next scheduled run")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Shutdown signal received, stopping collector")
			return
		case <-timer.C:
			runOnce(ctx, logger, pipeline, store)
		}
	}
}
