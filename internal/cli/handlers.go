package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/BartekS5/fdload/internal/config"
	"github.com/BartekS5/fdload/internal/etl"
	"github.com/BartekS5/fdload/pkg/database"
	"github.com/BartekS5/fdload/pkg/fdload"
	"github.com/BartekS5/fdload/pkg/logger"
	"github.com/BartekS5/fdload/pkg/storage"
)

// connectDatabase is replaced in tests to inject a mock database.
var connectDatabase = database.Connect

func runLoad(ctx context.Context, opts *LoadOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg.BatchSize = opts.BatchSize
	cfg.DryRun = opts.DryRun
	cfg.Storage.Bucket = opts.Bucket
	cfg.Storage.Folder = opts.Folder
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.InitLogger(opts.LogFile, cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: logger: %v", fdload.ErrInvalidConfig, err)
	}
	defer logger.Close()

	mapping, err := config.LoadMapping(opts.MappingFile)
	if err != nil {
		return err
	}

	store, err := storage.Connect(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()
	fmt.Fprintf(out, "Connected to %s.\n", store.Name())

	handle, err := connectDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer handle.Close(context.Background())
	fmt.Fprintf(out, "Connected to %s database.\n", handle.DisplayName())

	appender, err := newAppender(handle)
	if err != nil {
		return err
	}

	pipeline := etl.NewPipeline(store, appender, mapping, cfg.Storage.Folder, cfg.BatchSize)
	pipeline.DryRun = cfg.DryRun
	pipeline.Out = out

	results, err := pipeline.Run(ctx)
	logSummary(results)
	if err != nil {
		logger.Errorf("Load interrupted after %d of %d files: %v", len(results), len(mapping.Entries), err)
	}
	return err
}

func newAppender(h *database.Handle) (etl.Appender, error) {
	if h.Mongo != nil {
		return etl.NewMongoLoader(h.Mongo, h.Database), nil
	}
	return etl.NewSQLAppender(h.SQL, h.Driver)
}

func logSummary(results []etl.FileResult) {
	var loaded, skipped, failed int
	var rows int64
	for _, r := range results {
		switch r.Status {
		case etl.StatusLoaded:
			loaded++
		case etl.StatusSkipped:
			skipped++
		case etl.StatusFailed:
			failed++
		}
		rows += r.Rows
	}
	logger.Infof("Summary: %d loaded, %d skipped, %d failed, %d rows appended", loaded, skipped, failed, rows)
	if failed > 0 {
		logger.Warnf("%d file(s) failed to load; rows appended before each failure were kept", failed)
	}
}
