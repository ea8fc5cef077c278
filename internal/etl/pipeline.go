package etl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/BartekS5/fdload/pkg/fdload"
	"github.com/BartekS5/fdload/pkg/logger"
	"github.com/BartekS5/fdload/pkg/models"
	"github.com/BartekS5/fdload/pkg/storage"
)

type FileStatus string

const (
	StatusSkipped FileStatus = "skipped"
	StatusLoaded  FileStatus = "loaded"
	StatusFailed  FileStatus = "failed"
)

// FileResult is the outcome of one mapping entry. Rows and Batches count
// what was appended before any failure.
type FileResult struct {
	Source  string
	Table   string
	URI     string
	Status  FileStatus
	Rows    int64
	Batches int
	Err     error
}

// Pipeline loads every mapping entry, in order, from Store into Appender.
type Pipeline struct {
	Store    ObjectStore
	Appender Appender
	Mapping  *models.MappingConfig
	Schemas  models.SchemaRegistry
	Folder   string

	BatchSize int
	DryRun    bool

	// Out receives the human readable status lines. Defaults to stdout.
	Out io.Writer
}

func NewPipeline(store ObjectStore, appender Appender, mapping *models.MappingConfig, folder string, batchSize int) *Pipeline {
	return &Pipeline{
		Store:     store,
		Appender:  appender,
		Mapping:   mapping,
		Schemas:   models.DefaultSchemas(),
		Folder:    folder,
		BatchSize: batchSize,
		Out:       os.Stdout,
	}
}

// Run attempts every entry in mapping order. A missing object is skipped
// without output; a failing file is reported and the run moves on, leaving
// whatever batches it already appended in place. The returned error is only
// set when ctx is cancelled, in which case the remaining entries are not
// attempted.
func (p *Pipeline) Run(ctx context.Context) ([]FileResult, error) {
	if p.BatchSize <= 0 {
		p.BatchSize = fdload.DefaultBatchSize
	}
	if p.Out == nil {
		p.Out = os.Stdout
	}

	logger.Infof("Starting load. Files: %d, Batch Size: %d, DryRun: %v", len(p.Mapping.Entries), p.BatchSize, p.DryRun)
	startTime := time.Now()

	results := make([]FileResult, 0, len(p.Mapping.Entries))
	for _, entry := range p.Mapping.Entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := p.loadEntry(ctx, entry)
		results = append(results, res)

		switch res.Status {
		case StatusLoaded:
			fmt.Fprintf(p.Out, "Loaded %s -> %s\n", res.Source, res.Table)
		case StatusFailed:
			fmt.Fprintf(p.Out, "Failed to load %s: %v\n", res.Source, res.Err)
		}
	}

	logger.Infof("Load finished in %s", time.Since(startTime).Round(time.Millisecond))
	return results, nil
}

func (p *Pipeline) loadEntry(ctx context.Context, entry models.MappingEntry) FileResult {
	key := storage.Key(p.Folder, entry.Source)
	res := FileResult{Source: entry.Source, Table: entry.Table, URI: p.Store.URI(key)}
	entryLog := logger.WithFields(log.Fields{"source": res.URI, "table": entry.Table})

	exists, err := p.Store.Exists(ctx, key)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}
	if !exists {
		entryLog.Debug("object not found, skipping")
		res.Status = StatusSkipped
		return res
	}

	if err := p.copyFile(ctx, key, entry.Table, &res, entryLog); err != nil {
		entryLog.WithError(err).Warnf("load stopped after %d rows in %d batches", res.Rows, res.Batches)
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	entryLog.Infof("appended %d rows in %d batches", res.Rows, res.Batches)
	res.Status = StatusLoaded
	return res
}

func (p *Pipeline) copyFile(ctx context.Context, key, table string, res *FileResult, entryLog *log.Entry) error {
	body, err := p.Store.Open(ctx, key)
	if err != nil {
		return err
	}
	defer body.Close()

	reader, err := NewBatchReader(body, p.BatchSize)
	if err != nil {
		return err
	}
	transformer := NewTransformer(p.Schemas.Lookup(table))

	for {
		batch, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		rows, err := transformer.TransformBatch(batch)
		if err != nil {
			return err
		}

		if p.DryRun {
			entryLog.Infof("[DRY RUN] Would append %d rows (batch %d)", len(rows), batch.SeqNum)
		} else if err := p.Appender.Append(ctx, table, batch.Columns, rows); err != nil {
			return err
		}

		res.Rows += int64(len(rows))
		res.Batches++
		entryLog.Debugf("Batch %d done. Total rows: %d", batch.SeqNum, res.Rows)
	}
}
