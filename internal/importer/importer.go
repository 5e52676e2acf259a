// Package importer loads tabular CSV data into the item collection in bounded
// batches: validate the source file, clean rows and columns, prepare
// documents, insert, report.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bookings-rest-api/internal/repository"
	"bookings-rest-api/internal/validator"
)

// DefaultBatchSize is how many documents go into one store call.
const DefaultBatchSize = 1000

// ImportSource tags every imported document's import_source field.
const ImportSource = "csv_import"

// Importer imports CSV files into the item collection.
type Importer struct {
	store     repository.BatchInserter
	batchSize int
	logger    *slog.Logger
}

// New creates an importer writing through store in batches of batchSize.
func New(store repository.BatchInserter, batchSize int) *Importer {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		store:     store,
		batchSize: batchSize,
		logger:    slog.Default(),
	}
}

// Report summarizes one import run.
type Report struct {
	File       string
	Duration   time.Duration
	SourceRows int
	Prepared   int
	Imported   int
	Errors     int
}

// SuccessRate is the percentage of prepared documents that were imported.
func (r *Report) SuccessRate() float64 {
	if r.Prepared == 0 {
		return 0
	}
	return float64(r.Imported) / float64(r.Prepared) * 100
}

// Run imports the CSV file at path. Per-row and per-batch failures are
// counted and logged without aborting the run; only source validation and
// read failures are terminal. With dropExisting the target collection is
// wiped before any insert.
func (im *Importer) Run(ctx context.Context, path string, dropExisting bool) (*Report, error) {
	start := time.Now()
	im.logger.Info("starting import", "file", path)

	if err := ValidateSource(path); err != nil {
		return nil, err
	}

	if dropExisting {
		removed, err := im.store.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to drop existing data: %w", err)
		}
		im.logger.Info("dropped existing data", "removed", removed)
	}

	header, rows, err := readAll(path)
	if err != nil {
		return nil, err
	}
	im.logger.Info("file read", "rows", len(rows), "columns", len(header))

	report := &Report{File: path}
	docs := im.prepare(header, rows, report)
	if len(docs) == 0 {
		im.logger.Warn("no documents to import after cleaning")
		report.Duration = time.Since(start)
		return report, nil
	}

	im.importBatches(ctx, docs, report)

	report.Duration = time.Since(start)
	im.logReport(report)
	return report, nil
}

// ValidateSource confirms the path is a readable CSV file before any data is
// touched.
func ValidateSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return fmt.Errorf("not a CSV file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	if _, err := csv.NewReader(f).Read(); err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	return nil
}

// readAll reads the header and every data row. Read or parse failures here
// are unrecoverable.
func readAll(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read header: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read rows: %w", err)
	}
	return header, rows, nil
}

// prepare cleans the table and turns each surviving row into a document.
// Fully-empty rows and columns are dropped, column names are normalized, and
// a row that cannot be mapped onto the header counts as one error without
// stopping the run. Every document in the run shares one timestamp.
func (im *Importer) prepare(header []string, rows [][]string, report *Report) []any {
	cols := NormalizeColumns(header)
	emptyCols := emptyColumns(len(cols), rows)

	now := time.Now().UTC()
	var docs []any

	for i, row := range rows {
		line := i + 2 // 1-based source line, header on line 1
		if emptyRow(row) {
			continue
		}
		report.SourceRows++

		if len(row) > len(cols) {
			im.logger.Warn("row does not match header", "line", line, "cells", len(row), "columns", len(cols))
			report.Errors++
			continue
		}

		doc := make(map[string]any, len(cols))
		for j, cell := range row {
			if emptyCols[j] || cols[j] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if isMissing(cell) {
				continue
			}
			doc[cols[j]] = ConvertValue(cell)
		}

		doc = validator.Sanitize(doc)
		doc["created_at"] = now
		doc["updated_at"] = now
		doc["import_source"] = ImportSource
		doc["import_row_number"] = line
		docs = append(docs, doc)
	}

	report.Prepared = len(docs)
	im.logger.Info("documents prepared", "count", len(docs))
	return docs
}

// importBatches inserts documents in bounded batches. Each batch runs
// independently and unordered; a batch-level failure charges the whole batch
// to the error counter and the run continues.
func (im *Importer) importBatches(ctx context.Context, docs []any, report *Report) {
	for start := 0; start < len(docs); start += im.batchSize {
		if ctx.Err() != nil {
			report.Errors += len(docs) - start
			im.logger.Warn("import cancelled", "remaining", len(docs)-start)
			return
		}

		end := min(start+im.batchSize, len(docs))
		batch := docs[start:end]
		batchNum := start/im.batchSize + 1

		inserted, err := im.store.InsertBatch(ctx, batch)
		if err != nil {
			im.logger.Error("batch failed", "batch", batchNum, "error", err)
			report.Errors += len(batch)
			continue
		}

		report.Imported += inserted
		report.Errors += len(batch) - inserted
		im.logger.Info("batch imported", "batch", batchNum, "inserted", inserted)
	}
}

func (im *Importer) logReport(r *Report) {
	im.logger.Info("import report",
		"file", r.File,
		"duration", r.Duration,
		"source_rows", r.SourceRows,
		"imported", r.Imported,
		"errors", r.Errors,
		"success_rate", fmt.Sprintf("%.2f%%", r.SuccessRate()),
	)
}
