// Command import loads a CSV file into the item collection.
//
// Usage: import [-drop-existing] [-batch-size n] <file.csv>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bookings-rest-api/internal/config"
	"bookings-rest-api/internal/importer"
	"bookings-rest-api/internal/logging"
	"bookings-rest-api/internal/repository"
)

func main() {
	dropExisting := flag.Bool("drop-existing", false, "delete existing data before import")
	batchSize := flag.Int("batch-size", 0, "batch size (default from IMPORT_BATCH_SIZE)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoad()
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	size := cfg.Import.BatchSize
	if *batchSize > 0 {
		size = *batchSize
	}

	repo, err := repository.NewMongoItemRepository(cfg.Mongo)
	if err != nil {
		slog.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := importer.New(repo, size).Run(ctx, flag.Arg(0), *dropExisting)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	if report.Errors > 0 {
		slog.Warn("import finished with errors", "imported", report.Imported, "errors", report.Errors)
		return
	}
	slog.Info("import finished", "imported", report.Imported)
}
