// Command importer loads products into the SQL catalog from a spreadsheet
// or from the embedded seed. Run it before the first start; a running
// storefront picks up changes made through the admin API instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/adapter/storage/seed"
	"github.com/niksmo/storefront/internal/adapter/xlsx"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/sigctx"
)

const (
	fileFlag   = "file"
	seedFlag   = "seed"
	exportFlag = "export"
)

func main() {
	sigCtx, cancel := sigctx.NotifyContext()
	defer cancel()

	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	file := cmdLine.StringP(fileFlag, "f", "", "xlsx file to import")
	fromSeed := cmdLine.Bool(seedFlag, false, "import the embedded seed catalog")
	export := cmdLine.String(exportFlag, "", "write the catalog to this xlsx file instead")

	cfg := config.LoadWithFlags(cmdLine, os.Args[1:])
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.SQLDB == "" {
		fallDown(errors.New("sql_db is required"))
	}

	sqldb, err := storage.NewSQLDB(sigCtx, cfg.SQLDB)
	if err != nil {
		fallDown(err)
	}
	defer sqldb.Close()

	s := service.New(storage.NewProductsRepository(sqldb), nil, nil)

	switch {
	case *export != "":
		err = exportProducts(sigCtx, s, *export)
	case *fromSeed:
		err = importSeed(sigCtx, s)
	case *file != "":
		err = importFile(sigCtx, s, *file)
	default:
		err = fmt.Errorf("one of --%s, --%s or --%s is required", fileFlag, seedFlag, exportFlag)
	}
	if err != nil {
		fallDown(err)
	}
}

func importSeed(ctx context.Context, s *service.Service) error {
	ps, err := seed.Products()
	if err != nil {
		return err
	}
	return store(ctx, s, ps)
}

func importFile(ctx context.Context, s *service.Service, path string) error {
	const op = "importFile"
	log := slog.With("op", op)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ps, rowErrs, err := xlsx.ReadProducts(f)
	if err != nil {
		return err
	}
	for _, e := range rowErrs {
		log.Warn("row skipped", "row", e.Row, "err", e.Err)
	}
	return store(ctx, s, ps)
}

func store(ctx context.Context, s *service.Service, ps []domain.Product) error {
	const op = "store"
	log := slog.With("op", op)

	report, err := s.ImportProducts(ctx, ps)
	if err != nil {
		return err
	}
	for _, rej := range report.Rejected {
		log.Warn("product skipped", "index", rej.Index, "title", rej.Title, "err", rej.Err)
	}
	log.Info("catalog imported", "stored", len(report.Stored), "skipped", len(report.Rejected))
	return nil
}

func exportProducts(ctx context.Context, s *service.Service, path string) (err error) {
	ps, err := s.ExportProducts(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := xlsx.WriteProducts(f, ps); err != nil {
		return err
	}
	slog.Info("catalog exported", "products", len(ps), "file", path)
	return nil
}

func fallDown(err error) {
	slog.Error("import failed", "err", err)
	os.Exit(2)
}
