package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avandyck/costline/internal/cli"
	"github.com/avandyck/costline/internal/db"
	"github.com/avandyck/costline/internal/repository"
	"github.com/avandyck/costline/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.costline/costline.db
	dbPath := os.Getenv("COSTLINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".costline", "costline.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	docRepo := repository.NewSQLiteDocumentRepo(database)
	sectionRepo := repository.NewSQLiteSectionRepo(database)
	lineRepo := repository.NewSQLiteLineRepo(database)
	recordRepo := repository.NewSQLiteCostRecordRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	docSvc := service.NewDocumentService(docRepo, sectionRepo, lineRepo, uow)
	lineSvc := service.NewLineService(docRepo, lineRepo, uow)

	app := &cli.App{
		Documents: docSvc,
		Sections:  service.NewSectionService(sectionRepo),
		Lines:     lineSvc,
		Lookup:    service.NewLookupService(recordRepo, lineSvc, docSvc),
		Import:    service.NewImportService(docRepo, sectionRepo, lineRepo, uow),
	}

	// Detect interactive terminal for the editor and wizard entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
