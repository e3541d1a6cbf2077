package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/billing-report/infrastructure/database/sandbox"
	"github.com/vfg2006/billing-report/pkg/log"
)

type options struct {
	dbPath    string
	months    int
	perMonth  int
	seed      int64
	overwrite bool
	debug     bool
}

func main() {
	if err := newCommand(&options{}).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Create a local SQLite WHMCS database with demo invoices",
		Long: `sandbox creates a SQLite file with the tblclients, tblinvoices and tblaccounts
tables used by billing-report and fills it with demo invoices and fees, so the
reports can be tried without access to the production database:

  DB_DRIVER=sqlite DB_NAME=./whmcs-sandbox.db billing-report --all-invoices`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.dbPath, "db", "./whmcs-sandbox.db", "Path of the SQLite file")
	flags.IntVar(&opts.months, "months", 14, "Months of history before the current month")
	flags.IntVar(&opts.perMonth, "per-month", 25, "Invoices per month")
	flags.Int64Var(&opts.seed, "seed", time.Now().UnixNano(),
		"Random seed for dates, amounts, statuses and fees (invoice numbers are always random)")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace the file if it already exists")
	flags.BoolVar(&opts.debug, "debug", false, "Verbose logging")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	logger := log.New(log.Options{Level: "info", Debug: opts.debug})
	startTime := time.Now()

	if opts.months < 0 || opts.perMonth <= 0 {
		return errors.New("--months must be >= 0 and --per-month > 0")
	}

	if _, err := os.Stat(opts.dbPath); err == nil {
		if !opts.overwrite {
			return fmt.Errorf("%s already exists, use --overwrite to replace it", opts.dbPath)
		}
		if err := os.Remove(opts.dbPath); err != nil {
			return fmt.Errorf("erro ao remover banco existente: %w", err)
		}
		logger.WithField("path", opts.dbPath).Warn("Banco existente removido")
	}

	db, err := sandbox.Create(opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	fixture, err := sandbox.DemoFixture(time.Now(), opts.months, opts.perMonth, opts.seed)
	if err != nil {
		return err
	}

	if err := sandbox.Seed(ctx, db, fixture, logger); err != nil {
		return err
	}

	logger.WithFields(log.Fields{
		"path":     opts.dbPath,
		"seed":     opts.seed,
		"duration": time.Since(startTime).String(),
	}).Info("Sandbox criado")

	fmt.Printf("Sandbox ready: DB_DRIVER=sqlite DB_NAME=%s\n", opts.dbPath)

	return nil
}
