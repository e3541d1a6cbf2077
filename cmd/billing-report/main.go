package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vfg2006/billing-report/internal/cli"
)

func main() {
	// Ctrl+C cancela a query em andamento em vez de matar o processo no meio da saída
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr, cli.DefaultBuilder)

	stop()
	os.Exit(code)
}
