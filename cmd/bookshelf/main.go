/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/suparena/bookshelf"
	"github.com/suparena/bookshelf/catalog"
	"github.com/suparena/bookshelf/config"
	"github.com/suparena/bookshelf/logger"
	"github.com/suparena/bookshelf/storagemodels"
	"go.uber.org/zap"
)

var (
	configFlag  = flag.String("config", "", "Path to a YAML config file")
	envFlag     = flag.String("env", "", "Path to an env file (default .env)")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag || *vFlag {
		fmt.Println(bookshelf.GetVersionInfo())
		os.Exit(0)
	}
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag, *envFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	baseLogger := logger.Must(logger.New(cfg.Log))
	defer func() { _ = baseLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, baseLogger, flag.Args()); err != nil {
		baseLogger.Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	kv, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := bookshelf.NewRegistry(kv, storagemodels.WithLogger(logger.Named(log, "collection")))
	lib, err := catalog.Open(ctx, reg, logger.Named(log, "catalog"))
	if err != nil {
		return err
	}

	return newApp(lib, os.Stdout).dispatch(ctx, args)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, `Usage: bookshelf [flags] <command>

Commands:
  books add '<json>'                 add a book
  books list [-sort key] [-q text] [-genre g] [-status s] [-stock available|low|out]
  books get <id>
  books update <id> '<json>'         merge fields into a book
  books delete <id>
  books clear
  requirements add|list|get|update|delete|clear ...
  stock <id> <add|subtract|set> <n> [reason]
  stats                              dashboard summary

Flags:
`)
	flag.PrintDefaults()
}
