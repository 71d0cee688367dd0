// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mtreilly/arc-bookshelf/internal/catalog"
	"github.com/mtreilly/arc-bookshelf/internal/cmd"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-bookshelf: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closer := logging.Setup(cfg.Log)

	opts := []catalog.Option{
		catalog.WithLimits(cfg.CatalogLimits()),
		catalog.WithLogger(logger),
		catalog.WithCompression(cfg.Compress),
	}

	// Storage backend selection via the "storage" config key.
	// "file" (default) persists to catalog_path; "memory" keeps nothing
	// between runs.
	var store catalog.CatalogStore
	switch cfg.Storage {
	case config.StorageFile:
		fileStore, err := catalog.OpenFile(cfg.CatalogPath, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "arc-bookshelf: failed to open catalog: %v\n", err)
			closer.Close()
			os.Exit(1)
		}
		store = fileStore

	case config.StorageMemory:
		store = catalog.NewStore(catalog.NewMemoryBackend(), opts...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cmd.NewRootCmd(cfg, store)
	err = root.ExecuteContext(ctx)
	stop()
	closer.Close()
	if err != nil {
		os.Exit(1)
	}
}
