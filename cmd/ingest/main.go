// Command ingest runs emissions report files through the ingestion pipeline
// outside the HTTP server.
//
//	ingest [-store memory] [-rules rules.yaml] report.csv s3://bucket/key.xlsx ...
//
// Local paths are read from disk; s3:// locators use the configured blob
// backend. With the memory store, stored items are printed as JSON lines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/mrv/internal/blob"
	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
	"github.com/JonMunkholm/mrv/internal/logging"
	"github.com/JonMunkholm/mrv/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	storeBackend := flag.String("store", "", "record store backend: postgres, redis or memory (default from STORE_BACKEND)")
	rulesPath := flag.String("rules", "", "rule table file or s3:// locator (default from INGEST_RULES_PATH)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file-or-s3-locator...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	_ = godotenv.Load()

	cfg, err := config.LoadFrom(func(key string) (string, bool) {
		switch {
		case key == "STORE_BACKEND" && *storeBackend != "":
			return *storeBackend, true
		case key == "INGEST_RULES_PATH" && *rulesPath != "":
			return *rulesPath, true
		}
		return os.LookupEnv(key)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	remote, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		slog.Error("failed to open blob source", "error", err)
		return 1
	}

	source, err := core.RulesSource(cfg.Ingest.RulesPath, remote)
	if err != nil {
		slog.Error("invalid rule table setting", "error", err)
		return 1
	}
	rules, err := source.LoadColumnTypeMapping(ctx)
	if err != nil {
		slog.Error("failed to load rule table", "error", err)
		return 1
	}

	records, closeStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("failed to open record store", "error", err)
		return 1
	}
	defer closeStore()

	svcCfg := core.ServiceConfig{
		Delimiter:     cfg.Ingest.DelimiterRune(),
		MaxFileSize:   cfg.Blob.MaxSize,
		MaxConcurrent: 1,
		MaxWait:       cfg.Ingest.MaxWaitTime,
		Timeout:       cfg.Ingest.Timeout,
	}

	failed := 0
	for _, arg := range flag.Args() {
		blobs, loc, err := resolve(arg, remote, cfg.Blob.MaxSize)
		if err != nil {
			slog.Error("invalid argument", "arg", arg, "error", err)
			failed++
			continue
		}

		service, err := core.NewService(blobs, records, rules, svcCfg)
		if err != nil {
			slog.Error("failed to create service", "error", err)
			return 1
		}

		res, err := service.Ingest(ctx, loc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", arg, core.FormatUserError(err))
			failed++
			continue
		}
		fmt.Printf("%s: %d rows, %d stored, %d rejected, %d not persisted\n",
			arg, res.Rows, res.Stored, res.Rejected, res.NotPersisted)
	}

	if mem, ok := records.(*store.Memory); ok {
		items, err := mem.Items()
		if err != nil {
			slog.Error("failed to read stored items", "error", err)
			return 1
		}
		enc := json.NewEncoder(os.Stdout)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				slog.Error("failed to print item", "error", err)
				return 1
			}
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// resolve maps an argument to the blob source and locator it names. A local
// file is served from its own directory.
func resolve(arg string, remote core.BlobSource, maxSize int64) (core.BlobSource, core.Locator, error) {
	if strings.HasPrefix(arg, "s3://") {
		loc, err := core.ParseLocator(arg)
		return remote, loc, err
	}
	path, err := filepath.Abs(arg)
	if err != nil {
		return nil, core.Locator{}, err
	}
	local := blob.NewFile(filepath.Dir(path), maxSize)
	return local, core.Locator{Bucket: ".", Key: filepath.Base(path)}, nil
}
