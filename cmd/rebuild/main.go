/*
main.go - One-shot ledger rebuild CLI

PURPOSE:
  Rebuilds the labor ledger for a date window from the command line, without
  running the HTTP server. Useful for cron jobs and backfills after bulk
  schedule imports.

USAGE:
  rebuild -db=./labor.db -start=2025-06-02 -end=2025-06-08

OUTPUT:
  The rebuild result as JSON on stdout:
  {"rowsInserted":42,"missingRates":[]}

EXIT CODES:
  0  rebuild succeeded
  1  bad arguments or rebuild failed

SEE ALSO:
  - labor/driver.go: Rebuild orchestration
  - cmd/server/main.go: HTTP server entry point
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Killswit3h/my-calendar-sub002/config"
	"github.com/Killswit3h/my-calendar-sub002/labor"
	"github.com/Killswit3h/my-calendar-sub002/store/sqlite"
)

func main() {
	var (
		dbPath = flag.String("db", "", "SQLite database path (overrides config)")
		start  = flag.String("start", "", "window start date, YYYY-MM-DD")
		end    = flag.String("end", "", "window end date, YYYY-MM-DD")
	)
	flag.Parse()

	if *start == "" || *end == "" {
		fmt.Fprintln(os.Stderr, "usage: rebuild -start=YYYY-MM-DD -end=YYYY-MM-DD [-db=path]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	engineCfg, err := cfg.Engine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid engine configuration: %v\n", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database %q: %v\n", cfg.DBPath, err)
		os.Exit(1)
	}
	defer store.Close()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	driver, err := labor.NewDriver(engineCfg, store.Stores(), labor.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build aggregation driver: %v\n", err)
		os.Exit(1)
	}

	result, err := driver.Rebuild(context.Background(), *start, *end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}
