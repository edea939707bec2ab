package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"dbbench/backend"
	"dbbench/backend/jsonfile"
	mongobackend "dbbench/backend/mongo"
	"dbbench/backend/postgres"
	"dbbench/backend/sqlite"
	"dbbench/dataset"
	"dbbench/harness"
	"dbbench/report"
)

// Prepare zerolog
func setupLogging(disableLog bool, level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var zlevel zerolog.Level
	if disableLog {
		zlevel = zerolog.Disabled
	} else if level == "info" {
		zlevel = zerolog.InfoLevel
	} else {
		zlevel = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(zlevel)
}

func main() {
	disableLog := flag.Bool("no-log", false, "Disables the log")
	configFile := flag.String("conf", "", "Benchmark config file (optional, defaults match the standard workload)")
	logLevel := flag.String("level", "debug", "Log level (info|debug)")
	flag.Parse()

	setupLogging(*disableLog, *logLevel)
	cfg := buildConfig(*configFile)

	fmt.Println("Generating Dataset...")
	users, orders := dataset.Generate(cfg.Seed, cfg.Users, cfg.Orders)
	fmt.Printf("Generated %d users and %d orders.\n", len(users), len(orders))

	// Fixed order: client/server relational, embedded relational,
	// document store, file-backed store.
	backends := []backend.Backend{
		postgres.New(cfg.Postgres),
		sqlite.New(cfg.SQLitePath),
		mongobackend.New(cfg.MongoURI, cfg.MongoDatabase),
		jsonfile.New(afero.NewOsFs(), cfg.JSONPath),
	}

	outcomes := harness.RunAll(backends, users, orders)
	report.Write(os.Stdout, outcomes)

	fmt.Println("\nDone.")
	os.Exit(0)
}
