package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/onix-analytics/profiler-engine/pkg/config"
	"github.com/onix-analytics/profiler-engine/pkg/dataset"
	"github.com/onix-analytics/profiler-engine/pkg/datasource"
	"github.com/onix-analytics/profiler-engine/pkg/learning"
	"github.com/onix-analytics/profiler-engine/pkg/profiler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("csv", "", "profile a CSV file")
	pgTable := flag.String("table", "", "profile a Postgres table (uses database config)")
	flag.Parse()

	if (*csvPath == "") == (*pgTable == "") {
		log.Fatal("exactly one of -csv or -table is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	table, err := loadTable(ctx, cfg, logger, *csvPath, *pgTable)
	if err != nil {
		logger.Fatal("Failed to load data", zap.Error(err))
	}

	p := profiler.NewSmartDataProfiler(learning.NewMemoryHistory(), logger)
	result := p.Execute(ctx, map[string]any{profiler.DatasetKey: table}, cfg.Profiler.ProfilerOptions())

	out, err := yaml.Marshal(result)
	if err != nil {
		logger.Fatal("Failed to render report", zap.Error(err))
	}
	fmt.Print(string(out))

	if !result.Success {
		os.Exit(1)
	}
}

func loadTable(ctx context.Context, cfg *config.Config, logger *zap.Logger, csvPath, pgTable string) (*dataset.Table, error) {
	if csvPath != "" {
		return datasource.ReadCSVFile(csvPath)
	}
	pool, err := datasource.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return datasource.NewPostgresSource(pool, logger).LoadTable(ctx, pgTable, cfg.Database.RowLimit)
}

func newLogger(level string) (*zap.Logger, error) {
	logConfig := zap.NewDevelopmentConfig()
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logConfig.Level = parsed
	return logConfig.Build()
}
