package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/agentsx-dev/axai-pg/db"
	"github.com/agentsx-dev/axai-pg/observability"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

func main() {
	var (
		configPath  string
		provision   bool
		teardown    bool
		reset       bool
		ping        bool
		metricsAddr string
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML config file (optional; environment is always read)")
	flag.BoolVar(&provision, "provision", false, "create or update the schema")
	flag.BoolVar(&teardown, "teardown", false, "drop every managed table")
	flag.BoolVar(&reset, "reset", false, "teardown then provision")
	flag.BoolVar(&ping, "ping", false, "check connectivity and exit")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := db.FromEnv()
	if configPath != "" {
		cfg, err = db.LoadConfig(configPath)
		if err != nil {
			log.Fatal("Failed to load config", "error", err)
		}
	}

	pg, err := db.NewPostgresService(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to postgres", "error", err)
	}
	defer pg.Close()

	ctx := context.Background()
	if metricsAddr != "" {
		m := observability.Init(log)
		pg.SetMetrics(m)
		m.StartServer(ctx, log, metricsAddr)
		m.StartPostgresCollector(ctx, log, pg.DB())
	}

	switch {
	case ping:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pg.Ping(pingCtx); err != nil {
			log.Fatal("Ping failed", "error", err)
		}
		log.Info("Database reachable", "host", cfg.Host, "name", cfg.Name)

	case reset:
		builder := db.NewSchemaBuilder(pg.DB(), log)
		if err := builder.Reset(); err != nil {
			log.Fatal("Reset failed", "error", err)
		}
		log.Info("Schema reset complete")

	case teardown:
		builder := db.NewSchemaBuilder(pg.DB(), log)
		if err := builder.Teardown(); err != nil {
			log.Fatal("Teardown failed", "error", err)
		}
		log.Info("Schema teardown complete")

	case provision:
		builder := db.NewSchemaBuilder(pg.DB(), log)
		if err := builder.Build(); err != nil {
			log.Fatal("Provision failed", "error", err)
		}
		log.Info("Schema provision complete")

	default:
		flag.Usage()
		os.Exit(2)
	}
}
