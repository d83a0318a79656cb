package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dd0wney/cluso-chaintrace/pkg/api"
	"github.com/dd0wney/cluso-chaintrace/pkg/catalog"
	"github.com/dd0wney/cluso-chaintrace/pkg/logging"
	"github.com/dd0wney/cluso-chaintrace/pkg/metrics"
	"github.com/dd0wney/cluso-chaintrace/pkg/server"
	"github.com/dd0wney/cluso-chaintrace/pkg/validation"
)

func main() {
	catalogPath := flag.String("catalog", "catalog.yaml", "Catalog manifest file (.yaml or .yaml.snappy)")
	port := flag.Int("port", 8080, "Server port")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if err := validateFlags(*catalogPath, *port, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewDefaultLogger()
	logger.SetLevel(logging.ParseLevel(*logLevel))

	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		logger.Error("failed to load catalog", logging.Err(err))
		os.Exit(1)
	}
	logCatalogStats(logger, cat)

	registry := metrics.DefaultRegistry()
	apiServer := api.NewServer(cat, logger, registry)

	gs := server.NewGracefulServer(fmt.Sprintf(":%d", *port), apiServer.Routes(), logger)
	gs.SetReloadFunc(func() error {
		reloaded, err := catalog.LoadFile(*catalogPath)
		if err != nil {
			registry.RecordCatalogReload(false)
			return fmt.Errorf("catalog reload: %w", err)
		}
		apiServer.SwapCatalog(reloaded)
		registry.RecordCatalogReload(true)
		return nil
	})

	if err := gs.Start(); err != nil {
		logger.Error("server failed", logging.Err(err))
		os.Exit(1)
	}
}

func validateFlags(catalogPath string, port int, logLevel string) error {
	return validation.NewConfigValidator("chaintrace-server").
		Required("catalog", catalogPath).
		RangeInt("port", port, 1, 65535).
		OneOf("log-level", logLevel, []string{"debug", "info", "warn", "error"}).
		Validate()
}

func logCatalogStats(logger logging.Logger, cat *catalog.Catalog) {
	logger.Info("catalog loaded",
		logging.Int("nodes", cat.Len()),
		logging.Int("edges", cat.EdgeCount()))
	for _, edge := range cat.DanglingEdges() {
		logger.Warn("dangling edge target", logging.String("edge", edge))
	}
}
