package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/fileflow-dev/fileflow/internal/config"
	"github.com/fileflow-dev/fileflow/internal/logger"
	"github.com/fileflow-dev/fileflow/internal/router"
	"github.com/fileflow-dev/fileflow/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(context.Background(), cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		return
	}

	r := router.New(deps)

	addr := fmt.Sprintf(":%d", cfg.Public.Port)
	logger.Log.Info("server started", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
	}
}
