// Command foodex2server serves the FoodEx2 validator over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	foodex2 "github.com/openfoodex/foodex2validator"
	"github.com/openfoodex/foodex2validator/internal/httpapi"
	"github.com/openfoodex/foodex2validator/internal/obslog"
	"github.com/openfoodex/foodex2validator/internal/serverconfig"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a YAML server configuration file")
	flag.Parse()

	cfg := serverconfig.DefaultConfig()
	if *configPath != "" {
		loaded, err := serverconfig.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}

	logger, err := obslog.New(obslog.Config{Development: cfg.Log.Development, Level: cfg.Log.Level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	var engineOpts []foodex2.LoadOption
	var engine *foodex2.Engine
	if cfg.Catalogue.RuleSetsPath != "" {
		engine, err = foodex2.LoadWithRuleSets(cfg.Catalogue.DSN, cfg.Catalogue.RuleSetsPath, engineOpts...)
	} else {
		engine, err = foodex2.Load(cfg.Catalogue.DSN, engineOpts...)
	}
	if err != nil {
		logger.Error("failed to load catalogue", zap.Error(err))
		return 1
	}

	router := httpapi.NewRouter(engine, logger, cfg.Server.BatchConcurrency)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return 1
	}
	return 0
}
