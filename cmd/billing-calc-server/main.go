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

	"github.com/iwvelando/billing-calc/internal/config"
	"github.com/iwvelando/billing-calc/internal/logging"
	"github.com/iwvelando/billing-calc/internal/server"
	"github.com/iwvelando/billing-calc/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	catalogLocation := flag.String("config", "", "path to catalog configuration file (overrides server config)")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	maxRequestSize := flag.String("max-request-size", "", "request body limit override (e.g., 64K, 1M)")
	flag.Parse()

	serverConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(serverConf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *address != "" {
		serverConf.Address = *address
	}
	if *catalogLocation != "" {
		serverConf.CatalogFile = *catalogLocation
	}
	if *maxRequestSize != "" {
		size, err := server.ParseSize(*maxRequestSize)
		if err != nil {
			logger.Fatal("invalid max request size",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		serverConf.SetRequestSizeBytes(size)
	}

	conf, err := config.LoadConfiguration(serverConf.CatalogFile)
	if err != nil {
		logger.Fatal("failed to load catalog",
			zap.String("op", "main"),
			zap.String("config", serverConf.CatalogFile),
			zap.Error(err),
		)
	}
	if err := conf.Validate(); err != nil {
		logger.Fatal("catalog rejected",
			zap.String("op", "main"),
			zap.String("config", serverConf.CatalogFile),
			zap.Error(err),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	timeouts := serverConf.Timeouts()
	httpServer := &http.Server{
		Addr: serverConf.Address,
		Handler: server.NewHandler(logger, conf.Catalog(), server.Options{
			MaxRequestSize: serverConf.RequestSizeBytes(),
			Version:        version,
		}),
		ReadTimeout:  timeouts.Read,
		WriteTimeout: timeouts.Write,
		IdleTimeout:  timeouts.Idle,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("billing-calc server listening",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
			zap.String("catalog", serverConf.CatalogFile),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	case sig := <-quit:
		logger.Info("shutting down server",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	logger.Info("server exited", zap.String("op", "main"))
}
