// ssotica-api looks up and settles customer installments on the SSOtica
// portal by driving a headless browser.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/owornex/ssotica-api/pkg/api"
	"github.com/owornex/ssotica-api/pkg/browser"
	"github.com/owornex/ssotica-api/pkg/config"
	"github.com/owornex/ssotica-api/pkg/portal"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A .env file is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("incomplete configuration", zap.Error(err))
	}

	browsers := browser.NewManager(log)
	if err := browsers.Start(); err != nil {
		// Keep serving: requests answer 503 until the browser is
		// available on a restart.
		log.Error("browser startup failed, requests will be unavailable", zap.Error(err))
	}

	client := portal.NewClient(portal.Options{
		BaseURL:         cfg.BaseURL,
		ReceivablesPath: cfg.ReceivablesPath,
		SearchTypeValue: cfg.SearchTypeValue,
		ResultsTimeout:  cfg.ResultsTimeout,
	}, log)
	service := portal.NewService(browsers, client, cfg, log)
	handler := api.NewHandler(service, log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(handler),
	}

	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := browsers.Shutdown(); err != nil {
		log.Error("browser shutdown failed", zap.Error(err))
	}
}
