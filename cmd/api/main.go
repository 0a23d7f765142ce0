//	@title			Folio API
//	@version		1.0
//	@description	Upload gateway and publication registry for the portfolio site.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/folio/service/internal/config"
)

func main() {
	flags := pflag.NewFlagSet("api", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "path to a .env file loaded before the environment")
	port := flags.StringP("port", "p", "", "listen port (overrides PORT)")
	help := flags.BoolP("help", "h", false, "show help")

	if err := flags.Parse(os.Args[1:]); err != nil {
		// ContinueOnError has already printed the error and usage.
		os.Exit(2)
	}
	if *help {
		fmt.Fprintf(os.Stderr, "Usage: api [flags]\n\n%s", flags.FlagUsages())
		return
	}

	cfg := config.Load(*envFile)
	if *port != "" {
		cfg.Port = *port
	}

	logger := newLogger(cfg)
	host := newAssetHost(context.Background(), cfg)

	srv := newServer(cfg, newRouter(cfg, host, logger))

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s, assets=%s)", cfg.Port, cfg.AppEnv, cfg.AssetBackend)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
