package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"reelview/api"
	"reelview/config"
	"reelview/handlers"
	"reelview/internal/logging"
	"reelview/services/catalog"
	"reelview/services/home"
	"reelview/services/search"
	"reelview/utils"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address, overrides host and port from the settings file",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	settings, err := config.NewManager(cmd.String("config")).Load()
	if err != nil {
		return err
	}

	closeLog, err := logging.Setup(settings.Logging)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closeLog()

	if settings.Catalog.APIKey == "" {
		log.Printf("[main] warning: no TMDB API key configured, catalog requests will fail")
	}

	handler, err := newHandler(settings)
	if err != nil {
		return err
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = net.JoinHostPort(settings.Server.Host, strconv.Itoa(settings.Server.Port))
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(settings.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(settings.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[main] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Printf("[main] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newHandler wires the catalog client, services and routes for settings.
func newHandler(settings config.Settings) (http.Handler, error) {
	client := catalog.NewClient(catalog.Options{
		APIKey:        settings.Catalog.APIKey,
		BaseURL:       settings.Catalog.BaseURL,
		ImageBaseURL:  settings.Catalog.ImageBaseURL,
		Language:      settings.Catalog.Language,
		Timeout:       time.Duration(settings.Catalog.TimeoutSeconds) * time.Second,
		RetryAttempts: settings.Catalog.RetryAttempts,
	})
	return buildRouter(settings, client)
}

func buildRouter(settings config.Settings, client *catalog.Client) (http.Handler, error) {
	render, err := handlers.NewRenderer(client.Images)
	if err != nil {
		return nil, err
	}
	registry := search.NewRegistry(
		settings.Search.MaxSessions,
		time.Duration(settings.Search.SessionTTLMinutes)*time.Minute,
	)
	pages := handlers.NewPagesHandler(client, home.NewService(client, rand.IntN), registry, render)

	r := utils.NewRouter(utils.NewOriginPolicy(settings.CORS.AllowedOrigins))
	handlers.Register(r, pages, handlers.NewStaticHandler())
	// The logger sits outside the recoverer so a panic is logged as a 500.
	return api.Wrap(r, api.RequestLogger(), api.Recoverer()), nil
}
