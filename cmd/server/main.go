package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm/logger"

	"objectcache/internal/auth"
	"objectcache/internal/cache"
	"objectcache/internal/config"
	"objectcache/internal/database"
	"objectcache/internal/handlers"
	"objectcache/internal/logging"
	"objectcache/internal/lookup"
	"objectcache/internal/metrics"
	"objectcache/internal/realtime"
	"objectcache/internal/routes"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	app := &cli.Command{
		Name:  "objectcache-server",
		Usage: "Object cache admin service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Sources: cli.EnvVars("OBJECTCACHE_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides server.addr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level, overrides log.level",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if addr := cmd.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if err := logging.Init(cfg.Log.Level); err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path, logger.Warn)
	if err != nil {
		return err
	}

	manager := cache.NewManager()
	cfg.ApplyPresets(manager)

	met := metrics.New(manager)
	lookups, err := lookup.NewRepository(db, manager, met, cfg.Lookups.Options()...)
	if err != nil {
		return err
	}

	issuer := auth.NewIssuer(cfg.Auth)
	if cfg.Auth.AdminPasswordHash == "" {
		log.Warn("no admin password hash configured; the admin API rejects every request")
	}

	h := handlers.New(manager, lookups, issuer, realtime.NewHub())
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           routes.SetupRoutes(h, issuer, met.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
