package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/observe"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and serve the browser client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cnf.Sentry.DSN != "" {
		hook := observe.NewSentryHook(a.cnf.App.Env, a.cnf.App.Name, 0, a.cnf.Sentry.Debug, a.cnf.Sentry.DSN)
		a.l = logger.New(logger.Options{
			AppName: a.cnf.App.Name,
			AppEnv:  a.cnf.App.Env,
			Level:   a.cnf.Log.Level,
		}, a.logOut, hook)
		hook.SetLogger(a.l)
		defer hook.Flush()
	}

	weatherService, err := a.weatherService()
	if err != nil {
		return err
	}

	server := httpserver.InitFiberServer(a.cnf.App.Name, a.l)

	v1.NewRouter(
		server,
		weatherService,
		a.historyService(),
		v1.Options{
			LookupTimeout: a.cnf.Weather.LookupTimeout,
			ClientDir:     a.cnf.Client.Dir,
		},
		a.l,
	)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- server.Listen(":" + a.cnf.Server.Port)
	}()

	a.l.Info("application started successfully", map[string]any{
		"port":    a.cnf.Server.Port,
		"env":     a.cnf.App.Env,
		"version": a.cnf.App.Version,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		a.l.Warning("stopping application services")
		signal.Stop(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cnf.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			a.l.Error(err)
		}
	}()

	select {
	case sig := <-sigCh:
		a.l.Info("received shutdown signal", map[string]any{"signal": sig.String()})
	case <-ctx.Done():
		a.l.Info("context cancelled")
	case err := <-listenErr:
		if err != nil {
			a.l.Error(err, map[string]any{"port": a.cnf.Server.Port})
			return err
		}
	}

	return nil
}
