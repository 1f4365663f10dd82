package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"weather-dashboard/config"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/history"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/logger"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description Current weather and a five day forecast for any city, backed by OpenWeather, with a persisted search history.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3005
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Weather lookup operations
// @tag.name History
// @tag.description Search history operations
func main() {
	if err := newRootCommand(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	cnf        *config.Config
	l          *logger.Logger
	logOut     io.Writer
}

func newRootCommand(logOut io.Writer) *cobra.Command {
	a := &app{logOut: logOut}

	root := &cobra.Command{
		Use:           "weather-dashboard",
		Short:         "Weather lookup service with a persisted search history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.l != nil {
				_ = a.l.Stop()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")

	root.AddCommand(
		newServeCommand(a),
		newLookupCommand(a),
		newHistoryCommand(a),
	)

	return root
}

func (a *app) setup() error {
	cnf, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cnf.Validate(); err != nil {
		return err
	}
	a.cnf = cnf

	a.l = logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
	}, a.logOut)

	return nil
}

func (a *app) weatherService() (*weather.WeatherService, error) {
	if err := a.cnf.ValidateProvider(); err != nil {
		return nil, err
	}

	loc, err := a.cnf.Location()
	if err != nil {
		return nil, err
	}

	geocoder, forecasts, err := repositories.InitWeatherRepositories(a.cnf, nil, a.l)
	if err != nil {
		return nil, err
	}

	return weather.NewWeatherService(geocoder, forecasts, weather.NewReducer(loc, nil), a.l), nil
}

func (a *app) historyService() *history.HistoryService {
	return history.NewHistoryService(repositories.NewFileHistoryRepository(a.cnf.History.File, a.l), a.l)
}
