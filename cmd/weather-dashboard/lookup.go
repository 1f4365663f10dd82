package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"weather-dashboard/internal/models"
)

func newLookupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <city>",
		Short: "Print current weather and the daily forecast for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.weatherService()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cnf.Weather.LookupTimeout)
			defer cancel()

			report, err := service.GetWeatherForCity(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			return printReport(cmd.OutOrStdout(), report)
		},
	}
}

func printReport(out io.Writer, report models.WeatherReport) error {
	current := report.CurrentWeather
	fmt.Fprintf(out, "%s (%s)\n", current.City, current.Date)
	fmt.Fprintf(out, "NOW\t%d°F, %s, wind %.1f mph, humidity %d%%\n\n",
		current.TempF, current.IconDescription, current.WindSpeed, current.Humidity)

	if len(report.Forecast) == 0 {
		_, err := fmt.Fprintln(out, "no daily forecast available")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTEMP\tWIND\tHUMIDITY\tCONDITION")
	for _, day := range report.Forecast {
		fmt.Fprintf(w, "%s\t%d°F\t%.1f mph\t%d%%\t%s\n",
			day.Date, day.TempF, day.WindSpeed, day.Humidity, day.IconDescription)
	}
	return w.Flush()
}
