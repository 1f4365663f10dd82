package http

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weather-dashboard/docs"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const defaultLookupTimeout = 20 * time.Second

// WeatherLookup is the weather service as seen by the routes.
type WeatherLookup interface {
	GetWeatherForCity(ctx context.Context, cityName string) (models.WeatherReport, error)
}

// CityHistory is the search history service as seen by the routes.
type CityHistory interface {
	Cities(ctx context.Context) ([]models.CityHistoryEntry, error)
	AddCity(ctx context.Context, name string) (models.CityHistoryEntry, error)
	RemoveCity(ctx context.Context, id string) error
}

type Options struct {
	LookupTimeout time.Duration
	// ClientDir holds the built browser client. Empty disables static serving.
	ClientDir string
}

type routes struct {
	weather       WeatherLookup
	history       CityHistory
	lookupTimeout time.Duration
	l             *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService WeatherLookup,
	historyService CityHistory,
	opts Options,
	l *logger.Logger,
) {
	r := &routes{
		weather:       weatherService,
		history:       historyService,
		lookupTimeout: opts.LookupTimeout,
		l:             l,
	}
	if r.lookupTimeout <= 0 {
		r.lookupTimeout = defaultLookupTimeout
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: true,
	}))

	// API routes
	app.Post("/api/weather", r.handleWeatherCall)
	app.Get("/api/weather/history", r.handleHistoryList)
	app.Delete("/api/weather/history/:id", r.handleHistoryDelete)

	app.Use("/api", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Browser client
	if opts.ClientDir != "" {
		app.Static("/", opts.ClientDir)
	}
	app.Get("*", r.clientFallback(opts.ClientDir))
}

// clientFallback serves index.html for client-side routes.
func (r *routes) clientFallback(dir string) fiber.Handler {
	index := filepath.Join(dir, "index.html")

	return func(c *fiber.Ctx) error {
		if dir == "" || strings.HasPrefix(c.Path(), "/swagger") {
			return c.Status(fiber.StatusNotFound).SendString("Not found")
		}
		if _, err := os.Stat(index); err != nil {
			return c.Status(fiber.StatusNotFound).SendString("Client build not found")
		}
		return c.SendFile(index)
	}
}
