package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	App         AppConfig         `yaml:"app" envconfig:"APP"`
	Server      ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Log         LogConfig         `yaml:"log" envconfig:"LOG"`
	OpenWeather OpenWeatherConfig `yaml:"openweather" envconfig:"OPENWEATHER"`
	Weather     WeatherConfig     `yaml:"weather" envconfig:"WEATHER"`
	History     HistoryConfig     `yaml:"history" envconfig:"HISTORY"`
	Client      ClientConfig      `yaml:"client" envconfig:"CLIENT"`
	Sentry      SentryConfig      `yaml:"sentry" envconfig:"SENTRY"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
	Env     string `yaml:"env" envconfig:"ENV"`
}

type ServerConfig struct {
	Port            string        `yaml:"port" envconfig:"PORT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
}

type OpenWeatherConfig struct {
	APIKey      string        `yaml:"api_key,omitempty" envconfig:"API_KEY"`
	GeoBaseURL  string        `yaml:"geo_base_url" envconfig:"GEO_BASE_URL"`
	DataBaseURL string        `yaml:"data_base_url" envconfig:"DATA_BASE_URL"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	// RateLimit is requests per second across both endpoints; 0 disables limiting.
	RateLimit          float64       `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	RateBurst          int           `yaml:"rate_burst" envconfig:"RATE_BURST"`
	BreakerMaxFailures uint32        `yaml:"breaker_max_failures" envconfig:"BREAKER_MAX_FAILURES"`
	BreakerOpenTimeout time.Duration `yaml:"breaker_open_timeout" envconfig:"BREAKER_OPEN_TIMEOUT"`
}

type WeatherConfig struct {
	// Timezone names the zone used for forecast days and the noon window ("Local", "UTC", IANA name).
	Timezone      string        `yaml:"timezone" envconfig:"TIMEZONE"`
	LookupTimeout time.Duration `yaml:"lookup_timeout" envconfig:"LOOKUP_TIMEOUT"`
}

type HistoryConfig struct {
	File string `yaml:"file" envconfig:"FILE"`
}

type ClientConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn,omitempty" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() Config {
	return Config{
		App: AppConfig{
			Name:    "weather-dashboard",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:            "3005",
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		OpenWeather: OpenWeatherConfig{
			GeoBaseURL:         "https://api.openweathermap.org/geo/1.0",
			DataBaseURL:        "https://api.openweathermap.org/data/2.5",
			Timeout:            10 * time.Second,
			RateLimit:          1,
			RateBurst:          10,
			BreakerMaxFailures: 5,
			BreakerOpenTimeout: 30 * time.Second,
		},
		Weather: WeatherConfig{
			Timezone:      "Local",
			LookupTimeout: 20 * time.Second,
		},
		History: HistoryConfig{
			File: "data/searchHistory.json",
		},
		Client: ClientConfig{
			Dir: "client/dist",
		},
	}
}

// NewConfig loads the default config file and panics on failure.
func NewConfig() *Config {
	cnf, err := Load(DefaultPath)
	if err != nil {
		panic(err)
	}
	return cnf
}

// Load layers defaults, the YAML file at path (optional), a .env file in the
// working directory (optional) and the process environment, in that order.
func Load(path string) (*Config, error) {
	cnf := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := envconfig.Process("", &cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	// Names used by earlier deployments of the dashboard.
	if cnf.OpenWeather.APIKey == "" {
		cnf.OpenWeather.APIKey = os.Getenv("WEATHER_API_KEY")
	}
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SERVER_PORT") == "" {
		cnf.Server.Port = port
	}

	return &cnf, nil
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.App.Name) == "" {
		problems = append(problems, "app name is required")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		problems = append(problems, "server port is required")
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.OpenWeather.Timeout <= 0 {
		problems = append(problems, "openweather timeout must be positive")
	}
	if c.Weather.LookupTimeout <= 0 {
		problems = append(problems, "lookup timeout must be positive")
	}
	if c.OpenWeather.RateLimit < 0 {
		problems = append(problems, "openweather rate limit must not be negative")
	}
	if strings.TrimSpace(c.History.File) == "" {
		problems = append(problems, "history file is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateProvider checks the settings needed to call OpenWeather.
func (c *Config) ValidateProvider() error {
	if strings.TrimSpace(c.OpenWeather.APIKey) == "" {
		return errors.New("invalid config: openweather api key is required (OPENWEATHER_API_KEY)")
	}
	if c.OpenWeather.GeoBaseURL == "" || c.OpenWeather.DataBaseURL == "" {
		return errors.New("invalid config: openweather base urls are required")
	}
	return nil
}

// Location resolves Weather.Timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Weather.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Weather.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Weather.Timezone, err)
	}
	return loc, nil
}
