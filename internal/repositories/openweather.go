package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const (
	OpenWeatherGeoBaseURL  = "https://api.openweathermap.org/geo/1.0"
	OpenWeatherDataBaseURL = "https://api.openweathermap.org/data/2.5"

	userAgent                 = "weather-dashboard/1.0"
	defaultBreakerMaxFailures = 5
)

// errCallerDone marks failures caused by the caller's context ending while a
// request was in flight.
var errCallerDone = errors.New("caller context done")

type OpenWeatherOptions struct {
	APIKey      string
	GeoBaseURL  string
	DataBaseURL string
	Timeout     time.Duration
	// RateLimit is requests per second; 0 disables limiting.
	RateLimit          float64
	RateBurst          int
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// OpenWeatherClient issues single-attempt GET requests against the OpenWeather
// APIs. Calls share one rate limiter and one circuit breaker.
type OpenWeatherClient struct {
	apiKey      string
	geoBaseURL  string
	dataBaseURL string
	rest        *resty.Client
	breaker     *gobreaker.CircuitBreaker
	limiter     *rate.Limiter
	l           *logger.Logger
}

// StatusError is a non-2xx reply from OpenWeather.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error (status %d): %s", e.StatusCode, e.Message)
}

func NewOpenWeatherClient(opts OpenWeatherOptions, httpClient *http.Client, l *logger.Logger) (*OpenWeatherClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if opts.GeoBaseURL == "" {
		opts.GeoBaseURL = OpenWeatherGeoBaseURL
	}
	if opts.DataBaseURL == "" {
		opts.DataBaseURL = OpenWeatherDataBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	rest := resty.NewWithClient(httpClient).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetLogger(restyLogger{l: l, apiKey: opts.APIKey})
	if opts.Timeout > 0 {
		rest.SetTimeout(opts.Timeout)
	}

	rest.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		l.Debug("received openweather API response", map[string]any{
			"url":        redactAPIKey(resp.Request.URL, opts.APIKey),
			"status":     resp.StatusCode(),
			"statusText": resp.Status(),
			"duration":   resp.Time().String(),
		})
		return nil
	})

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = 1
	}

	maxFailures := opts.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = defaultBreakerMaxFailures
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Timeout:     opts.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A caller giving up says nothing about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerDone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warning("circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return &OpenWeatherClient{
		apiKey:      opts.APIKey,
		geoBaseURL:  strings.TrimRight(opts.GeoBaseURL, "/"),
		dataBaseURL: strings.TrimRight(opts.DataBaseURL, "/"),
		rest:        rest,
		breaker:     breaker,
		limiter:     rate.NewLimiter(limit, burst),
		l:           l,
	}, nil
}

// get performs one request and returns the body of a 2xx reply. Every failure
// wraps models.ErrUpstream.
func (c *OpenWeatherClient) get(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait canceled: %w", models.ErrUpstream, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.rest.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("appid", c.apiKey).
			Get(endpoint)
		if err != nil {
			err = c.redactURLError(err)
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: failed to do request: %w", errCallerDone, err)
			}
			return nil, fmt.Errorf("failed to do request: %w", err)
		}

		if !resp.IsSuccess() {
			return nil, newStatusError(resp)
		}

		return resp.Body(), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: openweather temporarily unavailable: %w", models.ErrUpstream, err)
		}
		return nil, fmt.Errorf("%w: %w", models.ErrUpstream, err)
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", models.ErrUpstream)
	}
	return body, nil
}

// redactURLError strips the API key from the URL a transport error carries.
func (c *OpenWeatherClient) redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		if msg := redactAPIKey(err.Error(), c.apiKey); msg != err.Error() {
			return errors.New(msg)
		}
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: redactAPIKey(urlErr.URL, c.apiKey), Err: urlErr.Err}
}

func redactAPIKey(s, apiKey string) string {
	if apiKey == "" {
		return s
	}
	s = strings.ReplaceAll(s, apiKey, "REDACTED")
	if escaped := url.QueryEscape(apiKey); escaped != apiKey {
		s = strings.ReplaceAll(s, escaped, "REDACTED")
	}
	return s
}

// restyLogger routes resty's own messages through the app logger.
type restyLogger struct {
	l      *logger.Logger
	apiKey string
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error(errors.New(redactAPIKey(fmt.Sprintf(format, v...), r.apiKey)), map[string]any{"component": "resty"})
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warning(redactAPIKey(fmt.Sprintf(format, v...), r.apiKey), map[string]any{"component": "resty"})
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug(redactAPIKey(fmt.Sprintf(format, v...), r.apiKey), map[string]any{"component": "resty"})
}

func newStatusError(resp *resty.Response) *StatusError {
	statusErr := &StatusError{StatusCode: resp.StatusCode()}

	var apiError struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &apiError); err == nil {
		statusErr.Message = apiError.Message
	}
	if statusErr.Message == "" {
		statusErr.Message = resp.Status()
	}

	return statusErr
}
