package observe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"weather-dashboard/config"
	"weather-dashboard/pkg/logger"
)

func newTestHook(zone string) (*SentryHook, *[]*sentry.Event) {
	var captured []*sentry.Event
	h := &SentryHook{
		appZone: zone,
		appName: "weather-dashboard",
		capture: func(e *sentry.Event) *sentry.EventID {
			captured = append(captured, e)
			return nil
		},
	}
	return h, &captured
}

func TestSentryHook_CapturesErrorEntries(t *testing.T) {
	hook, captured := newTestHook("prod")
	l := logger.New(logger.Options{AppName: "weather-dashboard", AppEnv: "prod"}, &bytes.Buffer{}, hook)

	l.Info("lookup started")
	l.Error(errors.New("geocode: upstream error"), map[string]any{"city": "Paris"})

	require.Len(t, *captured, 1)
	event := (*captured)[0]
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "geocode: upstream error", event.Message)
	assert.Equal(t, "prod", event.Environment)
	assert.Equal(t, "geocode: upstream error", event.Extra["Error"])
	require.Len(t, event.Exception, 1)
	assert.False(t, event.Timestamp.IsZero())
}

func TestSentryHook_ReportedZones(t *testing.T) {
	entry := []byte(`{"level":"error","msg":"boom","error":"boom"}`)

	for _, zone := range []string{"prod", "production", "dev", "development"} {
		t.Run(zone, func(t *testing.T) {
			hook, captured := newTestHook(zone)

			_, err := hook.Write(entry)
			require.NoError(t, err)
			require.Len(t, *captured, 1)
			assert.Equal(t, zone, (*captured)[0].Environment)
		})
	}
}

func TestSentryHook_CapturesInDefaultEnv(t *testing.T) {
	env := config.Default().App.Env
	hook, captured := newTestHook(env)
	l := logger.New(logger.Options{AppName: "weather-dashboard", AppEnv: env}, &bytes.Buffer{}, hook)

	l.Error(errors.New("forecast: upstream error"))

	assert.Len(t, *captured, 1)
}

func TestSentryHook_IgnoresOtherZones(t *testing.T) {
	hook, captured := newTestHook("local")

	n, err := hook.Write([]byte(`{"level":"error","msg":"boom","error":"boom"}`))

	require.NoError(t, err)
	assert.Equal(t, len(`{"level":"error","msg":"boom","error":"boom"}`), n)
	assert.Empty(t, *captured)
}

func TestSentryHook_SurvivesGarbage(t *testing.T) {
	hook, captured := newTestHook("dev")
	var buf bytes.Buffer
	hook.SetLogger(logger.New(logger.Options{AppName: "weather-dashboard"}, &buf))

	payload := []byte("not json")
	n, err := hook.Write(payload)

	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Empty(t, *captured)
	assert.Contains(t, buf.String(), "[SentryHook] json.Unmarshal data")
}

func TestSentryHook_MapLevel(t *testing.T) {
	hook, _ := newTestHook("prod")

	assert.Equal(t, sentry.LevelWarning, hook.mapLevel(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelFatal, hook.mapLevel(zapcore.FatalLevel))
}
