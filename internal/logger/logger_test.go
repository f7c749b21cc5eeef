package logger

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tearoomcms/internal/config"
)

func TestLevelWriter(t *testing.T) {
	var info, errs bytes.Buffer
	lw := &LevelWriter{InfoWriter: &info, ErrorWriter: &errs}

	_, err := lw.WriteLevel(zerolog.InfoLevel, []byte("info"))
	require.NoError(t, err)
	_, err = lw.WriteLevel(zerolog.DebugLevel, []byte("debug"))
	require.NoError(t, err)
	_, err = lw.WriteLevel(zerolog.WarnLevel, []byte("warn"))
	require.NoError(t, err)
	_, err = lw.WriteLevel(zerolog.ErrorLevel, []byte("error"))
	require.NoError(t, err)

	n, err := lw.WriteLevel(zerolog.Disabled, []byte("nothing"))
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, "infodebug", info.String())
	assert.Equal(t, "warnerror", errs.String())
}

func TestInit(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Run("invalid level", func(t *testing.T) {
		err := Init(config.LogConfig{Level: "loud"}, "cms", nil)
		assert.Error(t, err)
	})

	t.Run("empty app name", func(t *testing.T) {
		err := Init(config.LogConfig{Level: "info"}, "", nil)
		assert.ErrorIs(t, err, ErrAppNameIsEmpty)
	})

	t.Run("with file and hook", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		err := Init(config.LogConfig{Level: "debug", FilePath: t.TempDir()}, "cms", reg)
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})
}

func TestPrometheusHook(t *testing.T) {
	reg := prometheus.NewRegistry()
	hook, err := NewPrometheusHook(reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	l := zerolog.New(&buf).Hook(hook)
	l.Info().Msg("one")
	l.Info().Msg("two")
	l.Error().Msg("three")

	assert.Equal(t, float64(2), testutil.ToFloat64(hook.counter.WithLabelValues("info")))
	assert.Equal(t, float64(1), testutil.ToFloat64(hook.counter.WithLabelValues("error")))

	_, err = NewPrometheusHook(reg)
	assert.Error(t, err, "registering twice on the same registry fails")
}
