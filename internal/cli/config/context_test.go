package config

import (
	"context"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/leapedit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		l := GetLogger(context.Background())
		require.NotNil(t, l)
		assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("stored", func(t *testing.T) {
		want := slog.New(slog.NewTextHandler(&discard{}, nil))
		ctx := context.WithValue(context.Background(), LoggerKey(), want)
		assert.Same(t, want, GetLogger(ctx))
	})
}

func TestFlagsRoundTrip(t *testing.T) {
	_, ok := GetFlags(context.Background())
	assert.False(t, ok)

	f, err := config.New(config.Values{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	got, ok := GetFlags(WithFlags(context.Background(), f))
	require.True(t, ok)
	assert.Equal(t, f, got)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
