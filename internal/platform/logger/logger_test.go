package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production", "PROD", ""} {
		t.Run(mode, func(t *testing.T) {
			log, err := New(mode)
			require.NoError(t, err)
			require.NotNil(t, log.SugaredLogger)
		})
	}
}

func TestLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := (&Logger{SugaredLogger: zap.New(core).Sugar()}).With("service", "FoodService")

	log.Info("swap lookup", "food_item", "chorizo", "cluster", 2)
	log.Warn("failed to cache swap result", "key", "swap:chorizo")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "swap lookup", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "FoodService", fields["service"])
	assert.Equal(t, "chorizo", fields["food_item"])
	assert.EqualValues(t, 2, fields["cluster"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Info("discarded", "key", "value")
		log.Sync()
	})
}
