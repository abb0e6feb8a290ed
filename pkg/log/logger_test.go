package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := FromZap(zap.New(core))

		l.Debug("merged",
			String("type", "[object Object]"),
			Int("entries", 2),
			Bool("reused", true),
			Strings("keys", []string{"a", "b"}),
			Error(errors.New("boom")),
			Any("extra", 1.5),
		)

		entries := logs.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		require.Equal(t, "[object Object]", fields["type"])
		require.Equal(t, int64(2), fields["entries"])
		require.Equal(t, true, fields["reused"])
		require.Equal(t, "boom", fields["error"])
		require.Equal(t, 1.5, fields["extra"])
	})

	t.Run("Levels", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := FromZap(zap.New(core))
		require.Equal(t, LevelDebug, l.GetLevel())

		l.SetLevel(LevelWarn)
		require.Equal(t, LevelWarn, l.GetLevel())
		require.False(t, l.Enabled(LevelInfo))

		l.Info("dropped")
		l.Warn("kept")
		l.Error("kept too")
		require.Equal(t, 2, logs.Len())
	})

	t.Run("With", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := FromZap(zap.New(core)).With(String("component", "dict"))

		l.Info("hello")
		require.Equal(t, "dict", logs.All()[0].ContextMap()["component"])
	})

	t.Run("Nop", func(t *testing.T) {
		l := Nop()
		require.Equal(t, LevelSilent, l.GetLevel())
		require.False(t, l.Enabled(LevelError))
		l.Error("nothing happens")
	})

	t.Run("New", func(t *testing.T) {
		l := New(LevelInfo)
		require.Equal(t, LevelInfo, l.GetLevel())
		require.Equal(t, "info", l.GetLevel().String())
	})
}
