package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_DefaultsToConsoleInfo(t *testing.T) {
	logger, err := New(false, false)
	require.NoError(t, err)
	defer func() { _ = logger.Sync() }()

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_DebugEnablesDebugLevel(t *testing.T) {
	logger, err := New(true, true)
	require.NoError(t, err)
	defer func() { _ = logger.Sync() }()

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("  short  ", 10))
	assert.Equal(t, "abcde...", Truncate("abcdefghij", 5))
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "", Truncate("anything", -1))

	long := Truncate(strings.Repeat("résumé ", 40), 12)
	assert.Equal(t, 15, len([]rune(long)))
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestStringFields_DropsBlankEntries(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  provider  ", Value: "  openai  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	require.Len(t, fields, 1)
	assert.Equal(t, "provider", fields[0].Key)
	assert.Equal(t, "openai", fields[0].String)

	assert.Empty(t, StringFields())
}

func TestWithFields_AttachesAndGuardsNil(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithFields(logger, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	fallback.Info("must not panic")
}

func TestWithProvider(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithProvider(logger, "openai").Info("resolved")
	WithProvider(logger, "").Info("degraded")

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "openai", entries[0].ContextMap()[FieldProvider])
	assert.NotContains(t, entries[1].ContextMap(), FieldProvider)
}

func TestWithDocument(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithDocument(logger, "resume.txt").Info("scored")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "resume.txt", entries[0].ContextMap()[FieldDocument])
}
