package logging

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the embedding
	// provider name.
	FieldProvider = "embedding_provider"
	// FieldDocument is the structured log field key for the document a log
	// line refers to, usually a file name or URL.
	FieldDocument = "document"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields,
// trimming whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, returning a no-op
// logger when nil is passed so call sites never have to guard.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// WithProvider attaches the embedding provider name to the logger. Empty
// names are ignored so degraded runs without a provider stay compact.
func WithProvider(logger *zap.Logger, provider string) *zap.Logger {
	fields := StringFields(StringField{Key: FieldProvider, Value: provider})
	return WithFields(logger, fields...)
}

// WithDocument attaches the document identifier to the logger.
func WithDocument(logger *zap.Logger, document string) *zap.Logger {
	fields := StringFields(StringField{Key: FieldDocument, Value: document})
	return WithFields(logger, fields...)
}
