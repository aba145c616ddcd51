package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSessionID is the structured log field key for the interview session identifier.
	FieldSessionID = "session_id"
	// FieldCallID is the structured log field key for the voice provider call identifier.
	FieldCallID = "call_id"
	// FieldAssistantID is the structured log field key for the provider assistant identifier.
	FieldAssistantID = "assistant_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
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

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CallFields returns the fields that identify a session and the provider call
// driving it. Empty values are skipped.
func CallFields(sessionID, callID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSessionID, Value: sessionID},
		StringField{Key: FieldCallID, Value: callID},
	)
}

// WithSession attaches the session identifier to the provided logger.
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	return WithFields(logger, CallFields(sessionID, "")...)
}
