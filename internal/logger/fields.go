package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldGrantID is the structured log field key for a grant identifier.
	FieldGrantID = "grant_id"
	// FieldOrganization is the structured log field key for the organization offering a grant.
	FieldOrganization = "organization"
	// FieldListStep is the structured log field key for a list derivation step name.
	FieldListStep = "name"
	// FieldPath is the structured log field key for files read or written.
	FieldPath = "path"
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

// WithFields attaches fields to logger, falling back to a no-op logger when
// logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// GrantFields describes a grant. Empty values are dropped.
func GrantFields(id, organization string) []zap.Field {
	return StringFields(
		StringField{Key: FieldGrantID, Value: id},
		StringField{Key: FieldOrganization, Value: organization},
	)
}

// WithGrant attaches the grant fields to logger.
func WithGrant(logger *zap.Logger, id, organization string) *zap.Logger {
	return WithFields(logger, GrantFields(id, organization)...)
}
