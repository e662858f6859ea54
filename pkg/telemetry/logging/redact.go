package logging

import (
	"context"
	"log/slog"
)

// RedactedValue replaces the value of any subject-identifying attribute.
const RedactedValue = "[REDACTED]"

// subjectKeys are the attribute keys masked by the redacting handler.
// They cover the youth's identity and guardian contact details; case IDs
// and derived facts (age, risk level) pass through untouched.
var subjectKeys = map[string]struct{}{
	"subject_name":   {},
	"subject":        {},
	"date_of_birth":  {},
	"dob":            {},
	"guardian_name":  {},
	"guardian_phone": {},
}

// RedactingHandler wraps a slog.Handler and masks subject-identifying
// attribute values before they are emitted.
type RedactingHandler struct {
	inner slog.Handler
}

// NewRedactingHandler wraps inner with subject redaction.
func NewRedactingHandler(inner slog.Handler) *RedactingHandler {
	return &RedactingHandler{inner: inner}
}

// Enabled reports whether the wrapped handler handles records at the
// given level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts subject attributes and forwards the record.
func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

// WithAttrs returns a handler whose wrapped handler carries the redacted
// attributes.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(redacted)}
}

// WithGroup returns a handler with the given group opened.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		redacted := make([]slog.Attr, len(group))
		for i, ga := range group {
			redacted[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	if _, sensitive := subjectKeys[a.Key]; sensitive {
		return slog.String(a.Key, RedactedValue)
	}
	return a
}
