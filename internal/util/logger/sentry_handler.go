package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler turns error records into Sentry events. It is a no-op
// until sentry.Init has been called with a DSN.
type SentryHandler struct {
	attrs  []slog.Attr
	groups []string
}

func NewSentryHandler() *SentryHandler {
	return &SentryHandler{}
}

func (h *SentryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError && sentry.CurrentHub().Client() != nil
}

func (h *SentryHandler) Handle(_ context.Context, record slog.Record) error {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	event.Message = record.Message
	event.Timestamp = record.Time

	extra := make(map[string]any, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		extra[h.key(attr.Key)] = attr.Value.String()
	}
	record.Attrs(func(attr slog.Attr) bool {
		extra[h.key(attr.Key)] = attr.Value.String()
		return true
	})
	event.Extra = extra

	sentry.CaptureEvent(event)
	return nil
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &SentryHandler{attrs: merged, groups: h.groups}
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string{}, h.groups...), name)
	return &SentryHandler{attrs: h.attrs, groups: groups}
}

func (h *SentryHandler) key(name string) string {
	for i := len(h.groups) - 1; i >= 0; i-- {
		name = h.groups[i] + "." + name
	}

	return name
}
