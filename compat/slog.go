package compat

import (
	"context"
	"log/slog"

	"github.com/logship/logship"
)

// SlogHandler adapts a logship.Shipper to the log/slog Handler interface so
// an application's existing slog calls ship to the remote endpoint.
type SlogHandler struct {
	shipper *logship.Shipper
	attrs   []slog.Attr
	groups  []string
}

// NewSlogHandler creates a slog handler backed by the given shipper.
func NewSlogHandler(shipper *logship.Shipper) *SlogHandler {
	return &SlogHandler{shipper: shipper}
}

// Enabled defers filtering to the shipper's configured level.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return mapSlogLevel(level) >= h.shipper.GetConfig().Level
}

// Handle converts the record's attributes to metadata and ships it.
// Keys in h.attrs were resolved against the groups open at WithAttrs time,
// so only the record's own attributes get the current prefix here.
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	metadata := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		metadata[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		metadata[h.groupKey(a.Key)] = a.Value.Any()
		return true
	})
	if len(metadata) == 0 {
		metadata = nil
	}

	h.shipper.Log(mapSlogLevel(r.Level), r.Message, metadata)
	return nil
}

// WithAttrs returns a handler carrying the additional attributes, their keys
// resolved against the currently open groups.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, slog.Attr{Key: h.groupKey(a.Key), Value: a.Value})
	}
	return &h2
}

// WithGroup returns a handler that prefixes attribute keys with the group name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

// groupKey applies the accumulated group prefix to an attribute key.
func (h *SlogHandler) groupKey(key string) string {
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	return key
}

// mapSlogLevel converts slog levels to shipper levels.
func mapSlogLevel(level slog.Level) int64 {
	switch {
	case level < slog.LevelInfo:
		return logship.LevelDebug
	case level < slog.LevelWarn:
		return logship.LevelInfo
	case level < slog.LevelError:
		return logship.LevelWarn
	default:
		return logship.LevelError
	}
}
