package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/panjf2000/gnet/v2/pkg/logging"

	"github.com/logship/logship"
)

// GnetAdapter wraps a logship.Shipper to implement the gnet logging.Logger
// interface, so a gnet server's internal logs ship alongside application
// events.
type GnetAdapter struct {
	shipper      *logship.Shipper
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(shipper *logship.Shipper, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		shipper: shipper,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.shipper.Debug(fmt.Sprintf(format, args...), map[string]any{"source": "gnet"})
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.shipper.Info(fmt.Sprintf(format, args...), map[string]any{"source": "gnet"})
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.shipper.Warn(fmt.Sprintf(format, args...), map[string]any{"source": "gnet"})
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.shipper.Error(fmt.Sprintf(format, args...), map[string]any{"source": "gnet"})
}

// Fatalf logs at error level and triggers fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.shipper.Error(msg, map[string]any{"source": "gnet", "fatal": true})

	// Ensure the record is shipped before exit
	_ = a.shipper.Flush(100 * time.Millisecond)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
