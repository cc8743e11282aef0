package glrender

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard is used until SetLogger is called. Enabled returns false so
// renderers skip building attributes for every frame log.
var discard = slog.New(discardHandler{})

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger sets the logger of renderers created without a [Config.Logger].
// Renderers keep the logger they were created with. Nil silences logging.
func SetLogger(l *slog.Logger) { pkgLogger.Store(l) }

// Logger returns the logger set by [SetLogger] or a silent logger.
func Logger() *slog.Logger { return loggerOr(nil) }

// loggerOr returns l if not nil, else the package logger.
func loggerOr(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	} else if l = pkgLogger.Load(); l != nil {
		return l
	}
	return discard
}
