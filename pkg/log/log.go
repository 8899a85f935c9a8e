// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
)

type ctxKey string

const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelDebug

	debug      = "debug"
	warn       = "warn"
	info       = "info"
	errorLevel = "error"

	formatText = "text"
)

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the context handler wrapping when attributes are bound
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context handler wrapping when a group is opened
func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		// copy so sibling contexts never share a backing array
		attrs := make([]slog.Attr, len(v), len(v)+1)
		copy(attrs, v)
		attrs = append(attrs, attr)
		return context.WithValue(parent, slogFields, attrs)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// parseLevel maps LOG_LEVEL values onto slog levels
func parseLevel(logLevel string) slog.Level {
	switch logLevel {
	case debug:
		return slog.LevelDebug
	case warn:
		return slog.LevelWarn
	case info:
		return slog.LevelInfo
	case errorLevel:
		return slog.LevelError
	default:
		return logLevelDefault
	}
}

// NewLogger builds the structured logger used by the binaries. The format is
// JSON unless format is "text" (handy for the command line tool).
func NewLogger(w io.Writer, level slog.Level, addSource bool, format string) *slog.Logger {
	logOptions := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	}

	var h slog.Handler
	if format == formatText {
		h = slog.NewTextHandler(w, logOptions)
	} else {
		h = slog.NewJSONHandler(w, logOptions)
	}
	return slog.New(contextHandler{h})
}

// InitStructureLogConfig sets the structured log behavior from LOG_LEVEL,
// LOG_ADD_SOURCE and LOG_FORMAT, logging to stdout
func InitStructureLogConfig() {
	InitStructureLogConfigTo(os.Stdout)
}

// InitStructureLogConfigTo is InitStructureLogConfig writing to w
func InitStructureLogConfigTo(w io.Writer) {

	logLevel := os.Getenv("LOG_LEVEL")
	slog.Info("log config",
		"logLevel", logLevel,
	)

	addSourceBool := false
	addSource := os.Getenv("LOG_ADD_SOURCE")
	if addSource == "true" || addSource == "false" {
		addSourceBool = addSource == "true"
	}
	slog.Info("log config",
		"LOG_ADD_SOURCE", addSourceBool,
	)

	log.SetFlags(log.Llongfile)
	slog.SetDefault(NewLogger(w, parseLevel(logLevel), addSourceBool, os.Getenv("LOG_FORMAT")))
}
