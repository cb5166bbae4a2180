// Package log writes leveled messages and annotated errors through zap.
//
// Every entry carries the caller of the logging function, not a frame inside
// this package. Nothing is printed until a global logger is installed with
// Init or InitFromEnv, or a Logger is built around an explicit *zap.Logger:
//
//	undo, err := log.InitFromEnv()
//	if err != nil {
//		panic(err)
//	}
//	defer undo()
//
//	log.Tracef("some %s", msg)
//	if err := log.Wrap(f.Close(), "close %s", name); err != nil {
//		return err
//	}
package log

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/winter-loo/errlog/errs"
)

type contextKey string

// ReqID is the context key holding the request ID added by WithContext.
var ReqID = contextKey("Req-ID")

// WithReqID returns a copy of ctx carrying id.
func WithReqID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ReqID, id)
}

type Logger struct {
	logger *zap.Logger
}

// New builds a Logger on top of z. Caller annotation is always enabled.
func New(z *zap.Logger) *Logger {
	return &Logger{logger: z.WithOptions(zap.AddCaller())}
}

// L returns a Logger on the current global zap logger.
func L() *Logger {
	return New(zap.L().Named("errlog"))
}

func (l *Logger) Zap() *zap.Logger {
	return l.logger
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{logger: l.logger.Named(name)}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{logger: l.logger.With(fields...)}
}

// WithContext adds the request ID found in ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	id := ctx.Value(ReqID)
	if id == nil {
		return l
	}
	return l.With(zap.String("req_id", fmt.Sprint(id)))
}

func (l *Logger) Enabled(level Level) bool {
	return l.logger.Core().Enabled(level)
}

// Logf formats and writes a message at level.
func (l *Logger) Logf(level Level, format string, args ...any) {
	l.logfDepth(1, level, format, args...)
}

func (l *Logger) Tracef(format string, args ...any) {
	l.logfDepth(1, TraceLevel, format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logfDepth(1, DebugLevel, format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logfDepth(1, InfoLevel, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logfDepth(1, WarnLevel, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logfDepth(1, ErrorLevel, format, args...)
}

// Wrap annotates err like errs.Wrap and logs the annotation at ErrorLevel.
// A nil err logs nothing and yields nil.
func (l *Logger) Wrap(err error, format string, args ...any) error {
	return l.wrapDepth(1, ErrorLevel, err, format, args...)
}

// WrapLevel is Wrap logging at level.
func (l *Logger) WrapLevel(level Level, err error, format string, args ...any) error {
	return l.wrapDepth(1, level, err, format, args...)
}

func (l *Logger) wrapDepth(depth int, level Level, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	wrapped := errs.WrapDepth(depth+1, err, format, args...)
	if se, ok := wrapped.(*errs.SourceError); ok {
		l.write(depth+1, level, se.Annotation(), zap.Error(err))
	}
	return wrapped
}

func (l *Logger) logfDepth(depth int, level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.write(depth+1, level, fmt.Sprintf(format, args...))
}

// write attributes the entry to the caller depth frames above its caller.
func (l *Logger) write(depth int, level Level, msg string, fields ...zap.Field) {
	ce := l.logger.WithOptions(zap.AddCallerSkip(depth + 1)).Check(level, msg)
	if ce != nil {
		ce.Write(fields...)
	}
}
