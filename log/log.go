package log

import "context"

// WithContext returns the global Logger carrying the request ID of ctx.
func WithContext(ctx context.Context) *Logger {
	return L().WithContext(ctx)
}

func Logf(level Level, format string, args ...any) {
	L().logfDepth(1, level, format, args...)
}

func Tracef(format string, args ...any) {
	L().logfDepth(1, TraceLevel, format, args...)
}

func Debugf(format string, args ...any) {
	L().logfDepth(1, DebugLevel, format, args...)
}

func Infof(format string, args ...any) {
	L().logfDepth(1, InfoLevel, format, args...)
}

func Warnf(format string, args ...any) {
	L().logfDepth(1, WarnLevel, format, args...)
}

func Errorf(format string, args ...any) {
	L().logfDepth(1, ErrorLevel, format, args...)
}

// Wrap annotates err and logs the annotation at ErrorLevel on the global
// logger.
func Wrap(err error, format string, args ...any) error {
	return L().wrapDepth(1, ErrorLevel, err, format, args...)
}

func WrapLevel(level Level, err error, format string, args ...any) error {
	return L().wrapDepth(1, level, err, format, args...)
}
