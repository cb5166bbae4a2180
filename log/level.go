package log

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/winter-loo/errlog/errs"
)

// Level is a zap level extended with TraceLevel.
type Level = zapcore.Level

const (
	TraceLevel Level = zapcore.DebugLevel - 1
	DebugLevel Level = zapcore.DebugLevel
	InfoLevel  Level = zapcore.InfoLevel
	WarnLevel  Level = zapcore.WarnLevel
	ErrorLevel Level = zapcore.ErrorLevel
)

// ParseLevel accepts trace, debug, info, warn and error in any case.
func ParseLevel(text string) (Level, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "trace" {
		return TraceLevel, nil
	}

	lvl, err := zapcore.ParseLevel(text)
	if err != nil {
		return InfoLevel, errs.Wrap(err, "parse level")
	}
	if lvl > ErrorLevel {
		return InfoLevel, errs.New("unsupported level %q", text)
	}
	return lvl, nil
}

func levelName(l Level) string {
	if l == TraceLevel {
		return "TRACE"
	}
	return l.CapitalString()
}

func encodeLevel(l Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(levelName(l))
}
