package log

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/winter-loo/errlog/errs"
)

func newObserved(t *testing.T, level Level) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(level)
	return New(zap.New(core)), logs
}

func requireCaller(t *testing.T, e observer.LoggedEntry, loc errs.Location) {
	t.Helper()
	require.True(t, e.Caller.Defined)
	require.Equal(t, loc.File, filepath.Base(e.Caller.File))
	require.Equal(t, loc.Line, e.Caller.Line)
}

func TestLoggerLogf(t *testing.T) {
	lg, logs := newObserved(t, TraceLevel)

	loc := errs.Caller(0)
	lg.Tracef("some %s", "msg")
	lg.Debugf("debug")
	lg.Infof("info %d", 1)
	lg.Warnf("warn")
	lg.Errorf("error %v", true)
	lg.Logf(InfoLevel, "direct")

	entries := logs.All()
	require.Len(t, entries, 6)

	want := []struct {
		level Level
		msg   string
	}{
		{TraceLevel, "some msg"},
		{DebugLevel, "debug"},
		{InfoLevel, "info 1"},
		{WarnLevel, "warn"},
		{ErrorLevel, "error true"},
		{InfoLevel, "direct"},
	}
	for i, w := range want {
		require.Equal(t, w.level, entries[i].Level)
		require.Equal(t, w.msg, entries[i].Message)
		requireCaller(t, entries[i], errs.Location{File: loc.File, Line: loc.Line + 1 + i})
	}
}

func TestLoggerEscapedPercent(t *testing.T) {
	lg, logs := newObserved(t, TraceLevel)

	lg.Infof("100%% sure")
	lg.Warnf("%d%% left", 5)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	require.Equal(t, "100% sure", entries[0].Message)
	require.Equal(t, "5% left", entries[1].Message)
}

func TestLoggerLevelFilter(t *testing.T) {
	lg, logs := newObserved(t, WarnLevel)

	lg.Tracef("dropped")
	lg.Infof("dropped")
	lg.Warnf("kept")

	require.Equal(t, 1, logs.Len())
	require.False(t, lg.Enabled(InfoLevel))
	require.True(t, lg.Enabled(ErrorLevel))
}

func TestLoggerWrap(t *testing.T) {
	lg, logs := newObserved(t, TraceLevel)
	cause := errors.New("no such file")

	err, loc := lg.Wrap(cause, "cannot open file %s", "a.txt"), errs.Caller(0)

	require.ErrorIs(t, err, cause)
	require.Equal(t, loc.String()+": cannot open file a.txt: no such file", err.Error())

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, ErrorLevel, entries[0].Level)
	require.Equal(t, loc.String()+": cannot open file a.txt", entries[0].Message)
	require.Equal(t, "no such file", entries[0].ContextMap()["error"])
	requireCaller(t, entries[0], loc)
}

func TestLoggerWrapLevel(t *testing.T) {
	lg, logs := newObserved(t, TraceLevel)

	err, loc := lg.WrapLevel(TraceLevel, errors.New("eof"), ""), errs.Caller(0)
	require.Equal(t, loc.String()+": eof", err.Error())

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, TraceLevel, entries[0].Level)
	require.Equal(t, loc.String(), entries[0].Message)
}

func TestLoggerWrapNil(t *testing.T) {
	lg, logs := newObserved(t, TraceLevel)

	require.NoError(t, lg.Wrap(nil, "unused"))
	require.NoError(t, lg.WrapLevel(WarnLevel, nil, "unused"))
	require.Zero(t, logs.Len())
}

func TestLoggerWrapBelowLevel(t *testing.T) {
	lg, logs := newObserved(t, ErrorLevel)

	err := lg.WrapLevel(DebugLevel, errors.New("boom"), "quiet")
	require.ErrorContains(t, err, "quiet: boom")
	require.Zero(t, logs.Len())
}

func TestLoggerWithContext(t *testing.T) {
	lg, logs := newObserved(t, InfoLevel)

	lg.WithContext(context.Background()).Infof("no id")
	lg.WithContext(WithReqID(context.Background(), "42")).Infof("with id")

	require.Equal(t, 1, logs.FilterField(zap.String("req_id", "42")).Len())
	require.Equal(t, "with id", logs.FilterField(zap.String("req_id", "42")).All()[0].Message)
}

func TestGlobalLogger(t *testing.T) {
	core, logs := observer.New(TraceLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	loc := errs.Caller(0)
	Tracef("trace %d", 1)
	Debugf("debug")
	Infof("info")
	Warnf("warn")
	Errorf("error")
	Logf(WarnLevel, "logf")
	err := Wrap(errors.New("boom"), "global")
	_ = WrapLevel(InfoLevel, errors.New("boom"), "global info")
	WithContext(WithReqID(context.Background(), "r1")).Infof("ctx")

	entries := logs.All()
	require.Len(t, entries, 9)
	for i, e := range entries[:8] {
		require.Equal(t, "errlog", e.LoggerName)
		requireCaller(t, e, errs.Location{File: loc.File, Line: loc.Line + 1 + i})
	}
	require.Equal(t, []errs.Location{{File: loc.File, Line: loc.Line + 7}}, errs.Locations(err))
	require.Equal(t, "r1", entries[8].ContextMap()["req_id"])
}

func TestParseLevel(t *testing.T) {
	for text, want := range map[string]Level{
		"trace":  TraceLevel,
		"TRACE":  TraceLevel,
		"debug":  DebugLevel,
		" Info ": InfoLevel,
		"warn":   WarnLevel,
		"error":  ErrorLevel,
	} {
		got, err := ParseLevel(text)
		require.NoError(t, err, text)
		require.Equal(t, want, got, text)
	}

	_, err := ParseLevel("verbose")
	require.ErrorContains(t, err, "parse level")

	_, err = ParseLevel("fatal")
	require.ErrorContains(t, err, `unsupported level "fatal"`)
}

func TestNewZapJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "trace"
	cfg.Encoding = "json"

	z, err := NewZap(cfg, zapcore.AddSync(&buf))
	require.NoError(t, err)

	New(z).Tracef("hello %s", "world")
	require.NoError(t, z.Sync())

	out := buf.String()
	require.Contains(t, out, `"level":"TRACE"`)
	require.Contains(t, out, `"msg":"hello world"`)
	require.Contains(t, out, "log_test.go")
}

func TestNewZapConsole(t *testing.T) {
	var buf bytes.Buffer
	z, err := NewZap(DefaultConfig(), zapcore.AddSync(&buf))
	require.NoError(t, err)

	lg := New(z)
	lg.Debugf("below default level")
	lg.Warnf("careful")

	out := buf.String()
	require.NotContains(t, out, "below default level")
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "careful")
}

func TestNewZapInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"
	_, err := NewZap(cfg, zapcore.AddSync(&bytes.Buffer{}))
	require.ErrorContains(t, err, "invalid ERRLOG_LEVEL")

	cfg = DefaultConfig()
	cfg.Encoding = "xml"
	_, err = NewZap(cfg, zapcore.AddSync(&bytes.Buffer{}))
	require.Error(t, err)
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("ERRLOG_LEVEL", "debug")
	t.Setenv("ERRLOG_PATH", "full")

	undo, err := InitFromEnv()
	require.NoError(t, err)

	require.Equal(t, errs.FullPath, errs.CurrentPathStyle())
	require.True(t, L().Enabled(DebugLevel))
	require.False(t, L().Enabled(TraceLevel))

	undo()
	require.Equal(t, errs.ShortPath, errs.CurrentPathStyle())
	require.False(t, L().Enabled(ErrorLevel))
}
