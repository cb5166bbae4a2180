package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/winter-loo/errlog/errs"
	"github.com/winter-loo/errlog/internal/config"
)

// Config selects level, encoding and path style.
type Config = config.Config

func DefaultConfig() Config {
	return config.Default()
}

// NewZap builds a zap logger writing cfg.Encoding entries to ws.
func NewZap(cfg Config, ws zapcore.WriteSyncer) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, errs.Wrap(err, "invalid %s", config.LevelEnv)
	}

	var enc zapcore.Encoder
	if cfg.Encoding == config.EncodingJSON {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeLevel = encodeLevel
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = encodeLevel
		enc = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.AddCaller()), nil
}

// Init installs a global logger writing to stderr and applies the path style
// to errs. The returned function flushes the logger and restores the
// previous state.
func Init(cfg Config) (func(), error) {
	z, err := NewZap(cfg, zapcore.Lock(os.Stderr))
	if err != nil {
		return nil, err
	}

	prevStyle := errs.CurrentPathStyle()
	errs.SetPathStyle(cfg.PathStyle())
	restore := zap.ReplaceGlobals(z)

	return func() {
		_ = z.Sync()
		restore()
		errs.SetPathStyle(prevStyle)
	}, nil
}

// InitFromEnv is Init with the configuration read from the environment.
func InitFromEnv() (func(), error) {
	return Init(config.FromEnv())
}
