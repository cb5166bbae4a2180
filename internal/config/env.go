package config

import (
	"os"
	"strings"

	"github.com/winter-loo/errlog/errs"
)

const (
	LevelEnv    = "ERRLOG_LEVEL"
	EncodingEnv = "ERRLOG_ENCODING"
	PathEnv     = "ERRLOG_PATH"
)

const (
	EncodingConsole = "console"
	EncodingJSON    = "json"

	PathShort = "short"
	PathFull  = "full"
)

type Config struct {
	// Level is the minimum level written: trace, debug, info, warn or error.
	Level string
	// Encoding of log entries, console or json.
	Encoding string
	// Path selects whether annotations carry the base name or the full path
	// of the source file.
	Path string
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Level:    "info",
		Encoding: EncodingConsole,
		Path:     PathShort,
	}
}

// FromEnv returns Default overridden by `$ERRLOG_LEVEL`, `$ERRLOG_ENCODING`
// and `$ERRLOG_PATH`.
func FromEnv() Config {
	cfg := Default()
	cfg.Level = lookup(LevelEnv, cfg.Level)
	cfg.Encoding = lookup(EncodingEnv, cfg.Encoding)
	cfg.Path = lookup(PathEnv, cfg.Path)
	return cfg
}

func (c Config) Validate() error {
	switch c.Encoding {
	case EncodingConsole, EncodingJSON:
	default:
		return errs.New("unknown encoding %q in %s", c.Encoding, EncodingEnv)
	}

	switch c.Path {
	case PathShort, PathFull:
	default:
		return errs.New("unknown path style %q in %s", c.Path, PathEnv)
	}

	return nil
}

// PathStyle maps Path onto the errs rendering.
func (c Config) PathStyle() errs.PathStyle {
	if c.Path == PathFull {
		return errs.FullPath
	}
	return errs.ShortPath
}

func lookup(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return strings.ToLower(v)
	}
	return fallback
}
