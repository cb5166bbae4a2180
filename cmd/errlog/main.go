package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/winter-loo/errlog/errs"
	"github.com/winter-loo/errlog/internal/config"
	"github.com/winter-loo/errlog/log"
)

func main() {
	level := flag.String("level", "", "log level [trace|debug|info|warn|error], overrides $"+config.LevelEnv)
	flag.Parse()

	cfg := config.FromEnv()
	if *level != "" {
		cfg.Level = *level
	}
	undo, err := log.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(2)
	}

	code := run(flag.Args())
	undo()
	os.Exit(code)
}

func run(paths []string) int {
	code := 0
	for _, path := range paths {
		n, err := size(path)
		if err != nil {
			code = 1
			fmt.Fprintf(os.Stderr, "%+v\n", err)
			for _, cause := range errs.Backtrace(err) {
				log.Debugf("caused by: %s", cause)
			}
			continue
		}
		fmt.Printf("%s: %d bytes\n", path, n)
	}
	return code
}

func size(path string) (int, error) {
	data, err := errs.Try(os.ReadFile(path)).Context("cannot read file %s", path).Get()
	if err != nil {
		return 0, log.WrapLevel(log.WarnLevel, err, "load %s", path)
	}
	return len(data), nil
}
