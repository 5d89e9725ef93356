// Package logx provides the one logrus logger every package in this
// module shares, grounded in rami3l-golox's use of sirupsen/logrus for
// interpreter diagnostics. go-mix itself has no structured logger — it
// writes colored strings straight to stderr from main — so CLI-facing
// diagnostics still go through cmd/lox and cmd/loxvm's fatih/color
// output; logx is for the ambient logging underneath that: runtime
// traps from eval and the VM at error level, and the VM's
// per-instruction trace at debug level. The lexer, parser and resolver
// do not log; their faults reach the caller as returned errors.
package logx

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once   sync.Once
	logger *logrus.Logger
)

// Get returns the shared logger, configured from LOX_LOG_LEVEL
// (default "warn") on first use.
func Get() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetOutput(os.Stderr)
		level := logrus.WarnLevel
		if raw := os.Getenv("LOX_LOG_LEVEL"); raw != "" {
			if parsed, err := logrus.ParseLevel(raw); err == nil {
				level = parsed
			}
		}
		logger.SetLevel(level)
	})
	return logger
}
