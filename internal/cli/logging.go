package cli

import (
	"fmt"
	"strings"

	"swipelist/internal/config"

	logging "github.com/ipfs/go-log/v2"
)

// setupLogging routes every subsystem logger to the configured file, and to
// stderr when toStderr is set. Without either, logs are discarded.
func setupLogging(c config.LogConfig, toStderr bool) error {
	level := logging.LevelWarn
	if s := strings.TrimSpace(c.Level); s != "" {
		l, err := logging.LevelFromString(s)
		if err != nil {
			return fmt.Errorf("log.level %q: %w", s, err)
		}
		level = l
	}
	logging.SetupLogging(logging.Config{
		Format: logging.PlaintextOutput,
		Level:  level,
		Stderr: toStderr,
		File:   strings.TrimSpace(c.File),
	})
	return nil
}
