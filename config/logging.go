package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CheckDebug reports whether debug logging was requested via NEXUS_DEBUG.
func CheckDebug() bool {
	debug := os.Getenv("NEXUS_DEBUG")
	return debug == "true" || debug == "1"
}

// InitLogging configures the global zerolog logger. Normal runs log warnings
// and above to stderr; with NEXUS_DEBUG set, everything goes to a debug.log
// file in the data directory instead, keeping stdout clean for chat output.
func InitLogging(dataDir string) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open debug log at %s: %v\n", logPath, err)
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(f).With().Timestamp().Caller().Logger()
	log.Debug().Str("path", logPath).Msg("debug logging started")
}
