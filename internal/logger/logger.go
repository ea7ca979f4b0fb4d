package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and switches to console output when pretty is
// set. An unknown level falls back to info and is returned as an error.
func Setup(level string, pretty bool) error {
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return err
	}

	zerolog.SetGlobalLevel(parsed)
	return nil
}
