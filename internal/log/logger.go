package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the console logger shared by all services. Development gets
// debug-level output, anything else info.
func New(environment string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    environment != "development",
	}

	level := zerolog.InfoLevel
	if environment == "development" {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).Level(level).With().
		Timestamp().
		Str("env", environment).
		Logger()
}
