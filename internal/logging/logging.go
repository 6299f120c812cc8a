package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. JSON in prod, console writer in dev.
func New(env string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}
