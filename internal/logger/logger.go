package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter builds the global logger from LOG_LEVEL, LOG_FORMAT ("json" or "console")
// and LOG_CALLER=1.
func InitWithWriter(w io.Writer) {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "console"
	}

	var ctx zerolog.Context
	if format == "json" {
		ctx = zerolog.New(w).With().Timestamp()
	} else {
		ctx = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}).With().Timestamp()
	}
	if os.Getenv("LOG_CALLER") == "1" {
		ctx = ctx.Caller()
	}
	Logger = ctx.Str("service", "barter-service").Logger().Level(level)

	zlog.Logger = Logger
}
