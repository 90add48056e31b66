package logger

import (
	"io"
	"os"
	"staybook/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger for cfg. Production writes JSON lines,
// every other environment writes to a console writer. The level comes from
// SERVER_LOG_LEVEL and defaults to info.
func Init(cfg *config.Config) {
	InitWithWriter(cfg, os.Stdout)
}

func InitWithWriter(cfg *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	log.Logger = ctx.Logger()

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("level", level.String()).Str("env", cfg.Server.Env).Msg("logger initialized")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
