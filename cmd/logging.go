package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/m1k1o/go-vodcat/internal/config"
)

func initLogging(cfg config.Log) {
	var writers []io.Writer

	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxAge:     cfg.MaxAge,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
		}

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		go func() {
			for range hup {
				if err := file.Rotate(); err != nil {
					log.Warn().Err(err).Msg("unable to rotate log file")
				}
			}
		}()

		writers = append(writers, file)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(io.MultiWriter(writers...)).
		With().
		Timestamp().
		Str("app", appName).
		Logger()

	level, ok := cfg.GlobalLevel()
	zerolog.SetGlobalLevel(level)
	if !ok {
		log.Warn().Str("log-level", cfg.Level).Msg("unknown log level, using info")
	}

	log.Info().
		Str("level", level.String()).
		Bool("console", cfg.Console).
		Str("file", cfg.File).
		Msg("logging configured")
}
