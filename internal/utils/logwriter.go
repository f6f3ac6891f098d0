package utils

import (
	"strings"

	"github.com/rs/zerolog"
)

// LogWriterCtx forwards every written line to a zerolog logger, so that
// libraries logging through io.Writer or *log.Logger end up in our logs.
type LogWriterCtx struct {
	logger zerolog.Logger
	level  zerolog.Level
}

func LogWriter(l zerolog.Logger, level zerolog.Level) *LogWriterCtx {
	return &LogWriterCtx{
		logger: l,
		level:  level,
	}
}

func (l LogWriterCtx) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	if msg != "" {
		l.logger.WithLevel(l.level).Msg(msg)
	}
	return len(p), nil
}
