package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger writing to stdout. Format "json" emits
// zerolog's native output; "text" emits lines shaped LEVEL | TIMESTAMP | MESSAGE.
// The logger is constructed once at startup and injected into every component.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return NewWithWriter(os.Stdout, lvl, format), nil
}

// NewWithWriter is New with an explicit sink, for tests.
func NewWithWriter(w io.Writer, lvl zerolog.Level, format string) zerolog.Logger {
	if format != "json" {
		w = textWriter(w)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func textWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:     w,
		NoColor: true,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
		FormatLevel: func(i any) string {
			return strings.ToUpper(fmt.Sprintf("%s", i)) + " |"
		},
		FormatTimestamp: func(i any) string {
			ts, ok := i.(string)
			if !ok {
				return fmt.Sprintf("%v |", i)
			}
			t, err := time.Parse(zerolog.TimeFieldFormat, ts)
			if err != nil {
				return ts + " |"
			}
			return t.Format("2006-01-02 15:04:05") + " |"
		},
	}
}
