package observability

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes leveled key-value records to stdout and, when a log path
// is configured, to a size-rotated file.
type Logger struct {
	level Level
	out   *log.Logger
}

func NewLogger(logPath, logLevel string) *Logger {
	var w io.Writer = os.Stdout
	if logPath != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	return &Logger{
		level: parseLevel(logLevel),
		out:   log.New(w, "", log.LstdFlags),
	}
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.write(LevelDebug, "DEBUG", msg, fields)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.write(LevelInfo, "INFO", msg, fields)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.write(LevelWarn, "WARN", msg, fields)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.write(LevelError, "ERROR", msg, fields)
}

func (l *Logger) write(level Level, tag, msg string, fields []interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf("%s %s%s", tag, msg, formatFields(fields))
}

// formatFields renders alternating key/value pairs as " k=v k=v". A
// trailing odd value is printed as-is.
func formatFields(fields []interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
		} else {
			fmt.Fprintf(&b, " %v", fields[i])
		}
	}
	return b.String()
}
