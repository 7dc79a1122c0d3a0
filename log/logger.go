package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// File sinks do not get ANSI color codes.
var fileFormat = logging.MustStringFormatter(
	`[%{time:2006-01-02 15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The currently active level; re-applied whenever the sink changes.
var activeLevel = Notice

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	setBackend(sink, format)
}

// Rotating file sink settings.
type FileSink struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Send log output to a size-rotated file. The returned closer flushes and
// closes the file; callers should invoke it before exiting.
func SetFileSink(cfg FileSink) io.Closer {
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	setBackend(fileWriter, fileFormat)
	return fileWriter
}

func setBackend(sink io.Writer, f logging.Formatter) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, f)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	logging.SetBackend(leveledBackend)
	SetLevel(activeLevel)
}

// Set logger verbosity.
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	case Warning:
		loggerLevel = logging.WARNING
	case Error:
		loggerLevel = logging.ERROR
	}

	activeLevel = level
	leveledBackend.SetLevel(loggerLevel, "")
}

// Parse a level name such as "debug" or "warning".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice", "":
		return Notice, nil
	case "warn", "warning":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
