package log

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

// Level is a logger verbosity, from the most verbose Debug to Error
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = []struct {
	name  string
	level logging.Level
}{
	Debug:   {"debug", logging.DEBUG},
	Info:    {"info", logging.INFO},
	Notice:  {"notice", logging.NOTICE},
	Warning: {"warning", logging.WARNING},
	Error:   {"error", logging.ERROR},
}

// String returns the level's lowercase name
func (l Level) String() string {
	if l < Debug || l > Error {
		return "unknown"
	}
	return levels[l].name
}

// ParseLevel returns the level with the given case-insensitive name
func ParseLevel(name string) (Level, error) {
	for level, entry := range levels {
		if strings.EqualFold(name, entry.name) {
			return Level(level), nil
		}
	}
	return Notice, errors.Errorf("unknown log level %q", name)
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend

	// Levels survive a sink change; "" holds the default for all modules
	moduleLevels = map[string]Level{"": Notice}
)

// Logger is the leveled logger used by every package in the renderer.
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

// New creates a logger tagged with the given module name.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to sink, keeping their levels.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	for module, level := range moduleLevels {
		leveledBackend.SetLevel(levels[level].level, module)
	}
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of modules without a level of their own.
func SetLevel(level Level) {
	SetModuleLevel(level, "")
}

// SetModuleLevel sets the verbosity of a single module.
func SetModuleLevel(level Level, module string) {
	if level < Debug || level > Error {
		return
	}
	moduleLevels[module] = level
	leveledBackend.SetLevel(levels[level].level, module)
}

// GetLevel returns the verbosity in effect for module.
func GetLevel(module string) Level {
	if level, ok := moduleLevels[module]; ok {
		return level
	}
	return moduleLevels[""]
}

func init() {
	SetSink(os.Stderr)
}
