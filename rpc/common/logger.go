package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lni/dragonboat/v4/logger"
)

// --------------------------------------------------------------------------
// Grid Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// output is shared by all grid loggers, log.Logger serializes concurrent writes
var output = log.New(os.Stdout, "", log.Ldate|log.Ltime)

// gridLogger writes "LEVEL | name | message" lines to output
type gridLogger struct {
	name  string
	level atomic.Int32
}

func newGridLogger(name string) *gridLogger {
	l := &gridLogger{name: name}
	l.level.Store(int32(logger.INFO))
	return l
}

func (l *gridLogger) SetLevel(level logger.LogLevel) {
	l.level.Store(int32(level))
}

func (l *gridLogger) enabled(level logger.LogLevel) bool {
	return logger.LogLevel(l.level.Load()) >= level
}

func (l *gridLogger) Debugf(format string, args ...interface{}) {
	l.write(logger.DEBUG, format, args...)
}

func (l *gridLogger) Infof(format string, args ...interface{}) {
	l.write(logger.INFO, format, args...)
}

func (l *gridLogger) Warningf(format string, args ...interface{}) {
	l.write(logger.WARNING, format, args...)
}

func (l *gridLogger) Errorf(format string, args ...interface{}) {
	l.write(logger.ERROR, format, args...)
}

func (l *gridLogger) Panicf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.write(logger.CRITICAL, "%s", message)
	panic(message)
}

func (l *gridLogger) write(level logger.LogLevel, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	output.Printf("%-5s | %-15s | %s", levelLabel(level), l.name, fmt.Sprintf(format, args...))
}

func levelLabel(level logger.LogLevel) string {
	switch level {
	case logger.DEBUG:
		return "DEBUG"
	case logger.INFO:
		return "INFO"
	case logger.WARNING:
		return "WARN"
	case logger.ERROR:
		return "ERROR"
	default:
		return "CRIT"
	}
}

// CreateLogger creates the logger for a package (implements logger.Factory)
func CreateLogger(pkgName string) logger.ILogger {
	return newGridLogger(pkgName)
}

// SetLogOutput redirects the output of all grid loggers
func SetLogOutput(w io.Writer) {
	output.SetOutput(w)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// loggerNames are all loggers used in this module
var loggerNames = []string{
	"rpc",
	"transport/rpc",
	"admin",
	"cache",
}

// installFactory guards logger.SetLoggerFactory, which panics when called twice
var installFactory sync.Once

// InitLoggers installs the grid log format (once per process) and sets the
// level of all loggers. It may be called again to change the level.
func InitLoggers(level string) error {
	logLevel, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	installFactory.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})

	for _, name := range loggerNames {
		logger.GetLogger(name).SetLevel(logLevel)
	}
	return nil
}
