// Package logx is a small leveled logger. A LoggerX writes lines tagged
// with a section name; Logger is the per-section view handed to library
// code.
package logx

import (
	"fmt"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	NOTICE
	WARN
	ERROR
	CRITICAL
	LevelCount
)

var levelNames = [LevelCount]string{
	DEBUG:    "debug",
	INFO:     "info",
	NOTICE:   "notice",
	WARN:     "warn",
	ERROR:    "error",
	CRITICAL: "critical",
}

func (l Level) String() string {
	if l < 0 || l >= LevelCount {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel parses a level name as printed by Level.String.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return WARN, nil
	}
	for i, n := range levelNames {
		if n == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

type LoggerX interface {
	LogPrintX(section string, lvl Level, v ...interface{})
	LogPrintfX(section string, lvl Level, fmt string, v ...interface{})
}

type Logger interface {
	LogPrint(lvl Level, v ...interface{})
	LogPrintf(lvl Level, fmt string, v ...interface{})
}

type LogToX struct {
	section string
	logx    LoggerX
}

func (l LogToX) LogPrint(lvl Level, v ...interface{}) { l.logx.LogPrintX(l.section, lvl, v...) }
func (l LogToX) LogPrintf(lvl Level, fmt string, v ...interface{}) {
	l.logx.LogPrintfX(l.section, lvl, fmt, v...)
}
func NewLogToX(logx LoggerX, section string) LogToX { return LogToX{section: section, logx: logx} }

var _ Logger = LogToX{}

type nopLogger struct{}

func (nopLogger) LogPrint(Level, ...interface{})          {}
func (nopLogger) LogPrintf(Level, string, ...interface{}) {}

// Discard drops everything.
var Discard Logger = nopLogger{}
