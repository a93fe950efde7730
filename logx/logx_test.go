package logx

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, lvl Level) *FileLogger {
	l := NewWriterLogger(buf, lvl)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogToX(fixedLogger(&buf, DEBUG), "kmeans")

	log.LogPrintf(INFO, "max diff: %d", 12)

	want := "03:04:05     INFO [kmeans] max diff: 12\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestFileLoggerFiltersLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogToX(fixedLogger(&buf, WARN), "cli")

	log.LogPrint(DEBUG, "hidden")
	log.LogPrint(INFO, "hidden")
	log.LogPrint(ERROR, "shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Messages below WARN should be dropped: %q", buf.String())
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("Expected exactly one line, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": DEBUG, "INFO": INFO, " warn ": WARN, "warning": WARN, "critical": CRITICAL,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; expected %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.LogPrintf(CRITICAL, "%d", 1)
	Discard.LogPrint(DEBUG)
}
