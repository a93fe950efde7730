package logx

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

type logLevels [LevelCount]string

var levelstrings = [2]logLevels{
	// uncolored
	{
		DEBUG:    "   DEBUG",
		INFO:     "    INFO",
		NOTICE:   "  NOTICE",
		WARN:     " WARNING",
		ERROR:    "   ERROR",
		CRITICAL: "CRITICAL",
	},
	// colored
	{
		DEBUG:    "\033[37m   DEBUG\033[0m",
		INFO:     "\033[34m    INFO\033[0m",
		NOTICE:   "\033[32m  NOTICE\033[0m",
		WARN:     "\033[33m WARNING\033[0m",
		ERROR:    "\033[31m   ERROR\033[0m",
		CRITICAL: "\033[35mCRITICAL\033[0m",
	},
}

var formatstrings = [2]string{
	// uncolored
	"%s %s [%s] ",
	// colored
	"%s %s [\033[36m%s\033[0m] ",
}

var _ LoggerX = (*FileLogger)(nil)

// FileLogger writes one line per message to an output stream.
type FileLogger struct {
	w   io.Writer
	l   sync.Mutex
	t   int
	m   Level
	buf bytes.Buffer
	now func() time.Time
}

// NewFileLogger logs messages at logLevel and above to f. With ColorAuto
// colors are used when f is a terminal.
func NewFileLogger(f *os.File, logLevel Level, c ColorMode) *FileLogger {
	l := &FileLogger{w: f, m: logLevel, now: time.Now}
	fd := f.Fd()
	useColor := c == ColorOn ||
		(c == ColorAuto && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)))
	if useColor {
		l.w = colorable.NewColorable(f)
		l.t = 1
	}
	return l
}

// NewWriterLogger logs uncolored lines to an arbitrary writer.
func NewWriterLogger(w io.Writer, logLevel Level) *FileLogger {
	return &FileLogger{w: w, m: logLevel, now: time.Now}
}

func (l *FileLogger) Level() Level {
	return l.m
}

func (l *FileLogger) prepareWrite(section string, lvl Level) {
	l.buf.Reset()
	fmt.Fprintf(&l.buf, formatstrings[l.t],
		l.now().Format("15:04:05"), levelstrings[l.t][lvl], section)
}

func (l *FileLogger) finish() {
	if b := l.buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		l.buf.WriteByte('\n')
	}
	l.w.Write(l.buf.Bytes())
}

func (l *FileLogger) LogPrintX(section string, lvl Level, v ...interface{}) {
	if l.m > lvl {
		return
	}

	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl)
	fmt.Fprint(&l.buf, v...)
	l.finish()
}

func (l *FileLogger) LogPrintfX(section string, lvl Level, fmts string, v ...interface{}) {
	if l.m > lvl {
		return
	}

	l.l.Lock()
	defer l.l.Unlock()

	l.prepareWrite(section, lvl)
	fmt.Fprintf(&l.buf, fmts, v...)
	l.finish()
}
