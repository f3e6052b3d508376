package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// IndentationLevel controls the amount of indentation of log messages.
var IndentationLevel = 0

// Spinner is shown on stderr while long running operations are in progress.
var Spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

var errorOccured = false

const successField = "success"

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &indentFormatter{},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

// indentFormatter prints messages the way the tool always has: indented,
// with a coloured prefix per level and any fields appended as key=value.
type indentFormatter struct{}

func (f *indentFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(strings.Repeat("  ", IndentationLevel))

	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		b.WriteString("\033[36mDebug: \033[0m")
	case logrus.WarnLevel:
		b.WriteString("\033[33mWarning: \033[0m")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		b.WriteString("\033[31mError: \033[0m")
	default:
		if _, ok := entry.Data[successField]; ok {
			b.WriteString("\033[32mSuccess: \033[0m")
		}
	}

	msg := entry.Message
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != successField {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		b.WriteString(msg)
		return b.Bytes(), nil
	}

	sort.Strings(keys)
	newline := strings.HasSuffix(msg, "\n")
	b.WriteString(strings.TrimSuffix(msg, "\n"))
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	if newline {
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

func applyVerbosity() {
	if Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects all log messages to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// ErrorOccured reports whether any errors have occured.
func ErrorOccured() bool {
	return errorOccured
}

// With returns an entry carrying a structured field. Messages logged through
// it are formatted like the package level functions.
func With(key string, value interface{}) *logrus.Entry {
	applyVerbosity()
	return logger.WithField(key, value)
}

// Log prints an indented and formatted message to os.Stderr.
func Log(format string, a ...interface{}) {
	applyVerbosity()
	logger.Infof(format, a...)
}

// Debug prints an indented and formatted debug message to os.Stderr if verbose output is selected.
func Debug(format string, a ...interface{}) {
	applyVerbosity()
	logger.Debugf(format, a...)
}

// Success prints an indented and formatted success message to os.Stderr.
func Success(format string, a ...interface{}) {
	applyVerbosity()
	logger.WithField(successField, true).Infof(format, a...)
}

// Warning prints an indented and formatted warning to os.Stderr.
func Warning(format string, a ...interface{}) {
	applyVerbosity()
	logger.Warnf(format, a...)
}

// Error prints an indented and formatted error message to os.Stderr.
func Error(format string, a ...interface{}) {
	applyVerbosity()
	errorOccured = true
	logger.Errorf(format, a...)
}

// Fatal prints an indented and formatted error message to os.Stderr and terminates the program.
func Fatal(format string, a ...interface{}) {
	Error(format, a...)
	fmt.Fprintf(logger.Out, "\033[31mA fatal error occured. Exiting...\033[0m\n")
	os.Exit(1)
}
