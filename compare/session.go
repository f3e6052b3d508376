// Package compare checks a generated XDL resource report against a
// reference report.
//
// Both reports are read line by line. Tiles must appear in the same order in
// both reports and primitive_defs must be sorted by name; everything inside a
// tile or a primitive_def may appear in any order. Differences are either
// errors or one of the catalogued exceptions, see Exceptions.
package compare

import (
	"fmt"
	"io"

	"github.com/daedaleanai/xdlrc/log"
)

// Oracle answers whether a resource exists in a second source of truth for
// the device. It decides whether some differences are exceptions.
type Oracle interface {
	Wire(tile, wire string) bool
	Pip(tile, wire0, wire1 string) bool
	Site(tile, site string) bool
}

// NoOracle knows no resources.
type NoOracle struct{}

func (NoOracle) Wire(tile, wire string) bool        { return false }
func (NoOracle) Pip(tile, wire0, wire1 string) bool { return false }
func (NoOracle) Site(tile, site string) bool        { return false }

const exceptionsPreamble = "Line numbers are expressed REFERENCE:TEST\n" +
	"Some exceptions only apply to one of the reports. These are expressed with the other side of the colon empty.\n\n\n"

// Session owns the counters and the two logs of one comparison.
type Session struct {
	errLog io.Writer
	excLog io.Writer
	oracle Oracle

	header     string
	errors     int
	exceptions map[Exception]int
	unknowns   map[string]bool
}

// NewSession returns a session writing errors to errLog and exceptions to
// excLog. A nil oracle knows no resources.
func NewSession(errLog, excLog io.Writer, oracle Oracle) *Session {
	if oracle == nil {
		oracle = NoOracle{}
	}
	fmt.Fprint(excLog, exceptionsPreamble)
	return &Session{
		errLog:     errLog,
		excLog:     excLog,
		oracle:     oracle,
		exceptions: map[Exception]int{},
		unknowns:   map[string]bool{},
	}
}

// Errors returns the number of errors found so far.
func (s *Session) Errors() int {
	return s.errors
}

// Exceptions returns the number of exceptions found so far.
func (s *Session) Exceptions() int {
	total := 0
	for _, n := range s.exceptions {
		total += n
	}
	return total
}

// ExceptionCount returns how often exception e was found.
func (s *Session) ExceptionCount(e Exception) int {
	return s.exceptions[e]
}

// Close writes the final error count to the error log.
func (s *Session) Close() {
	fmt.Fprintf(s.errLog, "Done comparing XDLRC files. Errors: %d\n", s.errors)
}

func (s *Session) setHeader(format string, args ...interface{}) {
	s.header = fmt.Sprintf(format, args...)
}

func (s *Session) errorf(format string, args ...interface{}) {
	s.errors++
	fmt.Fprintf(s.errLog, "%s %s\n", s.header, fmt.Sprintf(format, args...))
}

func (s *Session) exception(e Exception, format string, args ...interface{}) {
	s.exceptions[e]++
	fmt.Fprintf(s.excLog, "%s %s %s\n", e, s.header, fmt.Sprintf(format, args...))
}

func (s *Session) unknownKeyword(keyword string, name string, line int) {
	if s.unknowns[keyword] {
		return
	}
	s.unknowns[keyword] = true
	log.With("file", name).Warnf("Unknown keyword %s, ignoring line %d.\n", keyword, line)
}
