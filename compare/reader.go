package compare

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Declaration keywords, upper case as they appear after tokenizing.
const (
	kwComment     = "#"
	kwHeader      = "XDL_RESOURCE_REPORT"
	kwTiles       = "TILES"
	kwTile        = "TILE"
	kwWire        = "WIRE"
	kwConn        = "CONN"
	kwTileSummary = "TILE_SUMMARY"
	kwPip         = "PIP"
	kwSite        = "PRIMITIVE_SITE"
	kwPinwire     = "PINWIRE"
	kwPrimDefs    = "PRIMITIVE_DEFS"
	kwPrimDef     = "PRIMITIVE_DEF"
	kwElement     = "ELEMENT"
	kwCfg         = "CFG"
	kwPin         = "PIN"
	kwSummary     = "SUMMARY"
)

// Tokens per declaration. Shorter lines are padded with blankToken.
var expectedTokens = map[string]int{
	kwComment:     0,
	kwTiles:       3,
	kwTile:        6,
	kwWire:        3,
	kwConn:        6,
	kwTileSummary: 6,
	kwPip:         4,
	kwSite:        5,
	kwPinwire:     4,
	kwPrimDefs:    2,
	kwPrimDef:     3,
	kwElement:     3,
	kwCfg:         0,
	kwPin:         4,
	kwHeader:      0,
	kwSummary:     6,
}

const blankToken = "BLANK"

// reader yields the declarations of a report one line at a time. Comments,
// blank lines, closing brackets and unknown keywords are skipped, and the
// report header is kept aside.
type reader struct {
	name    string
	in      *bufio.Reader
	session *Session

	line   []string
	num    int
	header []string
	err    error
}

func newReader(name string, in io.Reader, s *Session) *reader {
	return &reader{name: name, in: bufio.NewReader(in), session: s}
}

func tokenize(text string) []string {
	text = strings.Trim(text, "()\r\n\t ")
	if text == "" {
		return nil
	}
	return strings.Fields(strings.ToUpper(text))
}

// next advances to the next declaration. At the end of the input line is nil.
func (r *reader) next() {
	r.line = nil
	for r.err == nil {
		text, err := r.in.ReadString('\n')
		if err != nil {
			r.err = err
			if text == "" {
				return
			}
		}
		r.num++

		tokens := tokenize(text)
		if len(tokens) == 0 {
			continue
		}
		keyword := tokens[0]
		if strings.HasPrefix(keyword, kwComment) {
			continue
		}
		expected, ok := expectedTokens[keyword]
		if !ok {
			r.session.unknownKeyword(keyword, r.name, r.num)
			continue
		}
		if keyword == kwHeader {
			r.header = tokens
			continue
		}
		for len(tokens) < expected {
			tokens = append(tokens, blankToken)
		}
		r.line = tokens
		return
	}
}

// token returns the i-th token of the current declaration, or blankToken.
func (r *reader) token(i int) string {
	if i < len(r.line) {
		return r.line[i]
	}
	return blankToken
}

// at reports whether the current declaration uses keyword.
func (r *reader) at(keyword string) bool {
	return r.line != nil && r.line[0] == keyword
}

// atAny reports whether the current declaration uses one of keywords.
func (r *reader) atAny(keywords ...string) bool {
	for _, kw := range keywords {
		if r.at(kw) {
			return true
		}
	}
	return false
}

func (r *reader) failure() error {
	if r.err == nil || r.err == io.EOF {
		return nil
	}
	return errors.Wrapf(r.err, "reading %s", r.name)
}

func sameLine(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinLine(line []string) string {
	return strings.Join(line, " ")
}
