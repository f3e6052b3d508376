package compare

import (
	"io"
	"strings"

	"github.com/daedaleanai/xdlrc/log"
	"github.com/daedaleanai/xdlrc/util"
)

// Input is a named report stream.
type Input struct {
	Name string
	io.Reader
}

func (s *Session) readers(test, ref Input) (*reader, *reader) {
	t, r := newReader(test.Name, test, s), newReader(ref.Name, ref, s)
	t.next()
	r.next()
	return t, r
}

func firstFailure(readers ...*reader) error {
	for _, r := range readers {
		if err := r.failure(); err != nil {
			return err
		}
	}
	return nil
}

// CompareReports compares two complete reports. Tiles must be in the same
// order in both reports.
func (s *Session) CompareReports(test, ref Input) error {
	t, r := s.readers(test, ref)
	s.compareHeaders(t, r)

	s.setHeader("")
	if !sameLine(t.line, r.line) {
		s.errorf("Tiles declaration mismatch: %s : %s", joinLine(r.line), joinLine(t.line))
	}
	t.next()
	r.next()

	for t.at(kwTile) && r.at(kwTile) {
		s.compareTile(t, r)
	}
	s.skipTiles(t, "Extra tile")
	s.skipTiles(r, "Missing tile")

	if r.at(kwPrimDefs) || t.at(kwPrimDefs) {
		s.comparePrimDefs(t, r)
	}

	s.setHeader("")
	if !sameLine(t.line, r.line) {
		s.exception(PrimDefGeneral, "Summary line mismatch: %s : %s", joinLine(r.line), joinLine(t.line))
	}
	log.Debug("Compared %d:%d lines.\n", r.num, t.num)
	return firstFailure(t, r)
}

// CompareTiles compares two reports holding a single tile block each.
func (s *Session) CompareTiles(test, ref Input) error {
	t, r := s.readers(test, ref)
	for t.at(kwTile) && r.at(kwTile) {
		s.compareTile(t, r)
	}
	s.skipTiles(t, "Extra tile")
	s.skipTiles(r, "Missing tile")
	return firstFailure(t, r)
}

// ComparePrimDefs compares two reports holding a primitive_defs block each.
func (s *Session) ComparePrimDefs(test, ref Input) error {
	t, r := s.readers(test, ref)
	s.comparePrimDefs(t, r)
	return firstFailure(t, r)
}

func (s *Session) compareHeaders(t, r *reader) {
	s.setHeader("")
	if t.header == nil || r.header == nil {
		s.errorf("Missing xdl_resource_report header")
		return
	}
	versions := [2]util.Version{}
	for i, header := range [][]string{t.header, r.header} {
		if len(header) < 2 {
			s.errorf("Missing report version: %s", joinLine(header))
			return
		}
		v, err := util.ParseVersion(strings.ToLower(header[1]))
		if err != nil {
			s.errorf("Invalid report version: %v", err)
			return
		}
		versions[i] = v
	}
	if versions[0] != versions[1] {
		s.errorf("Report version mismatch: %s : %s", versions[1], versions[0])
	}
}

// skipTiles reports every remaining tile block of r as an error.
func (s *Session) skipTiles(r *reader, what string) {
	for r.at(kwTile) {
		s.setHeader("")
		s.errorf("%s %s on line %d of %s", what, r.token(3), r.num, r.name)
		r.next()
		for r.line != nil && !r.atAny(kwTile, kwPrimDefs, kwSummary) {
			r.next()
		}
	}
}

func (s *Session) compareTile(t, r *reader) {
	s.setHeader("Tile: %s", t.token(3))
	if !sameLine(t.line, r.line) {
		s.errorf("Tile header mismatch: %s : %s", joinLine(r.line), joinLine(t.line))
	}

	testTile := s.buildTile(t)
	refTile := s.buildTile(r)
	s.compareTiles(testTile, refTile)

	s.setHeader("Tile: %s", testTile.Name)
	if !t.at(kwTileSummary) || !r.at(kwTileSummary) {
		s.errorf("Missing tile_summary on line %d:%d", r.num, t.num)
		return
	}
	switch {
	case t.line[4] != r.line[4]:
		s.exception(ExtraWire, "line %d:%d summary wire count mismatch", r.num, t.num)
	case t.line[5] != r.line[5]:
		s.exception(ExtraPip, "line %d:%d summary pip count mismatch", r.num, t.num)
	case !sameLine(t.line, r.line):
		s.errorf("Tile summary mismatch: %s : %s", joinLine(r.line), joinLine(t.line))
	}
	t.next()
	r.next()
}

// skipPrimDef reads and drops the primitive_def whose header is the current
// line of r.
func (s *Session) skipPrimDef(r *reader) {
	header := s.header
	s.buildPrimDef(r)
	s.header = header
}

func (s *Session) comparePrimDefs(t, r *reader) {
	s.setHeader("")
	if !sameLine(t.line, r.line) {
		s.exception(PrimDefGeneral, "line %d:%d PRIMITIVE_DEFS count mismatch", r.num, t.num)
	}
	if t.at(kwPrimDefs) {
		t.next()
	}
	if r.at(kwPrimDefs) {
		r.next()
	}

	for t.at(kwPrimDef) && r.at(kwPrimDef) {
		testName, refName := t.token(1), r.token(1)
		switch {
		case refName < testName:
			s.setHeader("")
			s.exception(PrimDefGeneral, "caught on line %d:. PRIMITIVE_DEF %s missing.", r.num, refName)
			s.skipPrimDef(r)

		case testName < refName:
			s.setHeader("")
			s.errorf("Extra PRIMITIVE_DEF %s on line %d", testName, t.num)
			s.skipPrimDef(t)

		default:
			s.setHeader("Prim_Def %s", testName)
			// Elements holding only cfg bits are never generated.
			if t.token(3) != r.token(3) {
				s.exception(CfgPrimDef, "caught on line %d:%d", r.num, t.num)
			}
			if t.token(2) != r.token(2) {
				s.errorf("Pin count mismatch: %s : %s", r.token(2), t.token(2))
			}
			s.comparePrimDef(s.buildPrimDef(t), s.buildPrimDef(r))
		}
	}

	for r.at(kwPrimDef) {
		s.setHeader("")
		s.exception(PrimDefGeneral, "caught on line %d:. PRIMITIVE_DEF %s missing.", r.num, r.token(1))
		s.skipPrimDef(r)
	}
	for t.at(kwPrimDef) {
		s.setHeader("")
		s.errorf("Extra PRIMITIVE_DEF %s on line %d", t.token(1), t.num)
		s.skipPrimDef(t)
	}
}
