package compare

import (
	"strings"

	"github.com/daedaleanai/xdlrc/util"
)

const routeThroughMark = "_ROUTETHROUGH"

// WireRef is a (tile, wire) pair named by a conn declaration.
type WireRef struct {
	Tile string
	Wire string
}

func (w WireRef) String() string {
	return w.Tile + " " + w.Wire
}

// PinWire is a pinwire declaration of a site, or a pin declaration of a
// primitive_def or an element.
type PinWire struct {
	Name string
	Dir  string
	Wire string
}

func (pw PinWire) String() string {
	return strings.TrimSpace(pw.Name + " " + pw.Dir + " " + pw.Wire)
}

type pipKey struct {
	in, out string
}

// TileStruct holds the declarations of one tile block.
type TileStruct struct {
	Name string
	Type string

	// Wires maps each wire to its conns.
	Wires map[string]map[WireRef]bool
	// Pips maps each input wire to its output wires.
	Pips map[string]map[string]bool
	// Sites are keyed by "NAME TYPE" in declaration order.
	Sites     []string
	PinWires  map[string]map[PinWire]bool
	Bonds     map[string]string
	routeThru map[pipKey]bool
}

func newTileStruct(name, typ string) *TileStruct {
	return &TileStruct{
		Name:      name,
		Type:      typ,
		Wires:     map[string]map[WireRef]bool{},
		Pips:      map[string]map[string]bool{},
		PinWires:  map[string]map[PinWire]bool{},
		Bonds:     map[string]string{},
		routeThru: map[pipKey]bool{},
	}
}

// buildTile reads the declarations of the tile whose header is the current
// line, up to its tile_summary.
func (s *Session) buildTile(r *reader) *TileStruct {
	tile := newTileStruct(r.line[3], r.line[4])
	r.next()

	for r.line != nil && !r.atAny(kwTileSummary, kwTile, kwPrimDefs) {
		switch r.line[0] {
		case kwWire:
			conns := map[WireRef]bool{}
			tile.Wires[r.line[1]] = conns
			r.next()
			for r.at(kwConn) {
				conns[WireRef{r.line[1], r.line[2]}] = true
				r.next()
			}

		case kwPip:
			in, out := r.token(2), r.token(4)
			if tile.Pips[in] == nil {
				tile.Pips[in] = map[string]bool{}
			}
			tile.Pips[in][out] = true
			for i := 5; i < len(r.line); i++ {
				if strings.Contains(r.line[i], routeThroughMark) {
					tile.routeThru[pipKey{in, out}] = true
				}
			}
			r.next()

		case kwSite:
			key := r.line[1] + " " + r.line[2]
			tile.Sites = append(tile.Sites, key)
			tile.Bonds[key] = r.line[3]
			pinWires := map[PinWire]bool{}
			tile.PinWires[key] = pinWires
			r.next()
			for r.at(kwPinwire) {
				pinWires[PinWire{r.line[1], r.line[2], r.line[3]}] = true
				r.next()
			}

		default:
			s.setHeader("Tile: %s Type: %s", tile.Name, tile.Type)
			s.errorf("Unexpected %s declaration on line %d of %s", r.line[0], r.num, r.name)
			r.next()
		}
	}
	return tile
}

func symmetricDifference[K comparable](a, b map[K]bool) []K {
	diff := []K{}
	for k := range a {
		if !b[k] {
			diff = append(diff, k)
		}
	}
	for k := range b {
		if !a[k] {
			diff = append(diff, k)
		}
	}
	return diff
}

func sortedRefs(refs []WireRef) []WireRef {
	return util.SliceOrderedBy(refs, func(w *WireRef) string { return w.String() })
}

func sortedPinWires(pws []PinWire) []PinWire {
	return util.SliceOrderedBy(pws, func(pw *PinWire) string { return pw.String() })
}

func keySet[V any](m map[string]V) map[string]bool {
	set := make(map[string]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return set
}

// compareTiles records the differences between the test tile and the
// reference tile.
func (s *Session) compareTiles(test, ref *TileStruct) {
	s.setHeader("Tile: %s Type: %s", test.Name, test.Type)
	if test.Name != ref.Name {
		s.errorf("Tile names do not match: %s %s", test.Name, ref.Name)
		return
	}
	s.compareWires(test, ref)
	s.comparePips(test, ref)
	s.compareSites(test, ref)
}

func (s *Session) compareWires(test, ref *TileStruct) {
	testWires, refWires := keySet(test.Wires), keySet(ref.Wires)
	for _, wire := range util.OrderedSlice(symmetricDifference(testWires, refWires)) {
		known := s.oracle.Wire(test.Name, wire)
		switch {
		case testWires[wire] && known:
			s.exception(ExtraWire, "Wire: %s", wire)
		case testWires[wire]:
			s.errorf("Extra wire %s", wire)
		case known:
			s.exception(NodelessWire, "Wire: %s", wire)
		default:
			s.exception(MissingWire, "Wire: %s", wire)
		}
	}

	for _, wire := range util.OrderedKeys(test.Wires) {
		refConns, ok := ref.Wires[wire]
		if !ok {
			continue
		}
		conns := test.Wires[wire]
		for _, conn := range sortedRefs(symmetricDifference(conns, refConns)) {
			known := s.oracle.Wire(conn.Tile, conn.Wire)
			switch {
			case conns[conn] && known:
				s.exception(ExtraWire, "Wire: %s Conn: %s", wire, conn)
			case conns[conn]:
				s.errorf("Extra conn %s for wire %s", conn, wire)
			case known:
				s.exception(NodelessWire, "Wire: %s Conn: %s", wire, conn)
			default:
				s.errorf("Missing conn %s for wire %s", conn, wire)
			}
		}
	}
}

func (s *Session) comparePips(test, ref *TileStruct) {
	testIns, refIns := keySet(test.Pips), keySet(ref.Pips)
	for _, in := range util.OrderedSlice(symmetricDifference(testIns, refIns)) {
		if testIns[in] {
			outs := util.OrderedKeys(test.Pips[in])
			switch {
			case s.oracle.Pip(test.Name, in, outs[0]):
				s.exception(ExtraPip, "Pip: %s %v", in, outs)
			case len(outs) == 1 && s.oracle.Wire(test.Name, in) && s.oracle.Wire(test.Name, outs[0]):
				s.exception(ExtraInterchangePip, "Pip: %s %v", in, outs)
			default:
				s.errorf("Extra pip %s %v", in, outs)
			}
			continue
		}

		outs := util.OrderedKeys(ref.Pips[in])
		for _, out := range outs {
			if ref.routeThru[pipKey{in, out}] {
				s.exception(RouteThrough, "Pip: %s %s", in, out)
			} else {
				s.errorf("Missing pip %s %s", in, out)
			}
		}
	}

	for _, in := range util.OrderedKeys(test.Pips) {
		refOuts, ok := ref.Pips[in]
		if !ok {
			continue
		}
		outs := test.Pips[in]
		for _, out := range util.OrderedSlice(symmetricDifference(outs, refOuts)) {
			switch {
			case outs[out] && s.oracle.Wire(test.Name, out):
				s.exception(ExtraWire, "Pip: %s %s", in, out)
			case outs[out]:
				s.errorf("Extra pip %s %s", in, out)
			case ref.routeThru[pipKey{in, out}]:
				s.exception(RouteThrough, "Pip: %s %s", in, out)
			default:
				s.errorf("Missing pip %s %s", in, out)
			}
		}
	}
}

func (s *Session) compareSites(test, ref *TileStruct) {
	// refKey maps a test site key to the reference site it is compared with.
	refKey := map[string]string{}

	if len(test.Sites) != len(ref.Sites) {
		testSites, refSites := keySet(test.PinWires), keySet(ref.PinWires)
		for _, site := range util.OrderedSlice(symmetricDifference(testSites, refSites)) {
			if testSites[site] {
				s.errorf("Extra site %s", site)
			} else {
				s.errorf("Missing site %s", site)
			}
		}
		for _, site := range test.Sites {
			if refSites[site] {
				refKey[site] = site
			}
		}
	} else {
		for i, site := range test.Sites {
			switch {
			case site == ref.Sites[i]:
				refKey[site] = site
			case s.oracle.Site(test.Name, strings.Fields(site)[0]):
				refKey[site] = ref.Sites[i]
			default:
				s.errorf("Site mismatch %s %s", site, ref.Sites[i])
			}
		}
	}

	for _, site := range test.Sites {
		other, ok := refKey[site]
		if !ok {
			continue
		}
		if test.Bonds[site] != ref.Bonds[other] {
			s.exception(PkgSpecific, "Site: %s Bond: %s %s", site, test.Bonds[site], ref.Bonds[other])
		}
		for _, pw := range sortedPinWires(symmetricDifference(test.PinWires[site], ref.PinWires[other])) {
			s.errorf("PinWire mismatch for %s in site %s", pw, site)
		}
	}
}
