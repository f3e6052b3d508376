package compare

import (
	"strings"

	"github.com/daedaleanai/xdlrc/util"
)

const (
	carry4Mark     = "CARRY4_"
	outgoingArrow  = "==>"
	elementCin     = "CIN"
	elementPrecyin = "PRECYINIT"
)

// Conn is an element connection, always stored from the driving pin to the
// driven pin.
type Conn struct {
	Bel1, Pin1 string
	Bel2, Pin2 string
}

func (c Conn) String() string {
	return c.Bel1 + " " + c.Pin1 + " ==> " + c.Bel2 + " " + c.Pin2
}

// Element holds the declarations of one element block.
type Element struct {
	Name  string
	Pins  map[PinWire]bool
	Conns map[Conn]bool
	Cfg   map[string]bool
}

// PrimDef holds the declarations of one primitive_def block.
type PrimDef struct {
	Name     string
	Pins     map[string]PinWire
	Elements map[string]*Element
	// CfgOnly lists elements declared without pins.
	CfgOnly map[string]bool
	Cfg     map[string]bool
}

// buildPrimDef reads the declarations of the primitive_def whose header is
// the current line, up to the next primitive_def or the summary.
func (s *Session) buildPrimDef(r *reader) *PrimDef {
	def := &PrimDef{
		Name:     r.token(1),
		Pins:     map[string]PinWire{},
		Elements: map[string]*Element{},
		CfgOnly:  map[string]bool{},
		Cfg:      map[string]bool{},
	}
	r.next()

	for r.line != nil && !r.atAny(kwPrimDef, kwSummary) {
		switch r.line[0] {
		case kwPin:
			def.Pins[r.line[1]] = PinWire{Name: r.line[1], Wire: r.line[2], Dir: r.line[3]}
			r.next()

		case kwElement:
			name := r.line[1]
			if r.line[2] == "0" {
				def.CfgOnly[name] = true
				r.next()
				for r.at(kwCfg) {
					r.next()
				}
				continue
			}
			def.Elements[name] = readElement(r)

		case kwCfg:
			for _, bit := range r.line[1:] {
				def.Cfg[bit] = true
			}
			r.next()

		default:
			s.setHeader("Prim_Def %s", def.Name)
			s.errorf("Unexpected %s declaration on line %d of %s", r.line[0], r.num, r.name)
			r.next()
		}
	}
	return def
}

func readElement(r *reader) *Element {
	elem := &Element{
		Name:  r.line[1],
		Pins:  map[PinWire]bool{},
		Conns: map[Conn]bool{},
		Cfg:   map[string]bool{},
	}
	r.next()

	for r.line != nil {
		switch r.line[0] {
		case kwPin:
			elem.Pins[PinWire{Name: r.line[1], Dir: r.line[2]}] = true
		case kwConn:
			t := r.line
			if t[3] == outgoingArrow {
				elem.Conns[Conn{t[1], t[2], t[4], t[5]}] = true
			} else {
				elem.Conns[Conn{t[4], t[5], t[1], t[2]}] = true
			}
		case kwCfg:
			for _, bit := range r.line[1:] {
				elem.Cfg[bit] = true
			}
		default:
			return elem
		}
		r.next()
	}
	return elem
}

func isCarryChain(name string) bool {
	return name == elementCin || name == elementPrecyin
}

// comparePrimDef records the differences between the test primitive_def and
// the reference primitive_def of the same name.
func (s *Session) comparePrimDef(test, ref *PrimDef) {
	s.setHeader("Prim_Def %s", test.Name)

	testPins, refPins := keySet(test.Pins), keySet(ref.Pins)
	for _, pin := range util.OrderedSlice(symmetricDifference(testPins, refPins)) {
		if testPins[pin] {
			s.errorf("Extra pin %s", test.Pins[pin])
		} else {
			s.errorf("Missing pin %s", ref.Pins[pin])
		}
	}
	for _, pin := range util.OrderedKeys(test.Pins) {
		if other, ok := ref.Pins[pin]; ok && other != test.Pins[pin] {
			s.errorf("Pin mismatch %s %s", test.Pins[pin], other)
		}
	}

	if len(symmetricDifference(test.Cfg, ref.Cfg)) > 0 {
		s.exception(Cfg, "cfg %v %v", util.OrderedKeys(test.Cfg), util.OrderedKeys(ref.Cfg))
	}
	for _, name := range util.OrderedKeys(ref.CfgOnly) {
		if !test.CfgOnly[name] {
			s.exception(CfgElement, "Element: %s", name)
		}
	}

	testElems, refElems := keySet(test.Elements), keySet(ref.Elements)
	for _, name := range util.OrderedSlice(symmetricDifference(testElems, refElems)) {
		switch {
		case testElems[name] && strings.Contains(name, "CARRY4"):
			s.exception(Carry4, "Extra element %s", name)
		case testElems[name]:
			s.errorf("Extra element %s", name)
		case strings.Contains(name, routeThroughMark):
			s.exception(RouteThrough, "Missing element %s", name)
		default:
			s.errorf("Missing element %s", name)
		}
	}
	for _, name := range util.OrderedKeys(test.Elements) {
		if other, ok := ref.Elements[name]; ok {
			s.compareElements(test.Elements[name], other)
		}
	}
}

func (s *Session) compareElements(test, ref *Element) {
	name := test.Name

	for _, pin := range sortedPinWires(symmetricDifference(test.Pins, ref.Pins)) {
		switch {
		case !test.Pins[pin]:
			s.errorf("Missing element pin %s Element: %s", pin, name)
		case strings.Contains(pin.Name, carry4Mark):
			s.exception(Carry4, "Element: %s Pin: %s", name, pin)
		case isCarryChain(name):
			s.exception(CinPrecyinit, "Extra pin %s Element: %s", pin, name)
		default:
			s.errorf("Extra element pin %s Element: %s", pin, name)
		}
	}

	conns := symmetricDifference(test.Conns, ref.Conns)
	conns = util.SliceOrderedBy(conns, func(c *Conn) string { return c.String() })
	for _, conn := range conns {
		switch {
		case !test.Conns[conn]:
			s.errorf("Missing element conn %s Element: %s", conn, name)
		case strings.Contains(conn.Bel1, carry4Mark) || strings.Contains(conn.Bel2, carry4Mark):
			s.exception(Carry4, "Conn to extra CARRY4 element Conn: %s", conn)
		case isCarryChain(name):
			s.exception(CinPrecyinit, "Conn %s Element: %s", conn, name)
		default:
			s.errorf("Extra element conn %s Element: %s", conn, name)
		}
	}

	if len(symmetricDifference(test.Cfg, ref.Cfg)) == 0 {
		return
	}
	testCfg, refCfg := util.OrderedKeys(test.Cfg), util.OrderedKeys(ref.Cfg)
	hasCarry4 := false
	for _, bit := range testCfg {
		hasCarry4 = hasCarry4 || strings.Contains(bit, carry4Mark)
	}
	switch {
	case len(testCfg) == 0:
		s.exception(CfgElement, "Element: %s", name)
	case isCarryChain(name):
		s.exception(CinPrecyinit, "Element: %s CFG: %v", name, testCfg)
	case hasCarry4:
		s.exception(Carry4, "Element: %s CFG: %v", name, testCfg)
	default:
		s.errorf("CFG mismatch Element: %s %v %v", name, testCfg, refCfg)
	}
}
