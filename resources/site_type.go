package resources

import (
	"github.com/daedaleanai/xdlrc/interchange"
)

// NoSiteWire marks a BEL pin or site pin without a site wire.
const NoSiteWire = -1

// BelPinInfo locates a BEL pin inside its site type.
type BelPinInfo struct {
	Bel      StringIdx
	Name     StringIdx
	Index    int
	SiteWire int
	Dir      interchange.Direction
}

// SitePinInfo locates a site pin inside its site type.
type SitePinInfo struct {
	Name     StringIdx
	Index    int
	BelPin   int
	SiteWire int
	Dir      interchange.Direction
}

// Bel is a BEL of a site type with its pins in declaration order.
type Bel struct {
	Name     StringIdx
	Category interchange.BELCategory
	Pins     []int
}

type belPinKey struct {
	bel, pin StringIdx
}

// SiteType holds the cross references of one site type: BEL pins to site
// wires, site pins to BEL pins, and site PIP input to output pins.
type SiteType struct {
	Name  StringIdx
	Index int

	raw   *interchange.SiteType
	strs  *StringTable
	canon func(StringIdx) StringIdx

	belPins         map[belPinKey]BelPinInfo
	belPinByIndex   []BelPinInfo
	belPinToSitePin map[int]int
	sitePins        map[StringIdx]SitePinInfo
	sitePinOrder    []SitePinInfo
	sitePips        map[int]StringIdx
	bels            []Bel
}

func newSiteType(strs *StringTable, canon func(StringIdx) StringIdx, raw *interchange.SiteType, index int) (*SiteType, error) {
	st := &SiteType{
		Name:            canon(raw.Name),
		Index:           index,
		raw:             raw,
		strs:            strs,
		canon:           canon,
		belPins:         make(map[belPinKey]BelPinInfo, len(raw.BelPins)),
		belPinByIndex:   make([]BelPinInfo, len(raw.BelPins)),
		belPinToSitePin: make(map[int]int, len(raw.Pins)),
		sitePins:        make(map[StringIdx]SitePinInfo, len(raw.Pins)),
		sitePinOrder:    make([]SitePinInfo, 0, len(raw.Pins)),
		sitePips:        make(map[int]StringIdx, len(raw.SitePIPs)),
		bels:            make([]Bel, 0, len(raw.Bels)),
	}
	name := strs.Get(raw.Name)

	belPinToSiteWire := make(map[int]int)
	for siteWire, sw := range raw.SiteWires {
		for _, belPin := range sw.Pins {
			belPinToSiteWire[int(belPin)] = siteWire
		}
	}
	siteWireOf := func(belPin int) int {
		if sw, ok := belPinToSiteWire[belPin]; ok {
			return sw
		}
		return NoSiteWire
	}

	for i, bp := range raw.BelPins {
		key := belPinKey{canon(bp.Bel), canon(bp.Name)}
		if _, ok := st.belPins[key]; ok {
			return nil, schemaf("site type %s: duplicate bel pin %s.%s", name, strs.Get(bp.Bel), strs.Get(bp.Name))
		}
		info := BelPinInfo{
			Bel:      key.bel,
			Name:     key.pin,
			Index:    i,
			SiteWire: siteWireOf(i),
			Dir:      bp.Dir,
		}
		st.belPins[key] = info
		st.belPinByIndex[i] = info
	}

	for i, pin := range raw.Pins {
		pinName := canon(pin.Name)
		if _, ok := st.sitePins[pinName]; ok {
			return nil, schemaf("site type %s: duplicate site pin %s", name, strs.Get(pin.Name))
		}
		belPin := int(pin.Belpin)
		if other, ok := st.belPinToSitePin[belPin]; ok {
			return nil, schemaf("site type %s: site pins %s and %s share bel pin %d",
				name, strs.Get(raw.Pins[other].Name), strs.Get(pin.Name), belPin)
		}
		st.belPinToSitePin[belPin] = i
		info := SitePinInfo{
			Name:     pinName,
			Index:    i,
			BelPin:   belPin,
			SiteWire: siteWireOf(belPin),
			Dir:      pin.Dir,
		}
		st.sitePins[pinName] = info
		st.sitePinOrder = append(st.sitePinOrder, info)
	}

	for _, sp := range raw.SitePIPs {
		st.sitePips[int(sp.Inpin)] = canon(raw.BelPins[sp.Outpin].Name)
	}

	for _, bel := range raw.Bels {
		pins := make([]int, len(bel.Pins))
		for i, p := range bel.Pins {
			pins[i] = int(p)
		}
		st.bels = append(st.bels, Bel{Name: canon(bel.Name), Category: bel.Category, Pins: pins})
	}
	return st, nil
}

// Pins returns the site pins in declaration order.
func (st *SiteType) Pins() []SitePinInfo {
	return st.sitePinOrder
}

// Bels returns the BELs in declaration order.
func (st *SiteType) Bels() []Bel {
	return st.bels
}

// AltSiteTypes returns the indices of the alternate site types.
func (st *SiteType) AltSiteTypes() []uint32 {
	return st.raw.AltSiteTypes
}

// BelPinAt returns the BEL pin at index i.
func (st *SiteType) BelPinAt(i int) BelPinInfo {
	return st.belPinByIndex[i]
}

// LookupBelPin returns the BEL pin pin of bel.
func (st *SiteType) LookupBelPin(bel, pin StringIdx) (BelPinInfo, error) {
	info, ok := st.belPins[belPinKey{bel, pin}]
	if !ok {
		return BelPinInfo{}, usagef("site type %s has no bel pin %s.%s",
			st.strs.Get(st.Name), st.strs.Get(bel), st.strs.Get(pin))
	}
	return info, nil
}

// LookupSitePin returns the site pin called pin.
func (st *SiteType) LookupSitePin(pin StringIdx) (SitePinInfo, error) {
	info, ok := st.sitePins[pin]
	if !ok {
		return SitePinInfo{}, usagef("site type %s has no site pin %s", st.strs.Get(st.Name), st.strs.Get(pin))
	}
	return info, nil
}

// IsSitePin reports whether the BEL pin at index belPin backs a site pin.
func (st *SiteType) IsSitePin(belPin int) bool {
	_, ok := st.belPinToSitePin[belPin]
	return ok
}

// SiteWirePins returns the BEL pins joined by siteWire.
func (st *SiteType) SiteWirePins(siteWire int) []uint32 {
	return st.raw.SiteWires[siteWire].Pins
}

// SitePipOutput returns the name of the output pin paired with the site PIP
// input BEL pin at index inBelPin.
func (st *SiteType) SitePipOutput(inBelPin int) (StringIdx, bool) {
	out, ok := st.sitePips[inBelPin]
	return out, ok
}

// Arrow is the direction token of a primitive-def connection.
type Arrow int

const (
	// Outgoing reads "this pin drives the other pin".
	Outgoing Arrow = iota
	// Incoming reads "this pin is driven by the other pin".
	Incoming
)

func (a Arrow) String() string {
	if a == Incoming {
		return "<=="
	}
	return "==>"
}

// ElementConn is one connection line of a primitive-def element.
type ElementConn struct {
	Bel      StringIdx
	Pin      StringIdx
	Arrow    Arrow
	OtherBel StringIdx
	OtherPin StringIdx
}

// ElementConns lists the connections from the BEL pin at index belPin to the
// pins of other BELs sharing its site wire. Pins of the same direction are
// not connected. An inout pin connects in both directions to another inout
// pin.
func (st *SiteType) ElementConns(belPin int) []ElementConn {
	info := st.belPinByIndex[belPin]
	if info.SiteWire == NoSiteWire {
		return nil
	}

	var conns []ElementConn
	add := func(arrow Arrow, other BelPinInfo) {
		conns = append(conns, ElementConn{
			Bel:      info.Bel,
			Pin:      info.Name,
			Arrow:    arrow,
			OtherBel: other.Bel,
			OtherPin: other.Name,
		})
	}

	for _, idx := range st.raw.SiteWires[info.SiteWire].Pins {
		other := st.belPinByIndex[idx]
		if other.Bel == info.Bel {
			continue
		}
		switch info.Dir {
		case interchange.Input:
			if other.Dir != interchange.Input {
				add(Incoming, other)
			}
		case interchange.Output:
			if other.Dir != interchange.Output {
				add(Outgoing, other)
			}
		default:
			switch other.Dir {
			case interchange.Input:
				add(Outgoing, other)
			case interchange.Output:
				add(Incoming, other)
			default:
				add(Incoming, other)
				add(Outgoing, other)
			}
		}
	}
	return conns
}
