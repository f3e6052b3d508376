package resources

import (
	"github.com/daedaleanai/xdlrc/interchange"
)

type wirePair struct {
	wire0, wire1 int
}

// TileType holds the wire and PIP lookups of one tile type.
type TileType struct {
	Name  StringIdx
	Index int

	raw     *interchange.TileType
	strs    *StringTable
	canon   func(StringIdx) StringIdx
	wireIDs map[StringIdx]int
	names   []StringIdx
	pips    map[wirePair]int
}

func newTileType(strs *StringTable, canon func(StringIdx) StringIdx, raw *interchange.TileType, index int) *TileType {
	tt := &TileType{
		Name:    canon(raw.Name),
		Index:   index,
		raw:     raw,
		strs:    strs,
		canon:   canon,
		wireIDs: make(map[StringIdx]int, len(raw.Wires)),
		names:   make([]StringIdx, 0, len(raw.Wires)),
		pips:    make(map[wirePair]int, len(raw.Pips)),
	}

	// A name listed twice keeps its first position and its last id.
	for id, wire := range raw.Wires {
		name := canon(wire)
		if _, ok := tt.wireIDs[name]; !ok {
			tt.names = append(tt.names, name)
		}
		tt.wireIDs[name] = id
	}

	for i, pip := range raw.Pips {
		tt.pips[wirePair{int(pip.Wire0), int(pip.Wire1)}] = i
		if !pip.Directional {
			tt.pips[wirePair{int(pip.Wire1), int(pip.Wire0)}] = i
		}
	}
	return tt
}

// WireNames returns the distinct wire names of the tile type in declaration order.
func (tt *TileType) WireNames() []StringIdx {
	return tt.names
}

// WireName returns the name of the local wire id.
func (tt *TileType) WireName(id uint32) StringIdx {
	return tt.canon(tt.raw.Wires[id])
}

// WireID returns the local id of the wire called name.
func (tt *TileType) WireID(name StringIdx) (int, bool) {
	id, ok := tt.wireIDs[name]
	return id, ok
}

// Pips returns the PIPs of the tile type in declaration order.
func (tt *TileType) Pips() []interchange.PIP {
	return tt.raw.Pips
}

// SiteSlot returns the site type slot at index slot.
func (tt *TileType) SiteSlot(slot uint32) *interchange.SiteTypeInTileType {
	return &tt.raw.SiteTypes[slot]
}

// Pip returns the PIP between the wires called wire0 and wire1. Non-directional
// PIPs are found in either order.
func (tt *TileType) Pip(wire0, wire1 StringIdx) (interchange.PIP, error) {
	id0, ok := tt.wireIDs[wire0]
	if !ok {
		return interchange.PIP{}, usagef("tile type %s has no wire %s", tt.strs.Get(tt.Name), tt.strs.Get(wire0))
	}
	id1, ok := tt.wireIDs[wire1]
	if !ok {
		return interchange.PIP{}, usagef("tile type %s has no wire %s", tt.strs.Get(tt.Name), tt.strs.Get(wire1))
	}
	i, ok := tt.pips[wirePair{id0, id1}]
	if !ok {
		return interchange.PIP{}, notFoundf("tile type %s has no pip %s -> %s",
			tt.strs.Get(tt.Name), tt.strs.Get(wire0), tt.strs.Get(wire1))
	}
	return tt.raw.Pips[i], nil
}
