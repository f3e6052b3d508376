package interchange

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSchema is the cause of every error reporting a malformed device.
var ErrSchema = errors.New("schema inconsistency")

func schemaErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrSchema, format, args...)
}

// Validate checks that every cross reference of the device is in range, that
// no two tiles share a (row, col) position and that no wire is in two nodes.
func (d *Device) Validate() error {
	numStrs := len(d.StrList)
	str := func(idx StringIdx, what string, args ...interface{}) error {
		if int(idx) >= numStrs {
			return schemaErrorf("%s: string index %d out of range (%d strings)",
				fmt.Sprintf(what, args...), idx, numStrs)
		}
		return nil
	}

	for stIdx := range d.SiteTypeList {
		st := &d.SiteTypeList[stIdx]
		if err := str(st.Name, "site type %d name", stIdx); err != nil {
			return err
		}
		numBelPins := uint32(len(st.BelPins))
		for i, bp := range st.BelPins {
			if err := str(bp.Name, "site type %d bel pin %d", stIdx, i); err != nil {
				return err
			}
			if err := str(bp.Bel, "site type %d bel pin %d bel", stIdx, i); err != nil {
				return err
			}
		}
		for i, pin := range st.Pins {
			if err := str(pin.Name, "site type %d pin %d", stIdx, i); err != nil {
				return err
			}
			if pin.Belpin >= numBelPins {
				return schemaErrorf("site type %s pin %d: bel pin %d out of range", d.StrList[st.Name], i, pin.Belpin)
			}
		}
		for i, bel := range st.Bels {
			if err := str(bel.Name, "site type %d bel %d", stIdx, i); err != nil {
				return err
			}
			for _, p := range bel.Pins {
				if p >= numBelPins {
					return schemaErrorf("site type %s bel %s: bel pin %d out of range", d.StrList[st.Name], d.StrList[bel.Name], p)
				}
			}
		}
		for i, sp := range st.SitePIPs {
			if sp.Inpin >= numBelPins || sp.Outpin >= numBelPins {
				return schemaErrorf("site type %s site pip %d: bel pin out of range", d.StrList[st.Name], i)
			}
		}
		for i, sw := range st.SiteWires {
			for _, p := range sw.Pins {
				if p >= numBelPins {
					return schemaErrorf("site type %s site wire %d: bel pin %d out of range", d.StrList[st.Name], i, p)
				}
			}
		}
		for _, alt := range st.AltSiteTypes {
			if int(alt) >= len(d.SiteTypeList) {
				return schemaErrorf("site type %s: alternate site type %d out of range", d.StrList[st.Name], alt)
			}
		}
	}

	for ttIdx := range d.TileTypeList {
		tt := &d.TileTypeList[ttIdx]
		if err := str(tt.Name, "tile type %d name", ttIdx); err != nil {
			return err
		}
		for _, w := range tt.Wires {
			if err := str(w, "tile type %d wire", ttIdx); err != nil {
				return err
			}
		}
		numWires := uint32(len(tt.Wires))
		for i, pip := range tt.Pips {
			if pip.Wire0 >= numWires || pip.Wire1 >= numWires {
				return schemaErrorf("tile type %s pip %d: wire out of range", d.StrList[tt.Name], i)
			}
		}
		for slot, stt := range tt.SiteTypes {
			if int(stt.PrimaryType) >= len(d.SiteTypeList) {
				return schemaErrorf("tile type %s site slot %d: site type %d out of range", d.StrList[tt.Name], slot, stt.PrimaryType)
			}
			primary := &d.SiteTypeList[stt.PrimaryType]
			if len(stt.PrimaryPinsToTileWires) != len(primary.Pins) {
				return schemaErrorf("tile type %s site slot %d: %d pin wires for %d pins of %s",
					d.StrList[tt.Name], slot, len(stt.PrimaryPinsToTileWires), len(primary.Pins), d.StrList[primary.Name])
			}
			for _, w := range stt.PrimaryPinsToTileWires {
				if err := str(w, "tile type %d site slot %d pin wire", ttIdx, slot); err != nil {
					return err
				}
			}
			if len(stt.AltPinsToPrimaryPins) > len(primary.AltSiteTypes) {
				return schemaErrorf("tile type %s site slot %d: more alternate pin maps than alternate site types", d.StrList[tt.Name], slot)
			}
			for altIdx, pp := range stt.AltPinsToPrimaryPins {
				for _, p := range pp.Pins {
					if int(p) >= len(primary.Pins) {
						return schemaErrorf("tile type %s site slot %d alternate %d: primary pin %d out of range",
							d.StrList[tt.Name], slot, altIdx, p)
					}
				}
			}
		}
	}

	type position struct{ row, col uint16 }
	positions := make(map[position]int, len(d.TileList))
	for tileIdx := range d.TileList {
		tile := &d.TileList[tileIdx]
		if err := str(tile.Name, "tile %d name", tileIdx); err != nil {
			return err
		}
		if int(tile.Type) >= len(d.TileTypeList) {
			return schemaErrorf("tile %s: tile type %d out of range", d.StrList[tile.Name], tile.Type)
		}
		pos := position{tile.Row, tile.Col}
		if other, ok := positions[pos]; ok {
			return schemaErrorf("tiles %s and %s share row %d col %d",
				d.StrList[d.TileList[other].Name], d.StrList[tile.Name], tile.Row, tile.Col)
		}
		positions[pos] = tileIdx

		numSlots := len(d.TileTypeList[tile.Type].SiteTypes)
		for _, site := range tile.Sites {
			if err := str(site.Name, "tile %s site", d.StrList[tile.Name]); err != nil {
				return err
			}
			if int(site.Type) >= numSlots {
				return schemaErrorf("site %s: site slot %d out of range", d.StrList[site.Name], site.Type)
			}
		}
	}

	for i, w := range d.Wires {
		if err := str(w.Tile, "wire %d tile", i); err != nil {
			return err
		}
		if err := str(w.Wire, "wire %d name", i); err != nil {
			return err
		}
	}
	type wireName struct{ tile, wire string }
	owners := make(map[wireName]int, len(d.Wires))
	for i, n := range d.Nodes {
		for _, w := range n.Wires {
			if int(w) >= len(d.Wires) {
				return schemaErrorf("node %d: wire %d out of range", i, w)
			}
			name := wireName{d.StrList[d.Wires[w].Tile], d.StrList[d.Wires[w].Wire]}
			if other, ok := owners[name]; ok && other != i {
				return schemaErrorf("wire %s/%s in nodes %d and %d", name.tile, name.wire, other, i)
			}
			owners[name] = i
		}
	}
	return nil
}
