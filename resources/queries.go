package resources

import (
	"github.com/daedaleanai/xdlrc/interchange"
)

// BelPin is a BEL pin of a placed site.
type BelPin struct {
	Site      Site
	Index     int
	SiteWire  int
	Dir       interchange.Direction
	IsSitePin bool
}

// SitePin is a site pin of a placed site together with the node of the tile
// wire it connects to.
type SitePin struct {
	Site     Site
	Index    int
	BelPin   int
	SiteWire int
	Node     Node
	Dir      interchange.Direction
}

// SitePip is a site PIP of a placed site.
type SitePip struct {
	Site        Site
	InBelPin    int
	OutBelPin   int
	InSiteWire  int
	OutSiteWire int
}

// Pip is a PIP of a placed tile.
type Pip struct {
	Node0       Node
	Node1       Node
	Directional bool
}

// SitePinNames names the tile wire a site pin connects to.
type SitePinNames struct {
	TileName     StringIdx
	SiteName     StringIdx
	SiteTypeName StringIdx
	PinName      StringIdx
	WireName     StringIdx
}

func (r *Resources) siteView(siteName, siteType string) (Site, *SiteType, error) {
	site, err := r.Site(siteName, siteType)
	if err != nil {
		return Site{}, nil, err
	}
	st, err := r.SiteType(site.SiteTypeIndex)
	if err != nil {
		return Site{}, nil, err
	}
	return site, st, nil
}

func (r *Resources) names(kind string, names ...string) ([]StringIdx, error) {
	ids := make([]StringIdx, len(names))
	for i, name := range names {
		id, ok := r.Strings.Index(name)
		if !ok {
			return nil, usagef("unknown %s %s", kind, name)
		}
		ids[i] = id
	}
	return ids, nil
}

// BelPin returns the BEL pin pin of bel in the siteType view of siteName.
func (r *Resources) BelPin(siteName, siteType, bel, pin string) (BelPin, error) {
	site, st, err := r.siteView(siteName, siteType)
	if err != nil {
		return BelPin{}, err
	}
	ids, err := r.names("bel pin", bel, pin)
	if err != nil {
		return BelPin{}, err
	}
	info, err := st.LookupBelPin(ids[0], ids[1])
	if err != nil {
		return BelPin{}, err
	}
	return BelPin{
		Site:      site,
		Index:     info.Index,
		SiteWire:  info.SiteWire,
		Dir:       info.Dir,
		IsSitePin: st.IsSitePin(info.Index),
	}, nil
}

// SitePin returns the site pin pin in the siteType view of siteName. The
// node lookup fails with ErrNotFound when the tile wire has no node.
func (r *Resources) SitePin(siteName, siteType, pin string) (SitePin, error) {
	site, st, err := r.siteView(siteName, siteType)
	if err != nil {
		return SitePin{}, err
	}
	ids, err := r.names("site pin", pin)
	if err != nil {
		return SitePin{}, err
	}
	info, err := st.LookupSitePin(ids[0])
	if err != nil {
		return SitePin{}, err
	}

	names, err := r.SitePinNames(site, info.Index)
	if err != nil {
		return SitePin{}, err
	}
	if names.SiteTypeName != st.Name || names.PinName != info.Name {
		return SitePin{}, schemaf("site %s pin %s resolves to %s.%s",
			siteName, pin, r.Strings.Get(names.SiteTypeName), r.Strings.Get(names.PinName))
	}

	node, ok := r.LookupNode(site.TileName, names.WireName)
	if !ok {
		return SitePin{}, notFoundf("no node for wire %s/%s of site pin %s.%s",
			r.Strings.Get(site.TileName), r.Strings.Get(names.WireName), siteName, pin)
	}
	return SitePin{
		Site:     site,
		Index:    info.Index,
		BelPin:   info.BelPin,
		SiteWire: info.SiteWire,
		Node:     node,
		Dir:      info.Dir,
	}, nil
}

// SitePip returns the site PIP of bel whose input is pin, in the siteType view
// of siteName.
func (r *Resources) SitePip(siteName, siteType, bel, pin string) (SitePip, error) {
	site, st, err := r.siteView(siteName, siteType)
	if err != nil {
		return SitePip{}, err
	}
	ids, err := r.names("bel pin", bel, pin)
	if err != nil {
		return SitePip{}, err
	}
	in, err := st.LookupBelPin(ids[0], ids[1])
	if err != nil {
		return SitePip{}, err
	}
	if in.Dir != interchange.Input {
		return SitePip{}, schemaf("site pip %s.%s in %s: pin is %s, not input", bel, pin, siteType, in.Dir)
	}

	outName, ok := st.SitePipOutput(in.Index)
	if !ok {
		return SitePip{}, usagef("%s.%s in %s is not a site pip input", bel, pin, siteType)
	}
	out, err := st.LookupBelPin(ids[0], outName)
	if err != nil {
		return SitePip{}, schemaf("site pip %s.%s in %s: output pin %s is not on the same bel",
			bel, pin, siteType, r.Strings.Get(outName))
	}
	if out.Dir != interchange.Output {
		return SitePip{}, schemaf("site pip %s.%s in %s: output pin %s is %s, not output",
			bel, pin, siteType, r.Strings.Get(outName), out.Dir)
	}

	return SitePip{
		Site:        site,
		InBelPin:    in.Index,
		OutBelPin:   out.Index,
		InSiteWire:  in.SiteWire,
		OutSiteWire: out.SiteWire,
	}, nil
}

// Pip returns the PIP between wire0 and wire1 of tileName and the nodes on
// either side.
func (r *Resources) Pip(tileName, wire0, wire1 string) (Pip, error) {
	tile, err := r.Tile(tileName)
	if err != nil {
		return Pip{}, err
	}
	tt, err := r.TileType(tile.TypeIdx)
	if err != nil {
		return Pip{}, err
	}
	ids, err := r.names("wire", wire0, wire1)
	if err != nil {
		return Pip{}, err
	}
	pip, err := tt.Pip(ids[0], ids[1])
	if err != nil {
		return Pip{}, err
	}

	node0, err := r.Node(tileName, wire0)
	if err != nil {
		return Pip{}, err
	}
	node1, err := r.Node(tileName, wire1)
	if err != nil {
		return Pip{}, err
	}
	return Pip{Node0: node0, Node1: node1, Directional: pip.Directional}, nil
}

// SitePinNames returns the tile wire connected to the site pin at index
// sitePinIndex of site. Tile wires are only recorded for primary site pins,
// so the pins of an alternate view are first translated to primary pins.
func (r *Resources) SitePinNames(site Site, sitePinIndex int) (SitePinNames, error) {
	dev := r.Device
	tile := &dev.TileList[site.TileIndex]
	slot := &dev.TileTypeList[tile.Type].SiteTypes[site.Slot]
	primary := &dev.SiteTypeList[slot.PrimaryType]

	siteType := primary
	primaryPin := sitePinIndex
	if !site.IsPrimary() {
		if site.AltIndex >= len(primary.AltSiteTypes) || site.AltIndex >= len(slot.AltPinsToPrimaryPins) {
			return SitePinNames{}, schemaf("site %s: no pin map for alternate %d",
				r.Strings.Get(tile.Sites[site.SiteIndex].Name), site.AltIndex)
		}
		siteType = &dev.SiteTypeList[primary.AltSiteTypes[site.AltIndex]]
		pins := slot.AltPinsToPrimaryPins[site.AltIndex].Pins
		if sitePinIndex >= len(pins) {
			return SitePinNames{}, usagef("site %s: alternate pin %d has no primary pin",
				r.Strings.Get(tile.Sites[site.SiteIndex].Name), sitePinIndex)
		}
		primaryPin = int(pins[sitePinIndex])
	}
	if sitePinIndex >= len(siteType.Pins) {
		return SitePinNames{}, usagef("site %s: pin index %d out of range",
			r.Strings.Get(tile.Sites[site.SiteIndex].Name), sitePinIndex)
	}

	return SitePinNames{
		TileName:     r.Canonical(tile.Name),
		SiteName:     r.Canonical(tile.Sites[site.SiteIndex].Name),
		SiteTypeName: r.Canonical(siteType.Name),
		PinName:      r.Canonical(siteType.Pins[sitePinIndex].Name),
		WireName:     r.Canonical(slot.PrimaryPinsToTileWires[primaryPin]),
	}, nil
}
