// Package resources builds lookups over an interchange device: tiles and sites
// by name, wires to nodes, and the per type resolvers for site types and tile
// types. Every index is built once, either in New or lazily on first use, and
// never changes afterwards. A Resources value is not safe for concurrent use.
package resources

import (
	"github.com/daedaleanai/xdlrc/interchange"
	"github.com/daedaleanai/xdlrc/log"
)

// PrimaryView is the AltIndex of a site viewed through its primary site type.
const PrimaryView = -1

// Tile identifies a tile of the device.
type Tile struct {
	Index    int
	Name     StringIdx
	TypeIdx  int
	Row, Col int
}

// Site is one view of a placed site: the same physical site has one Site per
// compatible site type.
type Site struct {
	TileIndex     int
	TileName      StringIdx
	SiteIndex     int
	Slot          uint32
	SiteTypeIndex int
	AltIndex      int
}

// IsPrimary reports whether s is the primary site type view.
func (s Site) IsPrimary() bool {
	return s.AltIndex == PrimaryView
}

// Node identifies a node of the device.
type Node struct {
	Index int
}

type wireKey struct {
	tile, wire StringIdx
}

// Resources is the device index.
type Resources struct {
	Device  *interchange.Device
	Strings *StringTable

	canon         []StringIdx
	tiles         map[StringIdx]Tile
	tileList      []Tile
	sites         []Site
	siteViews     map[StringIdx][]int
	siteTypeNames map[StringIdx]int

	siteTypes map[int]*SiteType
	tileTypes map[int]*TileType
	nodes     map[wireKey]int
}

// New validates dev and builds its name indices.
func New(dev *interchange.Device) (*Resources, error) {
	if err := dev.Validate(); err != nil {
		return nil, err
	}

	r := &Resources{
		Device:        dev,
		Strings:       NewStringTable(dev.StrList),
		tiles:         make(map[StringIdx]Tile, len(dev.TileList)),
		tileList:      make([]Tile, 0, len(dev.TileList)),
		siteViews:     make(map[StringIdx][]int),
		siteTypeNames: make(map[StringIdx]int, len(dev.SiteTypeList)),
		siteTypes:     make(map[int]*SiteType),
		tileTypes:     make(map[int]*TileType),
	}
	strs := r.Strings

	r.canon = make([]StringIdx, strs.Len())
	for i := range r.canon {
		r.canon[i], _ = strs.Index(strs.Get(StringIdx(i)))
	}

	for i, st := range dev.SiteTypeList {
		name := r.Canonical(st.Name)
		if prev, ok := r.siteTypeNames[name]; ok {
			log.Debug("Site types %d and %d are both named %s, keeping %d.\n", prev, i, strs.Get(name), i)
		}
		r.siteTypeNames[name] = i
	}

	for tileIdx, tile := range dev.TileList {
		tileName := r.Canonical(tile.Name)
		if _, ok := r.tiles[tileName]; ok {
			return nil, schemaf("duplicate tile name %s", strs.Get(tileName))
		}
		r.tiles[tileName] = Tile{
			Index:   tileIdx,
			Name:    tileName,
			TypeIdx: int(tile.Type),
			Row:     int(tile.Row),
			Col:     int(tile.Col),
		}
		r.tileList = append(r.tileList, r.tiles[tileName])

		tileType := &dev.TileTypeList[tile.Type]
		for siteIdx, site := range tile.Sites {
			siteName := r.Canonical(site.Name)
			if _, ok := r.siteViews[siteName]; ok {
				return nil, schemaf("duplicate site name %s in tile %s", strs.Get(siteName), strs.Get(tileName))
			}

			primary := int(tileType.SiteTypes[site.Type].PrimaryType)
			view := Site{
				TileIndex:     tileIdx,
				TileName:      tileName,
				SiteIndex:     siteIdx,
				Slot:          site.Type,
				SiteTypeIndex: primary,
				AltIndex:      PrimaryView,
			}
			views := []int{len(r.sites)}
			r.sites = append(r.sites, view)

			for altIdx, alt := range dev.SiteTypeList[primary].AltSiteTypes {
				view.SiteTypeIndex = int(alt)
				view.AltIndex = altIdx
				views = append(views, len(r.sites))
				r.sites = append(r.sites, view)
			}
			r.siteViews[siteName] = views
		}
	}
	return r, nil
}

// Canonical maps id to the first handle of its text so that duplicated
// strings compare equal.
func (r *Resources) Canonical(id StringIdx) StringIdx {
	return r.canon[id]
}

func (r *Resources) lookupString(kind, s string) (StringIdx, error) {
	id, ok := r.Strings.Index(s)
	if !ok {
		return 0, notFoundf("no %s named %s", kind, s)
	}
	return id, nil
}

// Tile returns the tile called name.
func (r *Resources) Tile(name string) (Tile, error) {
	id, err := r.lookupString("tile", name)
	if err != nil {
		return Tile{}, err
	}
	tile, ok := r.tiles[id]
	if !ok {
		return Tile{}, notFoundf("no tile named %s", name)
	}
	return tile, nil
}

// Tiles returns every tile in storage order.
func (r *Resources) Tiles() []Tile {
	return r.tileList
}

// SiteTypeIndex returns the index of the site type called name. With
// duplicated names the last site type wins.
func (r *Resources) SiteTypeIndex(name string) (int, error) {
	id, err := r.lookupString("site type", name)
	if err != nil {
		return 0, err
	}
	idx, ok := r.siteTypeNames[id]
	if !ok {
		return 0, notFoundf("no site type named %s", name)
	}
	return idx, nil
}

// SiteViews returns every view of the site called name, primary first.
func (r *Resources) SiteViews(name string) ([]Site, error) {
	id, err := r.lookupString("site", name)
	if err != nil {
		return nil, err
	}
	views, ok := r.siteViews[id]
	if !ok {
		return nil, notFoundf("no site named %s", name)
	}
	sites := make([]Site, len(views))
	for i, v := range views {
		sites[i] = r.sites[v]
	}
	return sites, nil
}

// Site returns the view of site siteName through the site type called siteType.
func (r *Resources) Site(siteName, siteType string) (Site, error) {
	siteID, err := r.lookupString("site", siteName)
	if err != nil {
		return Site{}, err
	}
	typeID, err := r.lookupString("site type", siteType)
	if err != nil {
		return Site{}, err
	}
	for _, v := range r.siteViews[siteID] {
		site := r.sites[v]
		if r.Canonical(r.Device.SiteTypeList[site.SiteTypeIndex].Name) == typeID {
			return site, nil
		}
	}
	return Site{}, notFoundf("site %s has no %s view", siteName, siteType)
}

// PrimarySite returns the primary view of the site called name.
func (r *Resources) PrimarySite(name StringIdx) (Site, error) {
	for _, v := range r.siteViews[r.Canonical(name)] {
		if r.sites[v].IsPrimary() {
			return r.sites[v], nil
		}
	}
	return Site{}, notFoundf("no site named %s", r.Strings.Get(name))
}

// SiteType returns the resolver for the site type at index idx.
func (r *Resources) SiteType(idx int) (*SiteType, error) {
	if st, ok := r.siteTypes[idx]; ok {
		return st, nil
	}
	if idx < 0 || idx >= len(r.Device.SiteTypeList) {
		return nil, usagef("site type index %d out of range", idx)
	}
	st, err := newSiteType(r.Strings, r.Canonical, &r.Device.SiteTypeList[idx], idx)
	if err != nil {
		return nil, err
	}
	r.siteTypes[idx] = st
	return st, nil
}

// TileType returns the resolver for the tile type at index idx.
func (r *Resources) TileType(idx int) (*TileType, error) {
	if tt, ok := r.tileTypes[idx]; ok {
		return tt, nil
	}
	if idx < 0 || idx >= len(r.Device.TileTypeList) {
		return nil, usagef("tile type index %d out of range", idx)
	}
	tt := newTileType(r.Strings, r.Canonical, &r.Device.TileTypeList[idx], idx)
	r.tileTypes[idx] = tt
	return tt, nil
}

func (r *Resources) buildNodeIndex() {
	log.Debug("Building node index over %d nodes.\n", len(r.Device.Nodes))
	r.nodes = make(map[wireKey]int, len(r.Device.Wires))
	for nodeIdx, node := range r.Device.Nodes {
		for _, w := range node.Wires {
			wire := r.Device.Wires[w]
			r.nodes[wireKey{r.Canonical(wire.Tile), r.Canonical(wire.Wire)}] = nodeIdx
		}
	}
}

// LookupNode returns the node containing wire wireName of tile tileName. The
// wire to node index is built on the first call.
func (r *Resources) LookupNode(tileName, wireName StringIdx) (Node, bool) {
	if r.nodes == nil {
		r.buildNodeIndex()
	}
	idx, ok := r.nodes[wireKey{r.Canonical(tileName), r.Canonical(wireName)}]
	return Node{idx}, ok
}

// Node returns the node containing wire wireName of tile tileName.
func (r *Resources) Node(tileName, wireName string) (Node, error) {
	tileID, err := r.lookupString("tile", tileName)
	if err != nil {
		return Node{}, err
	}
	wireID, err := r.lookupString("wire", wireName)
	if err != nil {
		return Node{}, err
	}
	node, ok := r.LookupNode(tileID, wireID)
	if !ok {
		return Node{}, notFoundf("no node for wire %s/%s", tileName, wireName)
	}
	return node, nil
}

// NodeWires returns the member wires of node with canonical names.
func (r *Resources) NodeWires(node Node) []interchange.Wire {
	members := r.Device.Nodes[node.Index].Wires
	wires := make([]interchange.Wire, len(members))
	for i, w := range members {
		wire := r.Device.Wires[w]
		wires[i] = interchange.Wire{Tile: r.Canonical(wire.Tile), Wire: r.Canonical(wire.Wire)}
	}
	return wires
}
