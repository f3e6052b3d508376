package interchange

// Builder assembles a Device in memory, interning names as they are used.
type Builder struct {
	Device *Device
	ids    map[string]StringIdx
}

// NewBuilder returns a builder for an empty device called name.
func NewBuilder(name string) *Builder {
	return &Builder{
		Device: &Device{Name: name},
		ids:    map[string]StringIdx{},
	}
}

// Str returns the string index of s, appending s to the string list if needed.
func (b *Builder) Str(s string) StringIdx {
	if id, ok := b.ids[s]; ok {
		return id
	}
	id := StringIdx(len(b.Device.StrList))
	b.Device.StrList = append(b.Device.StrList, s)
	b.ids[s] = id
	return id
}

// Strs interns every name in names.
func (b *Builder) Strs(names ...string) []StringIdx {
	ids := make([]StringIdx, len(names))
	for i, name := range names {
		ids[i] = b.Str(name)
	}
	return ids
}

// Wire appends the wire (tile, wire) and returns its index.
func (b *Builder) Wire(tile, wire string) uint32 {
	b.Device.Wires = append(b.Device.Wires, Wire{Tile: b.Str(tile), Wire: b.Str(wire)})
	return uint32(len(b.Device.Wires) - 1)
}

// Node appends a node joining the given (tile, wire) pairs, passed as
// alternating tile and wire names.
func (b *Builder) Node(tileWires ...string) {
	node := Node{}
	for i := 0; i+1 < len(tileWires); i += 2 {
		node.Wires = append(node.Wires, b.Wire(tileWires[i], tileWires[i+1]))
	}
	b.Device.Nodes = append(b.Device.Nodes, node)
}

// SiteType appends st and returns its index.
func (b *Builder) SiteType(st SiteType) uint32 {
	b.Device.SiteTypeList = append(b.Device.SiteTypeList, st)
	return uint32(len(b.Device.SiteTypeList) - 1)
}

// TileType appends tt and returns its index.
func (b *Builder) TileType(tt TileType) uint32 {
	b.Device.TileTypeList = append(b.Device.TileTypeList, tt)
	return uint32(len(b.Device.TileTypeList) - 1)
}

// Tile appends a tile of type tileType at (row, col) holding the given sites.
func (b *Builder) Tile(name string, tileType uint32, row, col uint16, sites ...Site) {
	b.Device.TileList = append(b.Device.TileList, Tile{
		Name:  b.Str(name),
		Type:  tileType,
		Sites: sites,
		Row:   row,
		Col:   col,
	})
}
