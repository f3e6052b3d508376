// Package xdlrc writes the XDL resource report of a device: every tile with
// its sites, wires and PIPs, followed by the primitive definitions of every
// site type and a final summary.
package xdlrc

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/daedaleanai/xdlrc/interchange"
	"github.com/daedaleanai/xdlrc/log"
	"github.com/daedaleanai/xdlrc/resources"
	"github.com/daedaleanai/xdlrc/util"
)

// FileExtension is appended to the device name to form the default report file name.
const FileExtension = ".xdlrc"

// DefaultFamily is used when no device family is configured.
const DefaultFamily = "artix7"

const bondUnknown = "unknown"

// Summary holds the counts of the final summary declaration.
type Summary struct {
	Tiles    int
	Sites    int
	SiteDefs int
	NumPins  int
	NumPips  int
}

// TileSummary holds the counts of a single tile block.
type TileSummary struct {
	Sites    int
	Pinwires int
	Wires    int
	Pips     int
}

// Generator writes reports for one device index.
type Generator struct {
	res    *resources.Resources
	family string
	out    *writer
	tiles  []resources.Tile
}

// New returns a generator writing the reports of res to w.
func New(res *resources.Resources, w io.Writer, family string) *Generator {
	if family == "" {
		family = DefaultFamily
	}
	return &Generator{
		res:    res,
		family: family,
		out:    newWriter(w),
		tiles:  orderTiles(res.Tiles()),
	}
}

// FileName returns the default report file name of the device.
func FileName(res *resources.Resources) string {
	return res.Device.Name + FileExtension
}

// orderTiles buckets tiles by row, sorts every row by column and concatenates
// the rows in ascending order.
func orderTiles(tiles []resources.Tile) []resources.Tile {
	rows := [][]resources.Tile{}
	for _, tile := range tiles {
		for len(rows) <= tile.Row {
			rows = append(rows, nil)
		}
		rows[tile.Row] = append(rows[tile.Row], tile)
	}

	ordered := make([]resources.Tile, 0, len(tiles))
	for _, row := range rows {
		ordered = append(ordered, util.SliceOrderedBy(row, func(t *resources.Tile) int { return t.Col })...)
	}
	return ordered
}

// Tiles returns the tiles in report order.
func (g *Generator) Tiles() []resources.Tile {
	return g.tiles
}

func (g *Generator) str(id resources.StringIdx) string {
	return g.res.Strings.Get(id)
}

// Generate writes the complete report.
func (g *Generator) Generate() (Summary, error) {
	g.header()
	return g.body()
}

// GenerateExtended writes the complete report with an alternate_site_types
// declaration per site type that has alternates, right after the header.
func (g *Generator) GenerateExtended() (Summary, error) {
	g.header()
	g.altSiteTypes()
	return g.body()
}

// GenerateTile writes the block of the tile called name.
func (g *Generator) GenerateTile(name string) (TileSummary, error) {
	tile, err := g.res.Tile(name)
	if err != nil {
		return TileSummary{}, err
	}
	summary, err := g.tile(tile)
	if err != nil {
		return TileSummary{}, err
	}
	return summary, g.out.flush()
}

// GeneratePrimDefs writes the primitive_defs block and returns the number of
// primitive definitions.
func (g *Generator) GeneratePrimDefs() (int, error) {
	n, err := g.primDefs()
	if err != nil {
		return 0, err
	}
	return n, g.out.flush()
}

func (g *Generator) header() {
	g.out.line(0, "(xdl_resource_report %s %s %s", util.ReportFormatVersion, g.res.Device.Name, g.family)
}

func (g *Generator) altSiteTypes() {
	dev := g.res.Device
	for _, st := range dev.SiteTypeList {
		if len(st.AltSiteTypes) == 0 {
			continue
		}
		alts := util.MappedSlice(st.AltSiteTypes, func(alt uint32) string {
			return g.str(dev.SiteTypeList[alt].Name)
		})
		g.out.line(0, "(alternate_site_types %s %s)", g.str(st.Name), strings.Join(alts, " "))
	}
}

func (g *Generator) body() (Summary, error) {
	numRows, numCols := 0, 0
	if len(g.tiles) > 0 {
		last := g.tiles[len(g.tiles)-1]
		numRows, numCols = last.Row+1, last.Col+1
	}
	g.out.line(0, "(tiles %d %d", numRows, numCols)

	summary := Summary{Tiles: len(g.tiles)}
	for _, tile := range g.tiles {
		ts, err := g.tile(tile)
		if err != nil {
			return Summary{}, err
		}
		summary.Sites += ts.Sites
		summary.NumPins += ts.Pinwires
		summary.NumPips += ts.Pips
	}
	g.out.line(0, ")")
	log.Debug("Generated %d tiles.\n", len(g.tiles))

	siteDefs, err := g.primDefs()
	if err != nil {
		return Summary{}, err
	}
	summary.SiteDefs = siteDefs

	g.out.line(0, "(summary tiles=%d sites=%d sitedefs=%d numpins=%d numpips=%d)",
		summary.Tiles, summary.Sites, summary.SiteDefs, summary.NumPins, summary.NumPips)
	g.out.line(0, ")")
	return summary, g.out.flush()
}

func (g *Generator) tile(tile resources.Tile) (TileSummary, error) {
	tt, err := g.res.TileType(tile.TypeIdx)
	if err != nil {
		return TileSummary{}, err
	}
	tileName := g.str(tile.Name)
	raw := &g.res.Device.TileList[tile.Index]

	summary := TileSummary{Sites: len(raw.Sites), Pips: len(tt.Pips())}
	g.out.line(1, "(tile %d %d %s %s %d", tile.Row, tile.Col, tileName, g.str(tt.Name), summary.Sites)

	// Tile wires referenced by a pinwire, in order of first reference.
	pinWires := []resources.StringIdx{}
	seen := map[resources.StringIdx]bool{}

	for _, rawSite := range raw.Sites {
		site, err := g.res.PrimarySite(rawSite.Name)
		if err != nil {
			return TileSummary{}, err
		}
		st, err := g.res.SiteType(site.SiteTypeIndex)
		if err != nil {
			return TileSummary{}, errors.Wrapf(err, "site %s", g.str(rawSite.Name))
		}

		pins := st.Pins()
		g.out.line(2, "(primitive_site %s %s %s %d", g.str(rawSite.Name), g.str(st.Name), bondUnknown, len(pins))
		for _, pin := range pins {
			names, err := g.res.SitePinNames(site, pin.Index)
			if err != nil {
				return TileSummary{}, err
			}
			g.out.line(3, "(pinwire %s %s %s)", g.str(pin.Name), pin.Dir, g.str(names.WireName))
			summary.Pinwires++
			if !seen[names.WireName] {
				seen[names.WireName] = true
				pinWires = append(pinWires, names.WireName)
			}
		}
		g.out.line(2, ")")
	}

	emitted := map[resources.StringIdx]bool{}
	for _, wire := range tt.WireNames() {
		// Wires without a node have no connectivity and are left out.
		node, ok := g.res.LookupNode(tile.Name, wire)
		if !ok {
			continue
		}
		members := g.res.NodeWires(node)
		emitted[wire] = true
		summary.Wires++

		if len(members) == 1 {
			g.out.line(2, "(wire %s 0)", g.str(wire))
			continue
		}
		g.out.line(2, "(wire %s %d", g.str(wire), len(members)-1)
		for _, m := range members {
			if m.Tile == tile.Name && m.Wire == wire {
				continue
			}
			g.out.line(3, "(conn %s %s)", g.str(m.Tile), g.str(m.Wire))
		}
		g.out.line(2, ")")
	}

	for _, wire := range pinWires {
		if emitted[wire] {
			continue
		}
		summary.Wires++
		g.out.line(2, "(wire %s 0)", g.str(wire))
	}

	for _, pip := range tt.Pips() {
		wire0, wire1 := g.str(tt.WireName(pip.Wire0)), g.str(tt.WireName(pip.Wire1))
		if pip.Directional {
			g.out.line(2, "(pip %s %s -> %s)", tileName, wire0, wire1)
			continue
		}
		g.out.line(2, "(pip %s %s =- %s)", tileName, wire0, wire1)
		g.out.line(2, "(pip %s %s =- %s)", tileName, wire1, wire0)
	}

	g.out.line(2, "(tile_summary %s %s %d %d %d)", tileName, g.str(tt.Name), summary.Pinwires, summary.Wires, summary.Pips)
	g.out.line(1, ")")
	return summary, g.out.err
}

// siteTypesByName returns one resolver per distinct site type name. Of
// several site types sharing a name the last one is kept.
func (g *Generator) siteTypesByName() (util.OrderedMap[string, *resources.SiteType], error) {
	byName := util.NewOrderedMap[string, *resources.SiteType]()
	byName.AllowOverrides()
	for idx := range g.res.Device.SiteTypeList {
		st, err := g.res.SiteType(idx)
		if err != nil {
			return byName, err
		}
		if err := byName.Insert(g.str(st.Name), st); err != nil {
			return byName, err
		}
	}
	return byName, nil
}

func (g *Generator) primDefs() (int, error) {
	byName, err := g.siteTypesByName()
	if err != nil {
		return 0, err
	}

	siteTypes := byName.Values()
	g.out.line(0, "(primitive_defs %d", len(siteTypes))
	for _, st := range siteTypes {
		g.primDef(st)
	}
	g.out.line(0, ")")
	return len(siteTypes), g.out.err
}

func (g *Generator) primDef(st *resources.SiteType) {
	pins, bels := st.Pins(), st.Bels()
	g.out.line(1, "(primitive_def %s %d %d", g.str(st.Name), len(pins), len(bels))
	for _, pin := range pins {
		g.out.line(2, "(pin %s %s %s)", g.str(pin.Name), g.str(pin.Name), pin.Dir)
	}

	for _, bel := range bels {
		g.out.line(2, "(element %s %d", g.str(bel.Name), len(bel.Pins))

		cfg := []string{}
		for _, idx := range bel.Pins {
			belPin := st.BelPinAt(idx)
			name := g.str(belPin.Name)
			if belPin.Dir == interchange.Output {
				g.out.line(3, "(pin %s output)", name)
			} else {
				g.out.line(3, "(pin %s input)", name)
				if bel.Category == interchange.Routing {
					cfg = append(cfg, name)
				}
			}

			for _, conn := range st.ElementConns(idx) {
				g.out.line(3, "(conn %s %s %s %s %s)",
					g.str(conn.Bel), g.str(conn.Pin), conn.Arrow, g.str(conn.OtherBel), g.str(conn.OtherPin))
			}
		}
		if len(cfg) > 0 {
			g.out.line(3, "(cfg %s)", strings.Join(cfg, " "))
		}
		g.out.line(2, ")")
	}
	g.out.line(1, ")")
}
