// Package interchange holds the raw DeviceResources tree of an FPGA device.
//
// The tree is a flat, string-interned, cross-referenced model: every name is
// an index into StrList and every relation is an index into one of the lists.
// Nothing in this package builds derived lookups; see package resources.
package interchange

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// StringIdx is an index into Device.StrList.
type StringIdx uint32

// Direction of a site pin or BEL pin.
type Direction int

const (
	Input Direction = iota
	Output
	Inout
)

var directionNames = []string{"input", "output", "inout"}

// ParseDirection converts a case-insensitive direction name.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return Input, errors.Errorf("invalid direction %q", s)
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Direction) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dir, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = dir
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Direction) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// BELCategory classifies a BEL.
type BELCategory int

const (
	Logic BELCategory = iota
	Routing
	SitePort
)

var categoryNames = []string{"logic", "routing", "sitePort"}

func (c BELCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("BELCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *BELCategory) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	for i, name := range categoryNames {
		if strings.EqualFold(s, name) {
			*c = BELCategory(i)
			return nil
		}
	}
	return errors.Errorf("invalid BEL category %q", s)
}

// MarshalYAML implements yaml.Marshaler.
func (c BELCategory) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Device is the root of the DeviceResources tree.
type Device struct {
	Name         string     `yaml:"name"`
	StrList      []string   `yaml:"strList"`
	SiteTypeList []SiteType `yaml:"siteTypeList"`
	TileTypeList []TileType `yaml:"tileTypeList"`
	TileList     []Tile     `yaml:"tileList"`
	Wires        []Wire     `yaml:"wires"`
	Nodes        []Node     `yaml:"nodes"`
}

// SiteType is the template shared by all sites of one type.
type SiteType struct {
	Name      StringIdx  `yaml:"name"`
	BelPins   []BELPin   `yaml:"belPins"`
	Pins      []SitePin  `yaml:"pins"`
	Bels      []BEL      `yaml:"bels"`
	SitePIPs  []SitePIP  `yaml:"sitePIPs"`
	SiteWires []SiteWire `yaml:"siteWires"`
	// AltSiteTypes lists indices into Device.SiteTypeList.
	AltSiteTypes []uint32 `yaml:"altSiteTypes"`
}

// BEL is a basic element inside a site type. Pins index SiteType.BelPins.
type BEL struct {
	Name     StringIdx   `yaml:"name"`
	Type     StringIdx   `yaml:"type"`
	Pins     []uint32    `yaml:"pins"`
	Category BELCategory `yaml:"category"`
}

// BELPin belongs to the BEL named by Bel.
type BELPin struct {
	Name StringIdx `yaml:"name"`
	Dir  Direction `yaml:"dir"`
	Bel  StringIdx `yaml:"bel"`
}

// SitePin is backed by the BEL pin at index Belpin.
type SitePin struct {
	Name   StringIdx `yaml:"name"`
	Dir    Direction `yaml:"dir"`
	Belpin uint32    `yaml:"belpin"`
}

// SitePIP connects two BEL pins of the same routing BEL.
type SitePIP struct {
	Inpin  uint32 `yaml:"inpin"`
	Outpin uint32 `yaml:"outpin"`
}

// SiteWire joins BEL pins inside a site.
type SiteWire struct {
	Name StringIdx `yaml:"name"`
	Pins []uint32  `yaml:"pins"`
}

// TileType is the template shared by all tiles of one type.
type TileType struct {
	Name      StringIdx            `yaml:"name"`
	SiteTypes []SiteTypeInTileType `yaml:"siteTypes"`
	Wires     []StringIdx          `yaml:"wires"`
	Pips      []PIP                `yaml:"pips"`
}

// SiteTypeInTileType describes one site slot of a tile type.
type SiteTypeInTileType struct {
	PrimaryType uint32 `yaml:"primaryType"`
	// PrimaryPinsToTileWires maps primary site pin index to tile wire name.
	PrimaryPinsToTileWires []StringIdx `yaml:"primaryPinsToTileWires"`
	// AltPinsToPrimaryPins is indexed by the alternate index of the
	// primary type's AltSiteTypes list.
	AltPinsToPrimaryPins []ParentPins `yaml:"altPinsToPrimaryPins"`
}

// ParentPins maps alternate site pin index to primary site pin index.
type ParentPins struct {
	Pins []uint32 `yaml:"pins"`
}

// PIP is an edge between two tile type local wires (indices into TileType.Wires).
type PIP struct {
	Wire0       uint32 `yaml:"wire0"`
	Wire1       uint32 `yaml:"wire1"`
	Directional bool   `yaml:"directional"`
}

// Tile is a placed instance of a tile type.
type Tile struct {
	Name  StringIdx `yaml:"name"`
	Type  uint32    `yaml:"type"`
	Sites []Site    `yaml:"sites"`
	Row   uint16    `yaml:"row"`
	Col   uint16    `yaml:"col"`
}

// Site is a placed site. Type indexes the tile type's SiteTypes slots.
type Site struct {
	Name StringIdx `yaml:"name"`
	Type uint32    `yaml:"type"`
}

// Wire is a (tile, wire name) pair.
type Wire struct {
	Tile StringIdx `yaml:"tile"`
	Wire StringIdx `yaml:"wire"`
}

// Node lists the indices of its member wires in Device.Wires.
type Node struct {
	Wires []uint32 `yaml:"wires"`
}
