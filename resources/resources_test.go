package resources

import (
	"testing"

	"github.com/daedaleanai/xdlrc/interchange"
)

const (
	tileName = "CLB_X0Y0"
	siteName = "SLICE_X0Y0"
)

func belPin(b *interchange.Builder, bel, pin string, dir interchange.Direction) interchange.BELPin {
	return interchange.BELPin{Name: b.Str(pin), Dir: dir, Bel: b.Str(bel)}
}

// testDevice has one CLB tile holding one SLICE site that can also be used
// as a SLICE_ALT. Wire CLB_B has no node.
func testDevice() *interchange.Device {
	b := interchange.NewBuilder("xc7test")

	slice := interchange.SiteType{
		Name: b.Str("SLICE"),
		BelPins: []interchange.BELPin{
			belPin(b, "A", "I", interchange.Input),      // 0
			belPin(b, "A", "O", interchange.Output),     // 1
			belPin(b, "B", "I", interchange.Input),      // 2
			belPin(b, "C", "I", interchange.Input),      // 3
			belPin(b, "MUX", "I0", interchange.Input),   // 4
			belPin(b, "MUX", "OUT", interchange.Output), // 5
		},
		Pins: []interchange.SitePin{
			{Name: b.Str("AI"), Dir: interchange.Input, Belpin: 0},
			{Name: b.Str("AO"), Dir: interchange.Output, Belpin: 1},
		},
		Bels: []interchange.BEL{
			{Name: b.Str("A"), Type: b.Str("LUT"), Pins: []uint32{0, 1}},
			{Name: b.Str("B"), Type: b.Str("FF"), Pins: []uint32{2}},
			{Name: b.Str("C"), Type: b.Str("FF"), Pins: []uint32{3}},
			{Name: b.Str("MUX"), Type: b.Str("MUX"), Pins: []uint32{4, 5}, Category: interchange.Routing},
		},
		SitePIPs: []interchange.SitePIP{{Inpin: 4, Outpin: 5}},
		SiteWires: []interchange.SiteWire{
			{Name: b.Str("AI"), Pins: []uint32{0}},
			{Name: b.Str("AO"), Pins: []uint32{1, 2, 3}},
		},
		AltSiteTypes: []uint32{1},
	}
	b.SiteType(slice)
	b.SiteType(interchange.SiteType{
		Name: b.Str("SLICE_ALT"),
		BelPins: []interchange.BELPin{
			belPin(b, "X", "X", interchange.Output),
			belPin(b, "Y", "Y", interchange.Input),
		},
		Pins: []interchange.SitePin{
			{Name: b.Str("X"), Dir: interchange.Output, Belpin: 0},
			{Name: b.Str("Y"), Dir: interchange.Input, Belpin: 1},
		},
	})

	tt := b.TileType(interchange.TileType{
		Name: b.Str("CLB"),
		SiteTypes: []interchange.SiteTypeInTileType{{
			PrimaryType:            0,
			PrimaryPinsToTileWires: b.Strs("CLB_AI", "CLB_AO"),
			AltPinsToPrimaryPins:   []interchange.ParentPins{{Pins: []uint32{1, 0}}},
		}},
		Wires: b.Strs("CLB_AI", "CLB_AO", "CLB_B"),
		Pips: []interchange.PIP{
			{Wire0: 0, Wire1: 1, Directional: true},
			{Wire0: 1, Wire1: 2},
		},
	})
	b.Tile(tileName, tt, 0, 0, interchange.Site{Name: b.Str(siteName), Type: 0})

	b.Node(tileName, "CLB_AI", "INT_X1Y0", "INT_AI")
	b.Node(tileName, "CLB_AO")
	return b.Device
}

func mustResources(t *testing.T) *Resources {
	res, err := New(testDevice())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func strID(t *testing.T, r *Resources, s string) StringIdx {
	id, ok := r.Strings.Index(s)
	if !ok {
		t.Fatalf("no string %s", s)
	}
	return id
}

func TestStringTable(t *testing.T) {
	strs := NewStringTable([]string{"a", "b", "a"})
	if strs.Len() != 3 || strs.Get(2) != "a" {
		t.Fatal("unexpected string table content")
	}
	if id, ok := strs.Index("a"); !ok || id != 0 {
		t.Fatalf("expected the first occurrence, got %d", id)
	}
	if _, ok := strs.Index("c"); ok {
		t.Fatal("unexpected handle for c")
	}
}

func TestCanonicalHandles(t *testing.T) {
	dev := testDevice()
	dev.StrList = append(dev.StrList, "CLB_AI")
	// Refer to the wire through the duplicated handle.
	dev.Wires[0].Wire = interchange.StringIdx(len(dev.StrList) - 1)
	res, err := New(dev)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := res.Node(tileName, "CLB_AI"); err != nil {
		t.Fatal(err)
	}
}

func TestTilesAndSites(t *testing.T) {
	res := mustResources(t)
	tile, err := res.Tile(tileName)
	if err != nil {
		t.Fatal(err)
	}
	if tile.Row != 0 || tile.Col != 0 || tile.TypeIdx != 0 {
		t.Fatalf("unexpected tile %+v", tile)
	}
	if _, err := res.Tile("NOPE"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	views, err := res.SiteViews(siteName)
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 2 || !views[0].IsPrimary() || views[1].AltIndex != 0 || views[1].SiteTypeIndex != 1 {
		t.Fatalf("unexpected views %+v", views)
	}
	site, err := res.Site(siteName, "SLICE_ALT")
	if err != nil {
		t.Fatal(err)
	}
	if site != views[1] {
		t.Fatalf("unexpected site %+v", site)
	}
	if _, err := res.Site(siteName, "CLB"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if idx, err := res.SiteTypeIndex("SLICE_ALT"); err != nil || idx != 1 {
		t.Fatalf("unexpected site type index %d, %v", idx, err)
	}
}

func TestSiteTypeNameCollisionLastWins(t *testing.T) {
	dev := testDevice()
	dev.SiteTypeList = append(dev.SiteTypeList, interchange.SiteType{Name: dev.SiteTypeList[1].Name})
	res, err := New(dev)
	if err != nil {
		t.Fatal(err)
	}
	if idx, _ := res.SiteTypeIndex("SLICE_ALT"); idx != 2 {
		t.Fatalf("expected the last site type, got %d", idx)
	}
}

func TestAlternateSitePin(t *testing.T) {
	res := mustResources(t)
	alt, err := res.Site(siteName, "SLICE_ALT")
	if err != nil {
		t.Fatal(err)
	}
	names, err := res.SitePinNames(alt, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Strings.Get(names.PinName) != "X" || res.Strings.Get(names.SiteTypeName) != "SLICE_ALT" ||
		res.Strings.Get(names.WireName) != "CLB_AO" {
		t.Fatalf("unexpected names %s %s %s", res.Strings.Get(names.PinName),
			res.Strings.Get(names.SiteTypeName), res.Strings.Get(names.WireName))
	}

	pin, err := res.SitePin(siteName, "SLICE_ALT", "Y")
	if err != nil {
		t.Fatal(err)
	}
	if pin.Node.Index != 0 || pin.Dir != interchange.Input {
		t.Fatalf("unexpected pin %+v", pin)
	}
	pin, err = res.SitePin(siteName, "SLICE", "AO")
	if err != nil {
		t.Fatal(err)
	}
	if pin.Node.Index != 1 || pin.BelPin != 1 || pin.SiteWire != 1 {
		t.Fatalf("unexpected pin %+v", pin)
	}
	if _, err := res.SitePin(siteName, "SLICE", "X"); !IsUsage(err) {
		t.Fatalf("expected a usage error, got %v", err)
	}
}

func TestBelPin(t *testing.T) {
	res := mustResources(t)
	pin, err := res.BelPin(siteName, "SLICE", "A", "O")
	if err != nil {
		t.Fatal(err)
	}
	if pin.Index != 1 || pin.SiteWire != 1 || pin.Dir != interchange.Output || !pin.IsSitePin {
		t.Fatalf("unexpected bel pin %+v", pin)
	}
	pin, err = res.BelPin(siteName, "SLICE", "MUX", "I0")
	if err != nil {
		t.Fatal(err)
	}
	if pin.SiteWire != NoSiteWire || pin.IsSitePin {
		t.Fatalf("unexpected bel pin %+v", pin)
	}
	if _, err := res.BelPin(siteName, "SLICE", "B", "O"); !IsUsage(err) {
		t.Fatalf("expected a usage error, got %v", err)
	}
}

func TestSitePip(t *testing.T) {
	res := mustResources(t)
	pip, err := res.SitePip(siteName, "SLICE", "MUX", "I0")
	if err != nil {
		t.Fatal(err)
	}
	if pip.InBelPin != 4 || pip.OutBelPin != 5 {
		t.Fatalf("unexpected site pip %+v", pip)
	}
	if _, err := res.SitePip(siteName, "SLICE", "MUX", "OUT"); !IsSchema(err) {
		t.Fatalf("expected a schema error for an output pin, got %v", err)
	}
	if _, err := res.SitePip(siteName, "SLICE", "B", "I"); !IsUsage(err) {
		t.Fatalf("expected a usage error for a non site pip input, got %v", err)
	}
}

func TestDuplicateBelPin(t *testing.T) {
	dev := testDevice()
	st := &dev.SiteTypeList[0]
	st.BelPins = append(st.BelPins, st.BelPins[0])
	res, err := New(dev)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := res.SiteType(0); !IsSchema(err) {
		t.Fatalf("expected a schema error, got %v", err)
	}
}

func TestElementConns(t *testing.T) {
	res := mustResources(t)
	st, err := res.SiteType(0)
	if err != nil {
		t.Fatal(err)
	}

	conns := st.ElementConns(1)
	if len(conns) != 2 {
		t.Fatalf("expected 2 conns from the output, got %d", len(conns))
	}
	for i, other := range []string{"B", "C"} {
		c := conns[i]
		if c.Arrow != Outgoing || res.Strings.Get(c.OtherBel) != other || res.Strings.Get(c.OtherPin) != "I" {
			t.Fatalf("unexpected conn %+v", c)
		}
	}

	for _, input := range []int{2, 3} {
		conns := st.ElementConns(input)
		if len(conns) != 1 {
			t.Fatalf("expected 1 conn from input %d, got %d", input, len(conns))
		}
		c := conns[0]
		if c.Arrow != Incoming || res.Strings.Get(c.OtherBel) != "A" || res.Strings.Get(c.OtherPin) != "O" {
			t.Fatalf("unexpected conn %+v", c)
		}
	}
	if Outgoing.String() != "==>" || Incoming.String() != "<==" {
		t.Fatal("unexpected arrow tokens")
	}
	if len(st.ElementConns(4)) != 0 {
		t.Fatal("expected no conns for a pin without a site wire")
	}
}

func TestTileTypePips(t *testing.T) {
	res := mustResources(t)
	tt, err := res.TileType(0)
	if err != nil {
		t.Fatal(err)
	}
	ai, ao, b := strID(t, res, "CLB_AI"), strID(t, res, "CLB_AO"), strID(t, res, "CLB_B")

	if pip, err := tt.Pip(ai, ao); err != nil || !pip.Directional {
		t.Fatalf("unexpected pip %+v, %v", pip, err)
	}
	if _, err := tt.Pip(ao, ai); !IsNotFound(err) {
		t.Fatalf("expected a directional pip to be found one way only, got %v", err)
	}
	for _, pair := range [][2]StringIdx{{ao, b}, {b, ao}} {
		if pip, err := tt.Pip(pair[0], pair[1]); err != nil || pip.Directional {
			t.Fatalf("unexpected pip %+v, %v", pip, err)
		}
	}
	if _, err := tt.Pip(ai, strID(t, res, "SLICE")); !IsUsage(err) {
		t.Fatalf("expected a usage error, got %v", err)
	}
	if id, ok := tt.WireID(b); !ok || id != 2 {
		t.Fatalf("unexpected wire id %d", id)
	}
}

func TestPip(t *testing.T) {
	res := mustResources(t)
	pip, err := res.Pip(tileName, "CLB_AI", "CLB_AO")
	if err != nil {
		t.Fatal(err)
	}
	if pip.Node0.Index != 0 || pip.Node1.Index != 1 || !pip.Directional {
		t.Fatalf("unexpected pip %+v", pip)
	}
	if _, err := res.Pip(tileName, "CLB_AO", "CLB_B"); !IsNotFound(err) {
		t.Fatalf("expected the missing node of CLB_B, got %v", err)
	}
}

func TestNodes(t *testing.T) {
	res := mustResources(t)
	node, err := res.Node(tileName, "CLB_AI")
	if err != nil {
		t.Fatal(err)
	}
	wires := res.NodeWires(node)
	if len(wires) != 2 || res.Strings.Get(wires[1].Tile) != "INT_X1Y0" || res.Strings.Get(wires[1].Wire) != "INT_AI" {
		t.Fatalf("unexpected node wires %+v", wires)
	}
	if _, err := res.Node(tileName, "CLB_B"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, ok := res.LookupNode(strID(t, res, "INT_X1Y0"), strID(t, res, "INT_AI")); !ok {
		t.Fatal("expected the node of INT_X1Y0/INT_AI")
	}
}

func TestDuplicateSiteName(t *testing.T) {
	dev := testDevice()
	dev.TileList[0].Sites = append(dev.TileList[0].Sites, dev.TileList[0].Sites[0])
	if _, err := New(dev); !IsSchema(err) {
		t.Fatalf("expected a schema error, got %v", err)
	}
}

func TestWireInTwoNodes(t *testing.T) {
	dev := testDevice()
	dev.Nodes[1].Wires = append(dev.Nodes[1].Wires, dev.Nodes[0].Wires[0])
	if _, err := New(dev); !IsSchema(err) {
		t.Fatalf("expected a schema error, got %v", err)
	}
}
