package compare

import (
	"bytes"
	"strings"
	"testing"
)

const report = `(xdl_resource_report v0.2 xc7a100t artix7
# comment
(tiles 1 2
	(tile 0 0 INT_L_X0Y0 INT_L 1
		(primitive_site SLICE_X0Y0 SLICEL internal 2
			(pinwire A1 input INT_A1)
			(pinwire AQ output INT_AQ)
		)
		(wire INT_A1 2
			(conn CLB_X0Y0 CLB_A1)
			(conn CLB_X1Y0 CLB_A1)
		)
		(wire INT_AQ 0)
		(pip INT_L_X0Y0 INT_AQ -> INT_A1)
		(pip INT_L_X0Y0 INT_B =- INT_C)
		(pip INT_L_X0Y0 INT_C =- INT_B)
		(tile_summary INT_L_X0Y0 INT_L 2 2 2)
	)
	(tile 0 1 CLB_X0Y0 CLBLL_L 0
		(wire CLB_A1 1
			(conn INT_L_X0Y0 INT_A1)
		)
		(tile_summary CLB_X0Y0 CLBLL_L 0 1 0)
	)
)
(primitive_defs 2
	(primitive_def IOB33 1 1
		(pin I I input)
		(element I 1
			(pin I input)
		)
	)
	(primitive_def SLICEL 2 2
		(pin A1 A1 input)
		(pin AQ AQ output)
		(element AFF 2
			(pin D input)
			(pin Q output)
			(conn AFF Q ==> AMUX I0)
			(conn AFF D <== A6LUT O6)
		)
		(element AMUX 2
			(pin I0 input)
			(pin OUT output)
			(conn AMUX I0 <== AFF Q)
			(cfg I0)
		)
	)
)
(summary tiles=2 sites=1 sitedefs=2 numpins=2 numpips=2)
)
`

type result struct {
	errors     int
	exceptions int
	session    *Session
	errLog     string
	excLog     string
}

func run(t *testing.T, test, ref string, compare func(*Session, Input, Input) error) result {
	return runWith(t, nil, test, ref, compare)
}

func runWith(t *testing.T, oracle Oracle, test, ref string, compare func(*Session, Input, Input) error) result {
	var errLog, excLog bytes.Buffer
	s := NewSession(&errLog, &excLog, oracle)
	err := compare(s, Input{"test", strings.NewReader(test)}, Input{"ref", strings.NewReader(ref)})
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	return result{s.Errors(), s.Exceptions(), s, errLog.String(), excLog.String()}
}

func reports(t *testing.T, test, ref string) result {
	return run(t, test, ref, (*Session).CompareReports)
}

func TestIdenticalReports(t *testing.T) {
	res := reports(t, report, report)
	if res.errors != 0 || res.exceptions != 0 {
		t.Fatalf("expected no differences, got %d errors and %d exceptions\n%s\n%s",
			res.errors, res.exceptions, res.errLog, res.excLog)
	}
	if !strings.HasSuffix(res.errLog, "Done comparing XDLRC files. Errors: 0\n") {
		t.Fatalf("unexpected error log %q", res.errLog)
	}
	if !strings.HasPrefix(res.excLog, "Line numbers are expressed") {
		t.Fatalf("unexpected exception log %q", res.excLog)
	}
}

func TestCaseAndOrderInsensitive(t *testing.T) {
	test := strings.Replace(report, "(conn CLB_X0Y0 CLB_A1)\n\t\t\t(conn CLB_X1Y0 CLB_A1)",
		"(conn clb_x1y0 clb_a1)\n\t\t\t(conn CLB_X0Y0 CLB_A1)", 1)
	res := reports(t, test, report)
	if res.errors != 0 || res.exceptions != 0 {
		t.Fatalf("expected no differences, got %d errors and %d exceptions", res.errors, res.exceptions)
	}
}

func TestMissingConn(t *testing.T) {
	test := strings.Replace(report, "\t\t\t(conn CLB_X1Y0 CLB_A1)\n", "", 1)
	res := reports(t, test, report)
	if res.errors != 1 {
		t.Fatalf("expected 1 error, got %d\n%s", res.errors, res.errLog)
	}
	if !strings.Contains(res.errLog, "Tile: INT_L_X0Y0 Type: INT_L Missing conn CLB_X1Y0 CLB_A1 for wire INT_A1") {
		t.Fatalf("unexpected error log\n%s", res.errLog)
	}
}

func TestExtraWire(t *testing.T) {
	test := strings.Replace(report, "\t\t(wire INT_AQ 0)\n", "\t\t(wire INT_AQ 0)\n\t\t(wire INT_EXTRA 0)\n", 1)
	res := reports(t, test, report)
	if res.errors != 1 || !strings.Contains(res.errLog, "Extra wire INT_EXTRA") {
		t.Fatalf("unexpected errors %d\n%s", res.errors, res.errLog)
	}
}

func TestMissingWireIsException(t *testing.T) {
	test := strings.Replace(report, "\t\t(wire INT_AQ 0)\n", "", 1)
	test = strings.Replace(test, "(tile_summary INT_L_X0Y0 INT_L 2 2 2)", "(tile_summary INT_L_X0Y0 INT_L 2 1 2)", 1)
	res := reports(t, test, report)
	if res.errors != 0 {
		t.Fatalf("unexpected errors\n%s", res.errLog)
	}
	if res.session.ExceptionCount(MissingWire) != 1 || res.session.ExceptionCount(ExtraWire) != 1 {
		t.Fatalf("unexpected exceptions\n%s", res.excLog)
	}
}

// knownResources answers for the cross-validation database: wires are keyed
// "TILE/WIRE" and pips "TILE/WIRE0/WIRE1".
type knownResources struct {
	wires map[string]bool
	pips  map[string]bool
}

func (k knownResources) Wire(tile, wire string) bool { return k.wires[tile+"/"+wire] }
func (k knownResources) Pip(tile, wire0, wire1 string) bool {
	return k.pips[tile+"/"+wire0+"/"+wire1]
}
func (k knownResources) Site(tile, site string) bool { return false }

func reportsWith(t *testing.T, oracle Oracle, test, ref string) result {
	return runWith(t, oracle, test, ref, (*Session).CompareReports)
}

func TestOracle(t *testing.T) {
	test := strings.Replace(report, "\t\t(wire INT_AQ 0)\n", "\t\t(wire INT_AQ 0)\n\t\t(wire INT_EXTRA 0)\n", 1)
	res := reportsWith(t, knownResources{wires: map[string]bool{"INT_L_X0Y0/INT_EXTRA": true}}, test, report)
	if res.errors != 0 || res.session.ExceptionCount(ExtraWire) != 1 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}
}

func TestNodelessWire(t *testing.T) {
	test := strings.Replace(report, "\t\t(wire INT_AQ 0)\n", "", 1)
	test = strings.Replace(test, "\t\t\t(conn CLB_X1Y0 CLB_A1)\n", "", 1)
	oracle := knownResources{wires: map[string]bool{
		"INT_L_X0Y0/INT_AQ": true,
		"CLB_X1Y0/CLB_A1":   true,
	}}
	res := reportsWith(t, oracle, test, report)
	if res.errors != 0 {
		t.Fatalf("unexpected errors\n%s", res.errLog)
	}
	if res.session.ExceptionCount(NodelessWire) != 2 || res.session.ExceptionCount(MissingWire) != 0 {
		t.Fatalf("expected a nodeless wire and a nodeless conn\n%s", res.excLog)
	}
}

const extraPip = "\t\t(pip INT_L_X0Y0 INT_X -> INT_Y)\n"

func withExtraPip(r string) string {
	return strings.Replace(r, "\t\t(pip INT_L_X0Y0 INT_AQ -> INT_A1)\n", "\t\t(pip INT_L_X0Y0 INT_AQ -> INT_A1)\n"+extraPip, 1)
}

func TestExtraPip(t *testing.T) {
	oracle := knownResources{pips: map[string]bool{"INT_L_X0Y0/INT_X/INT_Y": true}}
	res := reportsWith(t, oracle, withExtraPip(report), report)
	if res.errors != 0 || res.session.ExceptionCount(ExtraPip) != 1 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}

	res = reportsWith(t, nil, withExtraPip(report), report)
	if res.errors != 1 || !strings.Contains(res.errLog, "Extra pip INT_X [INT_Y]") {
		t.Fatalf("expected an extra pip error without the oracle\n%s", res.errLog)
	}

	test := strings.Replace(report, "(tile_summary INT_L_X0Y0 INT_L 2 2 2)", "(tile_summary INT_L_X0Y0 INT_L 2 2 3)", 1)
	res = reports(t, test, report)
	if res.errors != 0 || res.session.ExceptionCount(ExtraPip) != 1 {
		t.Fatalf("expected a pip count exception\n%s\n%s", res.errLog, res.excLog)
	}
}

func TestExtraInterchangePip(t *testing.T) {
	oracle := knownResources{wires: map[string]bool{
		"INT_L_X0Y0/INT_X": true,
		"INT_L_X0Y0/INT_Y": true,
	}}
	res := reportsWith(t, oracle, withExtraPip(report), report)
	if res.errors != 0 || res.session.ExceptionCount(ExtraInterchangePip) != 1 || res.session.ExceptionCount(ExtraPip) != 0 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}
}

func TestBondIsPackageSpecific(t *testing.T) {
	test := strings.Replace(report, "SLICEL internal 2", "SLICEL unknown 2", 1)
	res := reports(t, test, report)
	if res.errors != 0 || res.session.ExceptionCount(PkgSpecific) != 1 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}
}

func TestPinwireMismatch(t *testing.T) {
	test := strings.Replace(report, "(pinwire AQ output INT_AQ)", "(pinwire AQ input INT_AQ)", 1)
	res := reports(t, test, report)
	// Both the test and the reference pinwire are reported.
	if res.errors != 2 || !strings.Contains(res.errLog, "PinWire mismatch for AQ INPUT INT_AQ") {
		t.Fatalf("unexpected errors %d\n%s", res.errors, res.errLog)
	}
}

func TestRouteThroughPip(t *testing.T) {
	ref := strings.Replace(report, "\t\t(pip INT_L_X0Y0 INT_AQ -> INT_A1)\n",
		"\t\t(pip INT_L_X0Y0 INT_AQ -> INT_A1)\n\t\t(pip INT_L_X0Y0 INT_AQ -> INT_RT (_ROUTETHROUGH-A-AQ SLICEL))\n", 1)
	res := reports(t, report, ref)
	if res.errors != 0 || res.session.ExceptionCount(RouteThrough) != 1 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}
}

func TestMissingPrimDefIsException(t *testing.T) {
	ref := strings.Replace(report, "(primitive_defs 2\n",
		"(primitive_defs 3\n\t(primitive_def AMS_ADC 1 0\n\t\t(pin X X input)\n\t)\n", 1)
	res := reports(t, report, ref)
	if res.errors != 0 {
		t.Fatalf("unexpected errors\n%s", res.errLog)
	}
	if res.session.ExceptionCount(PrimDefGeneral) != 2 {
		t.Fatalf("expected count and missing primitive_def exceptions\n%s", res.excLog)
	}
}

func TestExtraPrimDefIsError(t *testing.T) {
	res := reports(t, strings.Replace(report, "IOB33", "AAA", -1), report)
	if res.errors != 1 || !strings.Contains(res.errLog, "Extra PRIMITIVE_DEF AAA") {
		t.Fatalf("unexpected errors %d\n%s", res.errors, res.errLog)
	}
	if res.session.ExceptionCount(PrimDefGeneral) != 1 {
		t.Fatalf("expected the missing IOB33 exception\n%s", res.excLog)
	}
}

func TestElementDifferences(t *testing.T) {
	test := strings.Replace(report, "\t\t\t(conn AFF D <== A6LUT O6)\n", "", 1)
	test = strings.Replace(test, "\t\t\t(cfg I0)\n", "", 1)
	res := reports(t, test, report)
	if res.errors != 1 || !strings.Contains(res.errLog, "Missing element conn A6LUT O6 ==> AFF D Element: AFF") {
		t.Fatalf("unexpected errors %d\n%s", res.errors, res.errLog)
	}
	if res.session.ExceptionCount(CfgElement) != 1 {
		t.Fatalf("expected a cfg element exception\n%s", res.excLog)
	}
}

func TestVersionMismatch(t *testing.T) {
	test := strings.Replace(report, "v0.2", "v0.3", 1)
	res := reports(t, test, report)
	if res.errors != 1 || !strings.Contains(res.errLog, "Report version mismatch: v0.2 : v0.3") {
		t.Fatalf("unexpected errors %d\n%s", res.errors, res.errLog)
	}
}

func TestUnknownKeywordIsSkipped(t *testing.T) {
	test := strings.Replace(report, "(tiles 1 2\n", "(alternate_site_types IOB33 IOB33S)\n(tiles 1 2\n", 1)
	res := reports(t, test, report)
	if res.errors != 0 || res.exceptions != 0 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}
}

func TestCompareTiles(t *testing.T) {
	tile := "\t(tile 0 1 CLB_X0Y0 CLBLL_L 0\n\t\t(wire CLB_A1 1\n\t\t\t(conn INT_L_X0Y0 INT_A1)\n\t\t)\n\t\t(tile_summary CLB_X0Y0 CLBLL_L 0 1 0)\n\t)\n"
	res := run(t, tile, tile, (*Session).CompareTiles)
	if res.errors != 0 || res.exceptions != 0 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}

	res = run(t, strings.Replace(tile, "INT_A1", "INT_B1", 1), tile, (*Session).CompareTiles)
	if res.errors != 2 {
		t.Fatalf("expected extra and missing conn errors\n%s", res.errLog)
	}
}

func TestComparePrimDefs(t *testing.T) {
	start := strings.Index(report, "(primitive_defs")
	end := strings.Index(report, "(summary")
	defs := report[start:end]

	res := run(t, defs, defs, (*Session).ComparePrimDefs)
	if res.errors != 0 || res.exceptions != 0 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}

	res = run(t, strings.Replace(defs, "(pin A1 A1 input)", "(pin A1 A1 output)", 1), defs, (*Session).ComparePrimDefs)
	if res.errors != 1 || !strings.Contains(res.errLog, "Pin mismatch") {
		t.Fatalf("unexpected errors %d\n%s", res.errors, res.errLog)
	}
}

func TestCarry4(t *testing.T) {
	test := strings.Replace(report, "\t\t\t(pin Q output)\n", "\t\t\t(pin Q output)\n\t\t\t(pin CARRY4_CO output)\n", 1)
	test = strings.Replace(test, "\t\t(element AMUX 2\n",
		"\t\t(element CARRY4 1\n\t\t\t(pin CI input)\n\t\t)\n\t\t(element AMUX 2\n", 1)
	res := reports(t, test, report)
	if res.errors != 0 {
		t.Fatalf("unexpected errors\n%s", res.errLog)
	}
	if res.session.ExceptionCount(Carry4) != 2 {
		t.Fatalf("expected an extra CARRY4 element and pin\n%s", res.excLog)
	}
}

func TestCinPrecyinit(t *testing.T) {
	ref := strings.Replace(report, "AMUX", "CIN", -1)
	test := strings.Replace(ref, "\t\t(element CIN 2\n", "\t\t(element CIN 2\n\t\t\t(pin EXTRA input)\n", 1)
	test = strings.Replace(test, "\t\t\t(cfg I0)\n", "\t\t\t(cfg I0 I1)\n", 1)
	res := reports(t, test, ref)
	if res.errors != 0 {
		t.Fatalf("unexpected errors\n%s", res.errLog)
	}
	if res.session.ExceptionCount(CinPrecyinit) != 2 {
		t.Fatalf("expected an extra pin and a cfg exception\n%s", res.excLog)
	}

	// The same differences on any other element are errors.
	res = reports(t, strings.Replace(test, "CIN", "AMUX", -1), report)
	if res.errors != 2 || !strings.Contains(res.errLog, "CFG mismatch Element: AMUX [I0 I1] [I0]") {
		t.Fatalf("unexpected errors %d\n%s", res.errors, res.errLog)
	}
}

func TestCfgPrimDef(t *testing.T) {
	test := strings.Replace(report, "(primitive_def SLICEL 2 2", "(primitive_def SLICEL 2 3", 1)
	res := reports(t, test, report)
	if res.errors != 0 || res.session.ExceptionCount(CfgPrimDef) != 1 || res.exceptions != 1 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}
}

func TestPrimDefCfg(t *testing.T) {
	test := strings.Replace(report, "\t\t(pin AQ AQ output)\n", "\t\t(pin AQ AQ output)\n\t\t(cfg LATCH)\n", 1)
	res := reports(t, test, report)
	if res.errors != 0 || res.session.ExceptionCount(Cfg) != 1 || res.exceptions != 1 {
		t.Fatalf("unexpected result\n%s\n%s", res.errLog, res.excLog)
	}
}
