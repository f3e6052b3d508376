package compare

// Exception names a known, acceptable difference between a generated report
// and a reference report.
type Exception string

const (
	// Carry4 marks elements next to the CARRY4 (CARRY4_XOR and friends) that
	// the reference does not list.
	Carry4 Exception = "CARRY4_EXCEPTION"
	// Cfg marks cfg declarations, which cannot be derived from the device.
	Cfg Exception = "CFG_EXCEPTION"
	// CfgElement marks elements that only declare cfg bits.
	CfgElement Exception = "CFG_ELEMENT_EXCEPTION"
	// CfgPrimDef marks primitive_def element counts that are off because of
	// missing cfg only elements.
	CfgPrimDef Exception = "CFG_PRIM_DEF_EXCEPTION"
	// CinPrecyinit marks the CIN to PRECYINIT connection the reference omits.
	CinPrecyinit Exception = "CIN_PRECYINIT_EXCEPTION"
	// ExtraInterchangePip marks a PIP whose wires are known to the oracle
	// but which neither the reference nor the oracle lists.
	ExtraInterchangePip Exception = "EXTRA_INTERCHANGE_PIP_EXCEPTION"
	// ExtraPip marks a PIP the oracle knows and the reference does not.
	ExtraPip Exception = "EXTRA_PIP_EXCEPTION"
	// ExtraWire marks a wire or conn the oracle knows and the reference does not.
	ExtraWire Exception = "EXTRA_WIRE_EXCEPTION"
	// MissingWire marks a wire that only the reference lists.
	MissingWire Exception = "MISSING_WIRE_EXCEPTION"
	// NodelessWire marks a wire that has no node, so its conns are missing.
	NodelessWire Exception = "NODELESS_WIRE_EXCEPTION"
	// PkgSpecific marks package specific bonding information.
	PkgSpecific Exception = "PKG_SPECIFIC_EXCEPTION"
	// PrimDefGeneral marks primitive_defs the reference lists for site types
	// the device does not have.
	PrimDefGeneral Exception = "PRIM_DEF_GENERAL_EXCEPTION"
	// RouteThrough marks _ROUTETHROUGH PIPs and elements.
	RouteThrough Exception = "ROUTETHROUGH_EXCEPTION"
)

// Exceptions lists the catalog in alphabetical order.
var Exceptions = []Exception{
	Carry4,
	Cfg,
	CfgElement,
	CfgPrimDef,
	CinPrecyinit,
	ExtraInterchangePip,
	ExtraPip,
	ExtraWire,
	MissingWire,
	NodelessWire,
	PkgSpecific,
	PrimDefGeneral,
	RouteThrough,
}
