package diagnostic

import "github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"

// ForFlavor dispatches to the Parser appropriate for an HDL flavor.
func ForFlavor(flavor hdl.Flavor) Parser {
	switch flavor {
	case hdl.FlavorVHDL:
		return ParseVHDL
	case hdl.FlavorChisel:
		return ParseChisel
	case hdl.FlavorBluespec:
		return ParseBluespec
	default:
		return ParseVerilog
	}
}
