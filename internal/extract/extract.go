package extract

import "github.com/LSC-Unicamp/processor-ci-sub000/internal/hdl"

// Func is the signature every flavor-specific extractor implements.
type Func func(file, src string) Result

// ForFlavor returns the extraction function for a flavor.
func ForFlavor(flavor hdl.Flavor) Func {
	switch flavor {
	case hdl.FlavorVerilog:
		return ExtractVerilog
	case hdl.FlavorVHDL:
		return ExtractVHDL
	case hdl.FlavorChisel:
		return ExtractChisel
	case hdl.FlavorBluespec:
		return ExtractBluespec
	default:
		return func(string, string) Result { return Result{} }
	}
}
