package funcs

import (
	"github.com/sarchlab/mcrecipe/csvcache"
	"github.com/sarchlab/mcrecipe/registry"
)

// NewRegistry builds a registry.Registry with every built-in function
// registered exactly once (spec §4.3: "registration is performed once
// at process start by domain modules"). It lives here rather than on
// registry.Registry itself to avoid a registry -> funcs -> registry
// import cycle: registry only knows the Executable/Factory contract,
// funcs supplies the concrete built-ins.
//
// Each RegisterXxx call is explicit, the same reason NewEmulator wires
// up e.alu, e.lsu, e.branchUnit, and e.simdUnit by hand instead of
// relying on package-level init() registration: a missing or
// double-registered built-in shows up immediately at this one call
// site instead of depending on Go's cross-package init ordering.
func NewRegistry(cache *csvcache.Cache) *registry.Registry {
	r := registry.New()
	RegisterMath(r)
	RegisterComparisons(r)
	RegisterLogicals(r)
	RegisterSeries(r)
	RegisterSamplers(r)
	RegisterCSV(r, cache)
	RegisterDomain(r)
	return r
}
