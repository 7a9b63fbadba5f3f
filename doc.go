// Package pumphydraulics computes fireground pump hydraulics: hydrant
// supply-side flow and pressure, discharge-side friction loss and
// required pump discharge pressure, and the advisories a pump operator
// would want surfaced from either.
//
// # Overview
//
// pumphydraulics is a pure calculation engine. It owns no I/O, no
// network or terminal concerns, and no mutable shared state: every call
// to Engine.Recompute takes a complete SystemState snapshot and returns
// a complete Derived snapshot, deterministically.
//
// # Architecture
//
//   - types.go       - the five input/output entities (SystemState, Derived, ...)
//   - tables.go       - embedded friction coefficient / appliance / nozzle data
//   - nozzle.go       - Freeman-formula and rated-flow nozzle evaluation
//   - friction.go     - IFSTA coefficient-method friction loss
//   - supply.go       - damped fixed-point hydrant supply solver
//   - curve.go        - pump performance curve, NFPA 291 hydrant flow test
//   - discharge.go    - per-line required/actual flow and pressure
//   - advisories.go   - operator-facing messages derived from the above
//   - engine.go        - Config + Engine, wiring stages A-E together
//
// # Quick Start
//
//	tables, err := pumphydraulics.NewTables()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine := pumphydraulics.NewEngine(tables, pumphydraulics.DefaultConfig())
//
//	state := pumphydraulics.SystemState{
//	    StaticPSI: 65,
//	    Legs: map[pumphydraulics.Port]*pumphydraulics.SupplyLeg{
//	        pumphydraulics.PortSteamer: {Port: pumphydraulics.PortSteamer, SizeIn: 5, LengthFt: 20},
//	    },
//	    GovernorPSI: 150,
//	    PDPPSI:      150,
//	    Discharges: []pumphydraulics.DischargeLine{
//	        {
//	            ID:     "1.75-attack",
//	            Hose:   pumphydraulics.HoseSpec{DiameterIn: 1.75, LengthFt: 200},
//	            Nozzle: pumphydraulics.NewSmoothBore(15.0/16, 50),
//	            GateOpen: true,
//	        },
//	    },
//	}
//
//	derived, err := engine.Recompute(state)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("intake=%.1f psi, total flow=%.0f gpm\n", derived.EngineIntakePSI, derived.TotalInflowGPM)
//
// # Lenient vs. strict mode
//
// The default Config is lenient: an unresolvable hose coefficient or
// appliance id falls back to a documented default and records an
// Advisory; a supply solver that fails to converge within its iteration
// budget still returns its best estimate, flagged the same way. Setting
// StrictHose, StrictNozzle, or StrictState turns the corresponding
// category into a returned *ValidationError instead, for callers that
// would rather fail a calculation than silently approximate it.
//
// # Determinism
//
// Recompute never reads the clock, never consults global state, and
// never starts a goroutine. Two calls with equal SystemState values
// always produce equal Derived values, map iteration included — see
// AllPorts for why per-leg aggregation never ranges over a map.
package pumphydraulics
