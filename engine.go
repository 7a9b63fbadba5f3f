package pumphydraulics

// Config controls how Recompute handles the situations the underlying
// tables and formulas cannot resolve on their own: an unknown hose
// diameter, an unknown appliance id, or a supply solver that fails to
// converge. The zero value is lenient (fails soft everywhere); set the
// Strict* fields to turn specific categories into returned errors
// instead (§7).
type Config struct {
	// StrictHose rejects an unknown hose friction coefficient instead of
	// falling back to the table default.
	StrictHose bool
	// StrictNozzle rejects an invalid nozzle spec (e.g. a non-positive
	// smooth-bore tip) instead of treating it as zero flow.
	StrictNozzle bool
	// StrictState rejects a supply solver that fails to converge within
	// its iteration budget instead of returning its best estimate with
	// an advisory attached.
	StrictState bool
}

// DefaultConfig returns the lenient configuration: every fails-soft path
// is taken and surfaced only as an Advisory.
func DefaultConfig() Config {
	return Config{}
}

// Engine binds a data Tables to a Config and is the entry point for
// running the hydraulics calculation (§4, stages A-E).
type Engine struct {
	tables *Tables
	config Config
}

// NewEngine constructs an Engine. tables is typically produced by
// NewTables (the embedded canonical data) or NewTablesFromYAML (a
// field-calibrated override set).
func NewEngine(tables *Tables, config Config) *Engine {
	return &Engine{tables: tables, config: config}
}

// Recompute runs the full pipeline against state: supply-side solve
// (stage C), discharge-side evaluation (stage D), and advisory
// derivation (stage E), in that dependency order. It is pure and
// side-effect free — the same state always produces the same Derived.
//
// In lenient mode (the default), an unknown table lookup or a
// non-convergent solver never fails the call; it falls back and records
// an Advisory instead. Strict fields in Config turn the corresponding
// failure into a returned *ValidationError.
func (e *Engine) Recompute(state SystemState) (Derived, error) {
	if err := e.validateStrict(state); err != nil {
		return Derived{}, err
	}

	var advisories []Advisory
	supply := solveSupply(state, e.tables, &advisories)
	if e.config.StrictState && !supply.diagnostics.Converged {
		return Derived{}, newValidationError(SolverNonConvergent,
			"supply solver did not converge within %d iterations", supplyMaxIter)
	}

	derived, err := evaluateDischarges(state, e.tables, supply, &advisories)
	if err != nil {
		return Derived{}, err
	}

	derived.EngineIntakePSI = supply.intakePSI
	derived.TotalInflowGPM = supply.totalGPM
	derived.HydrantResidualPSI = supply.residualPSI
	derived.PerLegGPM = supply.perLegGPM
	derived.SupplyDiagnostics = supply.diagnostics

	derived.Advisories = append(advisories, deriveAdvisories(state, &derived)...)

	return derived, nil
}

// validateStrict runs the checks that only make sense to fail before any
// arithmetic starts: an unresolvable hose coefficient or nozzle in
// strict mode. Stage-internal strict checks (solver convergence) happen
// inline in Recompute instead, since they depend on the solve itself.
func (e *Engine) validateStrict(state SystemState) error {
	if e.config.StrictHose {
		for _, leg := range state.openLegs() {
			if leg.SizeIn == 0 {
				continue
			}
			if _, err := e.tables.FrictionCoefficientStrict(leg.SizeIn); err != nil {
				return err
			}
		}
		for _, d := range state.Discharges {
			if !d.GateOpen {
				continue
			}
			if _, err := e.tables.FrictionCoefficientStrict(d.Hose.DiameterIn); err != nil {
				return err
			}
		}
	}
	if e.config.StrictNozzle {
		for _, d := range state.Discharges {
			if !d.GateOpen {
				continue
			}
			if _, err := NozzleFlow(d.Nozzle); err != nil {
				return err
			}
		}
	}
	return nil
}
