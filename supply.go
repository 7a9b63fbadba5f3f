package pumphydraulics

import "math"

const (
	supplyMaxIter       = 20
	supplyConvergenceEps = 2.0  // psi
	supplyDamping        = 0.5
	residualFloorPSI     = 20.0
	residualGuardPSI     = residualFloorPSI + 1.0
	residualBackoff      = 0.85
)

// legResistance bundles one open leg's precomputed hydraulic parameters.
type legResistance struct {
	port   Port
	sizeIn float64
	r      float64 // R_i: friction resistance, psi per (100 gpm)^2
	l      float64 // L_i: series appliance losses, psi
	b      float64 // B_i: HAV boost contribution (steamer only, Boost mode), psi
}

// supplyResult is the solver's internal output before rounding.
type supplyResult struct {
	intakePSI   float64
	residualPSI float64
	perLegGPM   map[Port]float64
	totalGPM    float64
	diagnostics SupplyDiagnostics
}

// buildLegResistances translates the open legs of state into their
// hydraulic parameters, applying the HAV's steamer-only effects.
func buildLegResistances(state SystemState, tables *Tables, advisories *[]Advisory) []legResistance {
	var out []legResistance
	for _, leg := range state.openLegs() {
		hose := HoseSpec{DiameterIn: leg.SizeIn, LengthFt: leg.LengthFt}
		lr := legResistance{
			port:   leg.Port,
			sizeIn: leg.SizeIn,
			r:      hoseResistance(hose, tables, advisories),
		}
		if leg.SizeIn == 5 && leg.Port != PortSteamer {
			lr.l += tables.ApplianceLoss("storz_adapter_side_5in", advisories)
		}
		if leg.Port == PortSteamer && state.HAV.Enabled {
			switch state.HAV.Mode {
			case HAVBypass:
				lr.l += tables.ApplianceLoss("hav_bypass", advisories)
			case HAVBoost:
				lr.b += state.HAV.BoostPSI
			}
		}
		out = append(out, lr)
	}
	return out
}

// legFlow solves Q_i from the per-leg equilibrium equation:
//
//	static - R_i*(Q_i/100)^2 - L_i + B_i = intakePSI
//
// Returns 0 when the radicand is non-positive (§4.C).
func legFlow(staticPSI, intakePSI float64, leg legResistance) float64 {
	if leg.r <= 0 {
		return 0
	}
	radicand := (staticPSI - intakePSI - leg.l + leg.b) / leg.r
	if radicand <= 0 {
		return 0
	}
	return 100 * math.Sqrt(radicand)
}

// legFrictionLossPSI returns R_i*(Q_i/100)^2, the pure hydraulic friction
// term (excludes appliance losses L_i and HAV boost B_i).
func legFrictionLossPSI(leg legResistance, flowGPM float64) float64 {
	q := flowGPM / 100
	return leg.r * q * q
}

// legBackIntakePSI back-calculates the per-leg intake pressure implied by
// flowGPM: static - R_i*(Q_i/100)^2 - L_i + B_i.
func legBackIntakePSI(staticPSI float64, leg legResistance, flowGPM float64) float64 {
	return staticPSI - legFrictionLossPSI(leg, flowGPM) - leg.l + leg.b
}

// flowWeightedAverage computes Σ(weight_i * value_i) / Σ(weight_i), the
// averaging rule the solver uses both for its residual estimate and for
// its intake-pressure re-estimate. Returns fallback when the weights sum
// to zero (no flow anywhere).
func flowWeightedAverage(weights, values []float64, fallback float64) float64 {
	var wsum, vsum float64
	for i := range weights {
		wsum += weights[i]
		vsum += weights[i] * values[i]
	}
	if wsum <= 0 {
		return fallback
	}
	return vsum / wsum
}

// scaleFlowsTo uniformly scales flows so their sum does not exceed cap,
// leaving them untouched if already within the cap. Returns the (possibly
// unchanged) flows and the resulting total.
func scaleFlowsTo(flows []float64, cap float64) ([]float64, float64) {
	total := 0.0
	for _, f := range flows {
		total += f
	}
	if cap <= 0 || total <= cap {
		return flows, total
	}
	scale := cap / total
	out := make([]float64, len(flows))
	for i, f := range flows {
		out[i] = f * scale
	}
	return out, cap
}

// solveSupply implements §4.C: the damped fixed-point iteration that
// finds the equilibrium {per-leg flow, engine intake pressure, hydrant
// residual pressure} across all open supply legs.
func solveSupply(state SystemState, tables *Tables, advisories *[]Advisory) supplyResult {
	legs := buildLegResistances(state, tables, advisories)

	result := supplyResult{perLegGPM: map[Port]float64{}}
	for _, p := range AllPorts {
		result.perLegGPM[p] = 0
	}

	if len(legs) == 0 {
		result.residualPSI = state.StaticPSI
		result.diagnostics.Converged = true
		return result
	}

	if state.StaticPSI <= 20 {
		result.residualPSI = state.StaticPSI
		result.diagnostics.Converged = true
		return result
	}

	qMaxHyd := hydrantMaxCapacityGPM(state.StaticPSI)

	intake := 0.3 * state.StaticPSI
	var flows []float64
	converged := false
	iterations := 0

	for ; iterations < supplyMaxIter; iterations++ {
		flows = make([]float64, len(legs))
		for i, leg := range legs {
			flows[i] = legFlow(state.StaticPSI, intake, leg)
		}

		var total float64
		flows, total = scaleFlowsTo(flows, qMaxHyd)
		if total > 0 {
			backIntakes := make([]float64, len(legs))
			for i, leg := range legs {
				backIntakes[i] = legBackIntakePSI(state.StaticPSI, leg, flows[i])
			}
			intake = flowWeightedAverage(flows, backIntakes, intake)
		}

		frictionLosses := make([]float64, len(legs))
		for i, leg := range legs {
			frictionLosses[i] = legFrictionLossPSI(leg, flows[i])
		}
		weightedFriction := flowWeightedAverage(flows, frictionLosses, 0)
		residualEstimate := state.StaticPSI - 0.4*weightedFriction

		if residualEstimate < residualGuardPSI {
			intake *= residualBackoff
			continue
		}

		backIntakes := make([]float64, len(legs))
		for i, leg := range legs {
			backIntakes[i] = legBackIntakePSI(state.StaticPSI, leg, flows[i])
		}
		newIntake := flowWeightedAverage(flows, backIntakes, intake)

		if math.Abs(newIntake-intake) < supplyConvergenceEps {
			intake = newIntake
			converged = true
			iterations++
			break
		}
		intake = (intake + newIntake) / 2
	}

	if flows == nil {
		flows = make([]float64, len(legs))
	}

	flows, _ = scaleFlowsTo(flows, PumpCurveMaxGPM(state.ratedGPM(), state.GovernorPSI, state.ratedPressurePSI()))

	total := 0.0
	for i, leg := range legs {
		result.perLegGPM[leg.port] = flows[i]
		total += flows[i]
	}
	result.totalGPM = total

	if total > 0 {
		backIntakes := make([]float64, len(legs))
		frictionLosses := make([]float64, len(legs))
		for i, leg := range legs {
			backIntakes[i] = legBackIntakePSI(state.StaticPSI, leg, flows[i])
			frictionLosses[i] = legFrictionLossPSI(leg, flows[i])
		}
		intake = flowWeightedAverage(flows, backIntakes, intake)
		weightedFriction := flowWeightedAverage(flows, frictionLosses, 0)
		result.residualPSI = state.StaticPSI - 0.4*weightedFriction
	} else {
		intake = 0
		result.residualPSI = state.StaticPSI
	}

	result.intakePSI = intake
	result.diagnostics = SupplyDiagnostics{IterationsUsed: iterations, Converged: converged}

	if !converged && advisories != nil {
		*advisories = append(*advisories, advisoryOf(CodeSupplyNonconverged, SeverityWarn,
			"Supply-side solver did not fully converge; results are approximate."))
	}

	result.intakePSI = round1(result.intakePSI)
	result.residualPSI = round1(result.residualPSI)
	for p, v := range result.perLegGPM {
		result.perLegGPM[p] = math.Round(v)
	}
	result.totalGPM = math.Round(result.totalGPM)

	return result
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
