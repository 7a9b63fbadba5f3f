package pumphydraulics

import "math"

// elevationPressurePerFoot is the psi-per-foot conversion for elevation
// head (0.434 psi/ft, water at standard density).
const elevationPressurePerFoot = 0.434

// ElevationPressure returns EP = 0.434 * elevationFt (§4.D step 3).
func ElevationPressure(elevationFt float64) float64 {
	return elevationPressurePerFoot * elevationFt
}

// RequiredPDP computes the pump-discharge pressure a single discharge
// line needs: nozzle pressure + friction loss + appliance losses +
// elevation pressure (§4.D steps 1-5, §6 helper).
func RequiredPDP(line DischargeLine, tables *Tables, advisories *[]Advisory) (float64, error) {
	qReq, err := NozzleFlow(line.Nozzle)
	if err != nil {
		return 0, err
	}
	fl := FrictionLoss(qReq, line.Hose, tables, advisories)
	ep := ElevationPressure(line.ElevationFt)
	return line.Nozzle.NozzlePressurePSI + fl + line.ApplianceLossesPSI + ep, nil
}

// dischargeLineCalc is the per-line working set computed in §4.D step 1-5,
// before aggregation and distribution.
type dischargeLineCalc struct {
	line           DischargeLine
	requiredGPM    float64
	frictionLossPSI float64
	requiredPDPPSI float64
}

// evaluateDischargeLines runs §4.D steps 1-5 for every line, skipping the
// per-line computation for gate-closed lines per invariant 4 (they stay
// zeroed) but still carrying them through so output order matches input
// order.
func evaluateDischargeLines(state SystemState, tables *Tables, advisories *[]Advisory) ([]dischargeLineCalc, error) {
	calcs := make([]dischargeLineCalc, len(state.Discharges))
	for i, line := range state.Discharges {
		calcs[i].line = line
		if !line.GateOpen {
			continue
		}
		// Strict mode rejects an invalid nozzle before this point; here it
		// is treated as zero flow (NozzleFlow returns 0 with its error).
		qReq, _ := NozzleFlow(line.Nozzle)
		fl := FrictionLoss(qReq, line.Hose, tables, advisories)
		ep := ElevationPressure(line.ElevationFt)
		calcs[i].requiredGPM = qReq
		calcs[i].frictionLossPSI = fl
		calcs[i].requiredPDPPSI = line.Nozzle.NozzlePressurePSI + fl + line.ApplianceLossesPSI + ep
	}
	return calcs, nil
}

// smoothBoreStarvedFlow solves, by Newton iteration (<=5 steps), the
// nozzle pressure NP a smooth-bore nozzle actually receives when the
// pump can only deliver pdpAvail at the line, given
//
//	pdpAvail = NP + FL(Q(NP)) + applianceLossPSI + elevationPSI,  Q(NP) = 29.7*d^2*sqrt(NP)
//
// and returns the resulting (reduced) flow. Because FL(Q(NP)) is
// proportional to NP for a smooth bore (Q(NP)^2 = freemanConstant^2*d^4*NP),
// this converges in one or two steps; the bound is kept at 5 to match the
// spec's iteration budget rather than because more are ever needed.
func smoothBoreStarvedFlow(tipIn, pdpAvail, resistance, applianceLossPSI, elevationPSI float64) float64 {
	k := resistance * (freemanConstant * tipIn * tipIn / 100) * (freemanConstant * tipIn * tipIn / 100)
	// f(NP) = NP*(1+k) + applianceLossPSI + elevationPSI - pdpAvail = 0
	np := pdpAvail - applianceLossPSI - elevationPSI
	if np < 0 {
		np = 0
	}
	for i := 0; i < 5; i++ {
		f := np*(1+k) + applianceLossPSI + elevationPSI - pdpAvail
		fPrime := 1 + k
		if fPrime == 0 {
			break
		}
		next := np - f/fPrime
		if next < 0 {
			next = 0
		}
		if math.Abs(next-np) < 1e-6 {
			np = next
			break
		}
		np = next
	}
	return smoothBoreFlowAt(tipIn, np)
}

// applySmoothBoreRefinement implements the optional §4.D pressure-starved
// refinement: when a gate-open line's required PDP exceeds what the pump
// actually delivers (state.PDPPSI), a smooth-bore nozzle draws less than
// its rated flow, and a fog nozzle drops to zero once PDP_avail falls
// below its rated nozzle pressure plus appliance losses.
func applySmoothBoreRefinement(state SystemState, calcs []dischargeLineCalc, tables *Tables, actual []float64) {
	for i, calc := range calcs {
		line := calc.line
		if !line.GateOpen || calc.requiredPDPPSI <= state.PDPPSI {
			continue
		}
		ep := ElevationPressure(line.ElevationFt)
		if line.Nozzle.IsFog() {
			if state.PDPPSI < line.Nozzle.NozzlePressurePSI+line.ApplianceLossesPSI {
				actual[i] = 0
			}
			continue
		}
		resistance := hoseResistance(line.Hose, tables, nil)
		starved := smoothBoreStarvedFlow(line.Nozzle.TipIn, state.PDPPSI, resistance, line.ApplianceLossesPSI, ep)
		if starved < actual[i] {
			actual[i] = starved
		}
	}
}

// evaluateDischarges is the full §4.D pipeline: per-line computation,
// aggregation, pump-curve/cavitation/governor derating, and proportional
// distribution of actual flow.
func evaluateDischarges(state SystemState, tables *Tables, supply supplyResult, advisories *[]Advisory) (Derived, error) {
	calcs, err := evaluateDischargeLines(state, tables, advisories)
	if err != nil {
		return Derived{}, err
	}

	var totalDemand, maxRequiredPDP float64
	for _, c := range calcs {
		if !c.line.GateOpen {
			continue
		}
		totalDemand += c.requiredGPM
		if c.requiredPDPPSI > maxRequiredPDP {
			maxRequiredPDP = c.requiredPDPPSI
		}
	}

	ratedGPM := state.ratedGPM()
	ratedPressure := state.ratedPressurePSI()
	govCap := PumpCurveMaxGPM(ratedGPM, state.GovernorPSI, ratedPressure)

	cavitating := supply.intakePSI < cavitationPressureFloor(state.PDPPSI)
	governorLimited := false
	if totalDemand > 0 {
		governorLimited = state.PDPPSI > PumpCurvePressureAt(ratedGPM, totalDemand, ratedPressure)
	}

	actualTotal := math.Min(totalDemand, math.Min(supply.totalGPM, govCap))
	if cavitating {
		actualTotal = math.Min(actualTotal, 0.5*supply.totalGPM)
	}

	scale := 0.0
	if totalDemand > 0 {
		scale = actualTotal / totalDemand
	}

	actual := make([]float64, len(calcs))
	for i, c := range calcs {
		if !c.line.GateOpen {
			continue
		}
		actual[i] = c.requiredGPM * scale
	}

	applySmoothBoreRefinement(state, calcs, tables, actual)

	perDischarge := make([]DischargeResult, len(calcs))
	actualSum := 0.0
	for i, c := range calcs {
		rounded := math.Round(actual[i])
		perDischarge[i] = DischargeResult{
			ID:              c.line.ID,
			RequiredGPM:     math.Round(c.requiredGPM),
			ActualGPM:       rounded,
			FrictionLossPSI: round1(c.frictionLossPSI),
			RequiredPDPPSI:  round1(c.requiredPDPPSI),
		}
		actualSum += rounded
	}

	return Derived{
		TotalDischargeDemandGPM: math.Round(totalDemand),
		TotalDischargeFlowGPM:   actualSum,
		PerDischarge:            perDischarge,
		Cavitating:              cavitating,
		GovernorLimited:         governorLimited,
	}, nil
}
