package pumphydraulics

import "math"

// PumpCurveMaxGPM evaluates the pump performance curve (NFPA 1901-style:
// 110% of rated flow below half rated pressure, rated flow at rated
// pressure, 65% of rated flow at 1.5x rated pressure) at pressurePSI.
// The curve is continuous and piecewise-linear, clamped beyond its knots
// (§4.D).
func PumpCurveMaxGPM(ratedGPM, pressurePSI, ratedPressurePSI float64) float64 {
	half := 0.5 * ratedPressurePSI
	oneHalf := 1.5 * ratedPressurePSI

	switch {
	case pressurePSI <= half:
		return 1.10 * ratedGPM
	case pressurePSI <= ratedPressurePSI:
		frac := (pressurePSI - half) / (ratedPressurePSI - half)
		return 1.10*ratedGPM + frac*(ratedGPM-1.10*ratedGPM)
	case pressurePSI <= oneHalf:
		frac := (pressurePSI - ratedPressurePSI) / (oneHalf - ratedPressurePSI)
		return ratedGPM + frac*(0.65*ratedGPM-ratedGPM)
	default:
		return 0.65 * ratedGPM
	}
}

// PumpCurvePressureAt inverts PumpCurveMaxGPM: the highest pressure at
// which the pump can still sustain at least flowGPM. Flows at or below
// the curve's floor (65% of rated) are sustainable at any pressure, so
// that case returns +Inf; flows above the curve's ceiling (110% of
// rated) are never sustainable, so that case returns 0. Used to compute
// the governor-limited flag (§4.D).
func PumpCurvePressureAt(ratedGPM, flowGPM, ratedPressurePSI float64) float64 {
	ceiling := 1.10 * ratedGPM
	floor := 0.65 * ratedGPM
	half := 0.5 * ratedPressurePSI
	oneHalf := 1.5 * ratedPressurePSI

	switch {
	case flowGPM > ceiling:
		return 0
	case flowGPM <= floor:
		return math.Inf(1)
	case flowGPM > ratedGPM:
		// first linear segment: ceiling at `half`, ratedGPM at ratedPressurePSI
		frac := (ceiling - flowGPM) / (ceiling - ratedGPM)
		return half + frac*(ratedPressurePSI-half)
	default:
		// second linear segment: ratedGPM at ratedPressurePSI, floor at oneHalf
		frac := (ratedGPM - flowGPM) / (ratedGPM - floor)
		return ratedPressurePSI + frac*(oneHalf-ratedPressurePSI)
	}
}

// cavitationPressureFloor returns the minimum engine intake pressure
// below which the pump is considered to be cavitating at the given PDP
// setpoint (§4.D).
func cavitationPressureFloor(pdpPSI float64) float64 {
	switch {
	case pdpPSI > 200:
		return 15
	case pdpPSI > 150:
		return 10
	default:
		return 5
	}
}

// hydrantMainCapacityConstant (K) is the empirical fit for a 5.25-inch
// hydrant main valve (§4.C).
const hydrantMainCapacityConstant = 348.0

// hydrantMaxCapacityGPM returns Q_max_hyd, the hydrant main's capacity
// ceiling at the given static pressure.
func hydrantMaxCapacityGPM(staticPSI float64) float64 {
	if staticPSI <= 20 {
		return 0
	}
	return hydrantMainCapacityConstant * math.Sqrt(staticPSI-20)
}

// HydrantFlowAtResidual implements the NFPA 291 flow-test formula:
// Q2 = Q1 * sqrt((staticPSI - desiredResidualPSI) / (staticPSI - testResidualPSI)).
// It predicts the flow available at desiredResidualPSI given a measured
// test flow testFlowGPM at testResidualPSI. The 0.5 exponent (square
// root) is normative here; a 0.54 variant is an acceptable alternate
// within about 3% (§9 open question).
func HydrantFlowAtResidual(staticPSI, testResidualPSI, testFlowGPM, desiredResidualPSI float64) float64 {
	denom := staticPSI - testResidualPSI
	if denom <= 0 {
		return 0
	}
	numer := staticPSI - desiredResidualPSI
	if numer <= 0 {
		return 0
	}
	return testFlowGPM * math.Sqrt(numer/denom)
}

// SupplyCurvePoint is one sample of the hydrant supply curve: the flow
// available at a given residual pressure.
type SupplyCurvePoint struct {
	ResidualPSI float64
	FlowGPM     float64
}

// SupplyCurve samples HydrantFlowAtResidual from staticPSI down to 20
// psi in steps, for charting alongside the pump performance curve (see
// SPEC_FULL.md §4 SUPPLEMENTED FEATURES). It is a read-only derived view
// over the same NFPA 291 formula the engine already exposes, not new
// simulation semantics.
func SupplyCurve(staticPSI, testResidualPSI, testFlowGPM float64, steps int) []SupplyCurvePoint {
	if steps < 2 {
		steps = 2
	}
	points := make([]SupplyCurvePoint, 0, steps)
	span := staticPSI - 20
	if span <= 0 {
		return points
	}
	for i := 0; i < steps; i++ {
		residual := staticPSI - span*float64(i)/float64(steps-1)
		flow := HydrantFlowAtResidual(staticPSI, testResidualPSI, testFlowGPM, residual)
		points = append(points, SupplyCurvePoint{ResidualPSI: residual, FlowGPM: flow})
	}
	return points
}
