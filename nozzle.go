package pumphydraulics

import "math"

// freemanConstant is the Freeman-formula coefficient for a smooth-bore
// tip, Q = freemanConstant * d^2 * sqrt(NP), assuming a discharge
// coefficient of approximately 0.98.
const freemanConstant = 29.7

// NozzleFlow returns the flow a nozzle draws at its rated nozzle
// pressure (§4.B). Smooth-bore uses the Freeman formula; fog variants
// are constant-flow devices and return RatedGPM unchanged.
func NozzleFlow(n NozzleSpec) (float64, error) {
	if n.Kind == NozzleSmoothBore {
		if n.TipIn <= 0 {
			return 0, newValidationError(InvalidNozzle, "smooth bore tip_in must be > 0, got %g", n.TipIn)
		}
		if n.NozzlePressurePSI <= 0 {
			return 0, nil
		}
		return freemanConstant * n.TipIn * n.TipIn * math.Sqrt(n.NozzlePressurePSI), nil
	}
	return n.RatedGPM, nil
}

// smoothBoreFlowAt returns the flow a smooth-bore nozzle draws at an
// arbitrary available nozzle pressure np (used by the discharge-side
// pressure-starved refinement, §4.D). Fog variants never reach this
// call; applySmoothBoreRefinement handles them separately.
func smoothBoreFlowAt(tipIn, np float64) float64 {
	if np <= 0 {
		return 0
	}
	return freemanConstant * tipIn * tipIn * math.Sqrt(np)
}
