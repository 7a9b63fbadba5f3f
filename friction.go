package pumphydraulics

// hoseResistance returns R in FL = R * (Q/100)^2, i.e. C(diameter)*length/100,
// honoring a caller-supplied coefficient override.
func hoseResistance(hose HoseSpec, tables *Tables, advisories *[]Advisory) float64 {
	c := hose.CoefficientOverride
	var coeff float64
	if c != nil {
		coeff = *c
	} else {
		coeff = tables.FrictionCoefficient(hose.DiameterIn, advisories)
	}
	return coeff * hose.LengthFt / 100
}

// FrictionLoss computes FL = C*(Q/100)^2*(L/100) for flowGPM through hose,
// resolving C from tables unless hose.CoefficientOverride is set (§4.D
// step 2, §6 helper). advisories may be nil to suppress fails-soft
// reporting (e.g. when the diameter was already validated upstream).
func FrictionLoss(flowGPM float64, hose HoseSpec, tables *Tables, advisories *[]Advisory) float64 {
	r := hoseResistance(hose, tables, advisories)
	q := flowGPM / 100
	return r * q * q
}
