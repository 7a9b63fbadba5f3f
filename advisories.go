package pumphydraulics

import "fmt"

// Severity is the UI-rendering hint attached to an Advisory.
type Severity string

const (
	SeverityWarn    Severity = "warn"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// AdvisoryCode is a stable identifier a caller can switch on without
// parsing rendered text. New codes may be added over time; existing ones
// never change meaning or severity (§4.E contract).
type AdvisoryCode string

const (
	CodeUnknownHoseCoeff    AdvisoryCode = "unknown_hose_coeff"
	CodeUnknownAppliance    AdvisoryCode = "unknown_appliance"
	CodeSupplyNonconverged  AdvisoryCode = "supply_nonconverged"
	CodeResidualBelowFloor  AdvisoryCode = "residual_below_floor"
	CodeResidualMarginal    AdvisoryCode = "residual_marginal"
	CodeResidualExcellent   AdvisoryCode = "residual_excellent"
	CodeIntakeLow           AdvisoryCode = "intake_low"
	CodeCavitationRisk      AdvisoryCode = "cavitation_risk"
	CodeGovernorLimited     AdvisoryCode = "governor_limited"
	CodeSingleLegHighFlow   AdvisoryCode = "single_leg_high_flow"
	CodeDoubleTap           AdvisoryCode = "double_tap"
	CodeTripleTap           AdvisoryCode = "triple_tap"
	CodeHAVBoostActive      AdvisoryCode = "hav_boost_active"
	CodeHAVBypassActive     AdvisoryCode = "hav_bypass_active"
	CodeSmallHoseHighFlow   AdvisoryCode = "small_hose_high_flow"
)

// Advisory is a categorized, renderable message. Severity is fixed per
// Code; RenderedText is the default template already filled with the
// numeric values that produced it — callers are free to re-render from
// Code with their own localized template instead.
type Advisory struct {
	Severity     Severity     `json:"severity"`
	Code         AdvisoryCode `json:"code"`
	RenderedText string       `json:"rendered_text"`
}

func advisoryOf(code AdvisoryCode, severity Severity, text string) Advisory {
	return Advisory{Severity: severity, Code: code, RenderedText: text}
}

// deriveAdvisories implements §4.E: a small, bounded, testable set of
// messages computed purely from the already-derived numeric outputs plus
// the input state. Order is deterministic (declaration order below).
func deriveAdvisories(state SystemState, d *Derived) []Advisory {
	var out []Advisory

	anyFlow := d.TotalInflowGPM > 0

	switch {
	case anyFlow && d.HydrantResidualPSI < 20:
		out = append(out, advisoryOf(CodeResidualBelowFloor, SeverityWarn,
			fmt.Sprintf("Hydrant residual %.1f psi is below the NFPA 291 20 psi floor.", d.HydrantResidualPSI)))
	case anyFlow && d.HydrantResidualPSI < 25:
		out = append(out, advisoryOf(CodeResidualMarginal, SeverityWarn,
			fmt.Sprintf("Hydrant residual %.1f psi is marginal (20-25 psi).", d.HydrantResidualPSI)))
	case anyFlow && d.HydrantResidualPSI >= 40:
		out = append(out, advisoryOf(CodeResidualExcellent, SeveritySuccess,
			fmt.Sprintf("Hydrant residual %.1f psi is excellent.", d.HydrantResidualPSI)))
	}

	if d.EngineIntakePSI < 25 {
		out = append(out, advisoryOf(CodeIntakeLow, SeverityWarn,
			fmt.Sprintf("Engine intake %.1f psi is low.", d.EngineIntakePSI)))
	}

	if d.Cavitating {
		out = append(out, advisoryOf(CodeCavitationRisk, SeverityWarn,
			fmt.Sprintf("Cavitation risk: intake %.1f psi is below the required minimum for PDP %.0f psi.",
				d.EngineIntakePSI, state.PDPPSI)))
	}

	if d.GovernorLimited {
		out = append(out, advisoryOf(CodeGovernorLimited, SeverityWarn,
			fmt.Sprintf("Governor setting %.0f psi cannot sustain the demanded flow.", state.GovernorPSI)))
	}

	openLegs := state.openLegs()
	switch len(openLegs) {
	case 1:
		if d.TotalInflowGPM > 1000 {
			out = append(out, advisoryOf(CodeSingleLegHighFlow, SeverityInfo,
				fmt.Sprintf("Single supply leg carrying %.0f gpm.", d.TotalInflowGPM)))
		}
	case 2:
		out = append(out, advisoryOf(CodeDoubleTap, SeveritySuccess, "Double tap: two supply legs open."))
	case 3:
		out = append(out, advisoryOf(CodeTripleTap, SeverityInfo, "Triple tap: all three supply legs open."))
	}

	if state.HAV.Enabled {
		switch state.HAV.Mode {
		case HAVBoost:
			out = append(out, advisoryOf(CodeHAVBoostActive, SeverityInfo,
				fmt.Sprintf("Hydrant-assist valve boosting +%.0f psi on the steamer leg.", state.HAV.BoostPSI)))
		case HAVBypass:
			out = append(out, advisoryOf(CodeHAVBypassActive, SeverityInfo, "Hydrant-assist valve in bypass."))
		}
	}

	for _, leg := range openLegs {
		if leg.SizeIn == 3 && d.TotalInflowGPM > 500 {
			out = append(out, advisoryOf(CodeSmallHoseHighFlow, SeverityWarn,
				fmt.Sprintf("3-inch supply leg open with total inflow %.0f gpm.", d.TotalInflowGPM)))
			break
		}
	}

	return out
}
