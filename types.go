package pumphydraulics

// Port identifies a hydrant supply connection point on the apparatus.
type Port string

const (
	PortSteamer Port = "steamer"
	PortSideA   Port = "side_a"
	PortSideB   Port = "side_b"
)

// AllPorts lists every port in a fixed, stable order (steamer first, then
// the two side ports). Iteration order matters for determinism (§3
// invariant 8): callers and tests range over this slice rather than a map.
var AllPorts = []Port{PortSteamer, PortSideA, PortSideB}

// HoseSpec describes a length of supply or attack hose.
type HoseSpec struct {
	DiameterIn          float64  `json:"diameter_in"` // must key into the friction coefficient table
	LengthFt            float64  `json:"length_ft"`   // >= 0
	CoefficientOverride *float64 `json:"coefficient_override,omitempty"` // optional caller-supplied C, bypasses the table
}

// NozzleKind discriminates the NozzleSpec tagged union.
type NozzleKind string

const (
	NozzleSmoothBore    NozzleKind = "smooth_bore"
	NozzleFogFixed      NozzleKind = "fog_fixed"
	NozzleFogSelectable NozzleKind = "fog_selectable"
	NozzleFogAutomatic  NozzleKind = "fog_automatic"
)

// NozzleSpec is a closed sum type over the four nozzle kinds. Exactly the
// fields relevant to Kind are meaningful; callers should construct one of
// the NewSmoothBore/NewFog* helpers rather than setting fields directly.
type NozzleSpec struct {
	Kind              NozzleKind `json:"kind"`
	TipIn             float64    `json:"tip_in,omitempty"`    // SmoothBore only, in (0, 2.5]
	RatedGPM          float64    `json:"rated_gpm,omitempty"` // Fog* only, >= 0
	NozzlePressurePSI float64    `json:"nozzle_pressure_psi"` // all kinds, in [20, 200]
}

// NewSmoothBore constructs a smooth-bore nozzle spec.
func NewSmoothBore(tipIn, nozzlePressurePSI float64) NozzleSpec {
	return NozzleSpec{Kind: NozzleSmoothBore, TipIn: tipIn, NozzlePressurePSI: nozzlePressurePSI}
}

// NewFogFixed constructs a fixed-gallonage fog nozzle spec.
func NewFogFixed(ratedGPM, nozzlePressurePSI float64) NozzleSpec {
	return NozzleSpec{Kind: NozzleFogFixed, RatedGPM: ratedGPM, NozzlePressurePSI: nozzlePressurePSI}
}

// NewFogSelectable constructs a selectable-gallonage fog nozzle spec, set
// at its current selected flow.
func NewFogSelectable(ratedGPM, nozzlePressurePSI float64) NozzleSpec {
	return NozzleSpec{Kind: NozzleFogSelectable, RatedGPM: ratedGPM, NozzlePressurePSI: nozzlePressurePSI}
}

// NewFogAutomatic constructs an automatic (constant-pressure) fog nozzle spec.
func NewFogAutomatic(ratedGPM, nozzlePressurePSI float64) NozzleSpec {
	return NozzleSpec{Kind: NozzleFogAutomatic, RatedGPM: ratedGPM, NozzlePressurePSI: nozzlePressurePSI}
}

// IsFog reports whether n behaves as a constant-flow device (any of the
// three fog variants), as opposed to the pressure-dependent smooth bore.
func (n NozzleSpec) IsFog() bool {
	return n.Kind != NozzleSmoothBore
}

// SupplyLeg describes one open hydrant supply connection.
type SupplyLeg struct {
	Port     Port    `json:"port"`
	SizeIn   float64 `json:"size_in"` // 3 or 5
	LengthFt float64 `json:"length_ft"`
	GateOpen bool    `json:"gate_open"` // sides only; the steamer has no gate and is always open once connected
}

// HAVMode selects the hydrant-assist-valve's behavior.
type HAVMode string

const (
	HAVBypass HAVMode = "bypass"
	HAVBoost  HAVMode = "boost"
)

// HAV models a hydrant-assist valve inline on the steamer port.
type HAV struct {
	Enabled  bool    `json:"enabled"`
	Mode     HAVMode `json:"mode,omitempty"`
	Outlets  int     `json:"outlets,omitempty"`   // 1 or 2
	BoostPSI float64 `json:"boost_psi,omitempty"` // [0, 50], meaningful only in Boost mode
}

// DischargeLine is one open or closed attack line fed from the pump panel.
type DischargeLine struct {
	ID                 string     `json:"id"`
	Hose               HoseSpec   `json:"hose"`
	Nozzle             NozzleSpec `json:"nozzle"`
	GateOpen           bool       `json:"gate_open"`
	ElevationFt        float64    `json:"elevation_ft,omitempty"`         // positive = nozzle above pump
	ApplianceLossesPSI float64    `json:"appliance_losses_psi,omitempty"` // caller-supplied, no engine-internal default (§9 open question)
}

// SystemState is the complete input snapshot consumed by Recompute.
type SystemState struct {
	StaticPSI            float64              `json:"static_psi"`
	Legs                 map[Port]*SupplyLeg  `json:"legs"` // absent port => nil entry or missing key
	HAV                  HAV                  `json:"hav"`
	GovernorPSI          float64              `json:"governor_psi"`
	PDPPSI               float64              `json:"pdp_psi"`
	Discharges           []DischargeLine      `json:"discharges"`
	PumpRatedGPM         float64              `json:"pump_rated_gpm,omitempty"`       // default 1500 if zero
	PumpRatedPressurePSI float64              `json:"pump_rated_pressure_psi,omitempty"` // default 150 if zero
}

// openLegs returns the legs that actually carry flow, in AllPorts order:
// absent ports and gate-closed side legs are excluded (§4.C edge cases).
func (s SystemState) openLegs() []*SupplyLeg {
	var out []*SupplyLeg
	for _, p := range AllPorts {
		leg := s.Legs[p]
		if leg == nil {
			continue
		}
		if p != PortSteamer && !leg.GateOpen {
			continue
		}
		out = append(out, leg)
	}
	return out
}

func (s SystemState) ratedGPM() float64 {
	if s.PumpRatedGPM > 0 {
		return s.PumpRatedGPM
	}
	return 1500
}

func (s SystemState) ratedPressurePSI() float64 {
	if s.PumpRatedPressurePSI > 0 {
		return s.PumpRatedPressurePSI
	}
	return 150
}

// DischargeResult is the per-line projection inside Derived.
type DischargeResult struct {
	ID              string  `json:"id"`
	RequiredGPM     float64 `json:"required_gpm"`
	ActualGPM       float64 `json:"actual_gpm"`
	FrictionLossPSI float64 `json:"friction_loss_psi"`
	RequiredPDPPSI  float64 `json:"required_pdp_psi"`
}

// SupplyDiagnostics reports internal solver behavior. It is additive
// metadata (§4 SUPPLEMENTED FEATURES in SPEC_FULL.md), not part of the
// five canonical §3 entities; callers that only care about the spec's
// normative fields can ignore it.
type SupplyDiagnostics struct {
	IterationsUsed int  `json:"iterations_used"`
	Converged      bool `json:"converged"`
}

// Derived is the complete output snapshot produced by Recompute.
type Derived struct {
	EngineIntakePSI         float64            `json:"engine_intake_psi"`
	TotalInflowGPM          float64            `json:"total_inflow_gpm"`
	HydrantResidualPSI      float64            `json:"hydrant_residual_psi"`
	PerLegGPM               map[Port]float64   `json:"per_leg_gpm"`
	TotalDischargeDemandGPM float64            `json:"total_discharge_demand_gpm"`
	TotalDischargeFlowGPM   float64            `json:"total_discharge_flow_gpm"`
	PerDischarge            []DischargeResult  `json:"per_discharge"`
	Cavitating              bool               `json:"cavitating"`
	GovernorLimited         bool               `json:"governor_limited"`
	Advisories              []Advisory         `json:"advisories"`
	SupplyDiagnostics       SupplyDiagnostics  `json:"supply_diagnostics"`
}
