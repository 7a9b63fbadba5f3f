package pumphydraulics

import (
	"math"
	"testing"
)

func singleAttackLine(gateOpen bool) DischargeLine {
	return DischargeLine{
		ID:       "1.75-attack",
		Hose:     HoseSpec{DiameterIn: 1.75, LengthFt: 200},
		Nozzle:   NewSmoothBore(15.0/16, 50),
		GateOpen: gateOpen,
	}
}

func TestEvaluateDischarges_ClosedGate_ZeroEverywhere(t *testing.T) {
	tables, _ := NewTables()
	state := SystemState{
		PDPPSI:      150,
		GovernorPSI: 150,
		Discharges:  []DischargeLine{singleAttackLine(false)},
	}
	supply := supplyResult{totalGPM: 1000, intakePSI: 70}

	derived, err := evaluateDischarges(state, tables, supply, nil)
	if err != nil {
		t.Fatalf("evaluateDischarges: %v", err)
	}
	if derived.TotalDischargeDemandGPM != 0 {
		t.Errorf("demand = %.1f, want 0 with gate closed", derived.TotalDischargeDemandGPM)
	}
	if derived.PerDischarge[0].ActualGPM != 0 {
		t.Errorf("actual = %.1f, want 0 with gate closed", derived.PerDischarge[0].ActualGPM)
	}
}

func TestEvaluateDischarges_AdequateSupply_MeetsDemand(t *testing.T) {
	tables, _ := NewTables()
	state := SystemState{
		PDPPSI:       200,
		GovernorPSI:  200,
		Discharges:   []DischargeLine{singleAttackLine(true)},
		PumpRatedGPM: 1500,
	}
	supply := supplyResult{totalGPM: 1500, intakePSI: 70}

	derived, err := evaluateDischarges(state, tables, supply, nil)
	if err != nil {
		t.Fatalf("evaluateDischarges: %v", err)
	}
	if derived.PerDischarge[0].ActualGPM != derived.PerDischarge[0].RequiredGPM {
		t.Errorf("actual=%.1f required=%.1f, expected full demand met",
			derived.PerDischarge[0].ActualGPM, derived.PerDischarge[0].RequiredGPM)
	}
}

func TestEvaluateDischarges_SupplyLimited_ScalesProportionally(t *testing.T) {
	tables, _ := NewTables()
	state := SystemState{
		PDPPSI:      150,
		GovernorPSI: 150,
		Discharges: []DischargeLine{
			{ID: "a", Hose: HoseSpec{DiameterIn: 1.75, LengthFt: 100}, Nozzle: NewFogFixed(150, 100), GateOpen: true},
			{ID: "b", Hose: HoseSpec{DiameterIn: 1.75, LengthFt: 100}, Nozzle: NewFogFixed(150, 100), GateOpen: true},
		},
		PumpRatedGPM: 1500,
	}
	supply := supplyResult{totalGPM: 150, intakePSI: 70} // half of the 300 gpm demanded

	derived, err := evaluateDischarges(state, tables, supply, nil)
	if err != nil {
		t.Fatalf("evaluateDischarges: %v", err)
	}
	if derived.TotalDischargeDemandGPM != 300 {
		t.Errorf("demand = %.1f, want 300", derived.TotalDischargeDemandGPM)
	}
	if derived.TotalDischargeFlowGPM > 150+2 { // rounding slack
		t.Errorf("actual total = %.1f, should not exceed supply 150", derived.TotalDischargeFlowGPM)
	}
	for _, d := range derived.PerDischarge {
		if math.Abs(d.ActualGPM-75) > 2 {
			t.Errorf("line %s actual = %.1f, want ~75 (proportional split)", d.ID, d.ActualGPM)
		}
	}
}

func TestEvaluateDischarges_Cavitating_CapsAt50PercentSupply(t *testing.T) {
	tables, _ := NewTables()
	state := SystemState{
		PDPPSI:       250, // cavitation floor is 15 psi at this PDP
		GovernorPSI:  250,
		Discharges:   []DischargeLine{{ID: "a", Hose: HoseSpec{DiameterIn: 1.75, LengthFt: 50}, Nozzle: NewFogFixed(500, 100), GateOpen: true}},
		PumpRatedGPM: 1500,
	}
	supply := supplyResult{totalGPM: 500, intakePSI: 10} // below the 15 psi cavitation floor

	derived, err := evaluateDischarges(state, tables, supply, nil)
	if err != nil {
		t.Fatalf("evaluateDischarges: %v", err)
	}
	if !derived.Cavitating {
		t.Fatal("expected cavitation to be flagged")
	}
	if derived.TotalDischargeFlowGPM > 250+2 {
		t.Errorf("cavitating total flow = %.1f, should not exceed 50%% of supply (250)", derived.TotalDischargeFlowGPM)
	}
}

func TestEvaluateDischarges_PressureStarvedSmoothBore_Reduced(t *testing.T) {
	tables, _ := NewTables()
	line := DischargeLine{
		ID:     "starved",
		Hose:   HoseSpec{DiameterIn: 1.75, LengthFt: 300},
		Nozzle: NewSmoothBore(1.125, 50),
		GateOpen: true,
	}
	state := SystemState{
		PDPPSI:       100, // less than this line's required PDP
		GovernorPSI:  250,
		Discharges:   []DischargeLine{line},
		PumpRatedGPM: 1500,
	}
	supply := supplyResult{totalGPM: 1500, intakePSI: 70}

	derived, err := evaluateDischarges(state, tables, supply, nil)
	if err != nil {
		t.Fatalf("evaluateDischarges: %v", err)
	}
	result := derived.PerDischarge[0]
	if result.RequiredPDPPSI <= state.PDPPSI {
		t.Fatalf("test setup error: required PDP %.1f should exceed available %.1f", result.RequiredPDPPSI, state.PDPPSI)
	}
	if result.ActualGPM >= result.RequiredGPM {
		t.Errorf("pressure-starved smooth bore should flow less than required: actual=%.1f required=%.1f",
			result.ActualGPM, result.RequiredGPM)
	}
}

func TestEvaluateDischarges_FogDropsToZero_BelowRatedNP(t *testing.T) {
	tables, _ := NewTables()
	line := DischargeLine{
		ID:                 "fog-starved",
		Hose:               HoseSpec{DiameterIn: 1.75, LengthFt: 50},
		Nozzle:             NewFogFixed(150, 100),
		ApplianceLossesPSI: 0,
		GateOpen:           true,
	}
	state := SystemState{
		PDPPSI:       50, // below the fog nozzle's own rated 100 psi
		GovernorPSI:  250,
		Discharges:   []DischargeLine{line},
		PumpRatedGPM: 1500,
	}
	supply := supplyResult{totalGPM: 1500, intakePSI: 70}

	derived, err := evaluateDischarges(state, tables, supply, nil)
	if err != nil {
		t.Fatalf("evaluateDischarges: %v", err)
	}
	if derived.PerDischarge[0].ActualGPM != 0 {
		t.Errorf("fog nozzle below rated NP should drop to 0 flow, got %.1f", derived.PerDischarge[0].ActualGPM)
	}
}

func TestRequiredPDP_SumsAllComponents(t *testing.T) {
	tables, _ := NewTables()
	line := DischargeLine{
		Hose:               HoseSpec{DiameterIn: 1.75, LengthFt: 100},
		Nozzle:             NewSmoothBore(1, 50),
		ElevationFt:        20,
		ApplianceLossesPSI: 5,
	}
	pdp, err := RequiredPDP(line, tables, nil)
	if err != nil {
		t.Fatalf("RequiredPDP: %v", err)
	}

	qReq, _ := NozzleFlow(line.Nozzle)
	fl := FrictionLoss(qReq, line.Hose, tables, nil)
	want := line.Nozzle.NozzlePressurePSI + fl + line.ApplianceLossesPSI + ElevationPressure(line.ElevationFt)
	if math.Abs(pdp-want) > 1e-9 {
		t.Errorf("RequiredPDP = %.2f, want %.2f", pdp, want)
	}
}
