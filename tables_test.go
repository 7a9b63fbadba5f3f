package pumphydraulics

import "testing"

func TestNewTables_LoadsEmbeddedData(t *testing.T) {
	tables, err := NewTables()
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}

	if c := tables.FrictionCoefficient(1.75, nil); c != 15.5 {
		t.Errorf("FrictionCoefficient(1.75) = %.2f, want 15.5", c)
	}
	if c := tables.FrictionCoefficient(5, nil); c != 0.08 {
		t.Errorf("FrictionCoefficient(5) = %.2f, want 0.08", c)
	}
	if l := tables.ApplianceLoss("wye", nil); l != 10 {
		t.Errorf("ApplianceLoss(wye) = %.2f, want 10", l)
	}
	if n, ok := tables.NozzlePreset("smoothbore_15_16"); !ok || n.TipIn != 15.0/16 {
		t.Errorf("NozzlePreset(smoothbore_15_16) = %+v, ok=%v", n, ok)
	}
}

func TestFrictionCoefficient_UnknownDiameter_FailsSoft(t *testing.T) {
	tables, err := NewTables()
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}

	var advisories []Advisory
	c := tables.FrictionCoefficient(6, &advisories)
	if c != defaultFrictionCoefficient {
		t.Errorf("unknown diameter coefficient = %.2f, want default %.2f", c, defaultFrictionCoefficient)
	}
	if len(advisories) != 1 || advisories[0].Code != CodeUnknownHoseCoeff {
		t.Errorf("expected a single CodeUnknownHoseCoeff advisory, got %+v", advisories)
	}
}

func TestFrictionCoefficientStrict_UnknownDiameter_Errors(t *testing.T) {
	tables, err := NewTables()
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}

	if _, err := tables.FrictionCoefficientStrict(6); err == nil {
		t.Fatal("expected an error for an unknown diameter in strict mode")
	} else if ve, ok := err.(*ValidationError); !ok || ve.Kind != InvalidHose {
		t.Errorf("expected InvalidHose ValidationError, got %v", err)
	}
}

func TestApplianceLoss_UnknownID_FailsSoft(t *testing.T) {
	tables, err := NewTables()
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}

	var advisories []Advisory
	l := tables.ApplianceLoss("not_a_real_appliance", &advisories)
	if l != 0 {
		t.Errorf("unknown appliance loss = %.2f, want 0", l)
	}
	if len(advisories) != 1 || advisories[0].Code != CodeUnknownAppliance {
		t.Errorf("expected a single CodeUnknownAppliance advisory, got %+v", advisories)
	}
}

func TestApplianceLoss_EmptyID_IsSilent(t *testing.T) {
	tables, err := NewTables()
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}

	var advisories []Advisory
	l := tables.ApplianceLoss("", &advisories)
	if l != 0 {
		t.Errorf("empty appliance id loss = %.2f, want 0", l)
	}
	if len(advisories) != 0 {
		t.Errorf("empty appliance id should not produce an advisory, got %+v", advisories)
	}
}

func TestNewTablesFromYAML_Overrides(t *testing.T) {
	tables, err := NewTablesFromYAML(
		[]byte(`"1.75": 99`),
		[]byte(`gate_valve: 1`),
		[]byte(`custom_nozzle: {kind: fog_fixed, rated_gpm: 185, nozzle_pressure_psi: 75}`),
	)
	if err != nil {
		t.Fatalf("NewTablesFromYAML: %v", err)
	}

	if c := tables.FrictionCoefficient(1.75, nil); c != 99 {
		t.Errorf("overridden coefficient = %.2f, want 99", c)
	}
	if n, ok := tables.NozzlePreset("custom_nozzle"); !ok || n.RatedGPM != 185 {
		t.Errorf("NozzlePreset(custom_nozzle) = %+v, ok=%v", n, ok)
	}
}
