package pumphydraulics

import (
	"math"
	"testing"
)

func TestNozzleFlow_SmoothBore_Freeman(t *testing.T) {
	n := NewSmoothBore(15.0/16, 50)

	gpm, err := NozzleFlow(n)
	if err != nil {
		t.Fatalf("NozzleFlow: %v", err)
	}

	want := freemanConstant * n.TipIn * n.TipIn * math.Sqrt(50)
	if math.Abs(gpm-want) > 1e-9 {
		t.Errorf("gpm = %.4f, want %.4f", gpm, want)
	}
}

func TestNozzleFlow_SmoothBore_InvalidTip(t *testing.T) {
	n := NewSmoothBore(0, 50)

	if _, err := NozzleFlow(n); err == nil {
		t.Fatal("expected an error for a non-positive tip diameter")
	} else if ve, ok := err.(*ValidationError); !ok || ve.Kind != InvalidNozzle {
		t.Errorf("expected InvalidNozzle ValidationError, got %v", err)
	}
}

func TestNozzleFlow_SmoothBore_ZeroPressure(t *testing.T) {
	n := NewSmoothBore(15.0/16, 0)

	gpm, err := NozzleFlow(n)
	if err != nil {
		t.Fatalf("NozzleFlow: %v", err)
	}
	if gpm != 0 {
		t.Errorf("gpm = %.4f, want 0 at zero nozzle pressure", gpm)
	}
}

func TestNozzleFlow_Fog_IsConstant(t *testing.T) {
	n := NewFogFixed(150, 100)

	gpm, err := NozzleFlow(n)
	if err != nil {
		t.Fatalf("NozzleFlow: %v", err)
	}
	if gpm != 150 {
		t.Errorf("gpm = %.4f, want rated 150", gpm)
	}
}

func TestNozzleFlow_Monotonic_InPressure(t *testing.T) {
	n1 := NewSmoothBore(1, 40)
	n2 := NewSmoothBore(1, 80)

	g1, _ := NozzleFlow(n1)
	g2, _ := NozzleFlow(n2)

	if g2 <= g1 {
		t.Errorf("expected flow to increase with nozzle pressure: %.2f at 40psi, %.2f at 80psi", g1, g2)
	}
}

func TestNozzleSpec_IsFog(t *testing.T) {
	cases := []struct {
		n    NozzleSpec
		want bool
	}{
		{NewSmoothBore(1, 50), false},
		{NewFogFixed(150, 100), true},
		{NewFogSelectable(150, 100), true},
		{NewFogAutomatic(150, 100), true},
	}
	for _, c := range cases {
		if got := c.n.IsFog(); got != c.want {
			t.Errorf("%s.IsFog() = %v, want %v", c.n.Kind, got, c.want)
		}
	}
}
