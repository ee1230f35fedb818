package money

import (
	"math"
	"testing"
)

func TestRupeesToPaise(t *testing.T) {
	cases := []struct {
		rupees float64
		want   int64
	}{
		{1, 100},
		{12.34, 1234},
		{500, 50000},
		{0.01, 1},
		{99.999, 10000}, // rounds
	}
	for _, c := range cases {
		got, err := RupeesToPaise(c.rupees)
		if err != nil {
			t.Fatalf("RupeesToPaise(%v): %v", c.rupees, err)
		}
		if got != c.want {
			t.Errorf("RupeesToPaise(%v) = %d, want %d", c.rupees, got, c.want)
		}
	}
}

func TestRupeesToPaiseRejectsInvalid(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), 1e17} {
		if _, err := RupeesToPaise(v); err == nil {
			t.Errorf("RupeesToPaise(%v): expected error", v)
		}
	}
}

func TestPaiseToRupeesString(t *testing.T) {
	if s := PaiseToRupeesString(1234); s != "12.34" {
		t.Errorf("got %q", s)
	}
	if s := PaiseToRupeesString(-5); s != "-0.05" {
		t.Errorf("got %q", s)
	}
	if s := PaiseToRupeesString(50000); s != "500.00" {
		t.Errorf("got %q", s)
	}
}
