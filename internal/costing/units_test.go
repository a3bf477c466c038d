package costing

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func TestConvertToInventoryUnit(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		from, to string
		want     float64
		ok       bool
	}{
		{"grams to kilograms", 200, "g", "kg", 0.2, true},
		{"kilograms to grams", 1.5, "kg", "g", 1500, true},
		{"millilitres to litres", 750, "ml", "l", 0.75, true},
		{"litres to millilitres", 2, "l", "ml", 2000, true},
		{"same unit", 5, "kg", "kg", 5, true},
		{"case insensitive", 200, "G", "KG", 0.2, true},
		{"count synonyms", 3, "piece", "pcs", 3, true},
		{"nos to units", 12, "nos", "units", 12, true},
		{"mass to volume fails", 100, "g", "ml", 0, false},
		{"volume to mass fails", 100, "ml", "kg", 0, false},
		{"count to mass fails", 1, "pcs", "kg", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConvertToInventoryUnit(tt.qty, tt.from, tt.to)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got-tt.want) > floatTolerance {
				t.Fatalf("converted = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"g", "kg"}, {"ml", "l"}, {"pcs", "pieces"}, {"gram", "kg"}, {"litre", "ml"},
	}
	for _, p := range pairs {
		qty := 123.456
		forward, ok := ConvertToInventoryUnit(qty, p[0], p[1])
		if !ok {
			t.Fatalf("forward conversion %s -> %s failed", p[0], p[1])
		}
		back, ok := ConvertToInventoryUnit(forward, p[1], p[0])
		if !ok {
			t.Fatalf("inverse conversion %s -> %s failed", p[1], p[0])
		}
		if math.Abs(back-qty) > floatTolerance {
			t.Errorf("round trip %s <-> %s: got %v, want %v", p[0], p[1], back, qty)
		}
	}
}

func TestUnknownUnitsFoldToCount(t *testing.T) {
	// Unrecognized text behaves as a count unit instead of erroring.
	got, ok := ConvertToInventoryUnit(4, "bottel", "pcs")
	if !ok || got != 4 {
		t.Fatalf("unknown unit conversion = (%v, %v), want (4, true)", got, ok)
	}
	if UnitKnown("bottel") {
		t.Error("UnitKnown should report false for unrecognized text")
	}
	if !UnitKnown(" KG ") {
		t.Error("UnitKnown should fold case and whitespace")
	}
}

func TestIngredientCost(t *testing.T) {
	// 200g of an ingredient stocked in kg at 400 per kg.
	if got := IngredientCost(200, "g", 400, "kg"); math.Abs(got-80) > floatTolerance {
		t.Errorf("IngredientCost = %v, want 80", got)
	}
	// Incompatible conversion is absorbed as zero cost.
	if got := IngredientCost(200, "ml", 400, "kg"); got != 0 {
		t.Errorf("incompatible conversion cost = %v, want 0", got)
	}
}
