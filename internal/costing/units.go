// Package costing holds the recipe-based COGS and profit-and-loss
// calculators. Every function is a pure transformation over snapshots the
// caller already fetched: no I/O, no shared state, and repeated calls with
// the same inputs yield the same outputs.
package costing

import "strings"

type unitFamily int

const (
	familyMass unitFamily = iota
	familyVolume
	familyCount
)

// factor converts a quantity of the unit into its family base unit
// (grams, millilitres, or pieces).
type unitDef struct {
	family unitFamily
	factor float64
}

var unitTable = map[string]unitDef{
	"g":      {familyMass, 1},
	"gram":   {familyMass, 1},
	"grams":  {familyMass, 1},
	"kg":     {familyMass, 1000},
	"kgs":    {familyMass, 1000},
	"ml":     {familyVolume, 1},
	"l":      {familyVolume, 1000},
	"ltr":    {familyVolume, 1000},
	"litre":  {familyVolume, 1000},
	"liter":  {familyVolume, 1000},
	"pcs":    {familyCount, 1},
	"pc":     {familyCount, 1},
	"piece":  {familyCount, 1},
	"pieces": {familyCount, 1},
	"unit":   {familyCount, 1},
	"units":  {familyCount, 1},
	"nos":    {familyCount, 1},
}

// resolveUnit folds a unit string to its definition. Unrecognized text is
// more often a typo than an exotic unit family, so it falls back to the
// count family; known reports false for that case so callers can surface
// a data-quality warning.
func resolveUnit(unit string) (def unitDef, known bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if d, ok := unitTable[u]; ok {
		return d, true
	}
	return unitDef{familyCount, 1}, false
}

// ConvertToInventoryUnit rescales quantity from one unit into another.
// ok is false when the two units belong to different families; converting
// millilitres to kilograms must fail rather than produce a nonsensical
// number.
func ConvertToInventoryUnit(quantity float64, fromUnit, toUnit string) (converted float64, ok bool) {
	from, _ := resolveUnit(fromUnit)
	to, _ := resolveUnit(toUnit)
	if from.family != to.family {
		return 0, false
	}
	return quantity * from.factor / to.factor, true
}

// UnitKnown reports whether the unit matches the table exactly or via a
// synonym.
func UnitKnown(unit string) bool {
	_, known := resolveUnit(unit)
	return known
}

// IngredientCost resolves a recipe quantity into the inventory item's
// stocked unit and multiplies by the cost per unit. A failed conversion
// yields 0: a broken recipe line must not take down an entire report.
func IngredientCost(recipeQty float64, recipeUnit string, costPerUnit float64, inventoryUnit string) float64 {
	converted, ok := ConvertToInventoryUnit(recipeQty, recipeUnit, inventoryUnit)
	if !ok {
		return 0
	}
	return converted * costPerUnit
}
