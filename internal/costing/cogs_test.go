package costing

import (
	"math"
	"testing"

	"github.com/hotelops/hms-backend/internal/domain"
)

func fixtureInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{ID: "inv-paneer", Name: "Paneer", Category: "Dairy", Unit: "kg", CostPrice: 400},
		{ID: "inv-gin", Name: "Gin", Category: "Spirits", Unit: "l", CostPrice: 1200},
		{ID: "inv-lime", Name: "Lime", Category: "Produce", Unit: "pcs", CostPrice: 5},
	}
}

func fixtureMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{
			ID: "menu-tikka", Name: "Paneer Tikka", Category: "Starters", Price: 320,
			Ingredients: []domain.RecipeIngredient{
				{InventoryID: "inv-paneer", Quantity: 200, Unit: "g"},
			},
		},
		{
			ID: "menu-gimlet", Name: "Gimlet", Category: "Cocktails", Price: 450,
			Ingredients: []domain.RecipeIngredient{
				{InventoryID: "inv-gin", Quantity: 60, Unit: "ml"},
				{InventoryID: "inv-lime", Quantity: 1, Unit: "pcs"},
			},
		},
		{ID: "menu-special", Name: "Chef Special", Category: "Mains", Price: 300},
	}
}

func TestComputeCOGSZeroOrderInvariant(t *testing.T) {
	// Stray order items must not produce COGS when the order set is empty.
	items := []domain.OrderItem{
		{ID: "oi-1", OrderID: "order-ghost", MenuItemID: "menu-special", ItemName: "Chef Special", Quantity: 1, UnitPrice: 300, TotalPrice: 300},
	}
	got := ComputeCOGS(nil, items, fixtureMenu(), fixtureInventory())
	if got.TotalCOGS != 0 {
		t.Fatalf("TotalCOGS = %v, want 0 with no orders", got.TotalCOGS)
	}
	if len(got.Categories) != 0 {
		t.Fatalf("Categories = %d, want empty with no orders", len(got.Categories))
	}
}

func TestComputeCOGSEstimationFallback(t *testing.T) {
	items := []domain.OrderItem{
		{ID: "oi-1", OrderID: "o-1", MenuItemID: "menu-special", ItemName: "Chef Special", Quantity: 1, UnitPrice: 250, TotalPrice: 250},
	}
	got := ComputeCOGS([]string{"o-1"}, items, fixtureMenu(), fixtureInventory())

	if math.Abs(got.TotalCOGS-75) > floatTolerance {
		t.Fatalf("TotalCOGS = %v, want 75 (30%% of 250)", got.TotalCOGS)
	}
	if got.EstimatedItemCount != 1 || got.RecipeBasedItemCount != 0 {
		t.Fatalf("counts = (%d recipe, %d estimated), want (0, 1)", got.RecipeBasedItemCount, got.EstimatedItemCount)
	}
	if len(got.Categories) != 1 || got.Categories[0].Category != EstimatedCategory {
		t.Fatalf("expected single %q category, got %+v", EstimatedCategory, got.Categories)
	}
}

func TestComputeCOGSEndToEnd(t *testing.T) {
	// Order A: 2x Paneer Tikka (200g paneer @ 400/kg => 80 per unit => 160).
	// Order B: 1x recipe-less Chef Special at 300 => estimated 90.
	items := []domain.OrderItem{
		{ID: "oi-a", OrderID: "order-a", MenuItemID: "menu-tikka", ItemName: "Paneer Tikka", Quantity: 2, UnitPrice: 320, TotalPrice: 640},
		{ID: "oi-b", OrderID: "order-b", MenuItemID: "menu-special", ItemName: "Chef Special", Quantity: 1, UnitPrice: 300, TotalPrice: 300},
	}
	got := ComputeCOGS([]string{"order-a", "order-b"}, items, fixtureMenu(), fixtureInventory())

	if math.Abs(got.TotalCOGS-250) > floatTolerance {
		t.Fatalf("TotalCOGS = %v, want 250", got.TotalCOGS)
	}
	if got.RecipeBasedItemCount != 1 || got.EstimatedItemCount != 1 {
		t.Fatalf("counts = (%d recipe, %d estimated), want (1, 1)", got.RecipeBasedItemCount, got.EstimatedItemCount)
	}
	if len(got.Categories) != 2 {
		t.Fatalf("Categories = %d, want 2", len(got.Categories))
	}

	// Sorted by descending cost: Dairy 160, Estimated 90.
	if got.Categories[0].Category != "Dairy" || got.Categories[1].Category != EstimatedCategory {
		t.Fatalf("category order = %q, %q", got.Categories[0].Category, got.Categories[1].Category)
	}

	var pctSum float64
	for _, c := range got.Categories {
		pctSum += c.Percentage
	}
	if math.Abs(pctSum-100) > 1e-6 {
		t.Fatalf("percentage sum = %v, want 100", pctSum)
	}

	dairy := got.Categories[0]
	if len(dairy.Ingredients) != 1 {
		t.Fatalf("dairy ingredients = %d, want 1", len(dairy.Ingredients))
	}
	paneer := dairy.Ingredients[0]
	if math.Abs(paneer.TotalQuantity-400) > floatTolerance {
		t.Errorf("paneer TotalQuantity = %v, want 400 (200g x 2 sold)", paneer.TotalQuantity)
	}
	if math.Abs(paneer.TotalCost-160) > floatTolerance {
		t.Errorf("paneer TotalCost = %v, want 160", paneer.TotalCost)
	}
	if len(paneer.UsedIn) != 1 || paneer.UsedIn[0] != "Paneer Tikka" {
		t.Errorf("paneer UsedIn = %v", paneer.UsedIn)
	}
}

func TestComputeCOGSDegradesGracefully(t *testing.T) {
	menu := []domain.MenuItem{
		{
			ID: "menu-broken", Name: "Broken Dish", Category: "Mains", Price: 100,
			Ingredients: []domain.RecipeIngredient{
				{InventoryID: "inv-missing", Quantity: 1, Unit: "kg"},    // missing inventory row
				{InventoryID: "inv-paneer", Quantity: 100, Unit: "ml"},   // incompatible unit
				{InventoryID: "inv-paneer", Quantity: 100, Unit: "g"},    // fine: 40
				{InventoryID: "inv-lime", Quantity: 2, Unit: "basketts"}, // unknown unit, counts as pcs: 10
			},
		},
	}
	items := []domain.OrderItem{
		{ID: "oi-1", OrderID: "o-1", MenuItemID: "menu-broken", ItemName: "Broken Dish", Quantity: 1, UnitPrice: 100, TotalPrice: 100},
		{ID: "oi-2", OrderID: "o-1", MenuItemID: "menu-deleted", ItemName: "Ghost Dish", Quantity: 1, UnitPrice: 50, TotalPrice: 50},
	}
	got := ComputeCOGS([]string{"o-1"}, items, menu, fixtureInventory())

	// 40 (paneer) + 10 (lime) + 15 (estimated ghost dish).
	if math.Abs(got.TotalCOGS-65) > floatTolerance {
		t.Fatalf("TotalCOGS = %v, want 65", got.TotalCOGS)
	}
	if got.RecipeBasedItemCount != 1 || got.EstimatedItemCount != 1 {
		t.Fatalf("counts = (%d recipe, %d estimated), want (1, 1)", got.RecipeBasedItemCount, got.EstimatedItemCount)
	}
	if got.UnknownUnitCount != 1 {
		t.Fatalf("UnknownUnitCount = %d, want 1", got.UnknownUnitCount)
	}
}

func TestComputeCOGSIgnoresNonPositiveQuantities(t *testing.T) {
	// A corrupt recipe row with a negative quantity must not subtract from
	// COGS: -200g of paneer at 400/kg would otherwise land at -80.
	menu := []domain.MenuItem{
		{
			ID: "menu-corrupt", Name: "Corrupt Dish", Category: "Mains", Price: 200,
			Ingredients: []domain.RecipeIngredient{
				{InventoryID: "inv-paneer", Quantity: -200, Unit: "g"},
				{InventoryID: "inv-lime", Quantity: 0, Unit: "pcs"},
				{InventoryID: "inv-lime", Quantity: 2, Unit: "pcs"}, // fine: 10
			},
		},
	}
	items := []domain.OrderItem{
		{ID: "oi-1", OrderID: "o-1", MenuItemID: "menu-corrupt", ItemName: "Corrupt Dish", Quantity: 1, UnitPrice: 200, TotalPrice: 200},
	}
	got := ComputeCOGS([]string{"o-1"}, items, menu, fixtureInventory())

	if math.Abs(got.TotalCOGS-10) > floatTolerance {
		t.Fatalf("TotalCOGS = %v, want 10 (negative and zero lines skipped)", got.TotalCOGS)
	}
	for _, c := range got.Categories {
		if c.TotalCost < 0 {
			t.Fatalf("category %s has negative cost %v", c.Category, c.TotalCost)
		}
	}
}

func TestComputeCOGSIsIdempotent(t *testing.T) {
	items := []domain.OrderItem{
		{ID: "oi-a", OrderID: "order-a", MenuItemID: "menu-tikka", ItemName: "Paneer Tikka", Quantity: 2, UnitPrice: 320, TotalPrice: 640},
	}
	first := ComputeCOGS([]string{"order-a"}, items, fixtureMenu(), fixtureInventory())
	second := ComputeCOGS([]string{"order-a"}, items, fixtureMenu(), fixtureInventory())
	if first.TotalCOGS != second.TotalCOGS {
		t.Fatalf("repeated calls disagree: %v vs %v", first.TotalCOGS, second.TotalCOGS)
	}
	if len(first.Categories) != len(second.Categories) {
		t.Fatalf("repeated calls disagree on categories: %d vs %d", len(first.Categories), len(second.Categories))
	}
}

func TestFlagInconsistentTotals(t *testing.T) {
	items := []domain.OrderItem{
		{ID: "oi-good", ItemName: "Good", Quantity: 2, UnitPrice: 100, TotalPrice: 200},
		{ID: "oi-rounding", ItemName: "Rounding", Quantity: 3, UnitPrice: 33.335, TotalPrice: 100.01},
		{ID: "oi-bad", ItemName: "Bad", Quantity: 2, UnitPrice: 100, TotalPrice: 250},
	}
	flagged := FlagInconsistentTotals(items)
	if len(flagged) != 1 {
		t.Fatalf("flagged = %d, want 1", len(flagged))
	}
	if flagged[0].OrderItemID != "oi-bad" || flagged[0].Computed != 200 {
		t.Fatalf("flagged = %+v", flagged[0])
	}
}
