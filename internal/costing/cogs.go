package costing

import (
	"math"
	"sort"

	"github.com/hotelops/hms-backend/internal/domain"
)

// EstimatedCostRatio approximates the cost of a recipe-less item as a
// fraction of its sale price.
const EstimatedCostRatio = 0.30

// EstimatedCategory is the synthetic bucket recipe-less items are filed
// under, grouped by item name since there is no ingredient to group by.
const EstimatedCategory = "Estimated"

// totalTolerance is the rounding slack allowed between a stored line total
// and quantity times unit price before the line is flagged.
const totalTolerance = 0.01

type ingredientAccum struct {
	name      string
	unit      string
	costPrice float64
	quantity  float64
	cost      float64
	usedIn    []string
	usedSeen  map[string]struct{}
}

type categoryAccum struct {
	cost        float64
	ingredients map[string]*ingredientAccum
	order       []string
}

// ComputeCOGS aggregates ingredient costs for every order item whose order
// id is in orderIDs. Recipe cost is defined per single unit of the menu
// item, so the sold quantity multiplies it. Missing menu items, missing
// inventory rows, and non-convertible units all degrade to a zero-cost
// contribution for that one line; dirty data never aborts the report.
func ComputeCOGS(orderIDs []string, orderItems []domain.OrderItem, menuItems []domain.MenuItem, inventory []domain.InventoryItem) domain.COGSBreakdown {
	idSet := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		idSet[id] = struct{}{}
	}

	menuByID := make(map[string]domain.MenuItem, len(menuItems))
	for _, m := range menuItems {
		menuByID[m.ID] = m
	}

	invByID := make(map[string]domain.InventoryItem, len(inventory))
	for _, inv := range inventory {
		invByID[inv.ID] = inv
	}

	out := domain.COGSBreakdown{Categories: []domain.CategoryCostBreakdown{}}

	categories := make(map[string]*categoryAccum)
	var catOrder []string

	bucket := func(category string) *categoryAccum {
		c, ok := categories[category]
		if !ok {
			c = &categoryAccum{ingredients: make(map[string]*ingredientAccum)}
			categories[category] = c
			catOrder = append(catOrder, category)
		}
		return c
	}

	for _, item := range orderItems {
		if _, ok := idSet[item.OrderID]; !ok {
			continue
		}

		menu, found := menuByID[item.MenuItemID]
		if found && menu.HasRecipe() {
			out.RecipeBasedItemCount++
			for _, ing := range menu.Ingredients {
				// Non-positive quantities are rejected at the write boundary;
				// a stale row that slips through must not subtract from COGS.
				if ing.Quantity <= 0 {
					continue
				}
				inv, ok := invByID[ing.InventoryID]
				if !ok {
					continue
				}
				if !UnitKnown(ing.Unit) {
					out.UnknownUnitCount++
				}
				lineCost := IngredientCost(ing.Quantity, ing.Unit, inv.CostPrice, inv.Unit) * float64(item.Quantity)

				category := inv.Category
				if category == "" {
					category = "Uncategorized"
				}
				c := bucket(category)
				c.cost += lineCost
				out.TotalCOGS += lineCost

				acc, ok := c.ingredients[inv.ID]
				if !ok {
					acc = &ingredientAccum{
						name:      inv.Name,
						unit:      inv.Unit,
						costPrice: inv.CostPrice,
						usedSeen:  make(map[string]struct{}),
					}
					c.ingredients[inv.ID] = acc
					c.order = append(c.order, inv.ID)
				}
				acc.quantity += ing.Quantity * float64(item.Quantity)
				acc.cost += lineCost
				if _, seen := acc.usedSeen[menu.Name]; !seen {
					acc.usedSeen[menu.Name] = struct{}{}
					acc.usedIn = append(acc.usedIn, menu.Name)
				}
			}
			continue
		}

		// No recipe (or the menu item no longer exists): estimate from the
		// stored line revenue, grouped by item name.
		out.EstimatedItemCount++
		estimated := item.TotalPrice * EstimatedCostRatio
		c := bucket(EstimatedCategory)
		c.cost += estimated
		out.TotalCOGS += estimated

		key := "item:" + item.ItemName
		acc, ok := c.ingredients[key]
		if !ok {
			acc = &ingredientAccum{
				name:     item.ItemName,
				unit:     "pcs",
				usedSeen: make(map[string]struct{}),
			}
			c.ingredients[key] = acc
			c.order = append(c.order, key)
		}
		acc.quantity += float64(item.Quantity)
		acc.cost += estimated
		if _, seen := acc.usedSeen[item.ItemName]; !seen {
			acc.usedSeen[item.ItemName] = struct{}{}
			acc.usedIn = append(acc.usedIn, item.ItemName)
		}
	}

	// No orders means no COGS, overriding any residual estimation math from
	// stray order items in the inputs.
	if len(orderIDs) == 0 {
		out.TotalCOGS = 0
		out.Categories = []domain.CategoryCostBreakdown{}
		return out
	}

	for _, name := range catOrder {
		c := categories[name]
		breakdown := domain.CategoryCostBreakdown{
			Category:    name,
			TotalCost:   c.cost,
			Ingredients: make([]domain.IngredientDetail, 0, len(c.order)),
		}
		if out.TotalCOGS > 0 {
			breakdown.Percentage = c.cost / out.TotalCOGS * 100
		}
		for _, id := range c.order {
			acc := c.ingredients[id]
			breakdown.Ingredients = append(breakdown.Ingredients, domain.IngredientDetail{
				Name:          acc.name,
				Unit:          acc.unit,
				CostPrice:     acc.costPrice,
				TotalQuantity: acc.quantity,
				TotalCost:     acc.cost,
				UsedIn:        acc.usedIn,
			})
		}
		out.Categories = append(out.Categories, breakdown)
	}

	sort.SliceStable(out.Categories, func(i, j int) bool {
		return out.Categories[i].TotalCost > out.Categories[j].TotalCost
	})

	return out
}

// FlagInconsistentTotals returns order lines whose stored total disagrees
// with quantity times unit price beyond rounding tolerance. The engine
// keeps trusting the stored total; flagged lines are surfaced for
// operators, not corrected.
func FlagInconsistentTotals(orderItems []domain.OrderItem) []domain.InconsistentTotal {
	var flagged []domain.InconsistentTotal
	for _, item := range orderItems {
		computed := float64(item.Quantity) * item.UnitPrice
		if math.Abs(computed-item.TotalPrice) > totalTolerance {
			flagged = append(flagged, domain.InconsistentTotal{
				OrderItemID: item.ID,
				ItemName:    item.ItemName,
				Stored:      item.TotalPrice,
				Computed:    computed,
			})
		}
	}
	return flagged
}
