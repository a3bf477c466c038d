package domain

import "time"

// IngredientDetail accumulates consumption of one inventory item across the
// reporting period, with the menu items it appeared in.
type IngredientDetail struct {
	Name          string   `json:"name"`
	Unit          string   `json:"unit"`
	CostPrice     float64  `json:"cost_price"`
	TotalQuantity float64  `json:"total_quantity"`
	TotalCost     float64  `json:"total_cost"`
	UsedIn        []string `json:"used_in"`
}

// CategoryCostBreakdown is one bucket of the COGS breakdown. Rebuilt on
// every report; never persisted.
type CategoryCostBreakdown struct {
	Category    string             `json:"category"`
	TotalCost   float64            `json:"total_cost"`
	Percentage  float64            `json:"percentage"`
	Ingredients []IngredientDetail `json:"ingredients"`
}

// COGSBreakdown is the output of the recipe-based COGS aggregation.
type COGSBreakdown struct {
	TotalCOGS            float64                 `json:"total_cogs"`
	Categories           []CategoryCostBreakdown `json:"categories"`
	RecipeBasedItemCount int                     `json:"recipe_based_item_count"`
	EstimatedItemCount   int                     `json:"estimated_item_count"`
	UnknownUnitCount     int                     `json:"unknown_unit_count"`
}

// PLMetrics is the profit and loss summary for one period. Discount is
// informational: it already reduced order totals upstream and is never
// subtracted from NetProfit a second time.
type PLMetrics struct {
	Revenue      float64 `json:"revenue"`
	COGS         float64 `json:"cogs"`
	GrossProfit  float64 `json:"gross_profit"`
	Tax          float64 `json:"tax"`
	Discount     float64 `json:"discount"`
	NetProfit    float64 `json:"net_profit"`
	ProfitMargin float64 `json:"profit_margin"`
	OrderCount   int     `json:"order_count"`
}

// MetricDelta is the change of one metric between two periods.
// HasPercentage is false when the previous value was zero, in which case
// renderers show a neutral indicator instead of a percentage.
type MetricDelta struct {
	Value         float64 `json:"value"`
	Percentage    float64 `json:"percentage"`
	HasPercentage bool    `json:"has_percentage"`
}

// PLComparison pairs the current period with a derived prior window.
type PLComparison struct {
	Current  PLMetrics              `json:"current"`
	Previous PLMetrics              `json:"previous"`
	Deltas   map[string]MetricDelta `json:"deltas"`
}

// PLReport is the full report payload served to the dashboard.
type PLReport struct {
	Filter    ReportFilter  `json:"filter"`
	Metrics   PLMetrics     `json:"metrics"`
	Breakdown COGSBreakdown `json:"breakdown"`
	Generated time.Time     `json:"generated_at"`
}

// DepartmentCOGS is a per-department COGS figure from one computation path.
type DepartmentCOGS struct {
	Department string  `json:"department" db:"department"`
	TotalCOGS  float64 `json:"total_cogs" db:"total_cogs"`
}

// SyncResult reconciles one department's two independently computed COGS
// figures.
type SyncResult struct {
	Department     string  `json:"department"`
	EngineCOGS     float64 `json:"engine_cogs"`
	ReportCOGS     float64 `json:"report_cogs"`
	Difference     float64 `json:"difference"`
	PercentageDiff float64 `json:"percentage_diff"`
	IsSynced       bool    `json:"is_synced"`
	LikelyCause    string  `json:"likely_cause,omitempty"`
}

// SyncReport is the overall reconciliation across departments. AllSynced
// additionally requires the grand totals to agree even when each
// department is individually within tolerance.
type SyncReport struct {
	Results         []SyncResult `json:"results"`
	TotalEngine     float64      `json:"total_engine"`
	TotalReport     float64      `json:"total_report"`
	TotalDifference float64      `json:"total_difference"`
	AllSynced       bool         `json:"all_synced"`
}

// InconsistentTotal flags an order line whose stored total disagrees with
// quantity times unit price. Flagged, never corrected.
type InconsistentTotal struct {
	OrderItemID string  `json:"order_item_id"`
	ItemName    string  `json:"item_name"`
	Stored      float64 `json:"stored"`
	Computed    float64 `json:"computed"`
}
