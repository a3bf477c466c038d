package costing

import (
	"time"

	"github.com/hotelops/hms-backend/internal/domain"
)

// ComparisonMode selects how the prior window of a P&L comparison is
// derived from the current one.
type ComparisonMode string

const (
	ComparePrevious  ComparisonMode = "previous"
	CompareLastWeek  ComparisonMode = "last_week"
	CompareLastMonth ComparisonMode = "last_month"
	CompareLastYear  ComparisonMode = "last_year"
)

// CalculatePLMetrics folds order totals and an aggregated COGS figure into
// the P&L summary. Net profit is gross profit minus tax; discount already
// reduced order totals upstream and is reported as its own line without
// being subtracted again.
func CalculatePLMetrics(orders []domain.Order, cogs float64) domain.PLMetrics {
	m := domain.PLMetrics{COGS: cogs, OrderCount: len(orders)}
	for _, o := range orders {
		m.Revenue += o.TotalAmount
		m.Tax += o.TaxAmount
		m.Discount += o.DiscountAmount
	}
	m.GrossProfit = m.Revenue - m.COGS
	m.NetProfit = m.GrossProfit - m.Tax
	if m.Revenue > 0 {
		m.ProfitMargin = m.NetProfit / m.Revenue * 100
	}
	return m
}

// ComparisonPeriodDates derives an equal-length prior window for the given
// period. "previous" shifts the window back by its own length; the fixed
// modes shift by 7 days, one calendar month, or one calendar year, with
// month and year arithmetic following time.AddDate normalization.
func ComparisonPeriodDates(startDate, endDate time.Time, mode ComparisonMode) (start, end time.Time) {
	switch mode {
	case CompareLastWeek:
		return startDate.AddDate(0, 0, -7), endDate.AddDate(0, 0, -7)
	case CompareLastMonth:
		return startDate.AddDate(0, -1, 0), endDate.AddDate(0, -1, 0)
	case CompareLastYear:
		return startDate.AddDate(-1, 0, 0), endDate.AddDate(-1, 0, 0)
	default:
		length := endDate.Sub(startDate)
		return startDate.Add(-length - 24*time.Hour), startDate.Add(-24 * time.Hour)
	}
}

// ComparePLMetrics computes per-metric deltas between two periods. A zero
// previous value yields no meaningful percentage; the delta is marked
// neutral rather than dividing by zero.
func ComparePLMetrics(current, previous domain.PLMetrics) domain.PLComparison {
	return domain.PLComparison{
		Current:  current,
		Previous: previous,
		Deltas: map[string]domain.MetricDelta{
			"revenue":       metricDelta(current.Revenue, previous.Revenue),
			"cogs":          metricDelta(current.COGS, previous.COGS),
			"gross_profit":  metricDelta(current.GrossProfit, previous.GrossProfit),
			"tax":           metricDelta(current.Tax, previous.Tax),
			"discount":      metricDelta(current.Discount, previous.Discount),
			"net_profit":    metricDelta(current.NetProfit, previous.NetProfit),
			"profit_margin": metricDelta(current.ProfitMargin, previous.ProfitMargin),
			"order_count":   metricDelta(float64(current.OrderCount), float64(previous.OrderCount)),
		},
	}
}

func metricDelta(current, previous float64) domain.MetricDelta {
	d := domain.MetricDelta{Value: current - previous}
	if previous != 0 {
		d.Percentage = d.Value / abs(previous) * 100
		d.HasPercentage = true
	}
	return d
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
