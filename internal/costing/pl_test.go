package costing

import (
	"math"
	"testing"
	"time"

	"github.com/hotelops/hms-backend/internal/domain"
)

func TestCalculatePLMetrics(t *testing.T) {
	orders := []domain.Order{
		{TotalAmount: 1000, TaxAmount: 100, DiscountAmount: 50},
		{TotalAmount: 500, TaxAmount: 50, DiscountAmount: 0},
	}
	m := CalculatePLMetrics(orders, 400)

	if m.Revenue != 1500 || m.Tax != 150 || m.Discount != 50 {
		t.Fatalf("totals = %+v", m)
	}
	if m.GrossProfit != 1100 {
		t.Errorf("GrossProfit = %v, want 1100", m.GrossProfit)
	}
	// Discount is not subtracted again: it already reduced total_amount.
	if m.NetProfit != 950 {
		t.Errorf("NetProfit = %v, want 950", m.NetProfit)
	}
	want := 950.0 / 1500 * 100
	if math.Abs(m.ProfitMargin-want) > floatTolerance {
		t.Errorf("ProfitMargin = %v, want %v", m.ProfitMargin, want)
	}
	if m.OrderCount != 2 {
		t.Errorf("OrderCount = %d, want 2", m.OrderCount)
	}
}

func TestCalculatePLMetricsZeroRevenue(t *testing.T) {
	m := CalculatePLMetrics(nil, 0)
	if m.ProfitMargin != 0 {
		t.Fatalf("ProfitMargin = %v, want 0 when revenue is 0", m.ProfitMargin)
	}
}

func TestComparisonPeriodDates(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return d
	}

	tests := []struct {
		name       string
		start, end string
		mode       ComparisonMode
		wantStart  string
		wantEnd    string
	}{
		{"previous seven day window", "2025-03-08", "2025-03-14", ComparePrevious, "2025-03-01", "2025-03-07"},
		{"previous single day", "2025-03-10", "2025-03-10", ComparePrevious, "2025-03-09", "2025-03-09"},
		{"last week", "2025-03-08", "2025-03-14", CompareLastWeek, "2025-03-01", "2025-03-07"},
		{"last month", "2025-03-08", "2025-03-14", CompareLastMonth, "2025-02-08", "2025-02-14"},
		{"last month normalizes day overflow", "2025-03-31", "2025-03-31", CompareLastMonth, "2025-03-03", "2025-03-03"},
		{"last year", "2025-03-08", "2025-03-14", CompareLastYear, "2024-03-08", "2024-03-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ComparisonPeriodDates(day(tt.start), day(tt.end), tt.mode)
			if !start.Equal(day(tt.wantStart)) || !end.Equal(day(tt.wantEnd)) {
				t.Fatalf("got [%s, %s], want [%s, %s]",
					start.Format("2006-01-02"), end.Format("2006-01-02"), tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComparePLMetrics(t *testing.T) {
	cur := domain.PLMetrics{Revenue: 200, NetProfit: 50}
	prev := domain.PLMetrics{Revenue: 100, NetProfit: -25}
	cmp := ComparePLMetrics(cur, prev)

	rev := cmp.Deltas["revenue"]
	if rev.Value != 100 || !rev.HasPercentage || math.Abs(rev.Percentage-100) > floatTolerance {
		t.Fatalf("revenue delta = %+v, want {100 100 true}", rev)
	}

	// Negative previous values divide by the absolute value.
	net := cmp.Deltas["net_profit"]
	if net.Value != 75 || math.Abs(net.Percentage-300) > floatTolerance {
		t.Fatalf("net profit delta = %+v, want {75 300 true}", net)
	}
}

func TestComparePLMetricsZeroPrevious(t *testing.T) {
	cmp := ComparePLMetrics(domain.PLMetrics{Revenue: 100}, domain.PLMetrics{})
	rev := cmp.Deltas["revenue"]
	if rev.HasPercentage {
		t.Fatal("revenue delta must be neutral when previous is 0")
	}
	if math.IsNaN(rev.Percentage) || math.IsInf(rev.Percentage, 0) {
		t.Fatalf("revenue percentage = %v, must not be NaN or Inf", rev.Percentage)
	}
	if rev.Value != 100 {
		t.Fatalf("revenue value = %v, want 100", rev.Value)
	}
}
