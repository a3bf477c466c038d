package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/hotelops/hms-backend/internal/domain"
)

type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for k, v := range m.objects {
		out = append(out, ObjectInfo{Key: k, Size: int64(len(v))})
	}
	return out, nil
}

func (m *memoryStorage) UploadObject(ctx context.Context, key string, data []byte) error {
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return nil
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		symbol string
		value  float64
		want   string
	}{
		{"₹", 75, "₹75.00"},
		{"$", 1234.5, "$1234.50"},
		{"€", 0, "€0.00"},
		{"₹", 99.999, "₹100.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.symbol, tt.value); got != tt.want {
			t.Errorf("FormatMoney(%q, %v) = %q, want %q", tt.symbol, tt.value, got, tt.want)
		}
	}
}

func sampleReport() *domain.PLReport {
	start, _ := time.Parse("2006-01-02", "2025-03-01")
	end, _ := time.Parse("2006-01-02", "2025-03-31")
	return &domain.PLReport{
		Filter: domain.ReportFilter{StartDate: start, EndDate: end, Department: "restaurant"},
		Metrics: domain.PLMetrics{
			Revenue: 1500, COGS: 250, GrossProfit: 1250,
			Tax: 150, NetProfit: 1100, ProfitMargin: 73.33, OrderCount: 2,
		},
		Breakdown: domain.COGSBreakdown{
			TotalCOGS: 250,
			Categories: []domain.CategoryCostBreakdown{
				{
					Category: "Dairy", TotalCost: 160, Percentage: 64,
					Ingredients: []domain.IngredientDetail{
						{Name: "Paneer", Unit: "kg", TotalQuantity: 400, TotalCost: 160},
					},
				},
				{Category: "Estimated", TotalCost: 90, Percentage: 36},
			},
			RecipeBasedItemCount: 1,
			EstimatedItemCount:   1,
		},
	}
}

func TestRenderPLReportCSV(t *testing.T) {
	data, err := RenderPLReportCSV(sampleReport(), "₹")
	if err != nil {
		t.Fatalf("RenderPLReportCSV: %v", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("rendered CSV does not parse: %v", err)
	}

	if records[0][1] != "2025-03-01" || records[0][2] != "2025-03-31" {
		t.Errorf("period row = %v", records[0])
	}

	var sawRevenue, sawPaneer bool
	for _, rec := range records {
		if len(rec) >= 2 && rec[0] == "Revenue" && rec[1] == "₹1500.00" {
			sawRevenue = true
		}
		if len(rec) >= 5 && rec[1] == "Paneer" && rec[4] == "₹160.00" {
			sawPaneer = true
		}
	}
	if !sawRevenue {
		t.Error("revenue row missing or misformatted")
	}
	if !sawPaneer {
		t.Error("paneer ingredient row missing or misformatted")
	}
}

func TestExportPLReportKey(t *testing.T) {
	storage := &memoryStorage{}
	exporter := NewExporter(storage, "₹")

	key, err := exporter.ExportPLReport(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("ExportPLReport: %v", err)
	}
	want := "pl-reports/restaurant_20250301_20250331.csv"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
	if _, ok := storage.objects[key]; !ok {
		t.Fatal("uploaded object not found in storage")
	}
}
