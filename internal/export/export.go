// Package export renders P&L reports as CSV and archives them to
// S3-compatible object storage. The costing layer works in raw numbers;
// currency symbols and two-decimal precision are applied here only.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// FormatMoney renders a monetary value with the caller-supplied currency
// symbol and fixed two-decimal precision.
func FormatMoney(symbol string, v float64) string {
	return symbol + strconv.FormatFloat(v, 'f', 2, 64)
}

// Exporter writes rendered reports to object storage.
type Exporter struct {
	storage        ObjectStorage
	currencySymbol string
}

func NewExporter(storage ObjectStorage, currencySymbol string) *Exporter {
	return &Exporter{storage: storage, currencySymbol: currencySymbol}
}

// RenderPLReportCSV renders the report as CSV: the metric summary followed
// by the category breakdown and its ingredient details.
func RenderPLReportCSV(report *domain.PLReport, currencySymbol string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Period", report.Filter.StartDate.Format("2006-01-02"), report.Filter.EndDate.Format("2006-01-02")},
		{"Metric", "Value"},
		{"Revenue", FormatMoney(currencySymbol, report.Metrics.Revenue)},
		{"COGS", FormatMoney(currencySymbol, report.Metrics.COGS)},
		{"Gross Profit", FormatMoney(currencySymbol, report.Metrics.GrossProfit)},
		{"Tax", FormatMoney(currencySymbol, report.Metrics.Tax)},
		{"Discount", FormatMoney(currencySymbol, report.Metrics.Discount)},
		{"Net Profit", FormatMoney(currencySymbol, report.Metrics.NetProfit)},
		{"Profit Margin", strconv.FormatFloat(report.Metrics.ProfitMargin, 'f', 2, 64) + "%"},
		{"Orders", strconv.Itoa(report.Metrics.OrderCount)},
		{"Recipe Based Items", strconv.Itoa(report.Breakdown.RecipeBasedItemCount)},
		{"Estimated Items", strconv.Itoa(report.Breakdown.EstimatedItemCount)},
		{},
		{"Category", "Ingredient", "Unit", "Quantity", "Cost", "Share"},
	}

	for _, category := range report.Breakdown.Categories {
		rows = append(rows, []string{
			category.Category, "", "", "",
			FormatMoney(currencySymbol, category.TotalCost),
			strconv.FormatFloat(category.Percentage, 'f', 2, 64) + "%",
		})
		for _, ing := range category.Ingredients {
			rows = append(rows, []string{
				category.Category,
				ing.Name,
				ing.Unit,
				strconv.FormatFloat(ing.TotalQuantity, 'f', 2, 64),
				FormatMoney(currencySymbol, ing.TotalCost),
				"",
			})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportPLReport renders the report and uploads it, returning the object
// key.
func (e *Exporter) ExportPLReport(ctx context.Context, report *domain.PLReport) (string, error) {
	data, err := RenderPLReportCSV(report, e.currencySymbol)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("pl-reports/%s_%s.csv",
		report.Filter.StartDate.Format("20060102"),
		report.Filter.EndDate.Format("20060102"))
	if report.Filter.Department != "" {
		key = fmt.Sprintf("pl-reports/%s_%s_%s.csv",
			report.Filter.Department,
			report.Filter.StartDate.Format("20060102"),
			report.Filter.EndDate.Format("20060102"))
	}

	if err := e.storage.UploadObject(ctx, key, data); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("bytes", len(data)).Msg("pl report exported")
	return key, nil
}

// ListExports returns previously archived P&L reports.
func (e *Exporter) ListExports(ctx context.Context) ([]ObjectInfo, error) {
	return e.storage.ListObjects(ctx, "pl-reports/")
}
