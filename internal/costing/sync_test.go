package costing

import (
	"math"
	"strings"
	"testing"

	"github.com/hotelops/hms-backend/internal/domain"
)

func TestVerifyCOGSSyncWithinAbsoluteTolerance(t *testing.T) {
	report := VerifyCOGSSync(
		[]domain.DepartmentCOGS{{Department: "restaurant", TotalCOGS: 100}},
		[]domain.DepartmentCOGS{{Department: "restaurant", TotalCOGS: 100.99}},
	)
	r := report.Results[0]
	if math.Abs(r.Difference-0.99) > floatTolerance {
		t.Fatalf("Difference = %v, want 0.99", r.Difference)
	}
	if !r.IsSynced {
		t.Fatal("difference under one currency unit must count as synced")
	}
	if r.LikelyCause != "" {
		t.Fatalf("synced result carries a cause: %q", r.LikelyCause)
	}
	if !report.AllSynced {
		t.Fatal("AllSynced = false, want true")
	}
}

func TestVerifyCOGSSyncOutsideBothTolerances(t *testing.T) {
	report := VerifyCOGSSync(
		[]domain.DepartmentCOGS{{Department: "bar", TotalCOGS: 1000}},
		[]domain.DepartmentCOGS{{Department: "bar", TotalCOGS: 1005}},
	)
	r := report.Results[0]
	if r.IsSynced {
		t.Fatal("difference of 5 with ~0.5%% drift must not count as synced")
	}
	if math.Abs(r.PercentageDiff-0.4987531172) > 1e-6 {
		t.Fatalf("PercentageDiff = %v", r.PercentageDiff)
	}
	if !strings.Contains(r.LikelyCause, "report figure is larger") {
		t.Fatalf("LikelyCause = %q, want report-side hint", r.LikelyCause)
	}
	if report.AllSynced {
		t.Fatal("AllSynced = true, want false")
	}
}

func TestVerifyCOGSSyncDirectionalHint(t *testing.T) {
	report := VerifyCOGSSync(
		[]domain.DepartmentCOGS{{Department: "spa", TotalCOGS: 500}},
		[]domain.DepartmentCOGS{{Department: "spa", TotalCOGS: 480}},
	)
	if got := report.Results[0].LikelyCause; !strings.Contains(got, "engine figure is larger") {
		t.Fatalf("LikelyCause = %q, want engine-side hint", got)
	}
}

func TestVerifyCOGSSyncOffsettingDrift(t *testing.T) {
	// Each department inside tolerance, but the drifts point the same way
	// far enough that the grand totals disagree; the aggregate check is
	// independent of the per-department classification.
	engine := []domain.DepartmentCOGS{
		{Department: "bar", TotalCOGS: 10000},
		{Department: "restaurant", TotalCOGS: 20000},
	}
	mirror := []domain.DepartmentCOGS{
		{Department: "bar", TotalCOGS: 10000.9},
		{Department: "restaurant", TotalCOGS: 20000.9},
	}
	report := VerifyCOGSSync(engine, mirror)
	for _, r := range report.Results {
		if !r.IsSynced {
			t.Fatalf("department %s unexpectedly out of sync", r.Department)
		}
	}
	if report.AllSynced {
		t.Fatal("AllSynced must fail when grand totals drift past the absolute threshold")
	}
	if math.Abs(report.TotalDifference-1.8) > 1e-6 {
		t.Fatalf("TotalDifference = %v, want 1.8", report.TotalDifference)
	}
}

func TestVerifyCOGSSyncReportOnlyDepartment(t *testing.T) {
	report := VerifyCOGSSync(
		[]domain.DepartmentCOGS{{Department: "restaurant", TotalCOGS: 100}},
		[]domain.DepartmentCOGS{
			{Department: "restaurant", TotalCOGS: 100},
			{Department: "bar", TotalCOGS: 50},
		},
	)
	if len(report.Results) != 2 {
		t.Fatalf("len(Results) = %d, want the report-only department included", len(report.Results))
	}
	var bar domain.SyncResult
	for _, r := range report.Results {
		if r.Department == "bar" {
			bar = r
		}
	}
	if bar.IsSynced {
		t.Fatal("a department the engine never saw must not count as synced")
	}
	if math.Abs(report.TotalReport-150) > floatTolerance {
		t.Fatalf("TotalReport = %v, want 150", report.TotalReport)
	}
	if report.AllSynced {
		t.Fatal("AllSynced = true, want false")
	}
}

func TestVerifyCOGSSyncZeroAverage(t *testing.T) {
	report := VerifyCOGSSync(
		[]domain.DepartmentCOGS{{Department: "housekeeping", TotalCOGS: 0}},
		[]domain.DepartmentCOGS{{Department: "housekeeping", TotalCOGS: 0}},
	)
	r := report.Results[0]
	if math.IsNaN(r.PercentageDiff) || r.PercentageDiff != 0 {
		t.Fatalf("PercentageDiff = %v, want literal 0 for zero averages", r.PercentageDiff)
	}
	if !r.IsSynced || !report.AllSynced {
		t.Fatal("identical zero figures must be synced")
	}
}
