package costing

import (
	"math"

	"github.com/hotelops/hms-backend/internal/domain"
)

// Sync tolerances: a department pair counts as in sync when the absolute
// difference stays under one currency unit or the relative difference
// under 0.1 percent. The grand totals are held to the absolute threshold
// only, so offsetting per-department drifts still fail the overall check.
const (
	syncAbsoluteTolerance   = 1.0
	syncPercentageTolerance = 0.1
)

// VerifyCOGSSync reconciles per-department COGS figures from the order-item
// engine against an independently computed report-side figure for the same
// departments. The two inputs must come from genuinely separate
// computation paths or the check is tautological.
func VerifyCOGSSync(engine, report []domain.DepartmentCOGS) domain.SyncReport {
	reportByDept := make(map[string]float64, len(report))
	for _, r := range report {
		reportByDept[r.Department] = r.TotalCOGS
	}

	out := domain.SyncReport{Results: make([]domain.SyncResult, 0, len(engine))}

	compare := func(department string, engineValue, reportValue float64) {
		result := domain.SyncResult{
			Department: department,
			EngineCOGS: engineValue,
			ReportCOGS: reportValue,
		}

		result.Difference = math.Abs(engineValue - reportValue)
		avg := (engineValue + reportValue) / 2
		if avg > 0 {
			result.PercentageDiff = result.Difference / avg * 100
		}
		result.IsSynced = result.Difference < syncAbsoluteTolerance ||
			result.PercentageDiff < syncPercentageTolerance

		if !result.IsSynced {
			if engineValue > reportValue {
				result.LikelyCause = "engine figure is larger: likely a wider date range or extra included orders on the engine side (check order status and payment filters)"
			} else {
				result.LikelyCause = "report figure is larger: likely a wider date range or extra included orders on the report side (check order status and payment filters)"
			}
		}

		out.TotalEngine += engineValue
		out.TotalReport += reportValue
		out.Results = append(out.Results, result)
	}

	engineSeen := make(map[string]struct{}, len(engine))
	for _, e := range engine {
		engineSeen[e.Department] = struct{}{}
		compare(e.Department, e.TotalCOGS, reportByDept[e.Department])
	}

	// Departments only the report side knows about still count against the
	// totals; an engine that never saw them is itself a form of drift.
	for _, r := range report {
		if _, ok := engineSeen[r.Department]; !ok {
			compare(r.Department, 0, r.TotalCOGS)
		}
	}

	out.TotalDifference = math.Abs(out.TotalEngine - out.TotalReport)

	out.AllSynced = out.TotalDifference < syncAbsoluteTolerance
	for _, r := range out.Results {
		if !r.IsSynced {
			out.AllSynced = false
			break
		}
	}

	return out
}
