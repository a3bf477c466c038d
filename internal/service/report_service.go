package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hotelops/hms-backend/internal/cache"
	"github.com/hotelops/hms-backend/internal/costing"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/hotelops/hms-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReportService builds P&L reports: it loads the period snapshot, runs the
// costing engine over it, and caches the rendered report.
type ReportService struct {
	repo  repository.ReportRepository
	cache cache.PLReportCache
}

func NewReportService(repo repository.ReportRepository, cacheImpl cache.PLReportCache) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopPLReportCache()
	}
	return &ReportService{repo: repo, cache: cacheImpl}
}

// GetPLReport returns the P&L report for the filtered period.
func (s *ReportService) GetPLReport(ctx context.Context, filter domain.ReportFilter) (*domain.PLReport, error) {
	if report, ok, err := s.cache.GetReport(ctx, filter); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("pl report: cache get failed")
	}

	report, err := s.buildReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetReport(ctx, filter, report); err != nil {
		log.Warn().Err(err).Msg("pl report: cache set failed")
	}

	return report, nil
}

func (s *ReportService) buildReport(ctx context.Context, filter domain.ReportFilter) (*domain.PLReport, error) {
	orders, err := s.repo.GetOrdersInPeriod(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	orderItems, err := s.repo.GetOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	menuItems, err := s.repo.GetMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}

	inventory, err := s.repo.GetInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	breakdown := costing.ComputeCOGS(orderIDs, orderItems, menuItems, inventory)
	metrics := costing.CalculatePLMetrics(orders, breakdown.TotalCOGS)

	if breakdown.EstimatedItemCount > 0 {
		log.Debug().
			Int("estimated", breakdown.EstimatedItemCount).
			Int("recipe_based", breakdown.RecipeBasedItemCount).
			Msg("pl report: part of COGS is estimated, not recipe-derived")
	}
	if breakdown.UnknownUnitCount > 0 {
		log.Warn().
			Int("unknown_units", breakdown.UnknownUnitCount).
			Msg("pl report: recipe lines with unrecognized units treated as count")
	}

	return &domain.PLReport{
		Filter:    filter,
		Metrics:   metrics,
		Breakdown: breakdown,
		Generated: time.Now().UTC(),
	}, nil
}

// GetPLComparison builds the current report and the derived prior window
// and compares them metric by metric.
func (s *ReportService) GetPLComparison(ctx context.Context, filter domain.ReportFilter, mode costing.ComparisonMode) (*domain.PLComparison, error) {
	current, err := s.GetPLReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd := costing.ComparisonPeriodDates(filter.StartDate, filter.EndDate, mode)
	prevFilter := filter
	prevFilter.StartDate = prevStart
	prevFilter.EndDate = prevEnd

	previous, err := s.GetPLReport(ctx, prevFilter)
	if err != nil {
		return nil, err
	}

	comparison := costing.ComparePLMetrics(current.Metrics, previous.Metrics)
	return &comparison, nil
}

// FlagInconsistentTotals surfaces order lines in the period whose stored
// totals disagree with quantity times unit price.
func (s *ReportService) FlagInconsistentTotals(ctx context.Context, filter domain.ReportFilter) ([]domain.InconsistentTotal, error) {
	orders, err := s.repo.GetOrdersInPeriod(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	orderItems, err := s.repo.GetOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	return costing.FlagInconsistentTotals(orderItems), nil
}

// InvalidateCache drops all cached reports, e.g. after a bulk reseed.
func (s *ReportService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
