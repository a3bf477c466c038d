package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/hotelops/hms-backend/internal/costing"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/hotelops/hms-backend/internal/repository"
)

// SyncService reconciles the Go engine's per-department COGS against the
// SQL-side aggregate for the same period. The two paths share only the
// backing rows, never each other's results, so drift between them points
// at a real data or logic problem.
type SyncService struct {
	repo repository.ReportRepository
}

func NewSyncService(repo repository.ReportRepository) *SyncService {
	return &SyncService{repo: repo}
}

func (s *SyncService) VerifySync(ctx context.Context, filter domain.ReportFilter) (*domain.SyncReport, error) {
	engineFigures, err := s.engineCOGSByDepartment(ctx, filter)
	if err != nil {
		return nil, err
	}

	reportFigures, err := s.repo.GetDepartmentCOGS(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load sql-side department cogs: %w", err)
	}

	report := costing.VerifyCOGSSync(engineFigures, reportFigures)
	return &report, nil
}

// engineCOGSByDepartment runs the order-item costing engine once per
// department present in the period.
func (s *SyncService) engineCOGSByDepartment(ctx context.Context, filter domain.ReportFilter) ([]domain.DepartmentCOGS, error) {
	orders, err := s.repo.GetOrdersInPeriod(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	orderIDs := make([]string, 0, len(orders))
	ordersByDept := make(map[string][]string)
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		ordersByDept[o.Dept] = append(ordersByDept[o.Dept], o.ID)
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

	departments := make([]string, 0, len(ordersByDept))
	for dept := range ordersByDept {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	figures := make([]domain.DepartmentCOGS, 0, len(departments))
	for _, dept := range departments {
		breakdown := costing.ComputeCOGS(ordersByDept[dept], orderItems, menuItems, inventory)
		figures = append(figures, domain.DepartmentCOGS{
			Department: dept,
			TotalCOGS:  breakdown.TotalCOGS,
		})
	}

	return figures, nil
}
