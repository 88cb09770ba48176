package service

import (
	"context"

	"github.com/avvvet/copbrazil-services/internal/registrysvc/models"
)

type ReportService struct {
	reportStore ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{reportStore: store}
}

func (s *ReportService) Summary(ctx context.Context) ([]models.DriverSummary, error) {
	return s.reportStore.SummaryByDriver(ctx)
}

func (s *ReportService) Dashboard(ctx context.Context) (models.DashboardTotals, error) {
	return s.reportStore.DashboardTotals(ctx)
}
