package service

import (
	"context"
	"fmt"
	"time"

	"foodsafety/internal/models"
	"foodsafety/internal/repository"
)

// DaySummary aggregates one calendar day of monitoring activity.
// ConformityRate is the share of records that stayed out of critical
// territory, in percent.
type DaySummary struct {
	Date              string  `json:"date"`
	TotalRecords      int     `json:"total_records"`
	TotalAlerts       int     `json:"total_alerts"`
	CriticalAlerts    int     `json:"critical_alerts"`
	ResolvedAlerts    int     `json:"resolved_alerts"`
	UnresolvedAlerts  int     `json:"unresolved_alerts"`
	CorrectiveActions int     `json:"corrective_actions"`
	ConformityRate    float64 `json:"conformity_rate"`
}

type DashboardService struct {
	records repository.RecordRepo
	alerts  repository.AlertRepo
	loc     *time.Location
}

func NewDashboardService(records repository.RecordRepo, alerts repository.AlertRepo, loc *time.Location) *DashboardService {
	return &DashboardService{records: records, alerts: alerts, loc: loc}
}

// Summary computes the day's counts from committed state only; it never
// re-runs classification.
func (s *DashboardService) Summary(ctx context.Context, day time.Time) (DaySummary, error) {
	from, to := dayBounds(day, s.loc)

	totalRecords, err := s.records.CountByRange(ctx, from, to)
	if err != nil {
		return DaySummary{}, fmt.Errorf("count records: %w", err)
	}

	rangeQuery := repository.AlertQuery{From: from, To: to}

	totalAlerts, err := s.alerts.Count(ctx, rangeQuery)
	if err != nil {
		return DaySummary{}, fmt.Errorf("count alerts: %w", err)
	}

	critical := rangeQuery
	critical.Danger = models.DangerCritical
	criticalAlerts, err := s.alerts.Count(ctx, critical)
	if err != nil {
		return DaySummary{}, fmt.Errorf("count critical alerts: %w", err)
	}

	resolvedFlag := true
	resolvedQuery := rangeQuery
	resolvedQuery.Resolved = &resolvedFlag
	resolvedAlerts, err := s.alerts.Count(ctx, resolvedQuery)
	if err != nil {
		return DaySummary{}, fmt.Errorf("count resolved alerts: %w", err)
	}

	return DaySummary{
		Date:              from.Format("2006-01-02"),
		TotalRecords:      totalRecords,
		TotalAlerts:       totalAlerts,
		CriticalAlerts:    criticalAlerts,
		ResolvedAlerts:    resolvedAlerts,
		UnresolvedAlerts:  totalAlerts - resolvedAlerts,
		// Every resolution carries a corrective action, so the counts match.
		CorrectiveActions: resolvedAlerts,
		ConformityRate:    conformityRate(totalRecords, criticalAlerts),
	}, nil
}

// conformityRate returns ((records - critical) / records) * 100.
// A day without records is fully conformant.
func conformityRate(totalRecords, criticalAlerts int) float64 {
	if totalRecords == 0 {
		return 100.0
	}
	return float64(totalRecords-criticalAlerts) / float64(totalRecords) * 100.0
}
