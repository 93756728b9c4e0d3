package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mrodcosta/PsiPraticaBack/internal/models"
	"github.com/mrodcosta/PsiPraticaBack/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardReportEntryLimit  = 100
	dashboardTodaySessionLimit = 100
	dashboardRecentSessions    = 10
)

type financialReporter interface {
	Report(ctx context.Context, userID uuid.UUID, start, end time.Time, statusFilter []models.EntryStatus) (*Report, error)
}

type DashboardService struct {
	reports  financialReporter
	sessions sessionStore
	patients patientStore
}

func NewDashboardService(reports financialReporter, sessions sessionStore, patients patientStore) *DashboardService {
	return &DashboardService{
		reports:  reports,
		sessions: sessions,
		patients: patients,
	}
}

type DashboardSummary struct {
	FinancialReport *Report              `json:"financial_report"`
	TodaySessions   []models.Session     `json:"today_sessions"`
	RecentSessions  []models.Session     `json:"recent_sessions"`
	PatientsSummary *models.PatientStats `json:"patients_summary"`
}

// Summary composes the financial report with session and patient summaries.
// The four reads touch disjoint data, so they run concurrently and are
// joined before the response is assembled.
func (s *DashboardService) Summary(ctx context.Context, userID uuid.UUID, start, end time.Time) (*DashboardSummary, error) {
	if err := validatePeriod(start, end, maxDashboardPeriodDays); err != nil {
		return nil, err
	}

	var (
		report *Report
		today  []models.Session
		recent []models.Session
		stats  *models.PatientStats
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := s.reports.Report(gctx, userID, start, end, nil)
		if err != nil {
			return err
		}
		// Totals cover the whole period; only the entry list is capped.
		if len(r.Entries) > dashboardReportEntryLimit {
			r.Entries = r.Entries[:dashboardReportEntryLimit]
		}
		report = r
		return nil
	})

	g.Go(func() error {
		now := time.Now().UTC()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.AddDate(0, 0, 1)
		list, err := s.sessions.List(gctx, repository.SessionListFilter{
			UserID: userID,
			Status: models.SessionScheduled,
			From:   &dayStart,
			To:     &dayEnd,
			Limit:  dashboardTodaySessionLimit,
		})
		if err != nil {
			return err
		}
		today = list
		return nil
	})

	g.Go(func() error {
		list, err := s.sessions.ListRecent(gctx, userID, dashboardRecentSessions)
		if err != nil {
			return err
		}
		recent = list
		return nil
	})

	g.Go(func() error {
		result, err := s.patients.GetStats(gctx, userID)
		if err != nil {
			return err
		}
		stats = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardSummary{
		FinancialReport: report,
		TodaySessions:   today,
		RecentSessions:  recent,
		PatientsSummary: stats,
	}, nil
}
