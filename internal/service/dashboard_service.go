package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DashboardService reads the dashboard's records and hands them to the
// ReportAggregator
type DashboardService struct {
	source     domain.RecordSource
	directory  domain.DirectoryCounter
	aggregator *ReportAggregator
	metrics    metrics.Recorder
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	source domain.RecordSource,
	directory domain.DirectoryCounter,
	aggregator *ReportAggregator,
	recorder metrics.Recorder,
) *DashboardService {
	if recorder == nil {
		recorder = metrics.NoOpRecorder{}
	}
	return &DashboardService{
		source:     source,
		directory:  directory,
		aggregator: aggregator,
		metrics:    recorder,
	}
}

// GetReport returns the dashboard report for principalID.
//
// The four reads run concurrently and must all succeed; the first failure
// cancels the rest and no partial report is produced. The returned error wraps
// domain.ErrRecordAccessDenied or domain.ErrRecordSourceUnavailable.
func (s *DashboardService) GetReport(ctx context.Context, principalID string) (*domain.DashboardReport, error) {
	if principalID == "" {
		return nil, domain.ErrUnauthenticated
	}

	start := time.Now()

	var (
		expenses       []domain.ExpenseRecord
		payments       []domain.PaymentRecord
		totalClients   int
		totalEmployees int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.source.ListExpenses(gctx, principalID)
		return sourceError("list expenses", err)
	})
	g.Go(func() error {
		var err error
		payments, err = s.source.ListPayments(gctx)
		return sourceError("list payments", err)
	})
	g.Go(func() error {
		var err error
		totalClients, err = s.directory.CountClients(gctx)
		return sourceError("count clients", err)
	})
	g.Go(func() error {
		var err error
		totalEmployees, err = s.directory.CountEmployees(gctx)
		return sourceError("count employees", err)
	})

	if err := g.Wait(); err != nil {
		s.metrics.ObserveReport(reportOutcome(ctx, err), time.Since(start))
		log.Error().Err(err).Str("principal_id", principalID).Msg("Failed to read dashboard records")
		return nil, err
	}

	report := s.aggregator.Aggregate(principalID, expenses, payments)
	report.TotalClients = totalClients
	report.TotalEmployees = totalEmployees

	s.metrics.ObserveReport(metrics.OutcomeSuccess, time.Since(start))
	return report, nil
}

// sourceError tags a record source failure with the operation and makes sure it
// matches one of the two record source errors
func sourceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrRecordAccessDenied) || errors.Is(err, domain.ErrRecordSourceUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrRecordSourceUnavailable, err)
}

func reportOutcome(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return metrics.OutcomeCancelled
	case errors.Is(err, domain.ErrRecordAccessDenied):
		return metrics.OutcomeDenied
	default:
		return metrics.OutcomeUnavailable
	}
}
