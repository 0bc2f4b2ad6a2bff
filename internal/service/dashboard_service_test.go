package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/metrics"
	"github.com/dafibh/backoffice/backoffice-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardService(source *testutil.MockRecordSource, recorder metrics.Recorder) *DashboardService {
	return NewDashboardService(source, source, NewReportAggregator(fixedClock(fixedNow)), recorder)
}

func TestDashboardService_GetReport(t *testing.T) {
	on := day(2025, time.June, 2)
	source := &testutil.MockRecordSource{
		Expenses: []domain.ExpenseRecord{
			expenseRecord("e1", "Travel", 400, on, fixedNow.Add(-time.Hour)),
		},
		Payments: []domain.PaymentRecord{
			paymentRecord("p1", 1000, 250, on, fixedNow.Add(-2*time.Hour)),
		},
		ClientCount:   3,
		EmployeeCount: 7,
	}
	recorder := &testutil.MockRecorder{}

	report, err := newDashboardService(source, recorder).GetReport(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, "1000", report.TotalIncome.String())
	assert.Equal(t, "400", report.TotalExpenses.String())
	assert.Equal(t, "600", report.Profit.String())
	assert.Equal(t, "250", report.PendingPayments.String())
	assert.Equal(t, 3, report.TotalClients)
	assert.Equal(t, 7, report.TotalEmployees)
	assert.Len(t, report.RecentActivities, 2)
	assert.Equal(t, []string{metrics.OutcomeSuccess}, recorder.Outcomes)
}

func TestDashboardService_GetReport_RequiresPrincipal(t *testing.T) {
	_, err := newDashboardService(&testutil.MockRecordSource{}, nil).GetReport(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestDashboardService_GetReport_Failures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*testutil.MockRecordSource)
		wantErr     error
		wantOutcome string
	}{
		{
			name: "expense read denied",
			setup: func(s *testutil.MockRecordSource) {
				s.ExpensesErr = fmt.Errorf("%w: permission denied for table expenses", domain.ErrRecordAccessDenied)
			},
			wantErr:     domain.ErrRecordAccessDenied,
			wantOutcome: metrics.OutcomeDenied,
		},
		{
			name: "payment read unavailable",
			setup: func(s *testutil.MockRecordSource) {
				s.PaymentsErr = fmt.Errorf("%w: connection refused", domain.ErrRecordSourceUnavailable)
			},
			wantErr:     domain.ErrRecordSourceUnavailable,
			wantOutcome: metrics.OutcomeUnavailable,
		},
		{
			name: "count fails with an untyped error",
			setup: func(s *testutil.MockRecordSource) {
				s.CountErr = errors.New("boom")
			},
			wantErr:     domain.ErrRecordSourceUnavailable,
			wantOutcome: metrics.OutcomeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &testutil.MockRecordSource{
				Payments: []domain.PaymentRecord{paymentRecord("p1", 10, 0, day(2025, time.June, 1), fixedNow)},
			}
			tt.setup(source)
			recorder := &testutil.MockRecorder{}

			report, err := newDashboardService(source, recorder).GetReport(context.Background(), owner)

			assert.Nil(t, report)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{tt.wantOutcome}, recorder.Outcomes)
		})
	}
}

func TestDashboardService_GetReport_FailureCancelsOtherReads(t *testing.T) {
	sawCancel := make(chan struct{})
	source := &testutil.MockRecordSource{
		ExpensesErr: fmt.Errorf("%w: role revoked", domain.ErrRecordAccessDenied),
		ListPaymentsFn: func(ctx context.Context) ([]domain.PaymentRecord, error) {
			select {
			case <-ctx.Done():
				close(sawCancel)
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return nil, nil
			}
		},
	}

	_, err := newDashboardService(source, nil).GetReport(context.Background(), owner)

	assert.ErrorIs(t, err, domain.ErrRecordAccessDenied)
	select {
	case <-sawCancel:
	default:
		t.Fatal("payment read was not cancelled")
	}
}

func TestDashboardService_GetReport_CallerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &testutil.MockRecordSource{
		ListPaymentsFn: func(ctx context.Context) ([]domain.PaymentRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	recorder := &testutil.MockRecorder{}

	_, err := newDashboardService(source, recorder).GetReport(ctx, owner)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecordSourceUnavailable)
	assert.Equal(t, []string{metrics.OutcomeCancelled}, recorder.Outcomes)
}

func TestSourceError(t *testing.T) {
	assert.NoError(t, sourceError("list", nil))

	denied := sourceError("list expenses", domain.ErrRecordAccessDenied)
	assert.ErrorIs(t, denied, domain.ErrRecordAccessDenied)
	assert.Contains(t, denied.Error(), "list expenses")

	wrapped := sourceError("count clients", context.DeadlineExceeded)
	assert.ErrorIs(t, wrapped, domain.ErrRecordSourceUnavailable)
}
