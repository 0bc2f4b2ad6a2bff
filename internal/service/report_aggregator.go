package service

import (
	"fmt"
	"slices"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ReportAggregator folds expense and payment records into the dashboard report.
// It holds no state between calls apart from the clock.
type ReportAggregator struct {
	now func() time.Time
}

// NewReportAggregator creates a ReportAggregator. A nil clock uses time.Now.
func NewReportAggregator(now func() time.Time) *ReportAggregator {
	if now == nil {
		now = time.Now
	}
	return &ReportAggregator{now: now}
}

// Aggregate builds the report for principalID.
//
// Expenses are scoped to the principal before anything is summed. Payments are
// never scoped: every payment counts towards every principal's income.
// Amounts are taken as they come, sign included; writes reject negatives.
func (a *ReportAggregator) Aggregate(principalID string, expenses []domain.ExpenseRecord, payments []domain.PaymentRecord) *domain.DashboardReport {
	now := a.now()

	owned := make([]domain.ExpenseRecord, 0, len(expenses))
	for _, e := range expenses {
		if e.OwnerID == principalID {
			owned = append(owned, e)
		}
	}

	report := &domain.DashboardReport{
		TotalIncome:     decimal.Zero,
		TotalExpenses:   decimal.Zero,
		PendingPayments: decimal.Zero,
	}

	for _, p := range payments {
		report.TotalIncome = report.TotalIncome.Add(p.PaidAmount)
		report.PendingPayments = report.PendingPayments.Add(p.PendingAmount)
	}
	for _, e := range owned {
		report.TotalExpenses = report.TotalExpenses.Add(e.Amount)
	}
	report.Profit = report.TotalIncome.Sub(report.TotalExpenses)

	report.ExpenseCategories = categoryBuckets(owned)
	report.MonthlyData = monthBuckets(now, owned, payments)
	report.RecentActivities = recentActivities(owned, payments)

	return report
}

// categoryBuckets groups expenses by category in order of first appearance
func categoryBuckets(expenses []domain.ExpenseRecord) []domain.CategoryBucket {
	buckets := make([]domain.CategoryBucket, 0)
	index := make(map[string]int)

	for _, e := range expenses {
		name := e.Category
		if name == "" {
			name = domain.DefaultCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, domain.CategoryBucket{Name: name, Total: decimal.Zero})
		}
		buckets[i].Total = buckets[i].Total.Add(e.Amount)
	}

	return buckets
}

// monthBuckets builds the trailing month series ending at now's month.
//
// Only records dated in now's calendar year are folded in, so when the window
// crosses New Year the previous year's months stay at zero. A record whose month
// is outside the window gets a bucket of its own, so the series can run past the
// window. Buckets come out in calendar order.
func monthBuckets(now time.Time, expenses []domain.ExpenseRecord, payments []domain.PaymentRecord) []domain.MonthBucket {
	byMonth := make(map[time.Month]*domain.MonthBucket, domain.TrailingMonths)
	for _, start := range util.TrailingMonths(now, domain.TrailingMonths) {
		m := start.Month()
		byMonth[m] = &domain.MonthBucket{Month: m, Income: decimal.Zero, Expenses: decimal.Zero}
	}

	year := now.Year()
	for _, p := range payments {
		if p.OccurredOn.IsZero() || p.OccurredOn.Year() != year {
			continue
		}
		b := bucketFor(byMonth, p.OccurredOn.Month())
		b.Income = b.Income.Add(p.PaidAmount)
	}
	for _, e := range expenses {
		if e.OccurredOn.IsZero() || e.OccurredOn.Year() != year {
			continue
		}
		b := bucketFor(byMonth, e.OccurredOn.Month())
		b.Expenses = b.Expenses.Add(e.Amount)
	}

	buckets := make([]domain.MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	slices.SortFunc(buckets, func(a, b domain.MonthBucket) int {
		return int(a.Month) - int(b.Month)
	})

	return buckets
}

func bucketFor(byMonth map[time.Month]*domain.MonthBucket, m time.Month) *domain.MonthBucket {
	b, ok := byMonth[m]
	if !ok {
		b = &domain.MonthBucket{Month: m, Income: decimal.Zero, Expenses: decimal.Zero}
		byMonth[m] = b
	}
	return b
}

// recentActivities merges the newest expenses with all payments, newest first,
// and keeps the first RecentActivityLimit entries
func recentActivities(expenses []domain.ExpenseRecord, payments []domain.PaymentRecord) []domain.ActivitySummary {
	newest := slices.Clone(expenses)
	slices.SortStableFunc(newest, func(a, b domain.ExpenseRecord) int {
		return b.CreatedOn.Compare(a.CreatedOn)
	})
	if len(newest) > domain.RecentExpenseLimit {
		newest = newest[:domain.RecentExpenseLimit]
	}

	feed := make([]domain.ActivitySummary, 0, len(newest)+len(payments))
	for _, e := range newest {
		feed = append(feed, domain.ActivitySummary{
			ID:          e.ID,
			Kind:        domain.ActivityKindExpense,
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.CreatedOn,
		})
	}
	for _, p := range payments {
		feed = append(feed, domain.ActivitySummary{
			ID:          p.ID,
			Kind:        domain.ActivityKindIncome,
			Description: fmt.Sprintf("Payment from %s", p.ClientLabel),
			Amount:      p.PaidAmount,
			Date:        p.CreatedOn,
		})
	}

	slices.SortStableFunc(feed, func(a, b domain.ActivitySummary) int {
		return b.Date.Compare(a.Date)
	})
	if len(feed) > domain.RecentActivityLimit {
		feed = feed[:domain.RecentActivityLimit]
	}

	return feed
}
