package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TrailingMonths is the number of calendar months in the dashboard time series,
// counting the current month
const TrailingMonths = 6

// RecentActivityLimit caps the recent activity feed
const RecentActivityLimit = 4

// RecentExpenseLimit is how many of the principal's newest expenses are offered
// to the recent activity feed
const RecentExpenseLimit = 2

// MonthLabels are the fixed three-letter month names, indexed by time.Month-1
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type ActivityKind string

const (
	ActivityKindExpense ActivityKind = "expense"
	ActivityKindIncome  ActivityKind = "income"
)

// MonthBucket holds the income and expenses folded into one calendar month.
// Profit is never stored; see Profit.
type MonthBucket struct {
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Label returns the three-letter month name
func (b MonthBucket) Label() string {
	return MonthLabels[b.Month-1]
}

// Profit returns income minus expenses for the bucket
func (b MonthBucket) Profit() decimal.Decimal {
	return b.Income.Sub(b.Expenses)
}

// CategoryBucket is the summed expense amount of one category
type CategoryBucket struct {
	Name  string
	Total decimal.Decimal
}

// ActivitySummary is one entry of the recent activity feed
type ActivitySummary struct {
	ID          string
	Kind        ActivityKind
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// DashboardReport is the dashboard view model. It is computed fresh for every
// request and never persisted.
type DashboardReport struct {
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	Profit            decimal.Decimal
	PendingPayments   decimal.Decimal
	TotalClients      int
	TotalEmployees    int
	MonthlyData       []MonthBucket
	ExpenseCategories []CategoryBucket
	RecentActivities  []ActivitySummary
}

// RecordSource supplies the raw records the dashboard is folded from.
// Failures are ErrRecordAccessDenied or ErrRecordSourceUnavailable.
type RecordSource interface {
	ListExpenses(ctx context.Context, ownerID string) ([]ExpenseRecord, error)
	ListPayments(ctx context.Context) ([]PaymentRecord, error)
}

// DirectoryCounter counts the clients and employees shown on the dashboard
type DirectoryCounter interface {
	CountClients(ctx context.Context) (int, error)
	CountEmployees(ctx context.Context) (int, error)
}
