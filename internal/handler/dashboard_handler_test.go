package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/dafibh/backoffice/backoffice-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newDashboardHandler(source *testutil.MockRecordSource) *DashboardHandler {
	now := func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }
	dashboardService := service.NewDashboardService(source, source, service.NewReportAggregator(now), nil)
	return NewDashboardHandler(dashboardService)
}

func dashboardSource() *testutil.MockRecordSource {
	return &testutil.MockRecordSource{
		Expenses: []domain.ExpenseRecord{
			{
				ID:          "e1",
				OwnerID:     testPrincipal,
				Description: "Flight",
				Category:    "Travel",
				Amount:      decimal.RequireFromString("100.5"),
				OccurredOn:  domain.NewDate(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)),
				CreatedOn:   time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
			},
			{
				ID:          "other",
				OwnerID:     "auth0|someone-else",
				Description: "Not mine",
				Amount:      decimal.NewFromInt(999),
				OccurredOn:  domain.NewDate(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)),
				CreatedOn:   time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC),
			},
		},
		Payments: []domain.PaymentRecord{
			{
				ID:            "p1",
				PaidAmount:    decimal.NewFromInt(1000),
				PendingAmount: decimal.NewFromInt(250),
				OccurredOn:    domain.NewDate(time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)),
				ClientLabel:   "Acme",
				CreatedOn:     time.Date(2025, time.May, 10, 15, 30, 0, 0, time.UTC),
			},
		},
		ClientCount:   3,
		EmployeeCount: 2,
	}
}

func TestGetStats_Success(t *testing.T) {
	e := newTestEcho()
	handler := newDashboardHandler(dashboardSource())

	c, rec := newContext(e, http.MethodGet, "/api/v1/dashboard/stats", nil, testPrincipal)

	err := handler.GetStats(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalIncome != "1000.00" {
		t.Errorf("Expected total income '1000.00', got %s", response.TotalIncome)
	}
	if response.TotalExpenses != "100.50" {
		t.Errorf("Expected total expenses '100.50', got %s", response.TotalExpenses)
	}
	if response.Profit != "899.50" {
		t.Errorf("Expected profit '899.50', got %s", response.Profit)
	}
	if response.PendingPayments != "250.00" {
		t.Errorf("Expected pending payments '250.00', got %s", response.PendingPayments)
	}
	if response.TotalClients != 3 || response.TotalEmployees != 2 {
		t.Errorf("Expected 3 clients and 2 employees, got %d and %d", response.TotalClients, response.TotalEmployees)
	}

	if len(response.MonthlyData) != domain.TrailingMonths {
		t.Fatalf("Expected %d months, got %d", domain.TrailingMonths, len(response.MonthlyData))
	}
	may := response.MonthlyData[4]
	if may.Month != "May" || may.Income != "1000.00" || may.Profit != "1000.00" {
		t.Errorf("Unexpected May bucket: %+v", may)
	}
	june := response.MonthlyData[5]
	if june.Month != "Jun" || june.Expenses != "100.50" || june.Profit != "-100.50" {
		t.Errorf("Unexpected June bucket: %+v", june)
	}

	if len(response.ExpenseCategories) != 1 || response.ExpenseCategories[0].Name != "Travel" {
		t.Errorf("Expected only the Travel category, got %+v", response.ExpenseCategories)
	}

	if len(response.RecentActivities) != 2 {
		t.Fatalf("Expected 2 recent activities, got %d", len(response.RecentActivities))
	}
	if response.RecentActivities[0].ID != "e1" || response.RecentActivities[0].Type != "expense" {
		t.Errorf("Expected the expense first, got %+v", response.RecentActivities[0])
	}
	if response.RecentActivities[1].Description != "Payment from Acme" {
		t.Errorf("Expected payment description, got %s", response.RecentActivities[1].Description)
	}
	if response.RecentActivities[1].Date != "2025-05-10T15:30:00Z" {
		t.Errorf("Expected RFC 3339 date, got %s", response.RecentActivities[1].Date)
	}
}

func TestGetStats_MoneyIsNumeric(t *testing.T) {
	e := newTestEcho()
	handler := newDashboardHandler(dashboardSource())

	c, rec := newContext(e, http.MethodGet, "/api/v1/dashboard/stats", nil, testPrincipal)
	if err := handler.GetStats(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"totalIncome":1000.00`) {
		t.Errorf("Expected totalIncome as a two-decimal number, got %s", body)
	}
	if !strings.Contains(body, `"value":100.50`) {
		t.Errorf("Expected category value as a two-decimal number, got %s", body)
	}
}

func TestGetStats_EmptyReport(t *testing.T) {
	e := newTestEcho()
	handler := newDashboardHandler(&testutil.MockRecordSource{})

	c, rec := newContext(e, http.MethodGet, "/api/v1/dashboard/stats", nil, testPrincipal)
	if err := handler.GetStats(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{`"expenseCategories":[]`, `"recentActivities":[]`, `"profit":0.00`} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %s in %s", want, body)
		}
	}
}

func TestGetStats_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	handler := newDashboardHandler(dashboardSource())

	c, rec := newContext(e, http.MethodGet, "/api/v1/dashboard/stats", nil, "")
	if err := handler.GetStats(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetStats_AccessDenied(t *testing.T) {
	e := newTestEcho()
	source := dashboardSource()
	source.ExpensesErr = domain.ErrRecordAccessDenied
	handler := newDashboardHandler(source)

	c, rec := newContext(e, http.MethodGet, "/api/v1/dashboard/stats", nil, testPrincipal)
	if err := handler.GetStats(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
	if problem := decodeProblem(t, rec); problem.Message != "Access denied" {
		t.Errorf("Expected 'Access denied', got %s", problem.Message)
	}
}

func TestGetStats_SourceUnavailable(t *testing.T) {
	e := newTestEcho()
	source := dashboardSource()
	source.PaymentsErr = domain.ErrRecordSourceUnavailable
	handler := newDashboardHandler(source)

	c, rec := newContext(e, http.MethodGet, "/api/v1/dashboard/stats", nil, testPrincipal)
	if err := handler.GetStats(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
	if problem := decodeProblem(t, rec); problem.Message != "Failed to get dashboard stats" {
		t.Errorf("Unexpected message %s", problem.Message)
	}
}
