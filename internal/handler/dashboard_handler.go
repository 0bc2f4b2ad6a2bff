package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// MonthlyDataResponse is one month of the dashboard time series
type MonthlyDataResponse struct {
	Month    string      `json:"month"`
	Income   json.Number `json:"income" swaggertype:"number"`
	Expenses json.Number `json:"expenses" swaggertype:"number"`
	Profit   json.Number `json:"profit" swaggertype:"number"`
}

// ExpenseCategoryResponse is one slice of the expense distribution
type ExpenseCategoryResponse struct {
	Name  string      `json:"name"`
	Value json.Number `json:"value" swaggertype:"number"`
}

// RecentActivityResponse is one entry of the recent activity feed
type RecentActivityResponse struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount" swaggertype:"number"`
	Date        string      `json:"date"`
}

// DashboardStatsResponse represents the dashboard stats API response
type DashboardStatsResponse struct {
	TotalIncome       json.Number               `json:"totalIncome" swaggertype:"number"`
	TotalExpenses     json.Number               `json:"totalExpenses" swaggertype:"number"`
	Profit            json.Number               `json:"profit" swaggertype:"number"`
	TotalClients      int                       `json:"totalClients"`
	TotalEmployees    int                       `json:"totalEmployees"`
	PendingPayments   json.Number               `json:"pendingPayments" swaggertype:"number"`
	MonthlyData       []MonthlyDataResponse     `json:"monthlyData"`
	ExpenseCategories []ExpenseCategoryResponse `json:"expenseCategories"`
	RecentActivities  []RecentActivityResponse  `json:"recentActivities"`
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Totals, six month series, expense categories and recent activity for the caller
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardStatsResponse
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c echo.Context) error {
	report, err := h.dashboardService.GetReport(c.Request().Context(), principalID(c))
	if err != nil {
		return respondError(c, err, "get dashboard stats")
	}
	return c.JSON(http.StatusOK, toDashboardStatsResponse(report))
}

func toDashboardStatsResponse(r *domain.DashboardReport) DashboardStatsResponse {
	monthly := make([]MonthlyDataResponse, len(r.MonthlyData))
	for i, b := range r.MonthlyData {
		monthly[i] = MonthlyDataResponse{
			Month:    b.Label(),
			Income:   money(b.Income),
			Expenses: money(b.Expenses),
			Profit:   money(b.Profit()),
		}
	}

	categories := make([]ExpenseCategoryResponse, len(r.ExpenseCategories))
	for i, b := range r.ExpenseCategories {
		categories[i] = ExpenseCategoryResponse{Name: b.Name, Value: money(b.Total)}
	}

	activities := make([]RecentActivityResponse, len(r.RecentActivities))
	for i, a := range r.RecentActivities {
		activities[i] = RecentActivityResponse{
			ID:          a.ID,
			Type:        string(a.Kind),
			Description: a.Description,
			Amount:      money(a.Amount),
			Date:        a.Date.UTC().Format(time.RFC3339),
		}
	}

	return DashboardStatsResponse{
		TotalIncome:       money(r.TotalIncome),
		TotalExpenses:     money(r.TotalExpenses),
		Profit:            money(r.Profit),
		TotalClients:      r.TotalClients,
		TotalEmployees:    r.TotalEmployees,
		PendingPayments:   money(r.PendingPayments),
		MonthlyData:       monthly,
		ExpenseCategories: categories,
		RecentActivities:  activities,
	}
}
