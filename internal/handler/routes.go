package handler

import (
	"github.com/dafibh/backoffice/backoffice-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups the API handlers mounted by RegisterRoutes
type Handlers struct {
	Dashboard *DashboardHandler
	Expense   *ExpenseHandler
	Payment   *PaymentHandler
	Client    *ClientHandler
	Employee  *EmployeeHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Every /api/v1 route is authenticated
// and then rate limited per principal.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Dashboard routes
	api.GET("/dashboard/stats", h.Dashboard.GetStats)

	// Client routes
	clients := api.Group("/clients")
	clients.GET("", h.Client.ListClients)
	clients.POST("", h.Client.CreateClient)
	clients.GET("/:id", h.Client.GetClient)
	clients.PUT("/:id", h.Client.UpdateClient)
	clients.DELETE("/:id", h.Client.DeleteClient)

	// Employee routes
	employees := api.Group("/employees")
	employees.GET("", h.Employee.ListEmployees)
	employees.POST("", h.Employee.CreateEmployee)
	employees.GET("/:id", h.Employee.GetEmployee)
	employees.PUT("/:id", h.Employee.UpdateEmployee)
	employees.DELETE("/:id", h.Employee.DeleteEmployee)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.GET("", h.Expense.ListExpenses)
	expenses.POST("", h.Expense.CreateExpense)
	expenses.GET("/:id", h.Expense.GetExpense)
	expenses.PUT("/:id", h.Expense.UpdateExpense)
	expenses.DELETE("/:id", h.Expense.DeleteExpense)
	expenses.POST("/:id/receipt", h.Expense.UploadReceipt)
	expenses.GET("/:id/receipt", h.Expense.GetReceipt)
	expenses.DELETE("/:id/receipt", h.Expense.DeleteReceipt)

	// Payment routes
	payments := api.Group("/payments")
	payments.GET("", h.Payment.ListPayments)
	payments.POST("", h.Payment.CreatePayment)
	payments.GET("/:id", h.Payment.GetPayment)
	payments.PUT("/:id", h.Payment.UpdatePayment)
	payments.DELETE("/:id", h.Payment.DeletePayment)

	// WebSocket authenticates with its query token
	e.GET("/ws", h.WebSocket.HandleWS)
}
