// childcare-crm/internal/routes/api_routes.go
package routes

import (
	"childcare-crm/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers every authenticated API route.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- Families ---
		families := apiGroup.Group("/families")
		{
			families.GET("", handlers.ListFamiliesHandler)
			families.POST("", handlers.CreateFamilyHandler)
			families.GET("/:id", handlers.GetFamilyHandler)
			families.PUT("/:id", handlers.UpdateFamilyHandler)
			families.DELETE("/:id", handlers.DeleteFamilyHandler)
		}

		// --- Children ---
		children := apiGroup.Group("/children")
		{
			children.GET("", handlers.ListChildrenHandler)
			children.POST("", handlers.CreateChildHandler)
			children.GET("/:id", handlers.GetChildHandler)
			children.PUT("/:id", handlers.UpdateChildHandler)
			children.DELETE("/:id", handlers.DeleteChildHandler)
		}

		// --- Classrooms, rosters and occupancy ---
		classrooms := apiGroup.Group("/classrooms")
		{
			classrooms.GET("", handlers.ListClassroomsHandler)
			classrooms.POST("", handlers.CreateClassroomHandler)
			classrooms.GET("/:id", handlers.GetClassroomHandler)
			classrooms.PUT("/:id", handlers.UpdateClassroomHandler)
			classrooms.DELETE("/:id", handlers.DeleteClassroomHandler)
			classrooms.GET("/:id/roster", handlers.GetClassroomRosterHandler)
		}
		apiGroup.GET("/enrollment/report", handlers.GetEnrollmentReportHandler)

		// --- Transitions ---
		transitions := apiGroup.Group("/transitions")
		{
			transitions.GET("", handlers.ListTransitionsHandler)
			transitions.GET("/upcoming", handlers.ListUpcomingTransitionsHandler)
			transitions.POST("", handlers.CreateTransitionHandler)
			transitions.GET("/:id", handlers.GetTransitionHandler)
			transitions.PUT("/:id", handlers.UpdateTransitionHandler)
			transitions.DELETE("/:id", handlers.DeleteTransitionHandler)
		}

		// --- Withdrawals ---
		withdrawals := apiGroup.Group("/withdrawals")
		{
			withdrawals.GET("", handlers.ListWithdrawalsHandler)
			withdrawals.POST("", handlers.CreateWithdrawalHandler)
			withdrawals.GET("/:id", handlers.GetWithdrawalHandler)
			withdrawals.PUT("/:id", handlers.UpdateWithdrawalHandler)
			withdrawals.DELETE("/:id", handlers.DeleteWithdrawalHandler)
		}

		// --- Attendance records and the enrollment time series ---
		attendance := apiGroup.Group("/attendance")
		{
			attendance.GET("", handlers.ListAttendanceHandler)
			attendance.POST("", handlers.CreateAttendanceHandler)
			attendance.GET("/stats", handlers.GetAttendanceStatsHandler)
			attendance.GET("/stats/export", handlers.ExportAttendanceStatsHandler)
			attendance.GET("/:id", handlers.GetAttendanceHandler)
			attendance.PUT("/:id", handlers.UpdateAttendanceHandler)
			attendance.DELETE("/:id", handlers.DeleteAttendanceHandler)
		}

		// --- Centre calendar ---
		calendar := apiGroup.Group("/calendar")
		{
			calendar.GET("", handlers.ListCalendarDaysHandler)
			calendar.POST("/generate", handlers.GenerateCalendarHandler)
		}

		// --- Money: payments, deposits, invoices, funding ---
		payments := apiGroup.Group("/payments")
		{
			payments.GET("", handlers.ListPaymentsHandler)
			payments.POST("", handlers.CreatePaymentHandler)
			payments.GET("/:id", handlers.GetPaymentHandler)
			payments.PUT("/:id", handlers.UpdatePaymentHandler)
			payments.DELETE("/:id", handlers.DeletePaymentHandler)
		}

		deposits := apiGroup.Group("/deposits")
		{
			deposits.GET("", handlers.ListDepositsHandler)
			deposits.POST("", handlers.CreateDepositHandler)
			deposits.GET("/:id", handlers.GetDepositHandler)
			deposits.PUT("/:id", handlers.UpdateDepositHandler)
			deposits.DELETE("/:id", handlers.DeleteDepositHandler)
		}

		invoices := apiGroup.Group("/invoices")
		{
			invoices.GET("", handlers.ListInvoicesHandler)
			invoices.POST("", handlers.CreateInvoiceHandler)
			invoices.GET("/:id", handlers.GetInvoiceHandler)
			invoices.PUT("/:id", handlers.UpdateInvoiceHandler)
			invoices.DELETE("/:id", handlers.DeleteInvoiceHandler)
		}

		funding := apiGroup.Group("/funding")
		{
			funding.GET("", handlers.ListFundingHandler)
			funding.POST("", handlers.CreateFundingHandler)
			funding.GET("/:id", handlers.GetFundingHandler)
			funding.PUT("/:id", handlers.UpdateFundingHandler)
			funding.DELETE("/:id", handlers.DeleteFundingHandler)
		}

		// --- Subsidy rates ---
		subsidyRates := apiGroup.Group("/subsidy-rates")
		{
			subsidyRates.GET("", handlers.ListSubsidyRatesHandler)
			subsidyRates.POST("", handlers.CreateSubsidyRateHandler)
			subsidyRates.GET("/:id", handlers.GetSubsidyRateHandler)
			subsidyRates.PUT("/:id", handlers.UpdateSubsidyRateHandler)
			subsidyRates.DELETE("/:id", handlers.DeleteSubsidyRateHandler)
		}

		// --- Staff accounts ---
		users := apiGroup.Group("/users")
		{
			users.GET("", handlers.ListUsersHandler)
			users.POST("", handlers.CreateUserHandler)
			users.GET("/:id", handlers.GetUserHandler)
			users.PUT("/:id", handlers.UpdateUserHandler)
			users.DELETE("/:id", handlers.DeleteUserHandler)
		}

		apiGroup.GET("/me", handlers.GetCurrentUserHandler)
	}
}
