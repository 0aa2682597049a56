package routes

import (
	"shopno-backend/internal/adapters/http/handlers"
	"shopno-backend/internal/adapters/http/middleware"
	"shopno-backend/internal/adapters/persistence/repositories"
	"shopno-backend/internal/config"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	depositRepo := repositories.NewDepositRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	paymentRepo := repositories.NewLoanPaymentRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	returnRepo := repositories.NewInvestmentReturnRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	incomeRepo := repositories.NewIncomeRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// Initialize services (activity log first, everything else records through it)
	activityService := services.NewActivityService(activityRepo, userRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, activityService, cfg)
	userService := services.NewUserService(userRepo, activityService)
	memberService := services.NewMemberService(memberRepo, depositRepo, loanRepo, activityService)
	depositService := services.NewDepositService(depositRepo, memberRepo, activityService)
	loanService := services.NewLoanService(loanRepo, paymentRepo, memberRepo, activityService)
	investmentService := services.NewInvestmentService(investmentRepo, returnRepo, activityService)
	cashbookService := services.NewCashbookService(incomeRepo, expenseRepo, donationRepo, activityService)
	dashboardService := services.NewDashboardService(
		memberRepo,
		depositRepo,
		loanRepo,
		paymentRepo,
		investmentRepo,
		returnRepo,
		donationRepo,
		incomeRepo,
		expenseRepo,
		activityService,
		domain.Money(cfg.Society.DefaultDepositAmount),
	)
	reportService := services.NewReportService(
		memberRepo,
		depositRepo,
		loanRepo,
		paymentRepo,
		donationRepo,
		incomeRepo,
		expenseRepo,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService)
	depositHandler := handlers.NewDepositHandler(depositService)
	loanHandler := handlers.NewLoanHandler(loanService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	cashbookHandler := handlers.NewCashbookHandler(cashbookService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)

	// Everything below requires a valid access token. Ledger responses
	// carry no-cache headers so bookkeepers never see stale figures.
	protected := apiV1.Group("", middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())

	setupMemberRoutes(protected.Group("/members"), memberHandler)
	setupDepositRoutes(protected.Group("/deposits"), depositHandler)
	setupLoanRoutes(protected.Group("/loans"), loanHandler)
	setupInvestmentRoutes(protected.Group("/investments"), investmentHandler)
	setupCashbookRoutes(protected, cashbookHandler)
	setupDashboardRoutes(protected.Group("/dashboard"), dashboardHandler)
	setupReportRoutes(protected.Group("/reports"), reportHandler)
	setupActivityRoutes(protected.Group("/activities"), activityHandler)
	setupUserRoutes(protected.Group("/users"), userHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler) {
	router.Use(middleware.RequireModule(domain.ModuleMembers))

	router.Get("/", handler.ListMembers)
	router.Get("/:id", handler.GetMember)
	router.Post("/", handler.CreateMember)
	router.Put("/:id", handler.UpdateMember)
	router.Delete("/:id", handler.DeleteMember)
}

// setupDepositRoutes configures monthly deposit routes
func setupDepositRoutes(router fiber.Router, handler *handlers.DepositHandler) {
	router.Use(middleware.RequireModule(domain.ModuleDeposits))

	router.Get("/", handler.ListDeposits)
	router.Get("/total", handler.TotalDeposits)
	router.Post("/", handler.CreateDeposit)
	router.Delete("/:id", handler.DeleteDeposit)
}

// setupLoanRoutes configures loan and repayment routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Use(middleware.RequireModule(domain.ModuleLoans))

	router.Get("/", handler.ListLoans)
	router.Get("/:id", handler.GetLoan)
	router.Post("/", handler.CreateLoan)
	router.Put("/:id", handler.UpdateLoan)
	router.Post("/:id/payments", handler.AddPayment)
	router.Patch("/:id/status", handler.UpdateStatus)
	router.Delete("/:id", handler.DeleteLoan)
}

// setupInvestmentRoutes configures investment and return routes
func setupInvestmentRoutes(router fiber.Router, handler *handlers.InvestmentHandler) {
	router.Use(middleware.RequireModule(domain.ModuleInvestments))

	router.Get("/", handler.ListInvestments)
	router.Get("/:id", handler.GetInvestment)
	router.Post("/", handler.CreateInvestment)
	router.Patch("/:id/complete", handler.CompleteInvestment)
	router.Delete("/:id", handler.DeleteInvestment)
	router.Post("/:id/returns", handler.AddReturn)
	router.Delete("/returns/:id", handler.DeleteReturn)
}

// setupCashbookRoutes configures income, expense and donation routes.
// Each book carries its own module gate.
func setupCashbookRoutes(router fiber.Router, handler *handlers.CashbookHandler) {
	income := router.Group("/income", middleware.RequireModule(domain.ModuleIncome))
	income.Get("/", handler.ListIncome)
	income.Post("/", handler.CreateIncome)
	income.Put("/:id", handler.UpdateIncome)
	income.Delete("/:id", handler.DeleteIncome)

	expenses := router.Group("/expenses", middleware.RequireModule(domain.ModuleExpenses))
	expenses.Get("/", handler.ListExpenses)
	expenses.Post("/", handler.CreateExpense)
	expenses.Put("/:id", handler.UpdateExpense)
	expenses.Delete("/:id", handler.DeleteExpense)

	donations := router.Group("/donations", middleware.RequireModule(domain.ModuleDonations))
	donations.Get("/", handler.ListDonations)
	donations.Post("/", handler.CreateDonation)
	donations.Put("/:id", handler.UpdateDonation)
	donations.Delete("/:id", handler.DeleteDonation)
}

// setupDashboardRoutes configures dashboard routes (every authenticated user)
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/", handler.GetDashboard)
	router.Get("/summary", handler.GetSummary)
}

// setupReportRoutes configures statement routes
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Use(middleware.RequireModule(domain.ModuleReports))

	router.Get("/members/:id", handler.MemberStatement)
	router.Get("/monthly", handler.MonthlyStatement)
}

// setupActivityRoutes configures audit log routes
func setupActivityRoutes(router fiber.Router, handler *handlers.ActivityHandler) {
	router.Use(middleware.RequireModule(domain.ModuleActivities))

	router.Get("/", handler.ListActivities)
	router.Get("/recent", handler.RecentActivities)
}

// setupUserRoutes configures account management routes.
// Password change is open to any signed-in user, the rest is gated.
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Put("/password", handler.ChangePassword)

	admin := router.Group("", middleware.RequireModule(domain.ModuleUsers))
	admin.Get("/", handler.ListUsers)
	admin.Get("/:id", handler.GetUser)
	admin.Post("/", handler.CreateUser)
	admin.Put("/:id", handler.UpdateUser)
	admin.Delete("/:id", handler.DeleteUser)
}
