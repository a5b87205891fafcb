package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/config"
	domainRepo "github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/handler"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/middleware"
	"github.com/Shrey0428/ExoticBill/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Bill       *handler.BillHandler
	Membership *handler.MembershipHandler
	Employee   *handler.EmployeeHandler
	Customer   *handler.CustomerHandler
	Hood       *handler.HoodHandler
	Loyalty    *handler.LoyaltyHandler
	Shift      *handler.ShiftHandler
	Report     *handler.ReportHandler
	Export     *handler.ExportHandler
	Catalog    *handler.CatalogHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Principals      middleware.PrincipalResolver
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
// The returned limiter owns a cleanup goroutine; call Stop on shutdown.
func Setup(h *Handlers, deps *Deps) (*gin.Engine, *middleware.PrincipalRateLimiter, error) {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	loginLimiter, err := middleware.LoginRateLimiter(deps.Cfg.RateLimit.Login)
	if err != nil {
		return nil, nil, fmt.Errorf("login rate limiter: %w", err)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	auth.POST("/login", loginLimiter, h.Auth.Login)

	// Protected routes (authentication required)
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Principals))

	// Per-principal rate limiter
	rateLimiter := middleware.NewPrincipalRateLimiter(middleware.RateLimiterConfig{
		Requests:        deps.Cfg.RateLimit.Requests,
		Window:          time.Duration(deps.Cfg.RateLimit.Duration) * time.Second,
		CleanupInterval: 5 * time.Minute,
		EntryTTL:        10 * time.Minute,
	})
	protected.Use(rateLimiter.Middleware())

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	registerTillRoutes(protected, h, idempotency)

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	registerAdminRoutes(admin, h)

	return router, rateLimiter, nil
}

// registerTillRoutes registers what every signed-in account may use
func registerTillRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	protected.GET("/auth/me", h.Auth.Me)
	protected.GET("/catalog", h.Catalog.Get)

	bills := protected.Group("/bills")
	{
		bills.POST("", idempotency, h.Bill.Record)
		bills.POST("/quote", h.Bill.Quote)
		bills.GET("/:id", h.Bill.Get)
		bills.POST("/:id/receipt", h.Printer.PrintReceipt)
	}

	memberships := protected.Group("/memberships")
	{
		memberships.POST("", idempotency, h.Membership.Upsert)
		memberships.GET("/:customer_cid", h.Membership.Check)
	}

	protected.GET("/loyalty/:customer_cid", h.Loyalty.Get)

	shifts := protected.Group("/shifts")
	{
		shifts.POST("/clock-in", h.Shift.ClockIn)
		shifts.POST("/clock-out", h.Shift.ClockOut)
	}

	protected.GET("/printer/status", h.Printer.GetStatus)
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers) {
	bills := admin.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/deleted", h.Bill.ListDeleted)
		bills.DELETE("/:id", h.Bill.Delete)
	}

	employees := admin.Group("/employees")
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:cid", h.Employee.Get)
		employees.PUT("/:cid", h.Employee.Update)
		employees.DELETE("/:cid", h.Employee.Delete)
		employees.GET("/:cid/bills", h.Employee.Bills)
		employees.GET("/:cid/summary", h.Employee.Summary)
		employees.PUT("/:cid/hood", h.Employee.AssignHood)
	}

	customers := admin.Group("/customers")
	{
		customers.GET("/:cid/bills", h.Customer.Bills)
		customers.GET("/:cid/history", h.Customer.History)
	}

	hoods := admin.Group("/hoods")
	{
		hoods.GET("", h.Hood.List)
		hoods.POST("", h.Hood.Create)
		hoods.DELETE("/:name", h.Hood.Delete)
	}

	memberships := admin.Group("/memberships")
	{
		memberships.GET("", h.Membership.ListActive)
		memberships.GET("/:customer_cid/history", h.Membership.History)
		memberships.POST("/sweep", h.Membership.Sweep)
	}

	loyalty := admin.Group("/loyalty")
	{
		loyalty.GET("/:customer_cid/history", h.Loyalty.History)
		loyalty.POST("/:customer_cid/adjust", h.Loyalty.Adjust)
	}

	shifts := admin.Group("/shifts")
	{
		shifts.GET("", h.Shift.List)
		shifts.GET("/open", h.Shift.Open)
	}

	reports := admin.Group("/reports")
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/rankings", h.Report.Rankings)
		reports.GET("/hoods", h.Report.Hoods)
	}

	exports := admin.Group("/exports")
	{
		exports.GET("/bills.csv", h.Export.BillsCSV)
		exports.GET("/bills.xlsx", h.Export.BillsXLSX)
	}
}
