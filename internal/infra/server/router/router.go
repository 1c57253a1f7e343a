// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/infra/metrics"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	profileController  *controller.ProfileController
	categoryController *controller.CategoryController
	expenseController  *controller.ExpenseController
	statsController    *controller.StatsController
	suggestRateLimiter *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
	metrics            *metrics.Metrics
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	profileController *controller.ProfileController,
	categoryController *controller.CategoryController,
	expenseController *controller.ExpenseController,
	statsController *controller.StatsController,
	suggestRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	metrics *metrics.Metrics,
) *Router {
	return &Router{
		healthController:   healthController,
		profileController:  profileController,
		categoryController: categoryController,
		expenseController:  expenseController,
		statsController:    statsController,
		suggestRateLimiter: suggestRateLimiter,
		authMiddleware:     authMiddleware,
		metrics:            metrics,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
	}

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	// API v1 group
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		// Profile routes
		if r.profileController != nil {
			auth := v1.Group("/auth")
			{
				auth.GET("/profile", r.profileController.Get)
				auth.PATCH("/profile", r.profileController.Update)
			}
		}

		// Category routes
		if r.categoryController != nil {
			v1.GET("/categories", r.categoryController.List)
		}

		// Expense routes
		if r.expenseController != nil {
			expenses := v1.Group("/expenses")
			{
				expenses.GET("", r.expenseController.List)
				expenses.POST("", r.expenseController.Create)

				suggest := []gin.HandlerFunc{r.expenseController.SuggestCategory}
				if r.suggestRateLimiter != nil {
					suggest = append([]gin.HandlerFunc{r.suggestRateLimiter.Middleware()}, suggest...)
				}
				expenses.POST("/suggest-category", suggest...)

				// Stats routes (static segments win over /:id)
				if r.statsController != nil {
					stats := expenses.Group("/stats")
					{
						stats.GET("/monthly", r.statsController.Monthly)
						stats.GET("/alert", r.statsController.Alert)
						stats.GET("/patterns", r.statsController.Patterns)
					}
				}

				expenses.GET("/:id", r.expenseController.Get)
				expenses.PATCH("/:id", r.expenseController.Update)
				expenses.DELETE("/:id", r.expenseController.Delete)
			}
		}
	}
}
