package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fishtrade-backend/internal/domains/user"
	"fishtrade-backend/internal/shared/middleware"
	"fishtrade-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupReportRoutes(v1, c)
		setupInventoryRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)
	}
}

// ========================================
// REPORT ROUTES
// ========================================
func setupReportRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reports := v1.Group("/reports")
	reports.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		// channel viewers can read, only report staff can write
		readGate := middleware.RequireAnyPermission(
			user.PermissionDailyReport,
			user.PermissionS3,
			user.PermissionMSR,
			user.PermissionS3MSR,
			user.PermissionDashboard,
		)
		writeGate := middleware.RequirePermission(user.PermissionDailyReport)

		reports.GET("", readGate, c.ReportHandler.ListReports)
		reports.GET("/summary", readGate, c.ReportHandler.Summary)
		reports.GET("/:id", readGate, c.ReportHandler.GetReport)
		reports.POST("", writeGate, c.ReportHandler.CreateReport)
		reports.PUT("/:id", writeGate, c.ReportHandler.UpdateReport)
		reports.DELETE("/:id", writeGate, c.ReportHandler.DeleteReport)
	}
}

// ========================================
// INVENTORY ROUTES
// ========================================
func setupInventoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	inventory := v1.Group("/inventory")
	inventory.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequirePermission(user.PermissionInventory),
	)
	{
		inventory.GET("", c.InventoryHandler.ListItems)
		inventory.POST("", c.InventoryHandler.CreateItem)
		inventory.GET("/alerts", c.InventoryHandler.ListAlerts)
		inventory.GET("/transactions", c.InventoryHandler.ListTransactions)
		inventory.GET("/:id", c.InventoryHandler.GetItem)
		inventory.PUT("/:id", c.InventoryHandler.UpdateItem)
		inventory.DELETE("/:id", c.InventoryHandler.DeleteItem)
		inventory.POST("/:id/stock", c.InventoryHandler.AdjustStock)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequirePermission(user.PermissionManageUsers),
	)
	{
		users.GET("", c.UserHandler.ListUsers)
		users.POST("", c.UserHandler.CreateUser)
		users.GET("/:id", c.UserHandler.GetUser)
		users.PUT("/:id", c.UserHandler.UpdateUser)
		users.DELETE("/:id", c.UserHandler.DeleteUser)
		users.POST("/:id/toggle", c.UserHandler.ToggleUserStatus)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
