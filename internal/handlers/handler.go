package handlers

import (
	"foodsafety/internal/logger"
	"foodsafety/internal/metrics"
	"foodsafety/internal/models"
	"foodsafety/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health and metrics endpoints
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live alert feed over WebSocket (HTTP upgrade) on the same port
	router.GET("/ws/alerts", h.wsAlerts)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.identityMiddleware)
	{
		h.registerRecordRoutes(api)
		h.registerAlertRoutes(api)
		h.registerDashboardRoutes(api)
	}
}

func (h *Handler) registerRecordRoutes(api *gin.RouterGroup) {
	records := api.Group("/records")
	{
		// Body example: {"food_id":"...","temperature":9.5}
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
	}
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	alerts := api.Group("/alerts")
	{
		alerts.GET("", h.listAlerts)
		alerts.GET("/:id", h.getAlert)
		// Resolving requires a supervisory role.
		alerts.POST("/:id/resolve",
			h.requireRole(models.RoleAdmin, models.RoleAuditor),
			h.resolveAlert,
		)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/dashboard", h.getDashboard)
}
