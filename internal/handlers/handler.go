package handlers

import (
	"errors"
	"net/http"

	"calcapi/internal/logger"
	"calcapi/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
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

	// Health endpoint
	router.GET("/health", h.health)

	// Stateless arithmetic, no account required
	router.POST("/compute", h.compute)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket stats feed (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

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
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/users/me", h.getMe)
		h.registerCalculationRoutes(api)
	}
}

func (h *Handler) registerCalculationRoutes(api *gin.RouterGroup) {
	calc := api.Group("/calculations")
	{
		calc.POST("", h.addCalculation)
		calc.GET("", h.browseCalculations)
		calc.GET("/stats", h.getStats)
		calc.GET("/:id", h.readCalculation)
		calc.PUT("/:id", h.editCalculation)
		calc.DELETE("/:id", h.deleteCalculation)
	}
}

// Stable client-facing messages per error kind; internal error text never
// leaves the process.
const (
	statusOK = "ok"

	errMsgUnauthorized = "invalid credentials"
	errMsgNotFound     = "calculation not found"
	errMsgConflict     = "username or email already exists"
	errMsgStorage      = "service temporarily unavailable"
)

// respondServiceError maps a service error kind to its HTTP response.
// Validation messages are our own text and safe to echo; everything else
// gets a fixed message.
func (h *Handler) respondServiceError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgUnauthorized})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errMsgNotFound})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": errMsgConflict})
	default:
		if h.log != nil {
			fields := append([]interface{}{"err", err}, kv...)
			h.log.Errorw(logKey, fields...)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsgStorage})
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
