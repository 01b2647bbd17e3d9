package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"atelier/internal/logger"
	"atelier/internal/service"
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
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)

	router.GET("/api/qotd", h.getQuestions)
	h.registerAPIRoutes(router)

	// Board snapshot stream (HTTP upgrade), same port
	router.GET("/ws/boards/:id", h.wsBoard)

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
	api := r.Group("/api/v1")
	{
		api.GET("/render", h.render)
		api.GET("/presets", h.listPresets)
		api.GET("/presets/link", h.presetLink)
	}

	boards := api.Group("/boards")
	{
		boards.GET("", h.listBoards)
		boards.GET("/:id", h.getBoard)
		boards.GET("/:id/history", h.getHistory)
	}

	// Changing a board needs a host token.
	hosts := boards.Group("", h.requireHost)
	{
		hosts.POST("", h.createBoard)
		hosts.PATCH("/:id/params", h.setParams)
		hosts.POST("/:id/reset", h.resetBoard)
		hosts.POST("/:id/stage", h.selectStage)
		hosts.POST("/:id/advance", h.advanceStage)
		hosts.DELETE("/:id", h.deleteBoard)
	}
}
