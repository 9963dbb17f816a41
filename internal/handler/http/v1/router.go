package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.Use(UserIDMiddleware(h.cfg))

	// Реестр геозон
	sites := api.Group("/sites")
	{
		sites.GET("", h.listSites)
		sites.GET("/geojson", h.sitesGeoJSON)
		sites.GET("/:id/visits", h.listSiteVisits)
	}

	// Ранжирование без сессии
	api.POST("/location/rank", h.rankLocation)

	// Сценарий посещения
	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.startSession)
		sessions.GET("/:id", h.getSession)
		sessions.POST("/:id/fix", h.reportFix)
		sessions.POST("/:id/refresh", h.requestRefresh)
		sessions.POST("/:id/confirm", h.confirmVisit)
		sessions.POST("/:id/photo", h.uploadSessionPhoto)
	}

	api.POST("/upload", h.uploadPhoto)
	api.GET("/stats", h.getStats)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

// RegisterUploadAlias регистрирует /api/upload для клиентов старой страницы с картой
func (h *Handler) RegisterUploadAlias(r gin.IRouter) {
	r.POST("/api/upload", UserIDMiddleware(h.cfg), h.uploadPhoto)
}
