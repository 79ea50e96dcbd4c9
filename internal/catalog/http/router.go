package http

import "github.com/gin-gonic/gin"

// Register attaches catalog routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.list)
	rg.GET("/tags", h.tags)
	rg.GET("/projects/:slug", h.get)
	rg.POST("/filter", h.filter)
}
