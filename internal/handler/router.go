package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Projects     *ProjectHandler
	Documents    *DocumentHandler
	QA           *QAHandler
	AskRateLimit gin.HandlerFunc
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api.POST("/projects", deps.Projects.Create)
	api.GET("/projects", deps.Projects.List)
	api.GET("/projects/:id", deps.Projects.Get)
	api.DELETE("/projects/:id", deps.Projects.Delete)

	api.POST("/projects/:id/documents", deps.Documents.Upload)
	api.GET("/projects/:id/documents", deps.Documents.List)
	api.GET("/projects/:id/documents/:doc_id/download", deps.Documents.Download)
	api.DELETE("/projects/:id/documents/:doc_id", deps.Documents.Delete)

	ask := api.Group("")
	if deps.AskRateLimit != nil {
		ask.Use(deps.AskRateLimit)
	}
	ask.POST("/projects/:id/ask", deps.QA.Ask)

	api.GET("/projects/:id/qa", deps.QA.History)
	api.GET("/projects/:id/qa/export", deps.QA.Export)
}
