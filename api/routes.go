package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pdf_pages/pdf"
)

// Config holds application configuration
type Config struct {
	Port        string
	MaxFileSize int64
	Codec       pdf.Codec
	Log         logrus.FieldLogger
}

func SetupRoutes(r *gin.Engine, config *Config) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/info", func(c *gin.Context) { HandleInfo(c, config) })
		apiGroup.POST("/extract", func(c *gin.Context) { HandleExtract(c, config) })
		apiGroup.POST("/rotate", func(c *gin.Context) { HandleRotate(c, config) })
		apiGroup.POST("/remove-pages", func(c *gin.Context) { HandleRemovePages(c, config) })
		apiGroup.POST("/merge", func(c *gin.Context) { HandleMerge(c, config) })
		apiGroup.POST("/split", func(c *gin.Context) { HandleSplit(c, config) })
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_pages",
		})
	})
}
