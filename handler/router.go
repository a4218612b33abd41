package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/Aashish23092/tds-challan-extractor/middleware"
)

type RouterOptions struct {
	MaxMultipartMemory int64
	AllowedOrigins     []string
	Limiter            *rate.Limiter
}

// NewRouter wires the health, metrics and challan routes.
func NewRouter(challanHandler *ChallanHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestMetrics(), middleware.CORS(opts.AllowedOrigins))

	if opts.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = opts.MaxMultipartMemory
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "TDS Challan Extractor",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	if opts.Limiter != nil {
		api.Use(middleware.RateLimit(opts.Limiter))
	}
	{
		challans := api.Group("/challans")
		{
			challans.POST("/extract", challanHandler.Extract)
			challans.POST("/export", challanHandler.Export)
		}
	}

	return router
}
