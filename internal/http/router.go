// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fieldops/internal/http/handlers"
	"fieldops/internal/http/middleware"
	"fieldops/internal/modules/contractor"
	"fieldops/internal/modules/ranking"
)

func NewRouter(
	rankingService *ranking.Service,
	contractorService *contractor.Service,
	log *zap.Logger,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.WithRequestID(),
		middleware.Logging(log),
		middleware.Recovery(log),
		middleware.Metrics(),
	)

	rankingHandler := handlers.NewRankingHandler(rankingService)
	r.POST("/api/rankings", rankingHandler.Rank)

	contractorHandler := handlers.NewContractorHandler(contractorService)
	r.GET("/api/contractors/nearby", contractorHandler.Nearby)
	r.GET("/api/contractors/:id", contractorHandler.Get)
	r.PUT("/api/contractors/:id", contractorHandler.Upsert)
	r.GET("/api/contractors/:id/availability", contractorHandler.Availability)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
