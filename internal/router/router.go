package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "labsimplify/docs" // registers the swagger spec
	"labsimplify/internal/config"
	"labsimplify/internal/handler"
	"labsimplify/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware. metricsH may be nil
// when metrics are disabled.
func Setup(
	cfg *config.Config,
	log logrus.FieldLogger,
	simplifyH *handler.SimplifyHandler,
	healthH *handler.HealthHandler,
	metricsH http.Handler,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.Upload.MaxBytes()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if cfg.Metrics.Enabled && metricsH != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(metricsH))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.POST("/simplify", simplifyH.Simplify)

	return r
}
