package handlers

import (
	"net/http"

	"github.com/coursebay/lms_backend/cmd/docs"
	portssvc "github.com/coursebay/lms_backend/internal/core/ports/services"
	"github.com/coursebay/lms_backend/internal/middleware"
	"github.com/coursebay/lms_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerAuthRoutes(r, cfg, services.User)
	registerCourseRoutes(r, cfg, services.Course, services.Ledger)

	// Authenticated API surface.
	api := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret))
	registerBankRoutes(api, services.Ledger)
	registerLearnerRoutes(api, services.Course, services.Quiz, services.Certificate)
	registerInstructorRoutes(api, services.Course, services.Ledger, services.Reporting)
	registerAdminRoutes(api, services.Reporting, services.Course, services.User)

	setupSwaggerRoutes(r, cfg)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
