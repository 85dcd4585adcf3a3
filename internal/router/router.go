package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/schema"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Dependencies are the collaborators the route table is built from. Redis and
// ImageService are optional.
type Dependencies struct {
	DB             *gorm.DB
	AuthService    service.IAuthService
	RecipeService  service.IRecipeService
	ProfileService service.IProfileService
	CommentService service.ICommentService
	LikeService    service.ILikeService
	ImageService   service.IImageService
	Validator      *schema.Validator
	Redis          redis.Cmdable
	Registry       *prometheus.Registry

	CORSOrigins     []string
	RecipeCreateRPH int
	RecipeModifyRPH int
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(registry)

	router.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		metrics.Middleware(),
		middleware.CORS(deps.CORSOrigins),
	)
	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())

	router.GET("/health", api.NewHealthHandler(deps.DB).HealthCheck)
	router.GET("/metrics", middleware.MetricsHandler(registry))

	var createLimiter, modifyLimiter *middleware.RateLimiter
	if deps.Redis != nil {
		createLimiter = middleware.NewRecipeCreationRateLimiter(deps.Redis, deps.RecipeCreateRPH)
		modifyLimiter = middleware.NewRecipeModificationRateLimiter(deps.Redis, deps.RecipeModifyRPH)
	}

	v := router.Group("/api")
	api.NewAuthHandler(deps.AuthService).RegisterRoutes(v)
	api.NewRecipeHandlerWithRateLimit(deps.RecipeService, deps.AuthService, deps.Validator, createLimiter, modifyLimiter).RegisterRoutes(v)
	api.NewCommentHandler(deps.CommentService, deps.AuthService).RegisterRoutes(v)
	api.NewLikeHandler(deps.LikeService, deps.AuthService).RegisterRoutes(v)
	api.NewUserHandler(deps.ProfileService, deps.AuthService).RegisterRoutes(v)
	if deps.ImageService != nil {
		api.NewImageHandler(deps.ImageService, deps.AuthService).RegisterRoutes(v)
	}

	return router
}
