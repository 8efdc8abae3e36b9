package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/music-studio/music-studio-api/config"
	"github.com/music-studio/music-studio-api/controllers"
	"github.com/music-studio/music-studio-api/metrics"
	"github.com/music-studio/music-studio-api/middleware"
	"github.com/music-studio/music-studio-api/services"
)

// Dependencies is everything the router needs to build its handlers
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	Logger  zerolog.Logger
	Storage services.MediaStorage
	Mailer  services.Mailer
	Tokens  *services.TokenService
}

// SetupRouter wires services, controllers and middleware into a gin engine
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger

	authService := services.NewAuthService(deps.DB, deps.Tokens, logger)
	bookingService := services.NewBookingService(deps.DB, logger)
	musicService := services.NewMusicService(deps.DB, deps.Storage, cfg.MaxUploadBytes, logger)

	authController := controllers.NewAuthController(authService, logger)
	bookingController := controllers.NewBookingController(bookingService, services.NewBookingExporter(bookingService), logger)
	musicController := controllers.NewMusicController(musicService, cfg.MaxUploadBytes, logger)
	packageController := controllers.NewPackageController(services.NewPackageService(deps.DB, logger), logger)
	testimonialController := controllers.NewTestimonialController(services.NewTestimonialService(deps.DB, logger), logger)
	contactController := controllers.NewContactController(services.NewContactService(deps.DB, deps.Mailer, cfg.EmailTo, logger), logger)
	adminController := controllers.NewAdminController(services.NewAdminService(deps.DB), logger)

	authenticate := middleware.Authenticate(deps.Tokens, authService, logger)
	requireAdmin := middleware.RequireAdmin()

	router := gin.New()
	router.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	if cfg.MetricsEnabled {
		metrics.Register()
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Music Studio API Running!")
	})
	router.GET("/uploads/:filename", controllers.ServeUpload(cfg.UploadDir))

	api := router.Group("/api")
	api.GET("/health", healthCheck(deps.DB))

	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authenticate, authController.Me)
	}

	music := api.Group("/music")
	{
		music.GET("", musicController.List)
		music.GET("/search", musicController.Search)
		music.PUT("/:id/view", musicController.IncrementView)

		admin := music.Group("", authenticate, requireAdmin)
		admin.POST("/upload", musicController.Upload)
		admin.PUT("/:id", musicController.Update)
		admin.DELETE("/:id", musicController.Delete)
	}

	packages := api.Group("/packages")
	{
		packages.GET("", packageController.List)
		packages.GET("/category/:category", packageController.ListByCategory)
		packages.GET("/:id", packageController.Get)

		admin := packages.Group("", authenticate, requireAdmin)
		admin.POST("", packageController.Create)
		admin.PUT("/:id", packageController.Update)
		admin.DELETE("/:id", packageController.Delete)
	}

	testimonials := api.Group("/testimonials")
	{
		testimonials.GET("", testimonialController.List)
		testimonials.GET("/:id", testimonialController.Get)

		admin := testimonials.Group("", authenticate, requireAdmin)
		admin.GET("/admin/all", testimonialController.ListAll)
		admin.POST("", testimonialController.Create)
		admin.PUT("/:id", testimonialController.Update)
		admin.DELETE("/:id", testimonialController.Delete)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("", bookingController.Create)

		admin := bookings.Group("", authenticate, requireAdmin)
		admin.GET("", bookingController.List)
		admin.GET("/stats", bookingController.Stats)
		admin.GET("/export", bookingController.Export)
		admin.GET("/:id", bookingController.Get)
		admin.PUT("/:id", bookingController.Update)
		admin.PUT("/:id/approve", bookingController.Approve)
		admin.PUT("/:id/reject", bookingController.Reject)
		admin.DELETE("/:id", bookingController.Delete)
	}

	contact := api.Group("/contact")
	{
		contact.POST("", contactController.Submit)
		contact.GET("/messages", authenticate, requireAdmin, contactController.List)
	}

	admin := api.Group("/admin", authenticate, requireAdmin)
	{
		admin.GET("/stats", adminController.Stats)
		admin.GET("/analytics", adminController.Analytics)
		admin.GET("/music", musicController.List)
		admin.DELETE("/music/:id", musicController.Delete)
		admin.GET("/contacts", contactController.List)
		admin.DELETE("/contacts/:id", contactController.Delete)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Route not found",
			},
		})
	})

	return router
}

// corsConfig allows the configured origins; an empty list or "*" opens the API to every origin
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// healthCheck reports whether the API and its store are reachable
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := config.Ping(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Music Studio API is running",
		})
	}
}
