package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boomiis-api/config"
	"boomiis-api/handlers"
	"boomiis-api/logger"
	"boomiis-api/middleware"
)

// NewRouter builds the gin engine with middleware and every route
func NewRouter(cfg *config.Config, h *handlers.Handler, auth *middleware.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(), middleware.CORS(cfg.CORSOrigins))

	SetupRoutes(r, cfg, h, auth)
	return r
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, h *handlers.Handler, auth *middleware.Authenticator) {
	// ── Diagnostics ────────────────────────────────────────────────
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the " + cfg.SiteName + " API",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})
	r.GET("/test", h.TestDatabase)
	r.GET("/schema", h.Schema)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/menu", h.GetMenu)
		public.GET("/blog", h.ListBlog)
		public.GET("/blog/:slug", h.GetBlogPost)
		public.GET("/gallery", h.ListGallery)
		public.POST("/subscribe", h.Subscribe)

		public.POST("/orders", h.PlaceOrder)
		public.POST("/orders/confirm", h.ConfirmOrder)
		public.POST("/reservations", h.CreateReservation)
		public.POST("/events/inquiry", h.CreateInquiry)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Admin session ──────────────────────────────────────────────
	throttle := middleware.NewLoginThrottle(cfg.LoginAttemptsPerMinute)
	r.POST("/api/admin/login", throttle.Middleware(), h.Login)
	r.POST("/api/admin/logout", h.Logout)

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(auth.RequireAdmin())
	{
		admin.GET("/session", h.GetSession)

		admin.GET("/menu", h.AdminGetMenu)
		admin.POST("/menu/category", h.AdminUpsertCategory)
		admin.POST("/menu/item", h.AdminUpsertItem)

		admin.GET("/orders", h.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.GET("/reservations", h.AdminGetReservations)
		admin.GET("/inquiries", h.AdminGetInquiries)
		admin.GET("/subscribers", h.AdminGetSubscribers)

		admin.GET("/settings", h.AdminGetSettings)
		admin.POST("/settings", h.AdminUpsertSetting)
		admin.POST("/blog", h.AdminUpsertBlogPost)
		admin.POST("/gallery", h.AdminCreateGalleryImage)
	}
}
