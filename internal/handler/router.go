package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kitchenhub/internal/domain/identity"
	"kitchenhub/internal/handler/api"
	"kitchenhub/internal/handler/middleware"
	"kitchenhub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	storageHandler *api.StorageHandler,
	overstayHandler *api.OverstayHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, availabilityHandler, storageHandler, overstayHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	storageHandler *api.StorageHandler,
	overstayHandler *api.OverstayHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		kitchens := apiGroup.Group("/kitchens")
		{
			addRoutes(kitchens, []route{
				{Method: http.MethodGet, Path: "/:id/slots", Handler: availabilityHandler.GetAvailableSlots},
				{Method: http.MethodGet, Path: "/:id/slots/all", Handler: availabilityHandler.GetAllSlots},
				{Method: http.MethodGet, Path: "/:id/availability/validate", Handler: availabilityHandler.ValidateAvailability},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListMyBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{
					Method: http.MethodPost, Path: "/portal", Handler: bookingHandler.CreatePortalBooking,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(identity.RoleManager)},
				},
			})
		}

		storage := apiGroup.Group("/storage-bookings")
		storage.Use(authMiddleware.RequireAuth())
		{
			addRoutes(storage, []route{
				{Method: http.MethodPost, Path: "/:id/extend", Handler: storageHandler.ExtendStorageBooking},
				{Method: http.MethodPost, Path: "/:id/extensions", Handler: storageHandler.RequestStorageExtension},
				{Method: http.MethodPost, Path: "/extensions/complete", Handler: storageHandler.CompleteStorageExtension},
			})
		}

		overstays := apiGroup.Group("/overstays")
		overstays.Use(authMiddleware.RequireAuth())
		overstays.Use(authMiddleware.RequireRoleAtLeast(identity.RoleManager))
		{
			addRoutes(overstays, []route{
				{Method: http.MethodGet, Path: "", Handler: overstayHandler.ListDetected},
				{Method: http.MethodPost, Path: "/detect", Handler: overstayHandler.Detect},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: overstayHandler.Approve},
				{Method: http.MethodPost, Path: "/:id/waive", Handler: overstayHandler.Waive},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
