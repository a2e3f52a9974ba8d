package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rental-booking/internal/handler/api"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Pricing      *api.PricingHandler
	Coupon       *api.CouponHandler
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	Admin        *api.AdminHandler
}

func NewHandlers(
	pricing *api.PricingHandler,
	coupon *api.CouponHandler,
	availability *api.AvailabilityHandler,
	booking *api.BookingHandler,
	admin *api.AdminHandler,
) Handlers {
	return Handlers{
		Pricing:      pricing,
		Coupon:       coupon,
		Availability: availability,
		Booking:      booking,
		Admin:        admin,
	}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/pricing/quote", Handler: h.Pricing.Quote},
			{Method: http.MethodPost, Path: "/coupons/validate", Handler: h.Coupon.Validate},
			{Method: http.MethodGet, Path: "/availability/booked-dates", Handler: h.Availability.BookedDates},
			{Method: http.MethodGet, Path: "/availability/options", Handler: h.Availability.Options},
		})

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "/:reference", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:reference/authorize", Handler: h.Booking.Authorize},
				{Method: http.MethodGet, Path: "/:reference/refund-quote", Handler: h.Booking.RefundQuote},
				{Method: http.MethodPost, Path: "/:reference/cancel", Handler: h.Booking.Cancel},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/coupons", Handler: h.Admin.CreateCoupon},
				{Method: http.MethodPost, Path: "/coupons/:id/deactivate", Handler: h.Admin.DeactivateCoupon},
				{Method: http.MethodPut, Path: "/pricing-rule", Handler: h.Admin.UpdatePricingRule},
				{Method: http.MethodPut, Path: "/cancellation-policy", Handler: h.Admin.SaveCancellationPolicy},
				{Method: http.MethodPost, Path: "/options", Handler: h.Admin.CreateOption},
				{Method: http.MethodPost, Path: "/reminder-schedules", Handler: h.Admin.CreateReminderSchedule},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Admin.ListBookings},
				{Method: http.MethodPost, Path: "/bookings/:reference/approve", Handler: h.Admin.ApproveBooking},
				{Method: http.MethodPost, Path: "/reminders/run", Handler: h.Admin.RunReminders},
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
