package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/serenitymassage/clinic-scheduler/internal/ai"
	"github.com/serenitymassage/clinic-scheduler/internal/audit"
	"github.com/serenitymassage/clinic-scheduler/internal/catalog"
	"github.com/serenitymassage/clinic-scheduler/internal/config"
	"github.com/serenitymassage/clinic-scheduler/internal/handlers"
	infraRepo "github.com/serenitymassage/clinic-scheduler/internal/infra/repository"
	"github.com/serenitymassage/clinic-scheduler/internal/middleware"
	"github.com/serenitymassage/clinic-scheduler/internal/notify"
	"github.com/serenitymassage/clinic-scheduler/internal/realtime"
	"github.com/serenitymassage/clinic-scheduler/internal/session"
	ucBooking "github.com/serenitymassage/clinic-scheduler/internal/usecase/booking"
	ucDashboard "github.com/serenitymassage/clinic-scheduler/internal/usecase/dashboard"
	ucModeration "github.com/serenitymassage/clinic-scheduler/internal/usecase/moderation"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	summarizer *ai.Summarizer,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clinicRepo := infraRepo.NewClinicGormRepository(db)
	serviceCatalog := catalog.NewProvider(clinicRepo)

	broker := realtime.NewBroker(rdb)
	revoker := session.NewRevoker(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	whatsapp := notify.NewWhatsAppSender(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioFromNumber,
		cfg.AdminWhatsApp,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		clinicRepo,
		auditDispatcher,
		broker,
	)

	dashboardRefreshUC := ucDashboard.NewRefresh(
		clinicRepo,
		serviceCatalog,
		cfg.ClinicTimezone,
	)

	dashboardSnapshot := ucDashboard.NewSnapshot(dashboardRefreshUC)

	// Change events rebuild the snapshot, coalesced so a burst of writes
	// costs one refresh.
	go realtime.NewRefresher(cfg.RefreshDebounce, dashboardSnapshot.Rebuild).
		Run(context.Background(), broker.Subscribe(context.Background()))

	setStatusUC := ucModeration.NewSetStatus(
		clinicRepo,
		auditDispatcher,
		broker,
	)

	deleteAppointmentUC := ucModeration.NewDeleteAppointment(
		clinicRepo,
		auditDispatcher,
		broker,
	)

	upsertServiceUC := ucModeration.NewUpsertService(
		clinicRepo,
		auditDispatcher,
		broker,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(serviceCatalog, createBookingUC)
	hookHandler := handlers.NewHookHandler(createBookingUC, whatsapp)
	authHandler := handlers.NewAuthHandler(db, cfg, revoker, auditDispatcher)
	eventsHandler := handlers.NewEventsHandler(broker)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	adminHandler := handlers.NewAdminHandler(
		clinicRepo,
		dashboardRefreshUC,
		dashboardSnapshot,
		setStatusUC,
		deleteAppointmentUC,
		upsertServiceUC,
		summarizer,
	)

	// ======================================================
	// PUBLIC SURFACE
	// ======================================================
	// Landing route. Unknown paths redirect here, so it must answer itself.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":     "clinic-scheduler",
			"services": "/api/services",
			"bookings": "/api/bookings",
			"health":   "/health",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The booking hook lives at the root, where the intake form posts.
	r.POST("/create-appointment", hookHandler.CreateAppointment)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.POST("/bookings", publicHandler.CreateBooking)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, revoker))
		{
			secured.GET("/me", authHandler.GetMe)
			secured.POST("/auth/logout", authHandler.Logout)

			admin := secured.Group("/admin")
			{
				admin.GET("/dashboard", adminHandler.Dashboard)

				admin.PATCH("/appointments/:id/status", adminHandler.SetAppointmentStatus)
				admin.DELETE("/appointments/:id", adminHandler.DeleteAppointment)
				admin.POST("/appointments/:id/summary", adminHandler.SummarizeNotes)

				admin.PUT("/services", adminHandler.UpsertService)
				admin.GET("/recovery-tips", adminHandler.RecoveryTips)

				admin.GET("/events", eventsHandler.Stream)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	// Unknown paths land on the intake form.
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/")
	})
}
