package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voluntree/scheduler/internal/config"
	"github.com/voluntree/scheduler/internal/events"
	"github.com/voluntree/scheduler/internal/handlers"
	infraRepo "github.com/voluntree/scheduler/internal/infra/repository"
	"github.com/voluntree/scheduler/internal/locker"
	"github.com/voluntree/scheduler/internal/middleware"
	"github.com/voluntree/scheduler/internal/timezone"
	ucBooking "github.com/voluntree/scheduler/internal/usecase/booking"
	ucSchedule "github.com/voluntree/scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) *events.Dispatcher {

	orgLoc := timezone.Location(cfg.OrgTimezone)

	// ------------------------------
	// Infra
	// ------------------------------
	repo := infraRepo.NewSchedulerGormRepository(db)

	dispatcher := events.NewDispatcher(log, events.NewRecorder(db))

	var reserveGuard *locker.Locker
	if rdb != nil {
		reserveGuard = locker.New(rdb)
	}

	// ------------------------------
	// Use cases
	// ------------------------------
	getTemplateUC := ucSchedule.NewGetTemplate(repo)
	updateTemplateUC := ucSchedule.NewUpdateTemplate(repo, dispatcher, orgLoc, cfg.HorizonWeeks)
	listSlotsUC := ucSchedule.NewListSlots(repo)
	listPublicSlotsUC := ucSchedule.NewListPublicSlots(repo)
	deleteSlotUC := ucSchedule.NewDeleteSlot(repo)
	republishSlotUC := ucSchedule.NewRepublishSlot(repo)

	reserveUC := ucBooking.NewReserve(repo, reserveGuard, dispatcher)
	confirmUC := ucBooking.NewConfirmAppointment(repo, dispatcher)
	cancelUC := ucBooking.NewCancelAppointment(repo, dispatcher)
	listAppointmentsUC := ucBooking.NewListAppointmentsByDate(repo, orgLoc)

	// ------------------------------
	// Handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(getTemplateUC, updateTemplateUC)
	slotsHandler := handlers.NewSlotsHandler(listSlotsUC, deleteSlotUC, republishSlotUC)
	appointmentHandler := handlers.NewAppointmentHandler(listAppointmentsUC, confirmUC, cancelUC, orgLoc)
	publicHandler := handlers.NewPublicHandler(db, listPublicSlotsUC, reserveUC)

	// ------------------------------
	// Routes
	// ------------------------------
	api := r.Group("/api")
	{
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/slots", publicHandler.ListSlots)
			publicAPI.POST("/:slug/reservations", publicHandler.Reserve)
		}

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/availability", availabilityHandler.Get)
			secured.PUT("/me/availability", availabilityHandler.Update)

			secured.GET("/me/slots", slotsHandler.List)
			secured.DELETE("/me/slots/:id", slotsHandler.Delete)
			secured.POST("/me/slots/:id/republish", slotsHandler.Republish)

			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/decline", appointmentHandler.Decline)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
		}
	}

	return dispatcher
}
