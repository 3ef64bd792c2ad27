package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/httperr"
	"github.com/voluntree/scheduler/internal/httpresp"
	"github.com/voluntree/scheduler/internal/middleware"
	ucBooking "github.com/voluntree/scheduler/internal/usecase/booking"
)

type AppointmentHandler struct {
	listByDate *ucBooking.ListAppointmentsByDate
	confirm    *ucBooking.ConfirmAppointment
	cancel     *ucBooking.CancelAppointment

	loc *time.Location
}

func NewAppointmentHandler(
	listByDate *ucBooking.ListAppointmentsByDate,
	confirm *ucBooking.ConfirmAppointment,
	cancel *ucBooking.CancelAppointment,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDate: listByDate,
		confirm:    confirm,
		cancel:     cancel,
		loc:        loc,
	}
}

// --------- Requests ---------

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	date, err := parseDateInOrgZone(c.DefaultQuery("date", ""), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD.")
		return
	}

	appointments, err := h.listByDate.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "The appointment id is not a valid UUID.")
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), providerID, appointmentID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Decline rejects a pending appointment; Cancel ends one post hoc. Both run
// the same transition, the route names match the provider's intent.
func (h *AppointmentHandler) Decline(c *gin.Context) {
	h.endAppointment(c)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.endAppointment(c)
}

func (h *AppointmentHandler) endAppointment(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "The appointment id is not a valid UUID.")
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), providerID, appointmentID, req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
