package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voluntree/scheduler/internal/httperr"
	"github.com/voluntree/scheduler/internal/httpresp"
	"github.com/voluntree/scheduler/internal/middleware"
	ucSchedule "github.com/voluntree/scheduler/internal/usecase/schedule"
)

type SlotsHandler struct {
	listSlots     *ucSchedule.ListSlots
	deleteSlot    *ucSchedule.DeleteSlot
	republishSlot *ucSchedule.RepublishSlot
}

func NewSlotsHandler(
	listSlots *ucSchedule.ListSlots,
	deleteSlot *ucSchedule.DeleteSlot,
	republishSlot *ucSchedule.RepublishSlot,
) *SlotsHandler {
	return &SlotsHandler{
		listSlots:     listSlots,
		deleteSlot:    deleteSlot,
		republishSlot: republishSlot,
	}
}

func (h *SlotsHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	slots, err := h.listSlots.Execute(c.Request.Context(), providerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *SlotsHandler) Delete(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "The slot id is not a valid UUID.")
		return
	}

	if err := h.deleteSlot.Execute(c.Request.Context(), providerID, slotID); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *SlotsHandler) Republish(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "The slot id is not a valid UUID.")
		return
	}

	if err := h.republishSlot.Execute(c.Request.Context(), providerID, slotID); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "republished"})
}
