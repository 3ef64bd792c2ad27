package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voluntree/scheduler/internal/httperr"
	"github.com/voluntree/scheduler/internal/httpresp"
	"github.com/voluntree/scheduler/internal/models"
	ucBooking "github.com/voluntree/scheduler/internal/usecase/booking"
	ucSchedule "github.com/voluntree/scheduler/internal/usecase/schedule"
)

type PublicHandler struct {
	db        *gorm.DB
	listSlots *ucSchedule.ListPublicSlots
	reserve   *ucBooking.Reserve
}

func NewPublicHandler(
	db *gorm.DB,
	listSlots *ucSchedule.ListPublicSlots,
	reserve *ucBooking.Reserve,
) *PublicHandler {
	return &PublicHandler{
		db:        db,
		listSlots: listSlots,
		reserve:   reserve,
	}
}

// --------- Requests ---------

type ReserveRequest struct {
	SlotID        string `json:"slot_id" binding:"required"`
	RequesterID   string `json:"requester_id" binding:"required"`
	RequesterName string `json:"requester_name"`
}

// --------- Handlers ---------

func (h *PublicHandler) ListSlots(c *gin.Context) {
	slug := c.Param("slug")

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "No provider with that slug.")
		return
	}

	slots, err := h.listSlots.Execute(c.Request.Context(), provider.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *PublicHandler) Reserve(c *gin.Context) {
	slug := c.Param("slug")

	var provider models.Provider
	if err := h.db.Where("slug = ?", slug).First(&provider).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "No provider with that slug.")
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "The slot id is not a valid UUID.")
		return
	}

	ap, err := h.reserve.Execute(c.Request.Context(), ucBooking.ReserveInput{
		SlotID:        slotID,
		ProviderID:    provider.ID,
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
