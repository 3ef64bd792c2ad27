package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/voluntree/scheduler/internal/domain/schedule"
	"github.com/voluntree/scheduler/internal/httperr"
	"github.com/voluntree/scheduler/internal/middleware"
	ucSchedule "github.com/voluntree/scheduler/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	getTemplate    *ucSchedule.GetTemplate
	updateTemplate *ucSchedule.UpdateTemplate
}

func NewAvailabilityHandler(
	getTemplate *ucSchedule.GetTemplate,
	updateTemplate *ucSchedule.UpdateTemplate,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getTemplate:    getTemplate,
		updateTemplate: updateTemplate,
	}
}

// --------- Requests ---------

type TimeRangeRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type WeeklyDayRequest struct {
	Weekday int                `json:"weekday" binding:"min=0,max=6"`
	Ranges  []TimeRangeRequest `json:"ranges"`
}

type AvailabilityUpdateRequest struct {
	Days []WeeklyDayRequest `json:"days" binding:"required"`
}

// --------- Handlers ---------

func (h *AvailabilityHandler) Get(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	tpl, err := h.getTemplate.Execute(c.Request.Context(), providerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	days := make([]gin.H, 0, 7)
	for weekday := 0; weekday <= 6; weekday++ {
		ranges := tpl.Days[weekday]
		if ranges == nil {
			ranges = []domain.TimeRange{}
		}
		days = append(days, gin.H{
			"weekday": weekday,
			"ranges":  ranges,
		})
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// Times arrive either as 24h "HH:MM" or as wall-clock strings like
	// "2:30 pm"; both normalize to canonical HH:MM here.
	tpl := domain.WeeklyTemplate{Days: make(map[int][]domain.TimeRange)}
	for _, day := range req.Days {
		for _, r := range day.Ranges {
			start, err := domain.ParseWallClock(r.Start)
			if err != nil {
				httperr.FromError(c, err)
				return
			}
			end, err := domain.ParseWallClock(r.End)
			if err != nil {
				httperr.FromError(c, err)
				return
			}
			tpl.Days[day.Weekday] = append(tpl.Days[day.Weekday], domain.TimeRange{
				Start: start,
				End:   end,
			})
		}
	}

	result, err := h.updateTemplate.Execute(c.Request.Context(), providerID, tpl)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
