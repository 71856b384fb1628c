package statistics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clubpay/internal/api"
	"clubpay/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// TrainingStatistics godoc
// @Summary      Quarterly training statistics
// @Description  Sessions (co-taught sessions count once) and compensation (every trainer counted) of COMPENSATED trainings.
// @Tags         admin,statistics
// @Security     BearerAuth
// @Produce      json
// @Param        year      query     int     false  "Calendar year, defaults to the current one"
// @Param        group_by  query     string  false  "course (default) or cost_center"
// @Success      200       {array}   Summary
// @Failure      400       {object}  api.ErrorResponse
// @Router       /admin/statistics/trainings [get]
func (h *Handler) TrainingStatistics(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "year must be an integer"})
			return
		}
		year = parsed
	}

	groupBy, err := ParseGroupBy(c.DefaultQuery("group_by", string(GroupByCourse)))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	summaries, err := h.service.Summarize(c.Request.Context(), year, groupBy)
	if err != nil {
		if errors.Is(err, ErrInvalidYear) || errors.Is(err, ErrInvalidGroupBy) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("statistics request failed", "year", year, "group_by", groupBy, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}
