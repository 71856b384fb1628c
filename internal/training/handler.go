package training

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clubpay/internal/api"
	"clubpay/internal/auth"
	"clubpay/internal/logger"
	"clubpay/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateTraining godoc
// @Summary      Record training
// @Description  Records a held training. Trainers record for themselves, admins may set user_id.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTrainingRequest  true  "Training"
// @Success      201      {object}  Training
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Router       /trainings [post]
func (h *Handler) CreateTraining(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateTrainingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// ListTrainings godoc
// @Summary      List trainings
// @Description  Trainers only see their own trainings.
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        user_id    query     int     false  "Trainer (admin only)"
// @Param        course_id  query     int     false  "Course"
// @Param        status     query     string  false  "NEW, APPROVED or COMPENSATED"
// @Param        from       query     string  false  "First day (YYYY-MM-DD)"
// @Param        to         query     string  false  "Last day (YYYY-MM-DD)"
// @Success      200        {array}   TrainingWithDetails
// @Failure      400        {object}  api.ErrorResponse
// @Router       /trainings [get]
func (h *Handler) ListTrainings(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	trainings, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, trainings)
}

func parseFilter(c *gin.Context) (ListFilter, error) {
	var filter ListFilter

	if v := c.Query("user_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return filter, errors.New("invalid user_id")
		}
		filter.UserID = id
	}
	if v := c.Query("course_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return filter, errors.New("invalid course_id")
		}
		filter.CourseID = id
	}
	if v := c.Query("status"); v != "" {
		s, err := ParseStatus(strings.ToUpper(v))
		if err != nil {
			return filter, err
		}
		filter.Status = s
	}
	if v := c.Query("from"); v != "" {
		d, err := api.ParseDate(v)
		if err != nil {
			return filter, errors.New("invalid from date")
		}
		filter.From = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := api.ParseDate(v)
		if err != nil {
			return filter, errors.New("invalid to date")
		}
		filter.To = &d
	}
	return filter, nil
}

// GetTraining godoc
// @Summary      Get training
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Training ID"
// @Success      200  {object}  Training
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /trainings/{id} [get]
func (h *Handler) GetTraining(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// UpdateTraining godoc
// @Summary      Update training
// @Description  Only NEW trainings can be edited.
// @Tags         trainings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Training ID"
// @Param        request  body      UpdateTrainingRequest  true  "Training"
// @Success      200      {object}  Training
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /trainings/{id} [put]
func (h *Handler) UpdateTraining(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req UpdateTrainingRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// DeleteTraining godoc
// @Summary      Delete training
// @Description  Only NEW trainings can be deleted.
// @Tags         trainings
// @Security     BearerAuth
// @Param        id   path  int  true  "Training ID"
// @Success      204
// @Failure      409  {object}  api.ErrorResponse
// @Router       /trainings/{id} [delete]
func (h *Handler) DeleteTraining(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Approve or revoke a training
// @Description  NEW -> APPROVED and APPROVED -> NEW. COMPENSATED is only reached through a payment.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Training ID"
// @Param        request  body      TransitionRequest  true  "Target status"
// @Success      200      {object}  Training
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/trainings/{id}/status [patch]
func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid training ID"})
		return
	}

	var req TransitionRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// FindDuplicates godoc
// @Summary      Duplicate warnings
// @Description  Lists other trainers' NEW or APPROVED trainings of the same course on the same day.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        ids  query     string  true  "Comma separated training IDs"
// @Success      200  {array}   DuplicateWarning
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/trainings/duplicates [get]
func (h *Handler) FindDuplicates(c *gin.Context) {
	ids, err := parseIDList(c.Query("ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	warnings, err := h.service.FindDuplicates(c.Request.Context(), ids)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if warnings == nil {
		warnings = []DuplicateWarning{}
	}

	c.JSON(http.StatusOK, warnings)
}

func parseIDList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoTrainingIDs
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || id <= 0 {
			return nil, errors.New("ids must be positive integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// TrainerReport godoc
// @Summary      Trainer report
// @Description  Compensated trainings of a trainer in a period, grouped by course.
// @Tags         trainings
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      int     true  "Trainer ID"
// @Param        start  query     string  true  "First day (YYYY-MM-DD)"
// @Param        end    query     string  true  "Last day (YYYY-MM-DD)"
// @Success      200    {object}  TrainerReport
// @Failure      400    {object}  api.ErrorResponse
// @Failure      403    {object}  api.ErrorResponse
// @Router       /trainers/{id}/report [get]
func (h *Handler) TrainerReport(c *gin.Context) {
	actor, id, ok := h.actorAndID(c)
	if !ok {
		return
	}

	start, err := api.ParseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "start must be a date (YYYY-MM-DD)"})
		return
	}
	end, err := api.ParseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "end must be a date (YYYY-MM-DD)"})
		return
	}

	report, err := h.service.TrainerReport(c.Request.Context(), actor, id, start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) actorAndID(c *gin.Context) (auth.Actor, int, bool) {
	actor, ok := auth.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return auth.Actor{}, 0, false
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid ID"})
		return auth.Actor{}, 0, false
	}
	return actor, id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTrainingNotFound), errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrTrainingLocked), errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrUnknownCourse), errors.Is(err, ErrUnknownTrainer),
		errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidPeriod),
		errors.Is(err, ErrNoTrainingIDs), errors.Is(err, ErrTooManyIDs):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		logger.Error("training request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
	}
}
