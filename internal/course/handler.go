package course

import (
	"errors"
	"net/http"
	"strconv"

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

// @Summary      List cost centers
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} course.CostCenter
// @Router       /cost-centers [get]
func (h *Handler) ListCostCenters(c *gin.Context) {
	centers, err := h.service.ListCostCenters(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, centers)
}

// @Summary      Create cost center
// @Tags         admin,catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body course.CreateCostCenterRequest true "Cost center"
// @Success      201 {object} course.CostCenter
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/cost-centers [post]
func (h *Handler) CreateCostCenter(c *gin.Context) {
	var req CreateCostCenterRequest
	if !api.BindJSON(c, &req) {
		return
	}

	cc, err := h.service.CreateCostCenter(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cc)
}

// @Summary      Delete cost center
// @Description  Fails with 409 while any course still books onto it.
// @Tags         admin,catalog
// @Security     BearerAuth
// @Param        id path int true "Cost center ID"
// @Success      204
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/cost-centers/{id} [delete]
func (h *Handler) DeleteCostCenter(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid cost center ID"})
		return
	}

	if err := h.service.DeleteCostCenter(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      List courses
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} course.CourseWithCostCenter
// @Router       /courses [get]
func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// @Summary      Get course
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Success      200 {object} course.Course
// @Failure      404 {object} api.ErrorResponse
// @Router       /courses/{id} [get]
func (h *Handler) GetCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid course ID"})
		return
	}

	course, err := h.service.GetCourse(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// @Summary      Create course
// @Tags         admin,catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body course.CreateCourseRequest true "Course"
// @Success      201 {object} course.Course
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/courses [post]
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if !api.BindJSON(c, &req) {
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCourseNotFound), errors.Is(err, ErrCostCenterNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrCostCenterInUse), errors.Is(err, ErrCostCenterExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		logger.Error("catalog request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
	}
}
