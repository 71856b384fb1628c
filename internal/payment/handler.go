package payment

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

// MissingIBANResponse names the trainers that block a settlement.
type MissingIBANResponse struct {
	Error  string   `json:"error" example:"missing IBAN for trainers"`
	Emails []string `json:"emails"`
}

// CreatePayment godoc
// @Summary      Settle trainings
// @Description  Pays out APPROVED trainings in one batch. Every payee needs an IBAN; the IBAN is snapshotted.
// @Tags         admin,payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePaymentRequest  true  "Selection"
// @Success      201      {object}  Payment
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      422      {object}  MissingIBANResponse
// @Router       /admin/payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if !api.BindJSON(c, &req) {
		return
	}

	p, err := h.service.CreatePayment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListPayments godoc
// @Summary      List payments
// @Tags         admin,payments
// @Security     BearerAuth
// @Produce      json
// @Param        trainer_id  query     int  false  "Only payments that paid this trainer"
// @Success      200         {array}   Payment
// @Failure      400         {object}  api.ErrorResponse
// @Router       /admin/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	var trainerID *int
	if v := c.Query("trainer_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer_id"})
			return
		}
		trainerID = &id
	}

	payments, err := h.service.ListPayments(c.Request.Context(), trainerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetPayment godoc
// @Summary      Get payment
// @Tags         admin,payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  Payment
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/payments/{id} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}

	p, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeletePayment godoc
// @Summary      Reverse payment
// @Description  Returns the payment's trainings to APPROVED and removes the payment with its IBAN snapshots.
// @Tags         admin,payments
// @Security     BearerAuth
// @Param        id   path  int  true  "Payment ID"
// @Success      204
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/payments/{id} [delete]
func (h *Handler) DeletePayment(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePayment(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCompensations godoc
// @Summary      Compensation lines
// @Description  One line per trainer with the IBAN captured at settlement.
// @Tags         admin,payments
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {array}   CompensationLine
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/payments/{id}/compensations [get]
func (h *Handler) ListCompensations(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}

	lines, err := h.service.ListCompensations(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, lines)
}

func paymentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment ID"})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var missing *MissingIBANError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusUnprocessableEntity, MissingIBANResponse{Error: "missing IBAN for trainers", Emails: missing.Emails})
	case errors.Is(err, ErrPaymentNotFound), errors.Is(err, ErrTrainingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrTrainingNotApproved):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNoTrainings):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		logger.Error("payment request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal server error"})
	}
}
