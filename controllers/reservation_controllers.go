package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Service: svc}
}

// CreateReservation -> POST /reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var rec *models.Reservation
	form, err := services.DecodeReservationForm(body)
	if err == nil {
		rec, err = rc.Service.Create(c.Request.Context(), form)
	}

	var verr *services.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   verr.Error(),
			"errors":  verr.Errors,
		})
		return
	case errors.Is(err, services.ErrMalformedForm):
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	default:
		utils.ErrorLogger.WithError(err).Error("failed to create reservation")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservationId": rec.ID,
		"date":          rec.Date,
		"time":          rec.Time,
		"guests":        rec.Guests,
	}).Info("reservation created")

	utils.RespondSuccess(c, http.StatusCreated, gin.H{"reservation": rec})
}

// GetReservation -> GET /reservations/:id
func (rc *ReservationController) GetReservation(c *gin.Context) {
	rec, err := rc.Service.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrReservationNotFound) {
		utils.RespondError(c, http.StatusNotFound, "Reservation not found")
		return
	}
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("reservationId", c.Param("id")).Error("failed to load reservation")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to load reservation")
		return
	}

	utils.RespondSuccess(c, http.StatusOK, gin.H{"reservation": rec})
}

// UpdateReservation -> PATCH /reservations/:id, only {"status":"cancelled"} is accepted
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := c.Param("id")
	err := rc.Service.Cancel(c.Request.Context(), id, body.Status)
	switch {
	case err == nil:
		utils.InfoLogger.WithField("reservationId", id).Info("reservation cancelled")
		utils.RespondSuccess(c, http.StatusOK, nil)
	case errors.Is(err, services.ErrInvalidOperation):
		utils.RespondError(c, http.StatusBadRequest, "Invalid operation")
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondError(c, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, services.ErrAlreadyCancelled):
		utils.RespondError(c, http.StatusBadRequest, "Reservation already cancelled")
	case errors.Is(err, services.ErrInvalidStatusTransition):
		utils.RespondError(c, http.StatusBadRequest, "Reservation cannot be cancelled")
	default:
		utils.ErrorLogger.WithError(err).WithField("reservationId", id).Error("failed to cancel reservation")
		utils.RespondError(c, http.StatusInternalServerError, "Failed to cancel reservation")
	}
}
