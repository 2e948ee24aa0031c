package handlers

import (
	"SMCHealth/middlewares"
	"SMCHealth/models"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppointmentService interface {
	Book(ctx context.Context, citizenID string, req models.BookRequest) (*models.Appointment, error)
	ListForHospital(ctx context.Context, hospitalID string) ([]models.Appointment, error)
	ListForCitizen(ctx context.Context, citizenID string) ([]models.Appointment, error)
	SetStatus(ctx context.Context, hospitalID, appointmentID string, req models.StatusRequest) (*models.Appointment, error)
}

type AppointmentHandler struct {
	service AppointmentService
	log     *zap.Logger
}

func NewAppointmentHandler(service AppointmentService, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: service, log: log}
}

// BookAppointment books on behalf of the citizen named by the token.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	citizenID := middlewares.UserIDFromContext(c.Request.Context())
	appointment, err := h.service.Book(c.Request.Context(), citizenID, req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusCreated)
}

func (h *AppointmentHandler) GetCitizenAppointments(c *gin.Context) {
	citizenID := middlewares.UserIDFromContext(c.Request.Context())
	appointments, err := h.service.ListForCitizen(c.Request.Context(), citizenID)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointments, http.StatusOK)
}

func (h *AppointmentHandler) GetHospitalAppointments(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	appointments, err := h.service.ListForHospital(c.Request.Context(), hospitalID)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointments, http.StatusOK)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req models.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	appointment, err := h.service.SetStatus(c.Request.Context(), hospitalID, c.Param("id"), req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, appointment, http.StatusOK)
}
