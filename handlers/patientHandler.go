package handlers

import (
	"SMCHealth/middlewares"
	"SMCHealth/models"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PatientService interface {
	Admit(ctx context.Context, hospitalID string, req models.AdmitRequest) (*models.Patient, error)
	Discharge(ctx context.Context, hospitalID, patientID string) (*models.Patient, error)
	Get(ctx context.Context, hospitalID, patientID string) (*models.Patient, error)
	List(ctx context.Context, hospitalID string) ([]models.Patient, error)
}

type PatientHandler struct {
	service PatientService
	log     *zap.Logger
}

func NewPatientHandler(service PatientService, log *zap.Logger) *PatientHandler {
	return &PatientHandler{service: service, log: log}
}

func (h *PatientHandler) AdmitPatient(c *gin.Context) {
	var req models.AdmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	patient, err := h.service.Admit(c.Request.Context(), hospitalID, req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusCreated)
}

func (h *PatientHandler) DischargePatient(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	patient, err := h.service.Discharge(c.Request.Context(), hospitalID, c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusOK)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	patient, err := h.service.Get(c.Request.Context(), hospitalID, c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, patient, http.StatusOK)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	patients, err := h.service.List(c.Request.Context(), hospitalID)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, patients, http.StatusOK)
}
