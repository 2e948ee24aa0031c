package handlers

import (
	"SMCHealth/middlewares"
	"SMCHealth/models"
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DoctorService interface {
	Create(ctx context.Context, hospitalID string, req models.DoctorRequest) (*models.Doctor, error)
	List(ctx context.Context, hospitalID string, availableOnly bool) ([]models.Doctor, error)
	ToggleAvailability(ctx context.Context, hospitalID, doctorID string) (*models.Doctor, error)
	Workload(ctx context.Context, hospitalID string) ([]models.DoctorWorkload, error)
}

type DoctorHandler struct {
	service DoctorService
	log     *zap.Logger
}

func NewDoctorHandler(service DoctorService, log *zap.Logger) *DoctorHandler {
	return &DoctorHandler{service: service, log: log}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req models.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	doctor, err := h.service.Create(c.Request.Context(), hospitalID, req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, doctor, http.StatusCreated)
}

// GetAllDoctors lists the hospital's doctors; ?available=true narrows the
// list to doctors that can take new patients.
func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	availableOnly := false
	if raw := c.Query("available"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			middlewares.BadRequest(c, "available must be a boolean")
			return
		}
		availableOnly = parsed
	}

	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	doctors, err := h.service.List(c.Request.Context(), hospitalID, availableOnly)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, doctors, http.StatusOK)
}

func (h *DoctorHandler) ToggleAvailability(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	doctor, err := h.service.ToggleAvailability(c.Request.Context(), hospitalID, c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, doctor, http.StatusOK)
}

func (h *DoctorHandler) GetWorkload(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	workload, err := h.service.Workload(c.Request.Context(), hospitalID)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, workload, http.StatusOK)
}
