package handlers

import (
	"SMCHealth/middlewares"
	"SMCHealth/models"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HospitalService interface {
	Onboard(ctx context.Context, req models.OnboardRequest) (*models.Hospital, error)
	Get(ctx context.Context, id string) (*models.Hospital, error)
	List(ctx context.Context) ([]models.HospitalOverview, error)
	Dashboard(ctx context.Context, hospitalID string) (*models.Dashboard, error)
}

type BedSummarizer interface {
	Summary(ctx context.Context, hospitalID string) (models.BedSummary, error)
}

type HospitalHandler struct {
	service HospitalService
	beds    BedSummarizer
	log     *zap.Logger
}

func NewHospitalHandler(service HospitalService, beds BedSummarizer, log *zap.Logger) *HospitalHandler {
	return &HospitalHandler{service: service, beds: beds, log: log}
}

func (h *HospitalHandler) OnboardHospital(c *gin.Context) {
	var req models.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospital, err := h.service.Onboard(c.Request.Context(), req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, hospital, http.StatusCreated)
}

func (h *HospitalHandler) GetHospitalByID(c *gin.Context) {
	hospital, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, hospital, http.StatusOK)
}

func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, hospitals, http.StatusOK)
}

func (h *HospitalHandler) GetDashboard(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	dashboard, err := h.service.Dashboard(c.Request.Context(), hospitalID)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, dashboard, http.StatusOK)
}

func (h *HospitalHandler) GetBeds(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	summary, err := h.beds.Summary(c.Request.Context(), hospitalID)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, summary, http.StatusOK)
}
