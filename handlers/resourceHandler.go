package handlers

import (
	"SMCHealth/middlewares"
	"SMCHealth/models"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryService interface {
	Resources(ctx context.Context, hospitalID string) (*models.Resources, error)
	CreateEquipment(ctx context.Context, hospitalID string, req models.EquipmentRequest) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, hospitalID, id string, req models.EquipmentRequest) (*models.Equipment, error)
	DeleteEquipment(ctx context.Context, hospitalID, id string) error
	CreateMedicine(ctx context.Context, hospitalID string, req models.MedicineRequest) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, hospitalID, id string, req models.MedicineRequest) (*models.Medicine, error)
	DeleteMedicine(ctx context.Context, hospitalID, id string) error
}

// ResourceHandler serves the equipment and medicine inventory.
type ResourceHandler struct {
	service InventoryService
	log     *zap.Logger
}

func NewResourceHandler(service InventoryService, log *zap.Logger) *ResourceHandler {
	return &ResourceHandler{service: service, log: log}
}

func (h *ResourceHandler) GetResources(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	resources, err := h.service.Resources(c.Request.Context(), hospitalID)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, resources, http.StatusOK)
}

func (h *ResourceHandler) CreateEquipment(c *gin.Context) {
	var req models.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	equipment, err := h.service.CreateEquipment(c.Request.Context(), hospitalID, req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, equipment, http.StatusCreated)
}

func (h *ResourceHandler) UpdateEquipment(c *gin.Context) {
	var req models.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	equipment, err := h.service.UpdateEquipment(c.Request.Context(), hospitalID, c.Param("id"), req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, equipment, http.StatusOK)
}

func (h *ResourceHandler) DeleteEquipment(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	if err := h.service.DeleteEquipment(c.Request.Context(), hospitalID, c.Param("id")); err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler) CreateMedicine(c *gin.Context) {
	var req models.MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	medicine, err := h.service.CreateMedicine(c.Request.Context(), hospitalID, req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, medicine, http.StatusCreated)
}

func (h *ResourceHandler) UpdateMedicine(c *gin.Context) {
	var req models.MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.BadRequest(c, err.Error())
		return
	}
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	medicine, err := h.service.UpdateMedicine(c.Request.Context(), hospitalID, c.Param("id"), req)
	if err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	middlewares.RespondJSON(c, medicine, http.StatusOK)
}

func (h *ResourceHandler) DeleteMedicine(c *gin.Context) {
	hospitalID := middlewares.HospitalIDFromContext(c.Request.Context())
	if err := h.service.DeleteMedicine(c.Request.Context(), hospitalID, c.Param("id")); err != nil {
		middlewares.HttpError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
