package controllers

import (
	"SMCHealth/handlers"
	"SMCHealth/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminController exposes hospital onboarding behind the static operator token.
type AdminController struct {
	Hospitals *handlers.HospitalHandler
}

func (ac *AdminController) RegisterRoutes(router *gin.Engine, adminToken string) {
	admin := router.Group("/admin").Use(middlewares.ValidateBearerToken(adminToken))
	{
		admin.POST("/hospitals", ac.Hospitals.OnboardHospital)
		admin.GET("/hospitals", ac.Hospitals.GetAllHospitals)
		admin.GET("/hospitals/:id", ac.Hospitals.GetHospitalByID)
	}
}
