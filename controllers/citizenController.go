package controllers

import (
	"SMCHealth/handlers"
	"SMCHealth/middlewares"
	"SMCHealth/utils"

	"github.com/gin-gonic/gin"
)

type CitizenController struct {
	Appointments *handlers.AppointmentHandler
}

func (cc *CitizenController) RegisterRoutes(router *gin.Engine, tokens *utils.TokenManager) {
	citizen := router.Group("/citizen").Use(middlewares.TokenAuthMiddleware(tokens, utils.RoleCitizen))
	{
		citizen.POST("/appointments", cc.Appointments.BookAppointment)
		citizen.GET("/appointments", cc.Appointments.GetCitizenAppointments)
	}
}
