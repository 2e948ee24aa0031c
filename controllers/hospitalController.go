package controllers

import (
	"SMCHealth/handlers"
	"SMCHealth/middlewares"
	"SMCHealth/utils"

	"github.com/gin-gonic/gin"
)

type HospitalController struct {
	Hospitals    *handlers.HospitalHandler
	Patients     *handlers.PatientHandler
	Doctors      *handlers.DoctorHandler
	Appointments *handlers.AppointmentHandler
	Resources    *handlers.ResourceHandler
}

// RegisterRoutes mounts the staff API. Every route acts on the hospital bound
// to the caller's token.
func (hc *HospitalController) RegisterRoutes(router *gin.Engine, tokens *utils.TokenManager) {
	staff := router.Group("/hospital").Use(
		middlewares.TokenAuthMiddleware(tokens, utils.RoleHospital),
		middlewares.HospitalScopeMiddleware(),
	)
	{
		staff.GET("/dashboard", hc.Hospitals.GetDashboard)
		staff.GET("/beds", hc.Hospitals.GetBeds)

		staff.POST("/patients", hc.Patients.AdmitPatient)
		staff.GET("/patients", hc.Patients.GetAllPatients)
		staff.GET("/patients/:id", hc.Patients.GetPatientByID)
		staff.POST("/patients/:id/discharge", hc.Patients.DischargePatient)

		staff.GET("/doctors", hc.Doctors.GetAllDoctors)
		staff.POST("/doctors", hc.Doctors.CreateDoctor)
		staff.GET("/doctors/workload", hc.Doctors.GetWorkload)
		staff.POST("/doctors/:id/toggle", hc.Doctors.ToggleAvailability)

		staff.GET("/resources", hc.Resources.GetResources)
		staff.POST("/equipment", hc.Resources.CreateEquipment)
		staff.PUT("/equipment/:id", hc.Resources.UpdateEquipment)
		staff.DELETE("/equipment/:id", hc.Resources.DeleteEquipment)
		staff.POST("/medicine", hc.Resources.CreateMedicine)
		staff.PUT("/medicine/:id", hc.Resources.UpdateMedicine)
		staff.DELETE("/medicine/:id", hc.Resources.DeleteMedicine)

		staff.GET("/appointments", hc.Appointments.GetHospitalAppointments)
		staff.POST("/appointments/:id/status", hc.Appointments.UpdateStatus)
	}
}
