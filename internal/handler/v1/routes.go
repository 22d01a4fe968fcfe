package v1

import (
	"net/http"

	"github.com/clinicflow/clinicflow/internal/middleware"
	"github.com/clinicflow/clinicflow/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Register mounts the v1 API under /api/v1. Route shapes follow the
// appointments resource: availability is managed as a sub-resource.
func Register(
	r *gin.Engine,
	verifier *auth.Verifier,
	appointments *AppointmentHandler,
	availability *AvailabilityHandler,
	settings *SettingsHandler,
) {
	api := r.Group("/api/v1", middleware.Auth(verifier))

	appt := api.Group("/appointments")
	{
		appt.POST("", appointments.Book)
		appt.POST("/:id/cancel", appointments.Cancel)
		appt.POST("/:id/confirm", appointments.Confirm)
		appt.POST("/:id/complete", appointments.Complete)
		appt.GET("/doctors/:doctorID", appointments.ListForDoctor)
		appt.GET("/patients/:patientID", appointments.ListForPatient)

		appt.POST("/availability", availability.Create)
		appt.PATCH("/availability/:id", availability.Update)
		appt.GET("/doctor/:doctorID/availability", availability.ListForDoctor)
		appt.GET("/doctor/:doctorID/blocks", availability.ListOpenBlocks)
	}

	cfg := api.Group("/settings")
	{
		cfg.GET("", settings.List)
		cfg.GET("/block-duration", settings.GetBlockDuration)
		cfg.PUT("/block-duration", settings.SetBlockDuration)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
