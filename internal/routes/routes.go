package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/audit"
	"github.com/medidesk/hospital-api/internal/config"
	"github.com/medidesk/hospital-api/internal/handlers"
	"github.com/medidesk/hospital-api/internal/infra/repository"
	"github.com/medidesk/hospital-api/internal/middleware"
	"github.com/medidesk/hospital-api/internal/payment"
	"github.com/medidesk/hospital-api/internal/redislock"
	usecase "github.com/medidesk/hospital-api/internal/usecase/scheduling"
)

// RegisterRoutes wires the dependency graph and mounts every route group.
// Appointments and user registration stay open (patients book without
// logging in); staff-facing groups sit behind JWT auth.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	locker redislock.Locker,
	gateway payment.Gateway,
) {
	dispatcher := audit.NewDispatcher(audit.New(db), log)
	repo := repository.NewSchedulingGormRepository(db)

	publishUC := usecase.NewPublishSchedule(repo, dispatcher)
	freeUC := usecase.NewFreeSlots(repo)
	bookUC := usecase.NewBookSlot(repo, locker, dispatcher)
	deleteUC := usecase.NewDeleteAppointment(repo, dispatcher)

	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, publishUC, freeUC, bookUC, deleteUC)
	invoiceHandler := handlers.NewInvoiceHandler(db, dispatcher)
	reportHandler := handlers.NewReportHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, gateway)

	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}

	appointments := api.Group("/appointments")
	{
		appointments.POST("/schedule", appointmentHandler.CreateSchedule)
		appointments.GET("/schedule", appointmentHandler.GetSchedule)
		appointments.GET("/:doctorId/available-slots/:date", appointmentHandler.AvailableSlots)
		appointments.POST("/create", appointmentHandler.Create)
		appointments.GET("/getAllAppointmentsByDoctorId", appointmentHandler.GetAllByDoctorID)
		appointments.GET("/getAllAppointmentsByPID", appointmentHandler.GetAllByPatientID)
		appointments.GET("/getAllAppointments", appointmentHandler.GetAll)
		appointments.GET("/details/:aptID", appointmentHandler.Details)
		appointments.GET("/doctor/:pID", appointmentHandler.DoctorByPatient)
		appointments.GET("/deleteAppointmentByAptID", appointmentHandler.DeleteByAptID)
	}

	auth := middleware.AuthMiddleware(cfg)

	profiles := api.Group("/profiles", auth)
	{
		profiles.POST("/doctor", profileHandler.CreateDoctorProfile)
		profiles.GET("/doctor", profileHandler.GetDoctorProfile)
		profiles.PATCH("/doctor", profileHandler.UpdateDoctorProfile)
		profiles.GET("/doctors", profileHandler.GetAllDoctors)
		profiles.POST("/receptionist", profileHandler.CreateReceptionistProfile)
	}

	patients := api.Group("/patients", auth)
	{
		patients.POST("", patientHandler.Create)
		patients.GET("", patientHandler.List)
		patients.GET("/:pID", patientHandler.Get)
		patients.PATCH("/:pID", patientHandler.Update)
		patients.DELETE("/:pID", patientHandler.Delete)
	}

	invoices := api.Group("/invoice", auth)
	{
		invoices.POST("/create", invoiceHandler.Create)
		invoices.GET("/get", invoiceHandler.Get)
		invoices.PUT("/update", invoiceHandler.Update)
		invoices.POST("/pay", invoiceHandler.Pay)
	}

	reports := api.Group("/report", auth)
	{
		reports.POST("/create", reportHandler.Create)
		reports.GET("/get", reportHandler.Get)
		reports.PUT("/update", reportHandler.Update)
	}

	payments := api.Group("/payments", auth)
	{
		payments.POST("/order", paymentHandler.CreateOrder)
	}
}
