package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/httpresp"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/timezone"
	usecase "github.com/medidesk/hospital-api/internal/usecase/scheduling"
)

// AppointmentHandler is the HTTP surface of the scheduling core. Writes go
// through the use cases; read-only listings query the database directly.
type AppointmentHandler struct {
	db        *gorm.DB
	publishUC *usecase.PublishSchedule
	freeUC    *usecase.FreeSlots
	bookUC    *usecase.BookSlot
	deleteUC  *usecase.DeleteAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	publishUC *usecase.PublishSchedule,
	freeUC *usecase.FreeSlots,
	bookUC *usecase.BookSlot,
	deleteUC *usecase.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:        db,
		publishUC: publishUC,
		freeUC:    freeUC,
		bookUC:    bookUC,
		deleteUC:  deleteUC,
	}
}

type createScheduleRequest struct {
	DoctorID   string             `json:"doctorId" binding:"required"`
	Date       string             `json:"date" binding:"required"`
	TimeRanges []domain.TimeRange `json:"timeRanges" binding:"required,min=1,dive"`
}

// CreateSchedule publishes (or replaces) a doctor's availability for a day.
func (h *AppointmentHandler) CreateSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	if !domain.ValidDate(req.Date) {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	sched, created, err := h.publishUC.Execute(c.Request.Context(), usecase.PublishScheduleInput{
		DoctorID: req.DoctorID,
		Date:     req.Date,
		Ranges:   req.TimeRanges,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "schedule_publish_failed", "Could not publish schedule.")
		return
	}

	status := 200
	message := "Schedule updated successfully"
	if created {
		status = 201
		message = "Schedule created successfully"
	}

	c.JSON(status, gin.H{
		"message":  message,
		"schedule": sched,
	})
}

func (h *AppointmentHandler) GetSchedule(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		httperr.BadRequest(c, "missing_params", "doctorId and date query parameters are required.")
		return
	}

	var sched models.DoctorSchedule
	if err := h.db.WithContext(c.Request.Context()).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		First(&sched).Error; err != nil {
		httperr.NotFound(c, "schedule_not_found", businessMessages["schedule_not_found"])
		return
	}

	httpresp.OK(c, gin.H{"schedule": sched})
}

// AvailableSlots returns the bookable labels for a (doctor, date): published
// minus booked minus already started. An empty list is a valid answer.
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	doctorID := c.Param("doctorId")
	date := c.Param("date")

	if !domain.ValidDate(date) {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.freeUC.Execute(c.Request.Context(), doctorID, date, timezone.Now())
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "slots_failed", "Could not compute available slots.")
		return
	}

	if slots == nil {
		slots = []string{}
	}

	httpresp.OK(c, gin.H{
		"message":        "Available slots fetched successfully",
		"availableSlots": slots,
	})
}

// createAppointmentRequest carries the booking request. The body uses the
// client-facing keys (date, slot); the storage names (apt_date, apt_time)
// only appear in responses.
type createAppointmentRequest struct {
	PatientID string `json:"pID" binding:"required"`
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Slot      string `json:"slot" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	if !domain.ValidDate(req.Date) {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), usecase.BookSlotInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Slot:      req.Slot,
		Reason:    req.Reason,
	})
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "appointment_create_failed", "Could not create appointment.")
		return
	}

	c.JSON(201, gin.H{
		"message":     "Appointment created successfully",
		"appointment": ap,
	})
}

// appointmentWithPatient is an appointment row joined with the patient's
// name, the shape the doctor's day-list view renders.
type appointmentWithPatient struct {
	models.Appointment
	PatientName string `json:"patientName"`
}

func (h *AppointmentHandler) GetAllByDoctorID(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		httperr.BadRequest(c, "missing_doctor_id", "doctorId query parameter is required.")
		return
	}

	var rows []appointmentWithPatient
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Appointment{}).
		Select("appointments.*, patients.name AS patient_name").
		Joins("LEFT JOIN patients ON patients.p_id = appointments.p_id").
		Where("appointments.doctor_id = ?", doctorID).
		Order("appointments.date, appointments.slot").
		Scan(&rows).Error
	if err != nil {
		httperr.Internal(c, "appointment_list_failed", "Could not list appointments.")
		return
	}

	httpresp.List(c, rows)
}

func (h *AppointmentHandler) GetAllByPatientID(c *gin.Context) {
	pID := c.Query("pID")
	if pID == "" {
		httperr.BadRequest(c, "missing_patient_id", "pID query parameter is required.")
		return
	}

	var appointments []models.Appointment
	err := h.db.WithContext(c.Request.Context()).
		Where("p_id = ?", pID).
		Order("date, slot").
		Find(&appointments).Error
	if err != nil {
		httperr.Internal(c, "appointment_list_failed", "Could not list appointments.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) GetAll(c *gin.Context) {
	var appointments []models.Appointment
	err := h.db.WithContext(c.Request.Context()).
		Order("date, slot").
		Find(&appointments).Error
	if err != nil {
		httperr.Internal(c, "appointment_list_failed", "Could not list appointments.")
		return
	}

	httpresp.List(c, appointments)
}

// Details merges the appointment with its patient and doctor records, the
// view the receptionist opens before a visit.
func (h *AppointmentHandler) Details(c *gin.Context) {
	aptID := c.Param("aptID")

	var ap models.Appointment
	if err := h.db.WithContext(c.Request.Context()).
		Where("apt_id = ?", aptID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", businessMessages["appointment_not_found"])
		return
	}

	var patient models.Patient
	if err := h.db.WithContext(c.Request.Context()).
		Where("p_id = ?", ap.PatientID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", businessMessages["patient_not_found"])
		return
	}

	var doctor models.Doctor
	if err := h.db.WithContext(c.Request.Context()).
		Where("doctor_id = ?", ap.DoctorID).
		First(&doctor).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", businessMessages["doctor_not_found"])
		return
	}

	httpresp.OK(c, gin.H{
		"appointment": ap,
		"patient":     patient,
		"doctor":      doctor,
	})
}

// DoctorByPatient resolves the doctor a patient most recently booked with.
func (h *AppointmentHandler) DoctorByPatient(c *gin.Context) {
	pID := c.Param("pID")

	var patient models.Patient
	if err := h.db.WithContext(c.Request.Context()).
		Where("p_id = ?", pID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", businessMessages["patient_not_found"])
		return
	}

	var ap models.Appointment
	if err := h.db.WithContext(c.Request.Context()).
		Where("p_id = ?", pID).
		Order("date DESC, slot DESC").
		First(&ap).Error; err != nil {
		httpresp.OK(c, gin.H{"doctorId": nil})
		return
	}

	httpresp.OK(c, gin.H{"doctorId": ap.DoctorID})
}

func (h *AppointmentHandler) DeleteByAptID(c *gin.Context) {
	aptID := c.Query("aptID")
	if aptID == "" {
		httperr.BadRequest(c, "missing_apt_id", "aptID query parameter is required.")
		return
	}

	ap, err := h.deleteUC.Execute(c.Request.Context(), aptID)
	if err != nil {
		if writeBusinessError(c, err) {
			return
		}
		httperr.Internal(c, "appointment_delete_failed", "Could not delete appointment.")
		return
	}

	httpresp.OK(c, gin.H{
		"message":     "Appointment and related records deleted successfully",
		"appointment": ap,
	})
}
