package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/httpresp"
	"github.com/medidesk/hospital-api/internal/models"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type createReportRequest struct {
	AptID            string `json:"aptID" binding:"required"`
	PrimaryDiagnosis string `json:"primaryDiagnosis" binding:"required"`
	Prescription     string `json:"prescription" binding:"required"`
	Procedures       string `json:"procedures" binding:"required"`
}

// Create writes the visit report, denormalizing doctor name, date and reason
// from the appointment so the printout survives later edits.
func (h *ReportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	var ap models.Appointment
	if err := h.db.WithContext(c.Request.Context()).
		Where("apt_id = ?", req.AptID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", businessMessages["appointment_not_found"])
		return
	}

	var existing models.Report
	if err := h.db.WithContext(c.Request.Context()).
		Where("apt_id = ?", req.AptID).
		First(&existing).Error; err == nil {
		httperr.Conflict(c, "report_exists", "A report already exists for this appointment.")
		return
	}

	var doctor models.Doctor
	if err := h.db.WithContext(c.Request.Context()).
		Where("doctor_id = ?", ap.DoctorID).
		First(&doctor).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", businessMessages["doctor_not_found"])
		return
	}

	report := models.Report{
		AptID:            req.AptID,
		AptDate:          ap.Date,
		ConsultedDoctor:  doctor.Name,
		Reason:           ap.Reason,
		PrimaryDiagnosis: req.PrimaryDiagnosis,
		Prescription:     req.Prescription,
		Procedures:       req.Procedures,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&report).Error; err != nil {
		httperr.Internal(c, "report_create_failed", "Could not create report.")
		return
	}

	c.JSON(201, gin.H{
		"message": "Report created successfully",
		"report":  report,
	})
}

// Get answers 200 with a null report when none was written yet, so the
// frontend can show "pending" instead of an error.
func (h *ReportHandler) Get(c *gin.Context) {
	aptID := c.Query("aptID")
	if aptID == "" {
		httperr.BadRequest(c, "missing_apt_id", "aptID query parameter is required.")
		return
	}

	var report models.Report
	if err := h.db.WithContext(c.Request.Context()).
		Where("apt_id = ?", aptID).
		First(&report).Error; err != nil {
		httpresp.OK(c, gin.H{
			"message": "Report not written yet",
			"report":  nil,
		})
		return
	}

	httpresp.OK(c, gin.H{"report": report})
}

type updateReportRequest struct {
	AptID            string  `json:"aptID" binding:"required"`
	PrimaryDiagnosis *string `json:"primaryDiagnosis"`
	Prescription     *string `json:"prescription"`
	Procedures       *string `json:"procedures"`
}

func (h *ReportHandler) Update(c *gin.Context) {
	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	var report models.Report
	if err := h.db.WithContext(c.Request.Context()).
		Where("apt_id = ?", req.AptID).
		First(&report).Error; err != nil {
		httperr.NotFound(c, "report_not_found", "No report found for this appointment.")
		return
	}

	if req.PrimaryDiagnosis != nil {
		report.PrimaryDiagnosis = *req.PrimaryDiagnosis
	}
	if req.Prescription != nil {
		report.Prescription = *req.Prescription
	}
	if req.Procedures != nil {
		report.Procedures = *req.Procedures
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&report).Error; err != nil {
		httperr.Internal(c, "report_update_failed", "Could not update report.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Report updated successfully",
		"report":  report,
	})
}
