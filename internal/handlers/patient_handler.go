package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/httpresp"
	"github.com/medidesk/hospital-api/internal/ids"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/timezone"
	"github.com/medidesk/hospital-api/internal/validators"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type createPatientRequest struct {
	PatientID     string `json:"pID"`
	Name          string `json:"name" binding:"required"`
	DOB           string `json:"dob" binding:"required"`
	Gender        string `json:"gender"`
	PhoneNo       string `json:"phone_no"`
	PastHistory   string `json:"past_history"`
	CurrentStatus string `json:"current_status"`
	Address       string `json:"address"`
}

// Create registers a patient at the front desk. When the patient registered
// themselves first, the request carries their pID; a walk-in gets the next
// one from the counter.
func (h *PatientHandler) Create(c *gin.Context) {
	var req createPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	dob, err := time.Parse(domain.DateLayout, req.DOB)
	if err != nil {
		httperr.BadRequest(c, "invalid_dob", "dob must be YYYY-MM-DD.")
		return
	}

	if req.PhoneNo != "" && !validators.IsPhoneValid(req.PhoneNo) {
		httperr.BadRequest(c, "invalid_phone", "Phone number must be ten digits.")
		return
	}

	if req.PatientID != "" {
		var existing models.Patient
		if err := h.db.WithContext(c.Request.Context()).
			Where("p_id = ?", req.PatientID).
			First(&existing).Error; err == nil {
			httperr.Conflict(c, "patient_exists", "A patient with this ID already exists.")
			return
		}
	}

	patient := models.Patient{
		PatientID:     req.PatientID,
		Name:          req.Name,
		DOB:           dob,
		Age:           calculateAge(dob, timezone.Now()),
		Gender:        req.Gender,
		PhoneNo:       req.PhoneNo,
		PastHistory:   req.PastHistory,
		CurrentStatus: req.CurrentStatus,
		Address:       req.Address,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if patient.PatientID == "" {
			id, err := ids.Next(tx, ids.CounterPatient)
			if err != nil {
				return err
			}
			patient.PatientID = id
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "patient_exists", "A patient with this ID already exists.")
			return
		}
		httperr.Internal(c, "patient_create_failed", "Could not create patient.")
		return
	}

	c.JSON(201, gin.H{
		"message": "Patient created successfully",
		"patient": patient,
	})
}

func (h *PatientHandler) List(c *gin.Context) {
	var patients []models.Patient
	if err := h.db.WithContext(c.Request.Context()).
		Order("p_id").
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "patient_list_failed", "Could not list patients.")
		return
	}

	httpresp.List(c, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	pID := c.Param("pID")

	var patient models.Patient
	if err := h.db.WithContext(c.Request.Context()).
		Where("p_id = ?", pID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", businessMessages["patient_not_found"])
		return
	}

	httpresp.OK(c, gin.H{"patient": patient})
}

type updatePatientRequest struct {
	Name          *string `json:"name"`
	DOB           *string `json:"dob"`
	Gender        *string `json:"gender"`
	PhoneNo       *string `json:"phone_no"`
	PastHistory   *string `json:"past_history"`
	CurrentStatus *string `json:"current_status"`
	Address       *string `json:"address"`
}

func (h *PatientHandler) Update(c *gin.Context) {
	pID := c.Param("pID")

	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	var patient models.Patient
	if err := h.db.WithContext(c.Request.Context()).
		Where("p_id = ?", pID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", businessMessages["patient_not_found"])
		return
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.DOB != nil {
		dob, err := time.Parse(domain.DateLayout, *req.DOB)
		if err != nil {
			httperr.BadRequest(c, "invalid_dob", "dob must be YYYY-MM-DD.")
			return
		}
		patient.DOB = dob
		patient.Age = calculateAge(dob, timezone.Now())
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.PhoneNo != nil {
		if !validators.IsPhoneValid(*req.PhoneNo) {
			httperr.BadRequest(c, "invalid_phone", "Phone number must be ten digits.")
			return
		}
		patient.PhoneNo = *req.PhoneNo
	}
	if req.PastHistory != nil {
		patient.PastHistory = *req.PastHistory
	}
	if req.CurrentStatus != nil {
		patient.CurrentStatus = *req.CurrentStatus
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&patient).Error; err != nil {
		httperr.Internal(c, "patient_update_failed", "Could not update patient.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Patient updated successfully",
		"patient": patient,
	})
}

// Delete removes the patient and everything hanging off them: appointments
// and the invoices and reports of those appointments, in one transaction.
func (h *PatientHandler) Delete(c *gin.Context) {
	pID := c.Param("pID")

	var patient models.Patient
	if err := h.db.WithContext(c.Request.Context()).
		Where("p_id = ?", pID).
		First(&patient).Error; err != nil {
		httperr.NotFound(c, "patient_not_found", businessMessages["patient_not_found"])
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var aptIDs []string
		if err := tx.Model(&models.Appointment{}).
			Where("p_id = ?", pID).
			Pluck("apt_id", &aptIDs).Error; err != nil {
			return err
		}

		if len(aptIDs) > 0 {
			if err := tx.Where("apt_id IN ?", aptIDs).
				Delete(&models.Invoice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("apt_id IN ?", aptIDs).
				Delete(&models.Report{}).Error; err != nil {
				return err
			}
			if err := tx.Where("p_id = ?", pID).
				Delete(&models.Appointment{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&patient).Error
	})
	if err != nil {
		httperr.Internal(c, "patient_delete_failed", "Could not delete patient.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Patient and related records deleted successfully",
		"patient": patient,
	})
}
