package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/httpresp"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/validators"
)

// ProfileHandler manages the staff profiles hanging off a registered user.
// A profile can only be created for a user whose role matches and who was
// assigned the corresponding ID at registration; the profile inherits the
// user's email.
type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type createDoctorProfileRequest struct {
	DoctorID       string `json:"doctorId" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization"`
	PhoneNo        string `json:"phone_no"`
	Experience     int    `json:"experience"`
}

func (h *ProfileHandler) CreateDoctorProfile(c *gin.Context) {
	var req createDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	if req.PhoneNo != "" && !validators.IsPhoneValid(req.PhoneNo) {
		httperr.BadRequest(c, "invalid_phone", "Phone number must be ten digits.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("doctor_id = ? AND role = ?", req.DoctorID, RoleDoctor).
		First(&user).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "No doctor user registered with this ID.")
		return
	}

	var existing models.Doctor
	if err := h.db.WithContext(c.Request.Context()).
		Where("doctor_id = ?", req.DoctorID).
		First(&existing).Error; err == nil {
		httperr.Conflict(c, "profile_exists", "Doctor profile already exists.")
		return
	}

	doctor := models.Doctor{
		DoctorID:       req.DoctorID,
		Name:           req.Name,
		Specialization: req.Specialization,
		PhoneNo:        req.PhoneNo,
		Experience:     req.Experience,
		Email:          user.Email,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&doctor).Error; err != nil {
		httperr.Internal(c, "profile_create_failed", "Could not create doctor profile.")
		return
	}

	c.JSON(201, gin.H{
		"message": "Doctor profile created successfully",
		"doctor":  doctor,
	})
}

// GetDoctorProfile answers 200 with a null doctor when no profile exists
// yet, so the frontend can tell "registered but not onboarded" apart from a
// bad ID.
func (h *ProfileHandler) GetDoctorProfile(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		httperr.BadRequest(c, "missing_doctor_id", "doctorId query parameter is required.")
		return
	}

	var doctor models.Doctor
	if err := h.db.WithContext(c.Request.Context()).
		Where("doctor_id = ?", doctorID).
		First(&doctor).Error; err != nil {
		httpresp.OK(c, gin.H{
			"message": "Doctor profile not created yet",
			"doctor":  nil,
		})
		return
	}

	httpresp.OK(c, gin.H{"doctor": doctor})
}

type updateDoctorProfileRequest struct {
	DoctorID       string  `json:"doctorId" binding:"required"`
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	PhoneNo        *string `json:"phone_no"`
	Experience     *int    `json:"experience"`
}

func (h *ProfileHandler) UpdateDoctorProfile(c *gin.Context) {
	var req updateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	var doctor models.Doctor
	if err := h.db.WithContext(c.Request.Context()).
		Where("doctor_id = ?", req.DoctorID).
		First(&doctor).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", businessMessages["doctor_not_found"])
		return
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.PhoneNo != nil {
		if !validators.IsPhoneValid(*req.PhoneNo) {
			httperr.BadRequest(c, "invalid_phone", "Phone number must be ten digits.")
			return
		}
		doctor.PhoneNo = *req.PhoneNo
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&doctor).Error; err != nil {
		httperr.Internal(c, "profile_update_failed", "Could not update doctor profile.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Doctor profile updated successfully",
		"doctor":  doctor,
	})
}

func (h *ProfileHandler) GetAllDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.db.WithContext(c.Request.Context()).
		Order("doctor_id").
		Find(&doctors).Error; err != nil {
		httperr.Internal(c, "doctor_list_failed", "Could not list doctors.")
		return
	}

	httpresp.List(c, doctors)
}

type createReceptionistProfileRequest struct {
	RepID   string  `json:"repID" binding:"required"`
	Name    string  `json:"name" binding:"required"`
	PhoneNo string  `json:"phone_no"`
	Salary  float64 `json:"salary"`
}

func (h *ProfileHandler) CreateReceptionistProfile(c *gin.Context) {
	var req createReceptionistProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	if req.PhoneNo != "" && !validators.IsPhoneValid(req.PhoneNo) {
		httperr.BadRequest(c, "invalid_phone", "Phone number must be ten digits.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("receptionist_id = ? AND role = ?", req.RepID, RoleReceptionist).
		First(&user).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "No receptionist user registered with this ID.")
		return
	}

	var existing models.Receptionist
	if err := h.db.WithContext(c.Request.Context()).
		Where("rep_id = ?", req.RepID).
		First(&existing).Error; err == nil {
		httperr.Conflict(c, "profile_exists", "Receptionist profile already exists.")
		return
	}

	rec := models.Receptionist{
		RepID:   req.RepID,
		Name:    req.Name,
		PhoneNo: req.PhoneNo,
		Email:   user.Email,
		Salary:  req.Salary,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&rec).Error; err != nil {
		httperr.Internal(c, "profile_create_failed", "Could not create receptionist profile.")
		return
	}

	c.JSON(201, gin.H{
		"message":      "Receptionist profile created successfully",
		"receptionist": rec,
	})
}
