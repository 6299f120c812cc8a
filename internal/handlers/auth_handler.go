package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/config"
	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/httpresp"
	"github.com/medidesk/hospital-api/internal/ids"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/validators"
)

const (
	RoleDoctor       = "Doctor"
	RoleReceptionist = "Receptionist"
	RolePatient      = "Patient"
)

var roleCounters = map[string]string{
	RoleDoctor:       ids.CounterDoctor,
	RoleReceptionist: ids.CounterReceptionist,
	RolePatient:      ids.CounterPatient,
}

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// Register creates a user and assigns the role-scoped identifier (d001,
// r001, p001) from the matching counter, inside the same transaction as the
// insert so a duplicate-email rollback does not burn an ID.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	counter, ok := roleCounters[req.Role]
	if !ok {
		httperr.BadRequest(c, "invalid_role", "Role must be Doctor, Receptionist or Patient.")
		return
	}

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Email domain does not accept mail.")
		return
	}

	var existing models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&existing).Error; err == nil {
		httperr.Conflict(c, "email_taken", "A user with this email already exists.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "hash_failed", "Could not process password.")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		id, err := ids.Next(tx, counter)
		if err != nil {
			return err
		}

		switch req.Role {
		case RoleDoctor:
			user.DoctorID = id
		case RoleReceptionist:
			user.ReceptionistID = id
		case RolePatient:
			user.PatientID = id
		}

		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "email_taken", "A user with this email already exists.")
			return
		}
		httperr.Internal(c, "register_failed", "Could not create user.")
		return
	}

	c.JSON(201, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(req.Password),
	); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	actorID := user.DoctorID
	if actorID == "" {
		actorID = user.ReceptionistID
	}
	if actorID == "" {
		actorID = user.PatientID
	}

	claims := jwt.MapClaims{
		"sub":     float64(user.ID),
		"role":    user.Role,
		"actorId": actorID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		httperr.Internal(c, "token_failed", "Could not issue token.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Login successful",
		"token":   signed,
		"user":    user,
	})
}
