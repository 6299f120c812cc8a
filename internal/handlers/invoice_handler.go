package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/audit"
	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/httpresp"
	"github.com/medidesk/hospital-api/internal/models"
)

// InvoiceHandler manages billing records. At most one invoice exists per
// appointment; line items live in their own table and the total is computed,
// never stored.
type InvoiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewInvoiceHandler(db *gorm.DB, audit *audit.Dispatcher) *InvoiceHandler {
	return &InvoiceHandler{db: db, audit: audit}
}

type invoiceItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

type createInvoiceRequest struct {
	AptID         string               `json:"aptID" binding:"required"`
	InvoiceDate   string               `json:"invoice_date"`
	PaymentStatus bool                 `json:"payment_status"`
	Items         []invoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
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

	var existing models.Invoice
	if err := h.db.WithContext(c.Request.Context()).
		Where("apt_id = ?", req.AptID).
		First(&existing).Error; err == nil {
		httperr.Conflict(c, "invoice_exists", businessMessages["invoice_exists"])
		return
	}

	items := make([]models.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.InvoiceItem{
			Description: it.Description,
			Amount:      it.Amount,
		})
	}

	invoiceDate := req.InvoiceDate
	if invoiceDate == "" {
		invoiceDate = ap.Date
	}

	inv := models.Invoice{
		InvoiceNo:     fmt.Sprintf("INV-%s", uuid.NewString()[:12]),
		AptID:         req.AptID,
		InvoiceDate:   invoiceDate,
		PaymentStatus: req.PaymentStatus,
		Items:         items,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&inv).Error; err != nil {
		httperr.Internal(c, "invoice_create_failed", "Could not create invoice.")
		return
	}

	inv.TotalAmt = inv.Total()

	h.audit.Dispatch(audit.Event{
		ActorID:  ap.PatientID,
		Action:   "invoice_created",
		Entity:   "invoice",
		EntityID: inv.InvoiceNo,
		Metadata: map[string]any{"aptID": inv.AptID, "total": inv.TotalAmt},
	})

	c.JSON(201, gin.H{
		"message": "Invoice created successfully",
		"invoice": inv,
	})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	aptID := c.Query("aptID")
	if aptID == "" {
		httperr.BadRequest(c, "missing_apt_id", "aptID query parameter is required.")
		return
	}

	var inv models.Invoice
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Items").
		Where("apt_id = ?", aptID).
		First(&inv).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", businessMessages["invoice_not_found"])
		return
	}

	inv.TotalAmt = inv.Total()

	httpresp.OK(c, gin.H{"invoice": inv})
}

type updateInvoiceRequest struct {
	AptID         string               `json:"aptID" binding:"required"`
	InvoiceDate   *string              `json:"invoice_date"`
	PaymentStatus *bool                `json:"payment_status"`
	Items         []invoiceItemRequest `json:"items"`
}

// Update rewrites invoice fields; when items are supplied they replace the
// existing line set wholesale.
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	var inv models.Invoice
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Items").
		Where("apt_id = ?", req.AptID).
		First(&inv).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", businessMessages["invoice_not_found"])
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if req.InvoiceDate != nil {
			inv.InvoiceDate = *req.InvoiceDate
		}
		if req.PaymentStatus != nil {
			inv.PaymentStatus = *req.PaymentStatus
		}

		if req.Items != nil {
			if err := tx.Where("invoice_id = ?", inv.ID).
				Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}

			items := make([]models.InvoiceItem, 0, len(req.Items))
			for _, it := range req.Items {
				items = append(items, models.InvoiceItem{
					InvoiceID:   inv.ID,
					Description: it.Description,
					Amount:      it.Amount,
				})
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
			inv.Items = items
		}

		return tx.Omit("Items").Save(&inv).Error
	})
	if err != nil {
		httperr.Internal(c, "invoice_update_failed", "Could not update invoice.")
		return
	}

	inv.TotalAmt = inv.Total()

	httpresp.OK(c, gin.H{
		"message": "Invoice updated successfully",
		"invoice": inv,
	})
}

type payInvoiceRequest struct {
	AptID string `json:"aptID" binding:"required"`
}

func (h *InvoiceHandler) Pay(c *gin.Context) {
	var req payInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	var inv models.Invoice
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Items").
		Where("apt_id = ?", req.AptID).
		First(&inv).Error; err != nil {
		httperr.NotFound(c, "invoice_not_found", businessMessages["invoice_not_found"])
		return
	}

	if inv.PaymentStatus {
		httperr.Conflict(c, "invoice_already_paid", "Invoice is already marked as paid.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&inv).
		Update("payment_status", true).Error; err != nil {
		httperr.Internal(c, "invoice_pay_failed", "Could not update payment status.")
		return
	}

	inv.PaymentStatus = true
	inv.TotalAmt = inv.Total()

	h.audit.Dispatch(audit.Event{
		Action:   "invoice_paid",
		Entity:   "invoice",
		EntityID: inv.InvoiceNo,
		Metadata: map[string]any{"aptID": inv.AptID},
	})

	httpresp.OK(c, gin.H{
		"message": "Invoice marked as paid",
		"invoice": inv,
	})
}
