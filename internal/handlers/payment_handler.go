package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/httpresp"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/payment"
)

type PaymentHandler struct {
	db      *gorm.DB
	gateway payment.Gateway
}

func NewPaymentHandler(db *gorm.DB, gateway payment.Gateway) *PaymentHandler {
	return &PaymentHandler{db: db, gateway: gateway}
}

type createOrderRequest struct {
	AptID      string `json:"aptID" binding:"required"`
	PayerEmail string `json:"payerEmail"`
}

// CreateOrder opens a hosted checkout for the appointment's invoice and
// returns the redirect URL.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
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

	checkout, err := h.gateway.CreateCheckout(c.Request.Context(), &inv, req.PayerEmail)
	if err != nil {
		if errors.Is(err, payment.ErrDisabled) {
			httperr.Write(c, http.StatusServiceUnavailable, "payment_disabled",
				"Online payment is not configured.")
			return
		}
		httperr.Internal(c, "order_create_failed", "Could not create payment order.")
		return
	}

	inv.TotalAmt = inv.Total()

	httpresp.OK(c, gin.H{
		"message":  "Payment order created successfully",
		"checkout": checkout,
		"total":    inv.TotalAmt,
	})
}
