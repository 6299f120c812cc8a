package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindCreateAppointment(t *testing.T, body string) (createAppointmentRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(
		http.MethodPost, "/api/appointments/create", strings.NewReader(body),
	)
	c.Request.Header.Set("Content-Type", "application/json")

	var req createAppointmentRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

// The booking body uses the client-facing keys date and slot, not the
// storage names the appointment record is rendered with.
func TestCreateAppointmentRequestBinding(t *testing.T) {
	t.Run("documented body binds", func(t *testing.T) {
		req, err := bindCreateAppointment(t, `{
			"pID": "p001",
			"doctorId": "d001",
			"date": "2026-09-10",
			"slot": "09:20",
			"reason": "Checkup"
		}`)
		require.NoError(t, err)
		assert.Equal(t, "p001", req.PatientID)
		assert.Equal(t, "d001", req.DoctorID)
		assert.Equal(t, "2026-09-10", req.Date)
		assert.Equal(t, "09:20", req.Slot)
		assert.Equal(t, "Checkup", req.Reason)
	})

	t.Run("reason is optional", func(t *testing.T) {
		_, err := bindCreateAppointment(t, `{
			"pID": "p001",
			"doctorId": "d001",
			"date": "2026-09-10",
			"slot": "09:20"
		}`)
		assert.NoError(t, err)
	})

	t.Run("missing date and slot rejected", func(t *testing.T) {
		_, err := bindCreateAppointment(t, `{
			"pID": "p001",
			"doctorId": "d001"
		}`)
		assert.Error(t, err)
	})
}
