package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenitymassage/clinic-scheduler/internal/httperr"
	"github.com/serenitymassage/clinic-scheduler/internal/notify"
	"github.com/serenitymassage/clinic-scheduler/internal/storeerr"
	"github.com/serenitymassage/clinic-scheduler/internal/usecase/booking"
)

// HookHandler serves POST /create-appointment, the endpoint the public form
// calls directly. It shares the booking use case with /api/bookings and adds
// the WhatsApp fanout: client confirmation plus admin alert.
type HookHandler struct {
	createBooking *booking.CreateBooking
	whatsapp      *notify.WhatsAppSender
}

func NewHookHandler(createBooking *booking.CreateBooking, whatsapp *notify.WhatsAppSender) *HookHandler {
	return &HookHandler{
		createBooking: createBooking,
		whatsapp:      whatsapp,
	}
}

type createAppointmentRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	WhatsAppNumber string `json:"whatsapp"`
	ServiceType    string `json:"serviceType"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Notes          string `json:"notes"`
}

func (h *HookHandler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	appointment, err := h.createBooking.Execute(c.Request.Context(), booking.CreateBookingInput{
		FullName:    req.FullName,
		Email:       req.Email,
		WhatsApp:    req.WhatsAppNumber,
		ServiceType: req.ServiceType,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		c.JSON(hookErrorStatus(err), gin.H{"error": hookErrorMessage(err)})
		return
	}

	// The row is committed at this point. Notification failure is reported,
	// never rolled back.
	var receipt notify.Receipt
	if h.whatsapp.Enabled() {
		receipt, err = h.whatsapp.NotifyBooking(c.Request.Context(), notify.Booking{
			ClientName:     req.FullName,
			Service:        req.ServiceType,
			Date:           req.Date,
			Time:           req.Time,
			ClientWhatsApp: req.WhatsAppNumber,
		})
		if err != nil {
			log.Printf("hook: whatsapp notification failed for appointment %s: %v", appointment.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":         "Booking saved but notifications could not be sent.",
				"appointmentId": appointment.ID,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"appointmentId": appointment.ID,
		"clientSid":     receipt.ClientSID,
		"adminSid":      receipt.AdminSID,
	})
}

func hookErrorStatus(err error) int {
	for _, code := range []string{"client_insert_failed", "appointment_insert_failed"} {
		if httperr.IsBusiness(err, code) {
			if storeerr.IsUnreachable(httperr.BusinessCause(err, code)) {
				return http.StatusServiceUnavailable
			}
			return http.StatusBadRequest
		}
	}
	return http.StatusBadRequest
}

func hookErrorMessage(err error) string {
	switch {
	case httperr.IsBusiness(err, "missing_required_fields"):
		return "Missing required fields."
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		return "Invalid date or time."
	case httperr.IsBusiness(err, "client_insert_failed"):
		return storeerr.Message(httperr.BusinessCause(err, "client_insert_failed"))
	case httperr.IsBusiness(err, "appointment_insert_failed"):
		return storeerr.Message(httperr.BusinessCause(err, "appointment_insert_failed"))
	default:
		return "Could not create the appointment."
	}
}
