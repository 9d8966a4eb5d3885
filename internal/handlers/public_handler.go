package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenitymassage/clinic-scheduler/internal/catalog"
	"github.com/serenitymassage/clinic-scheduler/internal/httperr"
	"github.com/serenitymassage/clinic-scheduler/internal/httpresp"
	"github.com/serenitymassage/clinic-scheduler/internal/storeerr"
	"github.com/serenitymassage/clinic-scheduler/internal/usecase/booking"
)

type PublicHandler struct {
	catalog       *catalog.Provider
	createBooking *booking.CreateBooking
}

func NewPublicHandler(provider *catalog.Provider, createBooking *booking.CreateBooking) *PublicHandler {
	return &PublicHandler{
		catalog:       provider,
		createBooking: createBooking,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	WhatsAppNumber string `json:"whatsapp"`
	ServiceType    string `json:"serviceType"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Notes          string `json:"notes"`
}

// --------- Handlers ---------

// ListServices never fails: the compiled catalog backs every store outage.
func (h *PublicHandler) ListServices(c *gin.Context) {
	services := h.catalog.List(c.Request.Context())
	httpresp.List(c, services)
}

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
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
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"appointment": appointment,
	})
}

// writeBookingError maps booking use case failures onto the wire. Store
// outages get the operator hint; everything else keeps its business code.
func writeBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "missing_required_fields"):
		httperr.BadRequest(c, "missing_required_fields", "Name, email, WhatsApp number, service, date and time are required.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Date must be YYYY-MM-DD and time must be HH:MM.")
	case httperr.IsBusiness(err, "client_insert_failed"):
		writeStoreError(c, "client_insert_failed", httperr.BusinessCause(err, "client_insert_failed"))
	case httperr.IsBusiness(err, "appointment_insert_failed"):
		writeStoreError(c, "appointment_insert_failed", httperr.BusinessCause(err, "appointment_insert_failed"))
	default:
		httperr.Internal(c, "booking_failed", "Could not create the booking.")
	}
}

func writeStoreError(c *gin.Context, code string, cause error) {
	if storeerr.IsUnreachable(cause) {
		httperr.Unavailable(c, code, storeerr.UnreachableHint)
		return
	}
	httperr.Internal(c, code, storeerr.Message(cause))
}
