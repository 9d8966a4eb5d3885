package booking

import (
	"context"
	"strings"
	"time"

	"github.com/serenitymassage/clinic-scheduler/internal/audit"
	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/httperr"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	FullName string
	Email    string
	WhatsApp string

	ServiceType string

	Date  string
	Time  string
	Notes string
}

// changePublisher is what the use case needs from the realtime broker.
type changePublisher interface {
	Publish(ctx context.Context, ev realtime.Event)
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking performs the two-record intake write: a fresh Client row,
// then an Appointment referencing it. The service type is intentionally not
// checked against the catalog; only the store's own constraints reject a bad
// reference.
type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	broker changePublisher
}

func NewCreateBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	broker changePublisher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  auditDispatcher,
		broker: broker,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields (notes stays optional)
	// --------------------------------------------------
	if strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.WhatsApp) == "" ||
		strings.TrimSpace(in.ServiceType) == "" ||
		in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}

	// --------------------------------------------------
	// 2. Date / time must be zero-padded ISO strings;
	//    the dashboard buckets them lexically.
	// --------------------------------------------------
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Client record
	// --------------------------------------------------
	client := &models.Client{
		FullName:       strings.TrimSpace(in.FullName),
		WhatsAppNumber: strings.TrimSpace(in.WhatsApp),
		Email:          strings.TrimSpace(in.Email),
	}

	if err := uc.repo.CreateClient(ctx, client); err != nil {
		return nil, httperr.ErrBusinessWrap("client_insert_failed", err)
	}

	// --------------------------------------------------
	// 4. Appointment record (status always pending).
	//    A failure here leaves the client row behind:
	//    there is no compensating delete.
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:        client.ID,
		ServiceType:     in.ServiceType,
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, httperr.ErrBusinessWrap("appointment_insert_failed", err)
	}
	ap.Client = *client

	// --------------------------------------------------
	// 5. Audit + change fanout
	// --------------------------------------------------
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionBookingCreated,
			Entity:   "appointment",
			EntityID: ap.ID,
			Metadata: map[string]string{"service_type": ap.ServiceType},
		})
	}

	if uc.broker != nil {
		uc.broker.Publish(ctx, realtime.Event{
			Collection: realtime.CollectionAppointments,
			Action:     realtime.ActionInsert,
			ID:         ap.ID,
		})
	}

	return ap, nil
}
