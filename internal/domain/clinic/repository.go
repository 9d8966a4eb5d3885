package clinic

import (
	"context"

	"github.com/serenitymassage/clinic-scheduler/internal/models"
)

// Repository is the store boundary for the clinic collections. Errors coming
// out of implementations are classified (storeerr) so callers can distinguish
// an unreachable store from a rejected operation.
type Repository interface {
	// -------- Client --------
	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	GetClient(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListAppointments returns all appointments joined with their client,
	// newest first.
	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		id string,
		status Status,
	) error

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	// -------- Service catalog --------
	// ListServices returns the stored catalog ordered by creation time.
	ListServices(
		ctx context.Context,
	) ([]models.Service, error)

	UpsertService(
		ctx context.Context,
		svc *models.Service,
	) error
}
