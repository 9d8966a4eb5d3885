package handlers

import (
	"context"
	"errors"
	"net"

	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/storeerr"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory domain.Repository with per-method error taps.
type fakeRepo struct {
	clients      []models.Client
	appointments []models.Appointment
	services     []models.Service

	createClientErr      error
	createAppointmentErr error
	listAppointmentsErr  error
	upsertServiceErr     error
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) CreateClient(ctx context.Context, client *models.Client) error {
	if f.createClientErr != nil {
		return f.createClientErr
	}
	if client.ID == "" {
		client.ID = "client-1"
	}
	f.clients = append(f.clients, *client)
	return nil
}

func (f *fakeRepo) GetClient(ctx context.Context, id string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].ID == id {
			return &f.clients[i], nil
		}
	}
	return nil, storeerr.Classify(gorm.ErrRecordNotFound)
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.createAppointmentErr != nil {
		return f.createAppointmentErr
	}
	if ap.ID == "" {
		ap.ID = "appt-1"
	}
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	if f.listAppointmentsErr != nil {
		return nil, f.listAppointmentsErr
	}
	return f.appointments, nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			return &f.appointments[i], nil
		}
	}
	return nil, storeerr.Classify(gorm.ErrRecordNotFound)
}

func (f *fakeRepo) UpdateAppointmentStatus(ctx context.Context, id string, status domain.Status) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = string(status)
			return nil
		}
	}
	return storeerr.Classify(gorm.ErrRecordNotFound)
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id string) error {
	kept := f.appointments[:0]
	for _, ap := range f.appointments {
		if ap.ID != id {
			kept = append(kept, ap)
		}
	}
	f.appointments = kept
	return nil
}

func (f *fakeRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeRepo) UpsertService(ctx context.Context, svc *models.Service) error {
	if f.upsertServiceErr != nil {
		return f.upsertServiceErr
	}
	for i := range f.services {
		if f.services[i].ID == svc.ID {
			f.services[i] = *svc
			return nil
		}
	}
	f.services = append(f.services, *svc)
	return nil
}

// unreachableErr classifies like a store that cannot be dialed.
func unreachableErr() error {
	return storeerr.Classify(&net.OpError{
		Op:  "dial",
		Net: "tcp",
		Err: errors.New("connection refused"),
	})
}
