package moderation

import (
	"context"

	"github.com/serenitymassage/clinic-scheduler/internal/audit"
	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/realtime"
)

type changePublisher interface {
	Publish(ctx context.Context, ev realtime.Event)
}

// SetStatus moves an appointment to any of the known statuses. There is no
// transition graph: pending→completed or cancelled→confirmed are both legal.
type SetStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	broker changePublisher
}

func NewSetStatus(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	broker changePublisher,
) *SetStatus {
	return &SetStatus{
		repo:   repo,
		audit:  auditDispatcher,
		broker: broker,
	}
}

func (uc *SetStatus) Execute(
	ctx context.Context,
	operatorID *string,
	appointmentID string,
	status domain.Status,
) error {

	if err := domain.ValidateStatus(status); err != nil {
		return err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, appointmentID, status); err != nil {
		return err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			UserID:   operatorID,
			Action:   audit.ActionAppointmentStatus,
			Entity:   "appointment",
			EntityID: appointmentID,
			Metadata: map[string]string{"status": string(status)},
		})
	}

	if uc.broker != nil {
		uc.broker.Publish(ctx, realtime.Event{
			Collection: realtime.CollectionAppointments,
			Action:     realtime.ActionUpdate,
			ID:         appointmentID,
		})
	}

	return nil
}
