package moderation

import (
	"context"

	"github.com/serenitymassage/clinic-scheduler/internal/audit"
	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/realtime"
)

// DeleteAppointment removes a row unconditionally and irreversibly. The
// referenced client is left untouched; deletion never cascades.
type DeleteAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	broker changePublisher
}

func NewDeleteAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	broker changePublisher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:   repo,
		audit:  auditDispatcher,
		broker: broker,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	operatorID *string,
	appointmentID string,
) error {

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			UserID:   operatorID,
			Action:   audit.ActionAppointmentDeleted,
			Entity:   "appointment",
			EntityID: appointmentID,
		})
	}

	if uc.broker != nil {
		uc.broker.Publish(ctx, realtime.Event{
			Collection: realtime.CollectionAppointments,
			Action:     realtime.ActionDelete,
			ID:         appointmentID,
		})
	}

	return nil
}
