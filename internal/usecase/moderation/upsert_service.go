package moderation

import (
	"context"
	"strings"

	"github.com/serenitymassage/clinic-scheduler/internal/audit"
	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/httperr"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/realtime"
)

// UpsertService writes a catalog entry, keyed by its slug id.
type UpsertService struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	broker changePublisher
}

func NewUpsertService(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	broker changePublisher,
) *UpsertService {
	return &UpsertService{
		repo:   repo,
		audit:  auditDispatcher,
		broker: broker,
	}
}

func (uc *UpsertService) Execute(
	ctx context.Context,
	operatorID *string,
	svc *models.Service,
) error {

	svc.ID = strings.ToLower(strings.TrimSpace(svc.ID))
	if svc.ID == "" || strings.TrimSpace(svc.Name) == "" {
		return httperr.ErrBusiness("missing_service_fields")
	}

	if err := uc.repo.UpsertService(ctx, svc); err != nil {
		return err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			UserID:   operatorID,
			Action:   audit.ActionServiceUpserted,
			Entity:   "service",
			EntityID: svc.ID,
		})
	}

	if uc.broker != nil {
		uc.broker.Publish(ctx, realtime.Event{
			Collection: realtime.CollectionServices,
			Action:     realtime.ActionUpdate,
			ID:         svc.ID,
		})
	}

	return nil
}
