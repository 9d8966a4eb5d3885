package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/serenitymassage/clinic-scheduler/internal/domain/clinic"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
	"github.com/serenitymassage/clinic-scheduler/internal/storeerr"
)

type ClinicGormRepository struct {
	db *gorm.DB
}

func NewClinicGormRepository(db *gorm.DB) *ClinicGormRepository {
	return &ClinicGormRepository{db: db}
}

var _ domain.Repository = (*ClinicGormRepository)(nil)

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ClinicGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return storeerr.Classify(r.db.WithContext(ctx).Create(client).Error)
}

func (r *ClinicGormRepository) GetClient(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, storeerr.Classify(err)
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *ClinicGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return storeerr.Classify(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *ClinicGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, storeerr.Classify(err)
	}
	return apps, nil
}

func (r *ClinicGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, storeerr.Classify(err)
	}
	return &ap, nil
}

func (r *ClinicGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id string,
	status domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", string(status))

	if res.Error != nil {
		return storeerr.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return storeerr.Classify(gorm.ErrRecordNotFound)
	}
	return nil
}

// DeleteAppointment is idempotent: deleting an already-absent row succeeds,
// matching delete-by-filter semantics.
func (r *ClinicGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {
	return storeerr.Classify(
		r.db.WithContext(ctx).
			Where("id = ?", id).
			Delete(&models.Appointment{}).Error,
	)
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *ClinicGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		return nil, storeerr.Classify(err)
	}
	return services, nil
}

func (r *ClinicGormRepository) UpsertService(
	ctx context.Context,
	svc *models.Service,
) error {
	return storeerr.Classify(
		r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "duration", "price", "icon", "description", "benefits_raw", "updated_at",
				}),
			}).
			Create(svc).Error,
	)
}
