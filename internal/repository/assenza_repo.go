package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// AssenzaRepository is the absence data-access interface.
type AssenzaRepository interface {
	Create(ctx context.Context, assenza *model.Assenza) error
	GetByID(ctx context.Context, id string) (*model.Assenza, error)
	Update(ctx context.Context, assenza *model.Assenza) error
	Delete(ctx context.Context, id string) error
	DeleteByAttivita(ctx context.Context, attivitaID string) error
	ListByUserDateRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]model.Assenza, error)
}

type assenzaRepo struct {
	db *gorm.DB
}

// NewAssenzaRepo creates the GORM-backed AssenzaRepository.
func NewAssenzaRepo(db *gorm.DB) AssenzaRepository {
	return &assenzaRepo{db: db}
}

func (r *assenzaRepo) Create(ctx context.Context, assenza *model.Assenza) error {
	return r.db.WithContext(ctx).Create(assenza).Error
}

func (r *assenzaRepo) GetByID(ctx context.Context, id string) (*model.Assenza, error) {
	var assenza model.Assenza
	err := r.db.WithContext(ctx).Where("assenza_id = ?", id).First(&assenza).Error
	if err != nil {
		return nil, err
	}
	return &assenza, nil
}

func (r *assenzaRepo) Update(ctx context.Context, assenza *model.Assenza) error {
	return r.db.WithContext(ctx).Save(assenza).Error
}

func (r *assenzaRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("assenza_id = ?", id).Delete(&model.Assenza{}).Error
}

func (r *assenzaRepo) DeleteByAttivita(ctx context.Context, attivitaID string) error {
	return r.db.WithContext(ctx).Where("attivita_id = ?", attivitaID).Delete(&model.Assenza{}).Error
}

func (r *assenzaRepo) ListByUserDateRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]model.Assenza, error) {
	var records []model.Assenza
	err := r.db.WithContext(ctx).
		Joins("JOIN attivita ON attivita.attivita_id = assenze.attivita_id").
		Where("assenze.user_id = ? AND attivita.data >= ? AND attivita.data < ?", userID, start, endExclusive).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
