package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// TrasportoRepository is the transport data-access interface.
type TrasportoRepository interface {
	Create(ctx context.Context, trasporto *model.Trasporto) error
	GetByID(ctx context.Context, id string) (*model.Trasporto, error)
	Update(ctx context.Context, trasporto *model.Trasporto) error
	Delete(ctx context.Context, id string) error
	DeleteByAttivita(ctx context.Context, attivitaID string) error
	ListByUserDateRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]model.Trasporto, error)
}

type trasportoRepo struct {
	db *gorm.DB
}

// NewTrasportoRepo creates the GORM-backed TrasportoRepository.
func NewTrasportoRepo(db *gorm.DB) TrasportoRepository {
	return &trasportoRepo{db: db}
}

func (r *trasportoRepo) Create(ctx context.Context, trasporto *model.Trasporto) error {
	return r.db.WithContext(ctx).Create(trasporto).Error
}

func (r *trasportoRepo) GetByID(ctx context.Context, id string) (*model.Trasporto, error) {
	var trasporto model.Trasporto
	err := r.db.WithContext(ctx).
		Preload("Partenza").
		Preload("Destinazione").
		Preload("Mezzo").
		Preload("MezzoTrasportato").
		Where("trasporto_id = ?", id).
		First(&trasporto).Error
	if err != nil {
		return nil, err
	}
	return &trasporto, nil
}

func (r *trasportoRepo) Update(ctx context.Context, trasporto *model.Trasporto) error {
	return r.db.WithContext(ctx).
		Omit("Partenza", "Destinazione", "Mezzo", "MezzoTrasportato").
		Save(trasporto).Error
}

func (r *trasportoRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("trasporto_id = ?", id).Delete(&model.Trasporto{}).Error
}

func (r *trasportoRepo) DeleteByAttivita(ctx context.Context, attivitaID string) error {
	return r.db.WithContext(ctx).Where("attivita_id = ?", attivitaID).Delete(&model.Trasporto{}).Error
}

func (r *trasportoRepo) ListByUserDateRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]model.Trasporto, error) {
	var records []model.Trasporto
	err := r.db.WithContext(ctx).
		Joins("JOIN attivita ON attivita.attivita_id = trasporti.attivita_id").
		Where("trasporti.user_id = ? AND attivita.data >= ? AND attivita.data < ?", userID, start, endExclusive).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
