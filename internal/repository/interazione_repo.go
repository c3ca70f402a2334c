package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// InterazioneRepository is the job-site time-span data-access interface.
type InterazioneRepository interface {
	Create(ctx context.Context, interazione *model.Interazione) error
	GetByID(ctx context.Context, id string) (*model.Interazione, error)
	Update(ctx context.Context, interazione *model.Interazione) error
	Delete(ctx context.Context, id string) error
	DeleteByAttivita(ctx context.Context, attivitaID string) error
	// ListByUserDateRange returns the records whose parent work day falls in
	// [start, endExclusive).
	ListByUserDateRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]model.Interazione, error)
}

type interazioneRepo struct {
	db *gorm.DB
}

// NewInterazioneRepo creates the GORM-backed InterazioneRepository.
func NewInterazioneRepo(db *gorm.DB) InterazioneRepository {
	return &interazioneRepo{db: db}
}

func (r *interazioneRepo) Create(ctx context.Context, interazione *model.Interazione) error {
	return r.db.WithContext(ctx).Create(interazione).Error
}

func (r *interazioneRepo) GetByID(ctx context.Context, id string) (*model.Interazione, error) {
	var interazione model.Interazione
	err := r.db.WithContext(ctx).
		Preload("Cantiere").
		Preload("Mezzo").
		Preload("Attrezzatura").
		Where("interazione_id = ?", id).
		First(&interazione).Error
	if err != nil {
		return nil, err
	}
	return &interazione, nil
}

func (r *interazioneRepo) Update(ctx context.Context, interazione *model.Interazione) error {
	return r.db.WithContext(ctx).
		Omit("Cantiere", "Mezzo", "Attrezzatura").
		Save(interazione).Error
}

func (r *interazioneRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("interazione_id = ?", id).Delete(&model.Interazione{}).Error
}

func (r *interazioneRepo) DeleteByAttivita(ctx context.Context, attivitaID string) error {
	return r.db.WithContext(ctx).Where("attivita_id = ?", attivitaID).Delete(&model.Interazione{}).Error
}

func (r *interazioneRepo) ListByUserDateRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]model.Interazione, error) {
	var records []model.Interazione
	err := r.db.WithContext(ctx).
		Joins("JOIN attivita ON attivita.attivita_id = interazioni.attivita_id").
		Where("interazioni.user_id = ? AND attivita.data >= ? AND attivita.data < ?", userID, start, endExclusive).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
