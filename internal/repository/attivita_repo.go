package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// AttivitaListFilters narrows the work-day list. End dates are inclusive.
type AttivitaListFilters struct {
	UserID     string
	StartDate  *time.Time
	EndDate    *time.Time
	Verificata *bool
}

// AttivitaRepository is the work-day data-access interface.
type AttivitaRepository interface {
	Create(ctx context.Context, attivita *model.Attivita) error
	GetByID(ctx context.Context, id string) (*model.Attivita, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.Attivita, error)
	Update(ctx context.Context, attivita *model.Attivita) error
	// SetVerificata flips only the verified flag and the update audit fields.
	SetVerificata(ctx context.Context, id string, verificata bool, updatedBy string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *AttivitaListFilters, offset, limit int) ([]model.Attivita, int64, error)
}

type attivitaRepo struct {
	db *gorm.DB
}

// NewAttivitaRepo creates the GORM-backed AttivitaRepository.
func NewAttivitaRepo(db *gorm.DB) AttivitaRepository {
	return &attivitaRepo{db: db}
}

func (r *attivitaRepo) Create(ctx context.Context, attivita *model.Attivita) error {
	return r.db.WithContext(ctx).Create(attivita).Error
}

func (r *attivitaRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Interazioni").
		Preload("Interazioni.Cantiere").
		Preload("Interazioni.Mezzo").
		Preload("Interazioni.Attrezzatura").
		Preload("Trasporti").
		Preload("Trasporti.Partenza").
		Preload("Trasporti.Destinazione").
		Preload("Trasporti.Mezzo").
		Preload("Trasporti.MezzoTrasportato").
		Preload("Assenze")
}

func (r *attivitaRepo) GetByID(ctx context.Context, id string) (*model.Attivita, error) {
	var attivita model.Attivita
	err := r.preloaded(ctx).Where("attivita_id = ?", id).First(&attivita).Error
	if err != nil {
		return nil, err
	}
	return &attivita, nil
}

func (r *attivitaRepo) GetByExternalID(ctx context.Context, externalID string) (*model.Attivita, error) {
	var attivita model.Attivita
	err := r.preloaded(ctx).Where("external_id = ?", externalID).First(&attivita).Error
	if err != nil {
		return nil, err
	}
	return &attivita, nil
}

func (r *attivitaRepo) Update(ctx context.Context, attivita *model.Attivita) error {
	return r.db.WithContext(ctx).
		Omit("User", "Interazioni", "Trasporti", "Assenze").
		Save(attivita).Error
}

func (r *attivitaRepo) SetVerificata(ctx context.Context, id string, verificata bool, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Attivita{}).
		Where("attivita_id = ?", id).
		Updates(map[string]interface{}{
			"verificata": verificata,
			"updated_at": time.Now(),
			"updated_by": updatedBy,
		}).Error
}

func (r *attivitaRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("attivita_id = ?", id).Delete(&model.Attivita{}).Error
}

func (r *attivitaRepo) List(ctx context.Context, filters *AttivitaListFilters, offset, limit int) ([]model.Attivita, int64, error) {
	var records []model.Attivita
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attivita{})
	if filters != nil {
		if filters.UserID != "" {
			db = db.Where("user_id = ?", filters.UserID)
		}
		if filters.StartDate != nil {
			db = db.Where("data >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			// inclusive end via exclusive bound at the next midnight
			db = db.Where("data < ?", filters.EndDate.AddDate(0, 0, 1))
		}
		if filters.Verificata != nil {
			db = db.Where("verificata = ?", *filters.Verificata)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("User").
		Preload("Interazioni").
		Preload("Interazioni.Cantiere").
		Preload("Interazioni.Mezzo").
		Preload("Interazioni.Attrezzatura").
		Preload("Trasporti").
		Preload("Trasporti.Partenza").
		Preload("Trasporti.Destinazione").
		Preload("Trasporti.Mezzo").
		Preload("Trasporti.MezzoTrasportato").
		Preload("Assenze").
		Offset(offset).Limit(limit).
		Order("data DESC, created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
