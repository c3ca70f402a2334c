package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// CantiereRepository is the job-site data-access interface.
type CantiereRepository interface {
	Create(ctx context.Context, cantiere *model.Cantiere) error
	GetByID(ctx context.Context, id string) (*model.Cantiere, error)
	Update(ctx context.Context, cantiere *model.Cantiere) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, includeChiusi bool, offset, limit int) ([]model.Cantiere, int64, error)
}

type cantiereRepo struct {
	db *gorm.DB
}

// NewCantiereRepo creates the GORM-backed CantiereRepository.
func NewCantiereRepo(db *gorm.DB) CantiereRepository {
	return &cantiereRepo{db: db}
}

func (r *cantiereRepo) Create(ctx context.Context, cantiere *model.Cantiere) error {
	return r.db.WithContext(ctx).Create(cantiere).Error
}

func (r *cantiereRepo) GetByID(ctx context.Context, id string) (*model.Cantiere, error) {
	var cantiere model.Cantiere
	err := r.db.WithContext(ctx).Where("cantiere_id = ?", id).First(&cantiere).Error
	if err != nil {
		return nil, err
	}
	return &cantiere, nil
}

func (r *cantiereRepo) Update(ctx context.Context, cantiere *model.Cantiere) error {
	return r.db.WithContext(ctx).Save(cantiere).Error
}

func (r *cantiereRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("cantiere_id = ?", id).Delete(&model.Cantiere{}).Error
}

func (r *cantiereRepo) List(ctx context.Context, includeChiusi bool, offset, limit int) ([]model.Cantiere, int64, error) {
	var cantieri []model.Cantiere
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Cantiere{})
	if !includeChiusi {
		db = db.Where("aperto = TRUE")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("nome ASC").
		Find(&cantieri).Error; err != nil {
		return nil, 0, err
	}

	return cantieri, total, nil
}
