package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// MezzoRepository is the vehicle data-access interface.
type MezzoRepository interface {
	Create(ctx context.Context, mezzo *model.Mezzo) error
	GetByID(ctx context.Context, id string) (*model.Mezzo, error)
	Update(ctx context.Context, mezzo *model.Mezzo) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Mezzo, int64, error)
}

type mezzoRepo struct {
	db *gorm.DB
}

// NewMezzoRepo creates the GORM-backed MezzoRepository.
func NewMezzoRepo(db *gorm.DB) MezzoRepository {
	return &mezzoRepo{db: db}
}

func (r *mezzoRepo) Create(ctx context.Context, mezzo *model.Mezzo) error {
	return r.db.WithContext(ctx).Create(mezzo).Error
}

func (r *mezzoRepo) GetByID(ctx context.Context, id string) (*model.Mezzo, error) {
	var mezzo model.Mezzo
	err := r.db.WithContext(ctx).Where("mezzo_id = ?", id).First(&mezzo).Error
	if err != nil {
		return nil, err
	}
	return &mezzo, nil
}

func (r *mezzoRepo) Update(ctx context.Context, mezzo *model.Mezzo) error {
	return r.db.WithContext(ctx).Save(mezzo).Error
}

func (r *mezzoRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("mezzo_id = ?", id).Delete(&model.Mezzo{}).Error
}

func (r *mezzoRepo) List(ctx context.Context, offset, limit int) ([]model.Mezzo, int64, error) {
	var mezzi []model.Mezzo
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Mezzo{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("nome ASC").
		Find(&mezzi).Error; err != nil {
		return nil, 0, err
	}

	return mezzi, total, nil
}
