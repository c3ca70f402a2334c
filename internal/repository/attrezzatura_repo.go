package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// AttrezzaturaRepository is the tool data-access interface.
type AttrezzaturaRepository interface {
	Create(ctx context.Context, attrezzatura *model.Attrezzatura) error
	GetByID(ctx context.Context, id string) (*model.Attrezzatura, error)
	Update(ctx context.Context, attrezzatura *model.Attrezzatura) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Attrezzatura, int64, error)
}

type attrezzaturaRepo struct {
	db *gorm.DB
}

// NewAttrezzaturaRepo creates the GORM-backed AttrezzaturaRepository.
func NewAttrezzaturaRepo(db *gorm.DB) AttrezzaturaRepository {
	return &attrezzaturaRepo{db: db}
}

func (r *attrezzaturaRepo) Create(ctx context.Context, attrezzatura *model.Attrezzatura) error {
	return r.db.WithContext(ctx).Create(attrezzatura).Error
}

func (r *attrezzaturaRepo) GetByID(ctx context.Context, id string) (*model.Attrezzatura, error) {
	var attrezzatura model.Attrezzatura
	err := r.db.WithContext(ctx).Where("attrezzatura_id = ?", id).First(&attrezzatura).Error
	if err != nil {
		return nil, err
	}
	return &attrezzatura, nil
}

func (r *attrezzaturaRepo) Update(ctx context.Context, attrezzatura *model.Attrezzatura) error {
	return r.db.WithContext(ctx).Save(attrezzatura).Error
}

func (r *attrezzaturaRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("attrezzatura_id = ?", id).Delete(&model.Attrezzatura{}).Error
}

func (r *attrezzaturaRepo) List(ctx context.Context, offset, limit int) ([]model.Attrezzatura, int64, error) {
	var attrezzature []model.Attrezzatura
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attrezzatura{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("nome ASC").
		Find(&attrezzature).Error; err != nil {
		return nil, 0, err
	}

	return attrezzature, total, nil
}
