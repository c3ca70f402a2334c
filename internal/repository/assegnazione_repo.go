package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
)

// AssegnazioneRepository manages the worker↔job-site and worker↔vehicle
// assignment edges.
type AssegnazioneRepository interface {
	// HasCantiere reports whether the worker is assigned to the job site.
	HasCantiere(ctx context.Context, userID, cantiereID string) (bool, error)
	// HasMezzo reports whether the worker is assigned to the vehicle.
	HasMezzo(ctx context.Context, userID, mezzoID string) (bool, error)
	// ReplaceCantieri swaps the worker's full job-site assignment set.
	ReplaceCantieri(ctx context.Context, userID string, cantiereIDs []string) error
	// ReplaceMezzi swaps the worker's full vehicle assignment set.
	ReplaceMezzi(ctx context.Context, userID string, mezzoIDs []string) error
}

type assegnazioneRepo struct {
	db *gorm.DB
}

// NewAssegnazioneRepo creates the GORM-backed AssegnazioneRepository.
func NewAssegnazioneRepo(db *gorm.DB) AssegnazioneRepository {
	return &assegnazioneRepo{db: db}
}

func (r *assegnazioneRepo) HasCantiere(ctx context.Context, userID, cantiereID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserCantiere{}).
		Where("user_id = ? AND cantiere_id = ?", userID, cantiereID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assegnazioneRepo) HasMezzo(ctx context.Context, userID, mezzoID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserMezzo{}).
		Where("user_id = ? AND mezzo_id = ?", userID, mezzoID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assegnazioneRepo) ReplaceCantieri(ctx context.Context, userID string, cantiereIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserCantiere{}).Error; err != nil {
			return err
		}
		for _, id := range cantiereIDs {
			edge := model.UserCantiere{UserID: userID, CantiereID: id}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *assegnazioneRepo) ReplaceMezzi(ctx context.Context, userID string, mezzoIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserMezzo{}).Error; err != nil {
			return err
		}
		for _, id := range mezzoIDs {
			edge := model.UserMezzo{UserID: userID, MezzoID: id}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
