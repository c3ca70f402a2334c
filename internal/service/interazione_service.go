package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"
)

// ErrInterazioneNotFound is returned when a job-site time span does not exist
// or is not visible to the caller.
var ErrInterazioneNotFound = errors.New("interazione not found")

// InterazioneService handles job-site time spans inside a work day.
type InterazioneService interface {
	Create(ctx context.Context, attivitaID string, req *dto.CreateInterazioneRequest, callerID, callerRole string) (*dto.InterazioneResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateInterazioneRequest, callerID, callerRole string) (*dto.InterazioneResponse, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error
}

type interazioneService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInterazioneService creates the InterazioneService.
func NewInterazioneService(repo *repository.Repository, logger *zap.Logger) InterazioneService {
	return &interazioneService{repo: repo, logger: logger}
}

func (s *interazioneService) Create(ctx context.Context, attivitaID string, req *dto.CreateInterazioneRequest, callerID, callerRole string) (*dto.InterazioneResponse, error) {
	attivita, err := guardAttivitaWrite(ctx, s.repo, attivitaID, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	if err := validateInterazioneRefs(ctx, s.repo, req.CantiereID, req.MezzoID, req.AttrezzaturaID); err != nil {
		return nil, err
	}
	tempo, err := durata.FromOreMinuti(req.Ore, req.Minuti)
	if err != nil {
		return nil, err
	}

	record := &model.Interazione{
		AttivitaID:     attivita.AttivitaID,
		UserID:         attivita.UserID,
		CantiereID:     req.CantiereID,
		MezzoID:        req.MezzoID,
		AttrezzaturaID: req.AttrezzaturaID,
		Ore:            req.Ore,
		Minuti:         req.Minuti,
		TempoTotale:    tempo,
		Note:           req.Note,
		BaseModel:      model.BaseModel{CreatedBy: &callerID},
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Interazione.Create(ctx, record); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, attivita.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("interazione create failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Interazione.GetByID(ctx, record.InterazioneID)
	if err != nil {
		return nil, err
	}
	return toInterazioneResponse(created), nil
}

func (s *interazioneService) Update(ctx context.Context, id string, req *dto.UpdateInterazioneRequest, callerID, callerRole string) (*dto.InterazioneResponse, error) {
	record, err := s.repo.Interazione.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterazioneNotFound
		}
		return nil, err
	}
	if _, err := guardAttivitaWrite(ctx, s.repo, record.AttivitaID, callerID, callerRole); err != nil {
		if errors.Is(err, ErrAttivitaNotFound) {
			return nil, ErrInterazioneNotFound
		}
		return nil, err
	}

	if req.CantiereID != nil {
		record.CantiereID = *req.CantiereID
	}
	if req.MezzoID != nil {
		record.MezzoID = req.MezzoID
	}
	if req.AttrezzaturaID != nil {
		record.AttrezzaturaID = req.AttrezzaturaID
	}
	if err := validateInterazioneRefs(ctx, s.repo, record.CantiereID, record.MezzoID, record.AttrezzaturaID); err != nil {
		return nil, err
	}
	if req.Ore != nil {
		record.Ore = *req.Ore
	}
	if req.Minuti != nil {
		record.Minuti = *req.Minuti
	}
	if req.Note != nil {
		record.Note = *req.Note
	}

	tempo, err := durata.FromOreMinuti(record.Ore, record.Minuti)
	if err != nil {
		return nil, err
	}
	record.TempoTotale = tempo
	record.UpdatedBy = &callerID

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Interazione.Update(ctx, record); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, record.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("interazione update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Interazione.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInterazioneResponse(updated), nil
}

func (s *interazioneService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	record, err := s.repo.Interazione.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInterazioneNotFound
		}
		return err
	}
	if _, err := guardAttivitaWrite(ctx, s.repo, record.AttivitaID, callerID, callerRole); err != nil {
		if errors.Is(err, ErrAttivitaNotFound) {
			return ErrInterazioneNotFound
		}
		return err
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Interazione.Delete(ctx, id); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, record.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("interazione delete failed", zap.String("id", id), zap.Error(err))
	}
	return err
}

// validateInterazioneRefs checks that every entity a time span points at
// exists. Missing references surface as the matching not-found sentinel.
func validateInterazioneRefs(ctx context.Context, repo *repository.Repository, cantiereID string, mezzoID, attrezzaturaID *string) error {
	if _, err := repo.Cantiere.GetByID(ctx, cantiereID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCantiereNotFound
		}
		return err
	}
	if mezzoID != nil {
		if _, err := repo.Mezzo.GetByID(ctx, *mezzoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMezzoNotFound
			}
			return err
		}
	}
	if attrezzaturaID != nil {
		if _, err := repo.Attrezzatura.GetByID(ctx, *attrezzaturaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttrezzaturaNotFound
			}
			return err
		}
	}
	return nil
}
