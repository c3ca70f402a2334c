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

var (
	ErrAssenzaNotFound     = errors.New("assenza not found")
	ErrTipoAssenzaInvalido = errors.New("invalid assenza tipo")
)

// AssenzaService handles typed absences inside a work day.
type AssenzaService interface {
	Create(ctx context.Context, attivitaID string, req *dto.CreateAssenzaRequest, callerID, callerRole string) (*dto.AssenzaResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssenzaRequest, callerID, callerRole string) (*dto.AssenzaResponse, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error
}

type assenzaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssenzaService creates the AssenzaService.
func NewAssenzaService(repo *repository.Repository, logger *zap.Logger) AssenzaService {
	return &assenzaService{repo: repo, logger: logger}
}

func (s *assenzaService) Create(ctx context.Context, attivitaID string, req *dto.CreateAssenzaRequest, callerID, callerRole string) (*dto.AssenzaResponse, error) {
	attivita, err := guardAttivitaWrite(ctx, s.repo, attivitaID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	record, err := buildAssenza(req, attivita.UserID, callerID)
	if err != nil {
		return nil, err
	}
	record.AttivitaID = attivita.AttivitaID

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Assenza.Create(ctx, record); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, attivita.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("assenza create failed", zap.Error(err))
		return nil, err
	}

	return toAssenzaResponse(record), nil
}

func (s *assenzaService) Update(ctx context.Context, id string, req *dto.UpdateAssenzaRequest, callerID, callerRole string) (*dto.AssenzaResponse, error) {
	record, err := s.repo.Assenza.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssenzaNotFound
		}
		return nil, err
	}
	if _, err := guardAttivitaWrite(ctx, s.repo, record.AttivitaID, callerID, callerRole); err != nil {
		if errors.Is(err, ErrAttivitaNotFound) {
			return nil, ErrAssenzaNotFound
		}
		return nil, err
	}

	if req.Tipo != nil {
		if !model.IsValidTipoAssenza(*req.Tipo) {
			return nil, ErrTipoAssenzaInvalido
		}
		record.Tipo = *req.Tipo
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
		if err := txRepo.Assenza.Update(ctx, record); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, record.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("assenza update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAssenzaResponse(record), nil
}

func (s *assenzaService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	record, err := s.repo.Assenza.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssenzaNotFound
		}
		return err
	}
	if _, err := guardAttivitaWrite(ctx, s.repo, record.AttivitaID, callerID, callerRole); err != nil {
		if errors.Is(err, ErrAttivitaNotFound) {
			return ErrAssenzaNotFound
		}
		return err
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Assenza.Delete(ctx, id); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, record.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("assenza delete failed", zap.String("id", id), zap.Error(err))
	}
	return err
}
