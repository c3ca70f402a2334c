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

// ── trasporto errors ──

var (
	ErrTrasportoNotFound = errors.New("trasporto not found")
	// ErrStessoCantiere rejects a transport whose origin and destination are
	// the same job site.
	ErrStessoCantiere = errors.New("partenza and destinazione must differ")
	// Assignment failures, in the order they are checked.
	ErrPartenzaNonAssegnata     = errors.New("worker is not assigned to the origin cantiere")
	ErrDestinazioneNonAssegnata = errors.New("worker is not assigned to the destination cantiere")
	ErrMezzoNonAssegnato        = errors.New("worker is not assigned to the mezzo")
)

// TrasportoService handles site-to-site transports inside a work day.
type TrasportoService interface {
	Create(ctx context.Context, attivitaID string, req *dto.CreateTrasportoRequest, callerID, callerRole string) (*dto.TrasportoResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTrasportoRequest, callerID, callerRole string) (*dto.TrasportoResponse, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error
}

type trasportoService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTrasportoService creates the TrasportoService.
func NewTrasportoService(repo *repository.Repository, logger *zap.Logger) TrasportoService {
	return &trasportoService{repo: repo, logger: logger}
}

func (s *trasportoService) Create(ctx context.Context, attivitaID string, req *dto.CreateTrasportoRequest, callerID, callerRole string) (*dto.TrasportoResponse, error) {
	attivita, err := guardAttivitaWrite(ctx, s.repo, attivitaID, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	if req.PartenzaID == req.DestinazioneID {
		return nil, ErrStessoCantiere
	}
	if err := validateTrasportoRefs(ctx, s.repo, req.PartenzaID, req.DestinazioneID, req.MezzoID, req.MezzoTrasportatoID); err != nil {
		return nil, err
	}
	if err := checkTrasportoAssegnazioni(ctx, s.repo, attivita.UserID, req.PartenzaID, req.DestinazioneID, req.MezzoID); err != nil {
		return nil, err
	}
	tempo, err := durata.FromOreMinuti(req.Ore, req.Minuti)
	if err != nil {
		return nil, err
	}

	record := &model.Trasporto{
		AttivitaID:         attivita.AttivitaID,
		UserID:             attivita.UserID,
		PartenzaID:         req.PartenzaID,
		DestinazioneID:     req.DestinazioneID,
		MezzoID:            req.MezzoID,
		MezzoTrasportatoID: req.MezzoTrasportatoID,
		Ore:                req.Ore,
		Minuti:             req.Minuti,
		TempoTotale:        tempo,
		Note:               req.Note,
		BaseModel:          model.BaseModel{CreatedBy: &callerID},
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Trasporto.Create(ctx, record); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, attivita.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("trasporto create failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Trasporto.GetByID(ctx, record.TrasportoID)
	if err != nil {
		return nil, err
	}
	return toTrasportoResponse(created), nil
}

func (s *trasportoService) Update(ctx context.Context, id string, req *dto.UpdateTrasportoRequest, callerID, callerRole string) (*dto.TrasportoResponse, error) {
	record, err := s.repo.Trasporto.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrasportoNotFound
		}
		return nil, err
	}
	attivita, err := guardAttivitaWrite(ctx, s.repo, record.AttivitaID, callerID, callerRole)
	if err != nil {
		if errors.Is(err, ErrAttivitaNotFound) {
			return nil, ErrTrasportoNotFound
		}
		return nil, err
	}

	if req.PartenzaID != nil {
		record.PartenzaID = *req.PartenzaID
	}
	if req.DestinazioneID != nil {
		record.DestinazioneID = *req.DestinazioneID
	}
	if req.MezzoID != nil {
		record.MezzoID = *req.MezzoID
	}
	if req.MezzoTrasportatoID != nil {
		record.MezzoTrasportatoID = req.MezzoTrasportatoID
	}

	// the full rule set re-runs against the merged record
	if record.PartenzaID == record.DestinazioneID {
		return nil, ErrStessoCantiere
	}
	if err := validateTrasportoRefs(ctx, s.repo, record.PartenzaID, record.DestinazioneID, record.MezzoID, record.MezzoTrasportatoID); err != nil {
		return nil, err
	}
	if err := checkTrasportoAssegnazioni(ctx, s.repo, attivita.UserID, record.PartenzaID, record.DestinazioneID, record.MezzoID); err != nil {
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
		if err := txRepo.Trasporto.Update(ctx, record); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, record.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("trasporto update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Trasporto.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTrasportoResponse(updated), nil
}

func (s *trasportoService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	record, err := s.repo.Trasporto.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrasportoNotFound
		}
		return err
	}
	if _, err := guardAttivitaWrite(ctx, s.repo, record.AttivitaID, callerID, callerRole); err != nil {
		if errors.Is(err, ErrAttivitaNotFound) {
			return ErrTrasportoNotFound
		}
		return err
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Trasporto.Delete(ctx, id); err != nil {
			return err
		}
		return touchVerifica(ctx, txRepo, record.AttivitaID, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("trasporto delete failed", zap.String("id", id), zap.Error(err))
	}
	return err
}

// validateTrasportoRefs checks that both job sites and both vehicles exist.
func validateTrasportoRefs(ctx context.Context, repo *repository.Repository, partenzaID, destinazioneID, mezzoID string, mezzoTrasportatoID *string) error {
	for _, cantiereID := range []string{partenzaID, destinazioneID} {
		if _, err := repo.Cantiere.GetByID(ctx, cantiereID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCantiereNotFound
			}
			return err
		}
	}
	if _, err := repo.Mezzo.GetByID(ctx, mezzoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMezzoNotFound
		}
		return err
	}
	if mezzoTrasportatoID != nil {
		if _, err := repo.Mezzo.GetByID(ctx, *mezzoTrasportatoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMezzoNotFound
			}
			return err
		}
	}
	return nil
}

// checkTrasportoAssegnazioni verifies that the work day's worker is assigned
// to the origin, the destination, and the driven vehicle. The checks run in
// that order and the first failure wins.
func checkTrasportoAssegnazioni(ctx context.Context, repo *repository.Repository, userID, partenzaID, destinazioneID, mezzoID string) error {
	ok, err := repo.Assegnazione.HasCantiere(ctx, userID, partenzaID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPartenzaNonAssegnata
	}
	ok, err = repo.Assegnazione.HasCantiere(ctx, userID, destinazioneID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDestinazioneNonAssegnata
	}
	ok, err = repo.Assegnazione.HasMezzo(ctx, userID, mezzoID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMezzoNonAssegnato
	}
	return nil
}
