package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
)

var ErrCantiereNotFound = errors.New("cantiere not found")

// CantiereService handles job-site management.
type CantiereService interface {
	Create(ctx context.Context, req *dto.CreateCantiereRequest, callerID string) (*dto.CantiereResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CantiereResponse, error)
	List(ctx context.Context, req *dto.CantiereListRequest) ([]dto.CantiereResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateCantiereRequest, callerID string) (*dto.CantiereResponse, error)
	Delete(ctx context.Context, id string) error
}

type cantiereService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCantiereService creates the CantiereService.
func NewCantiereService(repo *repository.Repository, logger *zap.Logger) CantiereService {
	return &cantiereService{repo: repo, logger: logger}
}

func (s *cantiereService) Create(ctx context.Context, req *dto.CreateCantiereRequest, callerID string) (*dto.CantiereResponse, error) {
	cantiere := &model.Cantiere{
		Nome:        req.Nome,
		Descrizione: req.Descrizione,
		Aperto:      true,
		BaseModel:   model.BaseModel{CreatedBy: &callerID},
	}

	if err := s.repo.Cantiere.Create(ctx, cantiere); err != nil {
		s.logger.Error("cantiere create failed", zap.Error(err))
		return nil, err
	}
	return toCantiereResponse(cantiere), nil
}

func (s *cantiereService) GetByID(ctx context.Context, id string) (*dto.CantiereResponse, error) {
	cantiere, err := s.repo.Cantiere.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCantiereNotFound
		}
		s.logger.Error("cantiere lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCantiereResponse(cantiere), nil
}

func (s *cantiereService) List(ctx context.Context, req *dto.CantiereListRequest) ([]dto.CantiereResponse, int64, error) {
	cantieri, total, err := s.repo.Cantiere.List(ctx, req.IncludeChiusi, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("cantiere list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CantiereResponse, 0, len(cantieri))
	for i := range cantieri {
		result = append(result, *toCantiereResponse(&cantieri[i]))
	}
	return result, total, nil
}

func (s *cantiereService) Update(ctx context.Context, id string, req *dto.UpdateCantiereRequest, callerID string) (*dto.CantiereResponse, error) {
	cantiere, err := s.repo.Cantiere.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCantiereNotFound
		}
		return nil, err
	}

	if req.Nome != nil {
		cantiere.Nome = *req.Nome
	}
	if req.Descrizione != nil {
		cantiere.Descrizione = *req.Descrizione
	}
	if req.Aperto != nil && *req.Aperto != cantiere.Aperto {
		cantiere.Aperto = *req.Aperto
		if *req.Aperto {
			cantiere.ChiusoIl = nil
		} else {
			now := time.Now()
			cantiere.ChiusoIl = &now
		}
	}
	cantiere.UpdatedBy = &callerID

	if err := s.repo.Cantiere.Update(ctx, cantiere); err != nil {
		s.logger.Error("cantiere update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCantiereResponse(cantiere), nil
}

func (s *cantiereService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Cantiere.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCantiereNotFound
		}
		return err
	}
	if err := s.repo.Cantiere.Delete(ctx, id); err != nil {
		s.logger.Error("cantiere delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toCantiereResponse(cantiere *model.Cantiere) *dto.CantiereResponse {
	resp := &dto.CantiereResponse{
		ID:          cantiere.CantiereID,
		Nome:        cantiere.Nome,
		Descrizione: cantiere.Descrizione,
		Aperto:      cantiere.Aperto,
	}
	if cantiere.ChiusoIl != nil {
		resp.ChiusoIl = cantiere.ChiusoIl.Format(time.RFC3339)
	}
	return resp
}
