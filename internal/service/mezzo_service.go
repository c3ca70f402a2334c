package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
)

var ErrMezzoNotFound = errors.New("mezzo not found")

// MezzoService handles vehicle management.
type MezzoService interface {
	Create(ctx context.Context, req *dto.CreateMezzoRequest, callerID string) (*dto.MezzoResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MezzoResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.MezzoResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateMezzoRequest, callerID string) (*dto.MezzoResponse, error)
	Delete(ctx context.Context, id string) error
}

type mezzoService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMezzoService creates the MezzoService.
func NewMezzoService(repo *repository.Repository, logger *zap.Logger) MezzoService {
	return &mezzoService{repo: repo, logger: logger}
}

func (s *mezzoService) Create(ctx context.Context, req *dto.CreateMezzoRequest, callerID string) (*dto.MezzoResponse, error) {
	mezzo := &model.Mezzo{
		Nome:                      req.Nome,
		Descrizione:               req.Descrizione,
		RichiedePatenteCamion:     req.RichiedePatenteCamion,
		RichiedePatenteEscavatore: req.RichiedePatenteEscavatore,
		BaseModel:                 model.BaseModel{CreatedBy: &callerID},
	}

	if err := s.repo.Mezzo.Create(ctx, mezzo); err != nil {
		s.logger.Error("mezzo create failed", zap.Error(err))
		return nil, err
	}
	return toMezzoResponse(mezzo), nil
}

func (s *mezzoService) GetByID(ctx context.Context, id string) (*dto.MezzoResponse, error) {
	mezzo, err := s.repo.Mezzo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMezzoNotFound
		}
		s.logger.Error("mezzo lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toMezzoResponse(mezzo), nil
}

func (s *mezzoService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.MezzoResponse, int64, error) {
	mezzi, total, err := s.repo.Mezzo.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("mezzo list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.MezzoResponse, 0, len(mezzi))
	for i := range mezzi {
		result = append(result, *toMezzoResponse(&mezzi[i]))
	}
	return result, total, nil
}

func (s *mezzoService) Update(ctx context.Context, id string, req *dto.UpdateMezzoRequest, callerID string) (*dto.MezzoResponse, error) {
	mezzo, err := s.repo.Mezzo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMezzoNotFound
		}
		return nil, err
	}

	if req.Nome != nil {
		mezzo.Nome = *req.Nome
	}
	if req.Descrizione != nil {
		mezzo.Descrizione = *req.Descrizione
	}
	if req.RichiedePatenteCamion != nil {
		mezzo.RichiedePatenteCamion = *req.RichiedePatenteCamion
	}
	if req.RichiedePatenteEscavatore != nil {
		mezzo.RichiedePatenteEscavatore = *req.RichiedePatenteEscavatore
	}
	mezzo.UpdatedBy = &callerID

	if err := s.repo.Mezzo.Update(ctx, mezzo); err != nil {
		s.logger.Error("mezzo update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toMezzoResponse(mezzo), nil
}

func (s *mezzoService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Mezzo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMezzoNotFound
		}
		return err
	}
	if err := s.repo.Mezzo.Delete(ctx, id); err != nil {
		s.logger.Error("mezzo delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toMezzoResponse(mezzo *model.Mezzo) *dto.MezzoResponse {
	return &dto.MezzoResponse{
		ID:                        mezzo.MezzoID,
		Nome:                      mezzo.Nome,
		Descrizione:               mezzo.Descrizione,
		RichiedePatenteCamion:     mezzo.RichiedePatenteCamion,
		RichiedePatenteEscavatore: mezzo.RichiedePatenteEscavatore,
	}
}
