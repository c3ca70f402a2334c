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

var ErrAttrezzaturaNotFound = errors.New("attrezzatura not found")

// AttrezzaturaService handles tool management.
type AttrezzaturaService interface {
	Create(ctx context.Context, req *dto.CreateAttrezzaturaRequest, callerID string) (*dto.AttrezzaturaResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AttrezzaturaResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.AttrezzaturaResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAttrezzaturaRequest, callerID string) (*dto.AttrezzaturaResponse, error)
	Delete(ctx context.Context, id string) error
}

type attrezzaturaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttrezzaturaService creates the AttrezzaturaService.
func NewAttrezzaturaService(repo *repository.Repository, logger *zap.Logger) AttrezzaturaService {
	return &attrezzaturaService{repo: repo, logger: logger}
}

func (s *attrezzaturaService) Create(ctx context.Context, req *dto.CreateAttrezzaturaRequest, callerID string) (*dto.AttrezzaturaResponse, error) {
	attrezzatura := &model.Attrezzatura{
		Nome:      req.Nome,
		BaseModel: model.BaseModel{CreatedBy: &callerID},
	}
	if err := s.repo.Attrezzatura.Create(ctx, attrezzatura); err != nil {
		s.logger.Error("attrezzatura create failed", zap.Error(err))
		return nil, err
	}
	return &dto.AttrezzaturaResponse{ID: attrezzatura.AttrezzaturaID, Nome: attrezzatura.Nome}, nil
}

func (s *attrezzaturaService) GetByID(ctx context.Context, id string) (*dto.AttrezzaturaResponse, error) {
	attrezzatura, err := s.repo.Attrezzatura.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttrezzaturaNotFound
		}
		return nil, err
	}
	return &dto.AttrezzaturaResponse{ID: attrezzatura.AttrezzaturaID, Nome: attrezzatura.Nome}, nil
}

func (s *attrezzaturaService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.AttrezzaturaResponse, int64, error) {
	attrezzature, total, err := s.repo.Attrezzatura.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("attrezzatura list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AttrezzaturaResponse, 0, len(attrezzature))
	for i := range attrezzature {
		result = append(result, dto.AttrezzaturaResponse{
			ID:   attrezzature[i].AttrezzaturaID,
			Nome: attrezzature[i].Nome,
		})
	}
	return result, total, nil
}

func (s *attrezzaturaService) Update(ctx context.Context, id string, req *dto.UpdateAttrezzaturaRequest, callerID string) (*dto.AttrezzaturaResponse, error) {
	attrezzatura, err := s.repo.Attrezzatura.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttrezzaturaNotFound
		}
		return nil, err
	}

	attrezzatura.Nome = req.Nome
	attrezzatura.UpdatedBy = &callerID

	if err := s.repo.Attrezzatura.Update(ctx, attrezzatura); err != nil {
		s.logger.Error("attrezzatura update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &dto.AttrezzaturaResponse{ID: attrezzatura.AttrezzaturaID, Nome: attrezzatura.Nome}, nil
}

func (s *attrezzaturaService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Attrezzatura.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttrezzaturaNotFound
		}
		return err
	}
	if err := s.repo.Attrezzatura.Delete(ctx, id); err != nil {
		s.logger.Error("attrezzatura delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
