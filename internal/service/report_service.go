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
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"
)

// ErrInvalidDateRange is returned when the report start date is after the end
// date.
var ErrInvalidDateRange = errors.New("start date is after end date")

// ReportService totals a worker's recorded time over an inclusive date range.
type ReportService interface {
	GetReport(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates the ReportService.
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) GetReport(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	start, err := time.ParseInLocation(dto.DateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(dto.DateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	// the end date is inclusive; query with the next midnight as the bound
	endExclusive := end.AddDate(0, 0, 1)

	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("report user lookup failed", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	// reports exist for workers only; an admin id reads as missing
	if user.IsAdmin() {
		return nil, ErrUserNotFound
	}

	interazioni, err := s.repo.Interazione.ListByUserDateRange(ctx, req.UserID, start, endExclusive)
	if err != nil {
		s.logger.Error("report interazioni query failed", zap.Error(err))
		return nil, err
	}
	trasporti, err := s.repo.Trasporto.ListByUserDateRange(ctx, req.UserID, start, endExclusive)
	if err != nil {
		s.logger.Error("report trasporti query failed", zap.Error(err))
		return nil, err
	}
	assenze, err := s.repo.Assenza.ListByUserDateRange(ctx, req.UserID, start, endExclusive)
	if err != nil {
		s.logger.Error("report assenze query failed", zap.Error(err))
		return nil, err
	}

	totals := dto.ReportTotals{
		Interazioni: sumInterazioni(interazioni),
		Trasporti:   sumTrasporti(trasporti),
		Assenze:     sumAssenze(assenze),
	}
	totals.Overall = durata.Sum([]durata.Millis{totals.Interazioni, totals.Trasporti, totals.Assenze})

	return &dto.ReportResponse{
		User:          *toUserResponse(user),
		Range:         dto.ReportRange{StartDate: req.StartDate, EndDate: req.EndDate},
		Totals:        totals,
		AssenzeByTipo: aggregateAssenzeByTipo(assenze),
	}, nil
}

func sumInterazioni(records []model.Interazione) durata.Millis {
	totals := make([]durata.Millis, 0, len(records))
	for i := range records {
		totals = append(totals, records[i].TempoTotale)
	}
	return durata.Sum(totals)
}

func sumTrasporti(records []model.Trasporto) durata.Millis {
	totals := make([]durata.Millis, 0, len(records))
	for i := range records {
		totals = append(totals, records[i].TempoTotale)
	}
	return durata.Sum(totals)
}

func sumAssenze(records []model.Assenza) durata.Millis {
	totals := make([]durata.Millis, 0, len(records))
	for i := range records {
		totals = append(totals, records[i].TempoTotale)
	}
	return durata.Sum(totals)
}

// aggregateAssenzeByTipo buckets absence time by type. Every known type is
// present in the result, zero-valued when unused, so consumers never need a
// missing-key fallback.
func aggregateAssenzeByTipo(records []model.Assenza) map[string]durata.Millis {
	byTipo := make(map[string]durata.Millis, len(model.TipiAssenza))
	for _, tipo := range model.TipiAssenza {
		byTipo[tipo] = 0
	}
	for i := range records {
		byTipo[records[i].Tipo] += records[i].TempoTotale
	}
	return byTipo
}
