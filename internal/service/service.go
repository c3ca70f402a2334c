package service

import (
	"go.uber.org/zap"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/config"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/repository"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/jwt"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/mailer"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/redis"
)

// Service aggregates every business-logic interface.
type Service struct {
	Auth         AuthService
	User         UserService
	Cantiere     CantiereService
	Mezzo        MezzoService
	Attrezzatura AttrezzaturaService
	Attivita     AttivitaService
	Interazione  InterazioneService
	Trasporto    TrasportoService
	Assenza      AssenzaService
	Report       ReportService
	Export       ExportService
	Calendar     CalendarService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mail *mailer.Mailer,
	logger *zap.Logger,
) *Service {
	report := NewReportService(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, mail, logger),
		Cantiere:     NewCantiereService(repo, logger),
		Mezzo:        NewMezzoService(repo, logger),
		Attrezzatura: NewAttrezzaturaService(repo, logger),
		Attivita:     NewAttivitaService(repo, logger),
		Interazione:  NewInterazioneService(repo, logger),
		Trasporto:    NewTrasportoService(repo, logger),
		Assenza:      NewAssenzaService(repo, logger),
		Report:       report,
		Export:       NewExportService(report, logger),
		Calendar:     NewCalendarService(repo, logger),
	}
}
