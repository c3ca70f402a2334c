package handler

import "github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Cantiere     *CantiereHandler
	Mezzo        *MezzoHandler
	Attrezzatura *AttrezzaturaHandler
	Attivita     *AttivitaHandler
	Report       *ReportHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Cantiere:     NewCantiereHandler(svc.Cantiere),
		Mezzo:        NewMezzoHandler(svc.Mezzo),
		Attrezzatura: NewAttrezzaturaHandler(svc.Attrezzatura),
		Attivita:     NewAttivitaHandler(svc.Attivita, svc.Interazione, svc.Trasporto, svc.Assenza),
		Report:       NewReportHandler(svc.Report, svc.Export, svc.Calendar),
	}
}
