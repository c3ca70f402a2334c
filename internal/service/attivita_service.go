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

// ── attività errors ──

var (
	ErrAttivitaNotFound  = errors.New("attivita not found")
	ErrNoPermission      = errors.New("not allowed to touch this record")
	ErrEditWindowExpired = errors.New("record is outside the editable window")
	ErrDataNonValida     = errors.New("invalid date")
)

// Workers may only write records whose work-day date falls within the last
// editWindowDays calendar days (today inclusive). Admins are unrestricted.
const editWindowDays = 7

// AttivitaService handles work days and the verification state machine.
type AttivitaService interface {
	Create(ctx context.Context, req *dto.CreateAttivitaRequest, callerID, callerRole string) (*dto.AttivitaResponse, error)
	GetByID(ctx context.Context, id string, callerID, callerRole string) (*dto.AttivitaResponse, error)
	GetByExternalID(ctx context.Context, externalID string, callerID, callerRole string) (*dto.AttivitaResponse, error)
	List(ctx context.Context, req *dto.AttivitaListRequest) ([]dto.AttivitaResponse, int64, error)
	ListMine(ctx context.Context, req *dto.MyAttivitaListRequest, callerID string) ([]dto.AttivitaResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAttivitaRequest, callerID, callerRole string) (*dto.AttivitaResponse, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error
	// Verify is the admin-only action that marks a work day as reviewed.
	Verify(ctx context.Context, id string, callerID string) (*dto.AttivitaResponse, error)
	// ReplaceInterazioni atomically swaps a work day's interaction set.
	ReplaceInterazioni(ctx context.Context, id string, req *dto.ReplaceInterazioniRequest, callerID, callerRole string) (*dto.AttivitaResponse, error)
}

type attivitaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttivitaService creates the AttivitaService.
func NewAttivitaService(repo *repository.Repository, logger *zap.Logger) AttivitaService {
	return &attivitaService{repo: repo, logger: logger}
}

func (s *attivitaService) Create(ctx context.Context, req *dto.CreateAttivitaRequest, callerID, callerRole string) (*dto.AttivitaResponse, error) {
	data, err := time.ParseInLocation(dto.DateLayout, req.Data, time.UTC)
	if err != nil {
		return nil, ErrDataNonValida
	}

	userID := callerID
	if req.UserID != nil {
		userID = *req.UserID
	}
	if callerRole != model.RoleAdmin {
		if userID != callerID {
			return nil, ErrNoPermission
		}
		if !withinEditWindow(data, time.Now()) {
			return nil, ErrEditWindowExpired
		}
	}

	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// First phase: validate every seed record before writing anything.
	attivita := &model.Attivita{
		Data:      data,
		UserID:    userID,
		BaseModel: model.BaseModel{CreatedBy: &callerID},
	}

	interazioni := make([]*model.Interazione, 0, len(req.Interazioni))
	for i := range req.Interazioni {
		record, err := s.buildInterazione(ctx, &req.Interazioni[i], userID, callerID)
		if err != nil {
			return nil, err
		}
		interazioni = append(interazioni, record)
	}

	trasporti := make([]*model.Trasporto, 0, len(req.Trasporti))
	for i := range req.Trasporti {
		record, err := s.buildTrasporto(ctx, &req.Trasporti[i], userID, callerID)
		if err != nil {
			return nil, err
		}
		trasporti = append(trasporti, record)
	}

	assenze := make([]*model.Assenza, 0, len(req.Assenze))
	for i := range req.Assenze {
		record, err := buildAssenza(&req.Assenze[i], userID, callerID)
		if err != nil {
			return nil, err
		}
		assenze = append(assenze, record)
	}

	// Second phase: one transaction, so a failed child leaves no orphan day.
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Attivita.Create(ctx, attivita); err != nil {
			return err
		}
		for _, record := range interazioni {
			record.AttivitaID = attivita.AttivitaID
			if err := txRepo.Interazione.Create(ctx, record); err != nil {
				return err
			}
		}
		for _, record := range trasporti {
			record.AttivitaID = attivita.AttivitaID
			if err := txRepo.Trasporto.Create(ctx, record); err != nil {
				return err
			}
		}
		for _, record := range assenze {
			record.AttivitaID = attivita.AttivitaID
			if err := txRepo.Assenza.Create(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("attivita create failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Attivita.GetByID(ctx, attivita.AttivitaID)
	if err != nil {
		return nil, err
	}
	return toAttivitaResponse(created), nil
}

func (s *attivitaService) GetByID(ctx context.Context, id string, callerID, callerRole string) (*dto.AttivitaResponse, error) {
	attivita, err := s.repo.Attivita.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttivitaNotFound
		}
		s.logger.Error("attivita lookup failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if callerRole != model.RoleAdmin && attivita.UserID != callerID {
		return nil, ErrAttivitaNotFound
	}
	return toAttivitaResponse(attivita), nil
}

func (s *attivitaService) GetByExternalID(ctx context.Context, externalID string, callerID, callerRole string) (*dto.AttivitaResponse, error) {
	attivita, err := s.repo.Attivita.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttivitaNotFound
		}
		return nil, err
	}
	if callerRole != model.RoleAdmin && attivita.UserID != callerID {
		return nil, ErrAttivitaNotFound
	}
	return toAttivitaResponse(attivita), nil
}

func (s *attivitaService) List(ctx context.Context, req *dto.AttivitaListRequest) ([]dto.AttivitaResponse, int64, error) {
	filters := &repository.AttivitaListFilters{
		UserID:     req.UserID,
		Verificata: req.Verificata,
	}
	if req.StartDate != "" {
		start, err := time.ParseInLocation(dto.DateLayout, req.StartDate, time.UTC)
		if err != nil {
			return nil, 0, ErrDataNonValida
		}
		filters.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation(dto.DateLayout, req.EndDate, time.UTC)
		if err != nil {
			return nil, 0, ErrDataNonValida
		}
		filters.EndDate = &end
	}

	return s.list(ctx, filters, req.GetOffset(), req.GetPageSize())
}

func (s *attivitaService) ListMine(ctx context.Context, req *dto.MyAttivitaListRequest, callerID string) ([]dto.AttivitaResponse, int64, error) {
	filters := &repository.AttivitaListFilters{UserID: callerID}
	if req.StartDate != "" {
		start, err := time.ParseInLocation(dto.DateLayout, req.StartDate, time.UTC)
		if err != nil {
			return nil, 0, ErrDataNonValida
		}
		filters.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation(dto.DateLayout, req.EndDate, time.UTC)
		if err != nil {
			return nil, 0, ErrDataNonValida
		}
		filters.EndDate = &end
	}

	return s.list(ctx, filters, req.GetOffset(), req.GetPageSize())
}

func (s *attivitaService) list(ctx context.Context, filters *repository.AttivitaListFilters, offset, limit int) ([]dto.AttivitaResponse, int64, error) {
	records, total, err := s.repo.Attivita.List(ctx, filters, offset, limit)
	if err != nil {
		s.logger.Error("attivita list failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AttivitaResponse, 0, len(records))
	for i := range records {
		result = append(result, *toAttivitaResponse(&records[i]))
	}
	return result, total, nil
}

func (s *attivitaService) Update(ctx context.Context, id string, req *dto.UpdateAttivitaRequest, callerID, callerRole string) (*dto.AttivitaResponse, error) {
	attivita, err := guardAttivitaWrite(ctx, s.repo, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	if req.Data != nil {
		data, err := time.ParseInLocation(dto.DateLayout, *req.Data, time.UTC)
		if err != nil {
			return nil, ErrDataNonValida
		}
		// workers cannot move a day out of (or in from beyond) the window
		if callerRole != model.RoleAdmin && !withinEditWindow(data, time.Now()) {
			return nil, ErrEditWindowExpired
		}
		attivita.Data = data
	}
	if req.UserID != nil {
		if callerRole != model.RoleAdmin {
			return nil, ErrNoPermission
		}
		if _, err := s.repo.User.GetByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		attivita.UserID = *req.UserID
	}

	// editing the day itself un-verifies it unless the editor is an admin
	if callerRole != model.RoleAdmin {
		attivita.Verificata = false
	}
	attivita.UpdatedBy = &callerID

	if err := s.repo.Attivita.Update(ctx, attivita); err != nil {
		s.logger.Error("attivita update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Attivita.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAttivitaResponse(updated), nil
}

func (s *attivitaService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	if _, err := guardAttivitaWrite(ctx, s.repo, id, callerID, callerRole); err != nil {
		return err
	}
	if err := s.repo.Attivita.Delete(ctx, id); err != nil {
		s.logger.Error("attivita delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *attivitaService) Verify(ctx context.Context, id string, callerID string) (*dto.AttivitaResponse, error) {
	if _, err := s.repo.Attivita.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttivitaNotFound
		}
		return nil, err
	}

	if err := s.repo.Attivita.SetVerificata(ctx, id, true, callerID); err != nil {
		s.logger.Error("verifica failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	attivita, err := s.repo.Attivita.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAttivitaResponse(attivita), nil
}

func (s *attivitaService) ReplaceInterazioni(ctx context.Context, id string, req *dto.ReplaceInterazioniRequest, callerID, callerRole string) (*dto.AttivitaResponse, error) {
	attivita, err := guardAttivitaWrite(ctx, s.repo, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	records := make([]*model.Interazione, 0, len(req.Interazioni))
	for i := range req.Interazioni {
		record, err := s.buildInterazione(ctx, &req.Interazioni[i], attivita.UserID, callerID)
		if err != nil {
			return nil, err
		}
		record.AttivitaID = attivita.AttivitaID
		records = append(records, record)
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Interazione.DeleteByAttivita(ctx, id); err != nil {
			return err
		}
		for _, record := range records {
			if err := txRepo.Interazione.Create(ctx, record); err != nil {
				return err
			}
		}
		return touchVerifica(ctx, txRepo, id, callerID, callerRole)
	})
	if err != nil {
		s.logger.Error("interazioni replace failed", zap.String("attivita_id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Attivita.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAttivitaResponse(updated), nil
}

// ── shared rules ──

// withinEditWindow reports whether a work-day date is still editable by a
// non-admin at the given instant.
func withinEditWindow(data time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := today.AddDate(0, 0, -(editWindowDays - 1))
	return !data.Before(windowStart)
}

// guardAttivitaWrite loads the work day and enforces ownership and the edit
// window for non-admin callers. Missing records and other workers' records
// both come back as not-found.
func guardAttivitaWrite(ctx context.Context, repo *repository.Repository, attivitaID, callerID, callerRole string) (*model.Attivita, error) {
	attivita, err := repo.Attivita.GetByID(ctx, attivitaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttivitaNotFound
		}
		return nil, err
	}
	if callerRole != model.RoleAdmin {
		if attivita.UserID != callerID {
			return nil, ErrAttivitaNotFound
		}
		if !withinEditWindow(attivita.Data, time.Now()) {
			return nil, ErrEditWindowExpired
		}
	}
	return attivita, nil
}

// touchVerifica clears the verified flag after a non-admin edit of the work
// day's children. Admin edits leave the flag alone.
func touchVerifica(ctx context.Context, repo *repository.Repository, attivitaID, callerID, callerRole string) error {
	if callerRole == model.RoleAdmin {
		return nil
	}
	return repo.Attivita.SetVerificata(ctx, attivitaID, false, callerID)
}

// ── builders ──

func (s *attivitaService) buildInterazione(ctx context.Context, req *dto.CreateInterazioneRequest, userID, callerID string) (*model.Interazione, error) {
	if err := validateInterazioneRefs(ctx, s.repo, req.CantiereID, req.MezzoID, req.AttrezzaturaID); err != nil {
		return nil, err
	}
	tempo, err := durata.FromOreMinuti(req.Ore, req.Minuti)
	if err != nil {
		return nil, err
	}
	return &model.Interazione{
		UserID:         userID,
		CantiereID:     req.CantiereID,
		MezzoID:        req.MezzoID,
		AttrezzaturaID: req.AttrezzaturaID,
		Ore:            req.Ore,
		Minuti:         req.Minuti,
		TempoTotale:    tempo,
		Note:           req.Note,
		BaseModel:      model.BaseModel{CreatedBy: &callerID},
	}, nil
}

func (s *attivitaService) buildTrasporto(ctx context.Context, req *dto.CreateTrasportoRequest, userID, callerID string) (*model.Trasporto, error) {
	if req.PartenzaID == req.DestinazioneID {
		return nil, ErrStessoCantiere
	}
	if err := validateTrasportoRefs(ctx, s.repo, req.PartenzaID, req.DestinazioneID, req.MezzoID, req.MezzoTrasportatoID); err != nil {
		return nil, err
	}
	if err := checkTrasportoAssegnazioni(ctx, s.repo, userID, req.PartenzaID, req.DestinazioneID, req.MezzoID); err != nil {
		return nil, err
	}
	tempo, err := durata.FromOreMinuti(req.Ore, req.Minuti)
	if err != nil {
		return nil, err
	}
	return &model.Trasporto{
		UserID:             userID,
		PartenzaID:         req.PartenzaID,
		DestinazioneID:     req.DestinazioneID,
		MezzoID:            req.MezzoID,
		MezzoTrasportatoID: req.MezzoTrasportatoID,
		Ore:                req.Ore,
		Minuti:             req.Minuti,
		TempoTotale:        tempo,
		Note:               req.Note,
		BaseModel:          model.BaseModel{CreatedBy: &callerID},
	}, nil
}

func buildAssenza(req *dto.CreateAssenzaRequest, userID, callerID string) (*model.Assenza, error) {
	if !model.IsValidTipoAssenza(req.Tipo) {
		return nil, ErrTipoAssenzaInvalido
	}
	tempo, err := durata.FromOreMinuti(req.Ore, req.Minuti)
	if err != nil {
		return nil, err
	}
	return &model.Assenza{
		UserID:      userID,
		Tipo:        req.Tipo,
		Ore:         req.Ore,
		Minuti:      req.Minuti,
		TempoTotale: tempo,
		Note:        req.Note,
		BaseModel:   model.BaseModel{CreatedBy: &callerID},
	}, nil
}

// ── converters ──

func toAttivitaResponse(attivita *model.Attivita) *dto.AttivitaResponse {
	resp := &dto.AttivitaResponse{
		ID:          attivita.AttivitaID,
		ExternalID:  attivita.ExternalID,
		Data:        attivita.Data.Format(dto.DateLayout),
		Verificata:  attivita.Verificata,
		Interazioni: make([]dto.InterazioneResponse, 0, len(attivita.Interazioni)),
		Trasporti:   make([]dto.TrasportoResponse, 0, len(attivita.Trasporti)),
		Assenze:     make([]dto.AssenzaResponse, 0, len(attivita.Assenze)),
	}
	if attivita.User != nil {
		resp.User = dto.RifResponse{ID: attivita.User.UserID, Nome: attivita.User.Nome}
	} else {
		resp.User = dto.RifResponse{ID: attivita.UserID}
	}

	var totals []durata.Millis
	for i := range attivita.Interazioni {
		resp.Interazioni = append(resp.Interazioni, *toInterazioneResponse(&attivita.Interazioni[i]))
		totals = append(totals, attivita.Interazioni[i].TempoTotale)
	}
	for i := range attivita.Trasporti {
		resp.Trasporti = append(resp.Trasporti, *toTrasportoResponse(&attivita.Trasporti[i]))
		totals = append(totals, attivita.Trasporti[i].TempoTotale)
	}
	for i := range attivita.Assenze {
		resp.Assenze = append(resp.Assenze, *toAssenzaResponse(&attivita.Assenze[i]))
		totals = append(totals, attivita.Assenze[i].TempoTotale)
	}
	resp.TempoTotale = durata.Sum(totals)

	return resp
}

func toInterazioneResponse(record *model.Interazione) *dto.InterazioneResponse {
	resp := &dto.InterazioneResponse{
		ID:          record.InterazioneID,
		Cantiere:    dto.RifResponse{ID: record.CantiereID},
		Ore:         record.Ore,
		Minuti:      record.Minuti,
		TempoTotale: record.TempoTotale,
		Note:        record.Note,
	}
	if record.Cantiere != nil {
		resp.Cantiere.Nome = record.Cantiere.Nome
	}
	if record.MezzoID != nil {
		rif := dto.RifResponse{ID: *record.MezzoID}
		if record.Mezzo != nil {
			rif.Nome = record.Mezzo.Nome
		}
		resp.Mezzo = &rif
	}
	if record.AttrezzaturaID != nil {
		rif := dto.RifResponse{ID: *record.AttrezzaturaID}
		if record.Attrezzatura != nil {
			rif.Nome = record.Attrezzatura.Nome
		}
		resp.Attrezzatura = &rif
	}
	return resp
}

func toTrasportoResponse(record *model.Trasporto) *dto.TrasportoResponse {
	resp := &dto.TrasportoResponse{
		ID:           record.TrasportoID,
		Partenza:     dto.RifResponse{ID: record.PartenzaID},
		Destinazione: dto.RifResponse{ID: record.DestinazioneID},
		Mezzo:        dto.RifResponse{ID: record.MezzoID},
		Ore:          record.Ore,
		Minuti:       record.Minuti,
		TempoTotale:  record.TempoTotale,
		Note:         record.Note,
	}
	if record.Partenza != nil {
		resp.Partenza.Nome = record.Partenza.Nome
	}
	if record.Destinazione != nil {
		resp.Destinazione.Nome = record.Destinazione.Nome
	}
	if record.Mezzo != nil {
		resp.Mezzo.Nome = record.Mezzo.Nome
	}
	if record.MezzoTrasportatoID != nil {
		rif := dto.RifResponse{ID: *record.MezzoTrasportatoID}
		if record.MezzoTrasportato != nil {
			rif.Nome = record.MezzoTrasportato.Nome
		}
		resp.MezzoTrasportato = &rif
	}
	return resp
}

func toAssenzaResponse(record *model.Assenza) *dto.AssenzaResponse {
	return &dto.AssenzaResponse{
		ID:          record.AssenzaID,
		Tipo:        record.Tipo,
		Ore:         record.Ore,
		Minuti:      record.Minuti,
		TempoTotale: record.TempoTotale,
		Note:        record.Note,
	}
}
