package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/service"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/durata"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/response"
)

// AttivitaHandler serves the work-day endpoints together with their child
// records (interazioni, trasporti, assenze).
type AttivitaHandler struct {
	attivitaSvc    service.AttivitaService
	interazioneSvc service.InterazioneService
	trasportoSvc   service.TrasportoService
	assenzaSvc     service.AssenzaService
}

// NewAttivitaHandler creates the AttivitaHandler.
func NewAttivitaHandler(
	attivitaSvc service.AttivitaService,
	interazioneSvc service.InterazioneService,
	trasportoSvc service.TrasportoService,
	assenzaSvc service.AssenzaService,
) *AttivitaHandler {
	return &AttivitaHandler{
		attivitaSvc:    attivitaSvc,
		interazioneSvc: interazioneSvc,
		trasportoSvc:   trasportoSvc,
		assenzaSvc:     assenzaSvc,
	}
}

// ── work days ──

// ListAttivita returns the filtered work-day list across all workers.
// GET /api/v1/attivita
func (h *AttivitaHandler) ListAttivita(c *gin.Context) {
	var req dto.AttivitaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.attivitaSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListMyAttivita returns the caller's own work days.
// GET /api/v1/attivita/me
func (h *AttivitaHandler) ListMyAttivita(c *gin.Context) {
	var req dto.MyAttivitaListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, total, err := h.attivitaSvc.ListMine(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CreateAttivita opens a work day, optionally seeded with child records in
// the same transaction.
// POST /api/v1/attivita
func (h *AttivitaHandler) CreateAttivita(c *gin.Context) {
	var req dto.CreateAttivitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	attivita, err := h.attivitaSvc.Create(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.Created(c, attivita)
}

// GetAttivita returns one work day with all its children.
// GET /api/v1/attivita/:id
func (h *AttivitaHandler) GetAttivita(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	attivita, err := h.attivitaSvc.GetByID(c.Request.Context(), id, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, attivita)
}

// GetAttivitaByExternalID resolves a calendar UID back to its work day.
// GET /api/v1/attivita/external/:externalId
func (h *AttivitaHandler) GetAttivitaByExternalID(c *gin.Context) {
	externalID := c.Param("externalId")
	if externalID == "" {
		response.BadRequest(c, 10001, "external id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	attivita, err := h.attivitaSvc.GetByExternalID(c.Request.Context(), externalID, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, attivita)
}

// UpdateAttivita moves a work day to another date or worker.
// PUT /api/v1/attivita/:id
func (h *AttivitaHandler) UpdateAttivita(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	var req dto.UpdateAttivitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	attivita, err := h.attivitaSvc.Update(c.Request.Context(), id, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, attivita)
}

// DeleteAttivita removes a work day and its children.
// DELETE /api/v1/attivita/:id
func (h *AttivitaHandler) DeleteAttivita(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.attivitaSvc.Delete(c.Request.Context(), id, callerID, callerRole); err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, nil)
}

// VerifyAttivita marks a work day as reviewed.
// PUT /api/v1/attivita/:id/verifica
func (h *AttivitaHandler) VerifyAttivita(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	attivita, err := h.attivitaSvc.Verify(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, attivita)
}

// ── interazioni ──

// CreateInterazione adds a job-site time span to a work day.
// POST /api/v1/attivita/:id/interazioni
func (h *AttivitaHandler) CreateInterazione(c *gin.Context) {
	attivitaID := c.Param("id")
	if attivitaID == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	var req dto.CreateInterazioneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	interazione, err := h.interazioneSvc.Create(c.Request.Context(), attivitaID, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.Created(c, interazione)
}

// ReplaceInterazioni atomically swaps a work day's interaction set.
// PUT /api/v1/attivita/:id/interazioni
func (h *AttivitaHandler) ReplaceInterazioni(c *gin.Context) {
	attivitaID := c.Param("id")
	if attivitaID == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	var req dto.ReplaceInterazioniRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	attivita, err := h.attivitaSvc.ReplaceInterazioni(c.Request.Context(), attivitaID, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, attivita)
}

// UpdateInterazione updates a single job-site time span.
// PUT /api/v1/attivita/:id/interazioni/:childId
func (h *AttivitaHandler) UpdateInterazione(c *gin.Context) {
	childID := c.Param("childId")
	if childID == "" {
		response.BadRequest(c, 10001, "interazione id is required")
		return
	}

	var req dto.UpdateInterazioneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	interazione, err := h.interazioneSvc.Update(c.Request.Context(), childID, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, interazione)
}

// DeleteInterazione removes a single job-site time span.
// DELETE /api/v1/attivita/:id/interazioni/:childId
func (h *AttivitaHandler) DeleteInterazione(c *gin.Context) {
	childID := c.Param("childId")
	if childID == "" {
		response.BadRequest(c, 10001, "interazione id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.interazioneSvc.Delete(c.Request.Context(), childID, callerID, callerRole); err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── trasporti ──

// CreateTrasporto adds a site-to-site transport to a work day.
// POST /api/v1/attivita/:id/trasporti
func (h *AttivitaHandler) CreateTrasporto(c *gin.Context) {
	attivitaID := c.Param("id")
	if attivitaID == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	var req dto.CreateTrasportoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	trasporto, err := h.trasportoSvc.Create(c.Request.Context(), attivitaID, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.Created(c, trasporto)
}

// UpdateTrasporto updates a transport; the assignment rules run again on the
// merged record.
// PUT /api/v1/attivita/:id/trasporti/:childId
func (h *AttivitaHandler) UpdateTrasporto(c *gin.Context) {
	childID := c.Param("childId")
	if childID == "" {
		response.BadRequest(c, 10001, "trasporto id is required")
		return
	}

	var req dto.UpdateTrasportoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	trasporto, err := h.trasportoSvc.Update(c.Request.Context(), childID, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, trasporto)
}

// DeleteTrasporto removes a transport.
// DELETE /api/v1/attivita/:id/trasporti/:childId
func (h *AttivitaHandler) DeleteTrasporto(c *gin.Context) {
	childID := c.Param("childId")
	if childID == "" {
		response.BadRequest(c, 10001, "trasporto id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.trasportoSvc.Delete(c.Request.Context(), childID, callerID, callerRole); err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── assenze ──

// CreateAssenza adds a typed absence to a work day.
// POST /api/v1/attivita/:id/assenze
func (h *AttivitaHandler) CreateAssenza(c *gin.Context) {
	attivitaID := c.Param("id")
	if attivitaID == "" {
		response.BadRequest(c, 10001, "attivita id is required")
		return
	}

	var req dto.CreateAssenzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	assenza, err := h.assenzaSvc.Create(c.Request.Context(), attivitaID, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.Created(c, assenza)
}

// UpdateAssenza updates an absence.
// PUT /api/v1/attivita/:id/assenze/:childId
func (h *AttivitaHandler) UpdateAssenza(c *gin.Context) {
	childID := c.Param("childId")
	if childID == "" {
		response.BadRequest(c, 10001, "assenza id is required")
		return
	}

	var req dto.UpdateAssenzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	assenza, err := h.assenzaSvc.Update(c.Request.Context(), childID, &req, callerID, callerRole)
	if err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, assenza)
}

// DeleteAssenza removes an absence.
// DELETE /api/v1/attivita/:id/assenze/:childId
func (h *AttivitaHandler) DeleteAssenza(c *gin.Context) {
	childID := c.Param("childId")
	if childID == "" {
		response.BadRequest(c, 10001, "assenza id is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.assenzaSvc.Delete(c.Request.Context(), childID, callerID, callerRole); err != nil {
		h.handleAttivitaError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAttivitaError maps work-day business errors onto the wire taxonomy.
// Ownership violations surface as not-found upstream, so 404 here never
// leaks another worker's data.
func (h *AttivitaHandler) handleAttivitaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttivitaNotFound):
		response.NotFound(c, 25001, "attivita not found")
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, 25002, "not allowed to touch this record")
	case errors.Is(err, service.ErrEditWindowExpired):
		response.Forbidden(c, 25003, "record is outside the editable window")
	case errors.Is(err, service.ErrInterazioneNotFound):
		response.NotFound(c, 25004, "interazione not found")
	case errors.Is(err, service.ErrTrasportoNotFound):
		response.NotFound(c, 25005, "trasporto not found")
	case errors.Is(err, service.ErrAssenzaNotFound):
		response.NotFound(c, 25006, "assenza not found")
	case errors.Is(err, service.ErrStessoCantiere):
		response.BadRequest(c, 25007, "partenza and destinazione must differ")
	case errors.Is(err, service.ErrPartenzaNonAssegnata):
		response.BadRequest(c, 25008, "worker is not assigned to the origin cantiere")
	case errors.Is(err, service.ErrDestinazioneNonAssegnata):
		response.BadRequest(c, 25009, "worker is not assigned to the destination cantiere")
	case errors.Is(err, service.ErrMezzoNonAssegnato):
		response.BadRequest(c, 25010, "worker is not assigned to the mezzo")
	case errors.Is(err, service.ErrTipoAssenzaInvalido):
		response.BadRequest(c, 25011, "invalid assenza tipo")
	case errors.Is(err, durata.ErrOreNegative), errors.Is(err, durata.ErrMinutiRange):
		response.BadRequest(c, 25012, "invalid ore/minuti value")
	case errors.Is(err, service.ErrDataNonValida):
		response.BadRequest(c, 25013, "invalid date")
	case errors.Is(err, service.ErrCantiereNotFound):
		response.NotFound(c, 23001, "cantiere not found")
	case errors.Is(err, service.ErrMezzoNotFound):
		response.NotFound(c, 24001, "mezzo not found")
	case errors.Is(err, service.ErrAttrezzaturaNotFound):
		response.NotFound(c, 24002, "attrezzatura not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 22001, "user not found")
	default:
		response.InternalError(c)
	}
}
