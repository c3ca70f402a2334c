package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/service"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/response"
)

// CantiereHandler serves the job-site endpoints.
type CantiereHandler struct {
	cantiereSvc service.CantiereService
}

// NewCantiereHandler creates the CantiereHandler.
func NewCantiereHandler(cantiereSvc service.CantiereService) *CantiereHandler {
	return &CantiereHandler{cantiereSvc: cantiereSvc}
}

// ListCantieri returns the paginated job-site list. Closed sites are hidden
// unless include_chiusi is set.
// GET /api/v1/cantieri
func (h *CantiereHandler) ListCantieri(c *gin.Context) {
	var req dto.CantiereListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	cantieri, total, err := h.cantiereSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, cantieri, total, req.GetPage(), req.GetPageSize())
}

// GetCantiere returns a single job site.
// GET /api/v1/cantieri/:id
func (h *CantiereHandler) GetCantiere(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "cantiere id is required")
		return
	}

	cantiere, err := h.cantiereSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCantiereError(c, err)
		return
	}

	response.OK(c, cantiere)
}

// CreateCantiere opens a new job site.
// POST /api/v1/cantieri
func (h *CantiereHandler) CreateCantiere(c *gin.Context) {
	var req dto.CreateCantiereRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cantiere, err := h.cantiereSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCantiereError(c, err)
		return
	}

	response.Created(c, cantiere)
}

// UpdateCantiere updates a job site; setting aperto=false closes it.
// PUT /api/v1/cantieri/:id
func (h *CantiereHandler) UpdateCantiere(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "cantiere id is required")
		return
	}

	var req dto.UpdateCantiereRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cantiere, err := h.cantiereSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCantiereError(c, err)
		return
	}

	response.OK(c, cantiere)
}

// DeleteCantiere removes a job site.
// DELETE /api/v1/cantieri/:id
func (h *CantiereHandler) DeleteCantiere(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "cantiere id is required")
		return
	}

	if err := h.cantiereSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCantiereError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CantiereHandler) handleCantiereError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCantiereNotFound):
		response.NotFound(c, 23001, "cantiere not found")
	default:
		response.InternalError(c)
	}
}
