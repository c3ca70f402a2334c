package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/service"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/response"
)

// MezzoHandler serves the vehicle endpoints.
type MezzoHandler struct {
	mezzoSvc service.MezzoService
}

// NewMezzoHandler creates the MezzoHandler.
func NewMezzoHandler(mezzoSvc service.MezzoService) *MezzoHandler {
	return &MezzoHandler{mezzoSvc: mezzoSvc}
}

// ListMezzi returns the paginated vehicle list.
// GET /api/v1/mezzi
func (h *MezzoHandler) ListMezzi(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	mezzi, total, err := h.mezzoSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, mezzi, total, req.GetPage(), req.GetPageSize())
}

// GetMezzo returns a single vehicle.
// GET /api/v1/mezzi/:id
func (h *MezzoHandler) GetMezzo(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "mezzo id is required")
		return
	}

	mezzo, err := h.mezzoSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleMezzoError(c, err)
		return
	}

	response.OK(c, mezzo)
}

// CreateMezzo registers a new vehicle.
// POST /api/v1/mezzi
func (h *MezzoHandler) CreateMezzo(c *gin.Context) {
	var req dto.CreateMezzoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	mezzo, err := h.mezzoSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleMezzoError(c, err)
		return
	}

	response.Created(c, mezzo)
}

// UpdateMezzo updates a vehicle.
// PUT /api/v1/mezzi/:id
func (h *MezzoHandler) UpdateMezzo(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "mezzo id is required")
		return
	}

	var req dto.UpdateMezzoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	mezzo, err := h.mezzoSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleMezzoError(c, err)
		return
	}

	response.OK(c, mezzo)
}

// DeleteMezzo removes a vehicle.
// DELETE /api/v1/mezzi/:id
func (h *MezzoHandler) DeleteMezzo(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "mezzo id is required")
		return
	}

	if err := h.mezzoSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleMezzoError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *MezzoHandler) handleMezzoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMezzoNotFound):
		response.NotFound(c, 24001, "mezzo not found")
	default:
		response.InternalError(c)
	}
}
