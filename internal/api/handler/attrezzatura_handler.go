package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/service"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/response"
)

// AttrezzaturaHandler serves the equipment endpoints.
type AttrezzaturaHandler struct {
	attrezzaturaSvc service.AttrezzaturaService
}

// NewAttrezzaturaHandler creates the AttrezzaturaHandler.
func NewAttrezzaturaHandler(attrezzaturaSvc service.AttrezzaturaService) *AttrezzaturaHandler {
	return &AttrezzaturaHandler{attrezzaturaSvc: attrezzaturaSvc}
}

// ListAttrezzature returns the paginated equipment list.
// GET /api/v1/attrezzature
func (h *AttrezzaturaHandler) ListAttrezzature(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	attrezzature, total, err := h.attrezzaturaSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, attrezzature, total, req.GetPage(), req.GetPageSize())
}

// GetAttrezzatura returns a single piece of equipment.
// GET /api/v1/attrezzature/:id
func (h *AttrezzaturaHandler) GetAttrezzatura(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "attrezzatura id is required")
		return
	}

	attrezzatura, err := h.attrezzaturaSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAttrezzaturaError(c, err)
		return
	}

	response.OK(c, attrezzatura)
}

// CreateAttrezzatura registers a new piece of equipment.
// POST /api/v1/attrezzature
func (h *AttrezzaturaHandler) CreateAttrezzatura(c *gin.Context) {
	var req dto.CreateAttrezzaturaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	attrezzatura, err := h.attrezzaturaSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAttrezzaturaError(c, err)
		return
	}

	response.Created(c, attrezzatura)
}

// UpdateAttrezzatura updates a piece of equipment.
// PUT /api/v1/attrezzature/:id
func (h *AttrezzaturaHandler) UpdateAttrezzatura(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "attrezzatura id is required")
		return
	}

	var req dto.UpdateAttrezzaturaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	attrezzatura, err := h.attrezzaturaSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleAttrezzaturaError(c, err)
		return
	}

	response.OK(c, attrezzatura)
}

// DeleteAttrezzatura removes a piece of equipment.
// DELETE /api/v1/attrezzature/:id
func (h *AttrezzaturaHandler) DeleteAttrezzatura(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "attrezzatura id is required")
		return
	}

	if err := h.attrezzaturaSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAttrezzaturaError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AttrezzaturaHandler) handleAttrezzaturaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttrezzaturaNotFound):
		response.NotFound(c, 24002, "attrezzatura not found")
	default:
		response.InternalError(c)
	}
}
