package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

// ProspectionCardHandler 勘探卡 HTTP 处理器
type ProspectionCardHandler struct {
	cardSvc service.ProspectionCardService
}

// NewProspectionCardHandler 创建 ProspectionCardHandler
func NewProspectionCardHandler(cardSvc service.ProspectionCardService) *ProspectionCardHandler {
	return &ProspectionCardHandler{cardSvc: cardSvc}
}

// List GET /api/prospection-cards
func (h *ProspectionCardHandler) List(c *gin.Context) {
	cards, err := h.cardSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch prospection cards", err)
		return
	}
	response.OK(c, gin.H{"cards": cards})
}

// Get GET /api/prospection-cards/:id
func (h *ProspectionCardHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid prospection card id")
	if !ok {
		return
	}

	card, err := h.cardSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCardError(c, err)
		return
	}
	response.OK(c, gin.H{"card": card})
}

// Create POST /api/prospection-cards
func (h *ProspectionCardHandler) Create(c *gin.Context) {
	var req dto.CreateProspectionCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid prospection card", err)
		return
	}

	card, err := h.cardSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCardError(c, err)
		return
	}
	response.Created(c, gin.H{"card": card})
}

// Update PUT /api/prospection-cards/:id
func (h *ProspectionCardHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid prospection card id")
	if !ok {
		return
	}

	var req dto.UpdateProspectionCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid prospection card", err)
		return
	}

	card, err := h.cardSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCardError(c, err)
		return
	}
	response.OK(c, gin.H{"card": card})
}

func (h *ProspectionCardHandler) handleCardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProspectionCardNotFound):
		response.NotFound(c, "Prospection card not found")
	case errors.Is(err, service.ErrProspectionCardDuplicate):
		response.Conflict(c, "A prospection card already exists for this year, period and course", err)
	default:
		response.InternalError(c, "Failed to save prospection card", err)
	}
}
