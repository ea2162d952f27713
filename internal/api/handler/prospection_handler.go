package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

// ProspectionHandler 勘探记录（内存）HTTP 处理器
type ProspectionHandler struct {
	prospectionSvc service.ProspectionService
}

// NewProspectionHandler 创建 ProspectionHandler
func NewProspectionHandler(prospectionSvc service.ProspectionService) *ProspectionHandler {
	return &ProspectionHandler{prospectionSvc: prospectionSvc}
}

// List GET /api/prospections
func (h *ProspectionHandler) List(c *gin.Context) {
	response.OK(c, gin.H{"prospections": h.prospectionSvc.List()})
}

// Get GET /api/prospections/:id
func (h *ProspectionHandler) Get(c *gin.Context) {
	p, err := h.prospectionSvc.Get(c.Param("id"))
	if err != nil {
		h.handleProspectionError(c, err)
		return
	}
	response.OK(c, gin.H{"prospection": p})
}

// Create POST /api/prospections
func (h *ProspectionHandler) Create(c *gin.Context) {
	var req dto.CreateProspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Failed to create prospection", err)
		return
	}
	response.Created(c, gin.H{"prospection": h.prospectionSvc.Create(&req)})
}

// Update PUT /api/prospections/:id
func (h *ProspectionHandler) Update(c *gin.Context) {
	var req dto.UpdateProspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Failed to update prospection", err)
		return
	}

	p, err := h.prospectionSvc.Update(c.Param("id"), &req)
	if err != nil {
		h.handleProspectionError(c, err)
		return
	}
	response.OK(c, gin.H{"prospection": p})
}

func (h *ProspectionHandler) handleProspectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProspectionNotFound):
		response.NotFound(c, "Prospection not found")
	default:
		response.InternalError(c, "Failed to update prospection", err)
	}
}
