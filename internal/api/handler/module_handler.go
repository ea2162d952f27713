package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

// ModuleHandler 模块 HTTP 处理器
type ModuleHandler struct {
	moduleSvc service.ModuleService
}

// NewModuleHandler 创建 ModuleHandler
func NewModuleHandler(moduleSvc service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleSvc: moduleSvc}
}

// Update PUT /api/modules/:id
func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid module id")
	if !ok {
		return
	}

	var req dto.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid module update", err)
		return
	}

	if err := h.moduleSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleModuleError(c, err)
		return
	}
	response.Message(c, "Module updated successfully")
}

func (h *ModuleHandler) handleModuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModuleNotFound):
		response.NotFound(c, "Module not found")
	default:
		response.InternalError(c, "Failed to update module", err)
	}
}
