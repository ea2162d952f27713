package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// List 项目联表列表
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch projects", err)
		return
	}
	response.OK(c, gin.H{"projects": projects})
}

// Get 项目详情
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid project id")
	if !ok {
		return
	}

	detail, err := h.projectSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleProjectError(c, err, "Failed to fetch project")
		return
	}
	response.OK(c, gin.H{"project": detail})
}

// Update 合并更新项目
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid project id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid project update", err)
		return
	}

	if err := h.projectSvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleProjectError(c, err, "Failed to update project")
		return
	}
	response.Message(c, "Project updated successfully")
}

func (h *ProjectHandler) handleProjectError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, "Project not found")
	default:
		response.InternalError(c, fallback, err)
	}
}

// parseIDParam 解析路径中的正整数 ID；失败时写入 400 并返回 false
func parseIDParam(c *gin.Context, message string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, message, nil)
		return 0, false
	}
	return id, true
}
