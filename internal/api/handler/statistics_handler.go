package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

// StatisticsHandler 项目统计 HTTP 处理器
type StatisticsHandler struct {
	statsSvc service.StatisticsService
}

// NewStatisticsHandler 创建 StatisticsHandler
func NewStatisticsHandler(statsSvc service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statsSvc: statsSvc}
}

// Get GET /api/statistics
func (h *StatisticsHandler) Get(c *gin.Context) {
	stats, err := h.statsSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch statistics", err)
		return
	}
	response.OK(c, gin.H{"statistics": stats})
}
