package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

// SyncHandler Salesforce 同步 HTTP 处理器
type SyncHandler struct {
	syncSvc service.SyncService
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(syncSvc service.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// SyncSalesforce 执行一次完整同步
// POST /api/sync/salesforce
func (h *SyncHandler) SyncSalesforce(c *gin.Context) {
	result, err := h.syncSvc.Run(c.Request.Context())
	if err != nil {
		h.handleSyncError(c, err)
		return
	}

	response.OK(c, gin.H{
		"message": "Sync completed",
		"runId":   result.RunID,
		"stats":   result.Stats,
		"changes": result.Changes,
	})
}

func (h *SyncHandler) handleSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		response.Conflict(c, "A sync is already running", err)
	case errors.Is(err, salesforce.ErrNotConfigured):
		response.ServiceUnavailable(c, "Salesforce service is not available", err)
	case errors.Is(err, salesforce.ErrUnavailable):
		response.ServiceUnavailable(c, "Salesforce is temporarily unavailable", err)
	case errors.Is(err, service.ErrSyncFetch):
		response.InternalError(c, "Failed to fetch data from Salesforce", err)
	default:
		response.InternalError(c, "Sync failed", err)
	}
}
