package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

// SalesforceHandler Salesforce 透传查询 HTTP 处理器
type SalesforceHandler struct {
	sfSvc service.SalesforceService
}

// NewSalesforceHandler 创建 SalesforceHandler
func NewSalesforceHandler(sfSvc service.SalesforceService) *SalesforceHandler {
	return &SalesforceHandler{sfSvc: sfSvc}
}

// GET /api/salesforce/accounts
func (h *SalesforceHandler) Accounts(c *gin.Context) { h.records(c, h.sfSvc.Accounts) }

// GET /api/salesforce/partners
func (h *SalesforceHandler) Partners(c *gin.Context) { h.records(c, h.sfSvc.Partners) }

// GET /api/salesforce/contacts
func (h *SalesforceHandler) Contacts(c *gin.Context) { h.records(c, h.sfSvc.Contacts) }

// GET /api/salesforce/projects
func (h *SalesforceHandler) Projects(c *gin.Context) { h.records(c, h.sfSvc.Projects) }

// GET /api/salesforce/leads
func (h *SalesforceHandler) Leads(c *gin.Context) { h.records(c, h.sfSvc.Leads) }

// GET /api/salesforce/courses
func (h *SalesforceHandler) Courses(c *gin.Context) { h.records(c, h.sfSvc.Courses) }

// GET /api/salesforce/module-picklist
func (h *SalesforceHandler) ModulePicklist(c *gin.Context) { h.records(c, h.sfSvc.ModulePicklist) }

// Modules 按课程过滤模块名
// GET /api/salesforce/modules?course=xxx
func (h *SalesforceHandler) Modules(c *gin.Context) {
	course := c.Query("course")
	h.records(c, func(ctx context.Context) (*service.Records, error) {
		return h.sfSvc.Modules(ctx, course)
	})
}

// Status GET /api/salesforce/status
func (h *SalesforceHandler) Status(c *gin.Context) {
	st := h.sfSvc.Status()
	response.OK(c, gin.H{
		"connected":  st.Connected,
		"configured": st.Configured,
		"breaker":    st.Breaker,
	})
}

func (h *SalesforceHandler) records(c *gin.Context, fetch func(context.Context) (*service.Records, error)) {
	res, err := fetch(c.Request.Context())
	if err != nil {
		h.handleSalesforceError(c, err)
		return
	}
	response.OK(c, gin.H{"count": res.Count, "records": res.Records})
}

func (h *SalesforceHandler) handleSalesforceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, salesforce.ErrNotConfigured):
		response.ServiceUnavailable(c, "Salesforce service is not available", err)
	case errors.Is(err, salesforce.ErrUnavailable):
		response.ServiceUnavailable(c, "Salesforce is temporarily unavailable", err)
	default:
		response.InternalError(c, "Salesforce request failed", err)
	}
}
