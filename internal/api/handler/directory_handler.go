package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/response"
)

// DirectoryHandler 本地合作伙伴 / 联系人 / 潜在客户 HTTP 处理器
type DirectoryHandler struct {
	dirSvc service.DirectoryService
}

// NewDirectoryHandler 创建 DirectoryHandler
func NewDirectoryHandler(dirSvc service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{dirSvc: dirSvc}
}

// Partners GET /api/partners
func (h *DirectoryHandler) Partners(c *gin.Context) {
	partners, err := h.dirSvc.ListPartners(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch partners", err)
		return
	}
	response.OK(c, gin.H{"partners": partners})
}

// Contacts GET /api/contacts
func (h *DirectoryHandler) Contacts(c *gin.Context) {
	contacts, err := h.dirSvc.ListContacts(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch contacts", err)
		return
	}
	response.OK(c, gin.H{"contacts": contacts})
}

// Leads GET /api/leads
func (h *DirectoryHandler) Leads(c *gin.Context) {
	leads, err := h.dirSvc.ListLeads(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch leads", err)
		return
	}
	response.OK(c, gin.H{"leads": leads})
}

// PartnersAndLeads GET /api/partners-and-leads
func (h *DirectoryHandler) PartnersAndLeads(c *gin.Context) {
	res, err := h.dirSvc.ListPartnersAndLeads(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch partners and leads", err)
		return
	}
	response.OK(c, gin.H{"partners": res.Partners, "leads": res.Leads})
}

// Latest 排查用：返回指定表最新一行
// GET /api/test/:table
func (h *DirectoryHandler) Latest(c *gin.Context) {
	table := c.Param("table")
	rows, err := h.dirSvc.Latest(c.Request.Context(), table)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTable):
			response.NotFound(c, "Unknown table")
		default:
			response.InternalError(c, "Failed to fetch test "+table, err)
		}
		return
	}
	response.OK(c, gin.H{"rows": rows})
}
