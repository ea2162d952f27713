package handler

import (
	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth            *AuthHandler
	Prospection     *ProspectionHandler
	Salesforce      *SalesforceHandler
	Project         *ProjectHandler
	Module          *ModuleHandler
	Directory       *DirectoryHandler
	Statistics      *StatisticsHandler
	Sync            *SyncHandler
	ProspectionCard *ProspectionCardHandler
	Export          *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, cookie config.CookieConfig) *Handler {
	return &Handler{
		Auth:            NewAuthHandler(svc.Auth, cookie),
		Prospection:     NewProspectionHandler(svc.Prospection),
		Salesforce:      NewSalesforceHandler(svc.Salesforce),
		Project:         NewProjectHandler(svc.Project),
		Module:          NewModuleHandler(svc.Module),
		Directory:       NewDirectoryHandler(svc.Directory),
		Statistics:      NewStatisticsHandler(svc.Statistics),
		Sync:            NewSyncHandler(svc.Sync),
		ProspectionCard: NewProspectionCardHandler(svc.ProspectionCard),
		Export:          NewExportHandler(svc.Export),
	}
}
