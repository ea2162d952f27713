package service

import (
	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/jwt"
	pkgredis "github.com/MilanAlbertz/pmo-dashboard/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth            AuthService
	Project         ProjectService
	Module          ModuleService
	Directory       DirectoryService
	Statistics      StatisticsService
	Prospection     ProspectionService
	ProspectionCard ProspectionCardService
	Salesforce      SalesforceService
	Sync            SyncService
	Export          ExportService
}

// NewService 创建 Service 聚合
// rdb 为 nil 时：同步不加锁，登出不写黑名单
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *pkgredis.Client,
	sf SalesforceAPI,
	logger *zap.Logger,
) (*Service, error) {
	// 避免把 nil 指针装进非 nil 接口
	var (
		locker    SyncLocker
		blacklist TokenBlacklist
	)
	if rdb != nil {
		locker = rdb
		blacklist = rdb
	}

	auth, err := NewAuthService(&cfg.Auth, jwtMgr, blacklist, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		Auth:            auth,
		Project:         NewProjectService(repo, logger),
		Module:          NewModuleService(repo, logger),
		Directory:       NewDirectoryService(repo, logger),
		Statistics:      NewStatisticsService(repo, logger),
		Prospection:     NewProspectionService(logger),
		ProspectionCard: NewProspectionCardService(repo, logger),
		Salesforce:      NewSalesforceService(sf, cfg.Salesforce.Configured(), logger),
		Sync:            NewSyncService(repo, sf, locker, &cfg.Sync, logger),
		Export:          NewExportService(repo, logger),
	}, nil
}
