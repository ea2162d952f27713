package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
)

var ErrModuleNotFound = errors.New("模块不存在")

// ModuleService 模块业务接口
type ModuleService interface {
	Update(ctx context.Context, id int, req *dto.UpdateModuleRequest) error
}

type moduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewModuleService 创建 ModuleService 实例
func NewModuleService(repo *repository.Repository, logger *zap.Logger) ModuleService {
	return &moduleService{repo: repo, logger: logger}
}

func (s *moduleService) Update(ctx context.Context, id int, req *dto.UpdateModuleRequest) error {
	module, err := s.repo.Module.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModuleNotFound
		}
		s.logger.Error("查询模块失败", zap.Int("id", id), zap.Error(err))
		return err
	}

	if req.Name != nil {
		module.Name = *req.Name
	}
	if req.Course != nil {
		module.Course = req.Course
	}
	if req.Description != nil {
		module.Description = req.Description
	}
	if req.Period != nil {
		module.Period = req.Period
	}
	if req.ClassID != nil {
		module.ClassID = req.ClassID
	}
	if req.FieldOfStudy != nil {
		module.FieldOfStudy = req.FieldOfStudy
	}

	if err := s.repo.Module.Update(ctx, module); err != nil {
		s.logger.Error("更新模块失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}
