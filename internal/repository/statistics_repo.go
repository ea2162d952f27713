package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// StatisticsRepository 项目状态统计接口
type StatisticsRepository interface {
	CountProjects(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountUnclassified(ctx context.Context, statuses []string) (int64, error)
}

type statisticsRepo struct {
	db *gorm.DB
}

// NewStatisticsRepo 创建 StatisticsRepository 实例
func NewStatisticsRepo(db *gorm.DB) StatisticsRepository {
	return &statisticsRepo{db: db}
}

func (r *statisticsRepo) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error
	return count, err
}

// CountByStatus 比较依赖列排序规则（utf8mb4_unicode_ci，大小写与重音不敏感）
func (r *statisticsRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("Status = ?", status).
		Count(&count).Error
	return count, err
}

// CountUnclassified 状态为空或不属于任何已知分类的项目
func (r *statisticsRepo) CountUnclassified(ctx context.Context, statuses []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("Status IS NULL OR Status NOT IN ?", statuses).
		Count(&count).Error
	return count, err
}
