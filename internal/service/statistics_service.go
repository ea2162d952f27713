package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
)

// 项目状态（沿用 Salesforce 阶段的葡语取值）
const (
	StatusCompleted  = "Concluído"
	StatusInProgress = "Em andamento"
	StatusWaiting    = "Aguardando início"
	StatusOpen       = "Vaga em aberto"
)

// bucketStatuses 参与分类统计的状态
var bucketStatuses = []string{StatusCompleted, StatusInProgress, StatusWaiting, StatusOpen}

// StatisticsService 项目统计业务接口
type StatisticsService interface {
	Get(ctx context.Context) (*dto.StatisticsResponse, error)
}

type statisticsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatisticsService 创建 StatisticsService 实例
func NewStatisticsService(repo *repository.Repository, logger *zap.Logger) StatisticsService {
	return &statisticsService{repo: repo, logger: logger}
}

// Get 六个 COUNT 在同一只读事务内依次执行，保证各分类之和等于总数
func (s *statisticsService) Get(ctx context.Context) (*dto.StatisticsResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	if tx != nil {
		// 只读事务，结束时回滚即可
		defer tx.Rollback()
	}
	stats := s.repo.WithTx(tx).Statistics

	var resp dto.StatisticsResponse
	counts := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&resp.Total, func() (int64, error) { return stats.CountProjects(ctx) }},
		{&resp.Completed, func() (int64, error) { return stats.CountByStatus(ctx, StatusCompleted) }},
		{&resp.InProgress, func() (int64, error) { return stats.CountByStatus(ctx, StatusInProgress) }},
		{&resp.Waiting, func() (int64, error) { return stats.CountByStatus(ctx, StatusWaiting) }},
		{&resp.Open, func() (int64, error) { return stats.CountByStatus(ctx, StatusOpen) }},
		{&resp.Unclassified, func() (int64, error) { return stats.CountUnclassified(ctx, bucketStatuses) }},
	}
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			s.logger.Error("统计项目状态失败", zap.Error(err))
			return nil, err
		}
		*c.dst = n
	}
	return &resp, nil
}
