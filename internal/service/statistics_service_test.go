package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

func TestStatisticsService_BucketsSumToTotal(t *testing.T) {
	repo, mocks := newMockRepos()
	svc := NewStatisticsService(repo, zap.NewNop())

	statuses := []*string{
		sp("Concluído"), sp("Concluído"), sp("Em andamento"), sp("Aguardando início"),
		sp("Vaga em aberto"), sp("EM ANDAMENTO"), sp("Cancelado"), nil, sp(""),
	}
	for i, s := range statuses {
		mocks.project.projects[i+1] = &model.Project{ProjectID: i + 1, Title: "p", Status: s}
	}

	stats, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}

	if stats.Total != int64(len(statuses)) {
		t.Errorf("期望 total=%d，实际=%d", len(statuses), stats.Total)
	}
	if stats.Completed != 2 || stats.InProgress != 2 || stats.Waiting != 1 || stats.Open != 1 {
		t.Errorf("分类计数不符: %+v", stats)
	}
	if stats.Unclassified != 3 {
		t.Errorf("期望 unclassified=3，实际=%d", stats.Unclassified)
	}
	sum := stats.Completed + stats.InProgress + stats.Waiting + stats.Open + stats.Unclassified
	if sum != stats.Total {
		t.Errorf("分类之和 %d 应等于总数 %d", sum, stats.Total)
	}
}

func TestStatisticsService_Error(t *testing.T) {
	repo, mocks := newMockRepos()
	mocks.stats.err = errors.New("db down")
	svc := NewStatisticsService(repo, zap.NewNop())

	if _, err := svc.Get(context.Background()); err == nil {
		t.Error("期望返回错误")
	}
}
