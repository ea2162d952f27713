package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
)

// ── 项目模块业务错误 ──

var ErrProjectNotFound = errors.New("项目不存在")

// ProjectService 项目业务接口
type ProjectService interface {
	List(ctx context.Context) ([]model.ProjectView, error)
	GetDetail(ctx context.Context, id int) (*dto.ProjectDetailResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateProjectRequest) error
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *projectService) List(ctx context.Context) ([]model.ProjectView, error) {
	rows, err := s.repo.Project.ListViews(ctx)
	if err != nil {
		s.logger.Error("查询项目列表失败", zap.Error(err))
		return nil, err
	}
	if rows == nil {
		rows = []model.ProjectView{}
	}
	return rows, nil
}

// ────────────────────── GetDetail ──────────────────────

func (s *projectService) GetDetail(ctx context.Context, id int) (*dto.ProjectDetailResponse, error) {
	view, err := s.repo.Project.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目详情失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	contacts, err := s.repo.Project.ListContacts(ctx, id)
	if err != nil {
		s.logger.Error("查询项目联系人失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	if contacts == nil {
		contacts = []model.ProjectContactView{}
	}

	return &dto.ProjectDetailResponse{
		ProjectView: *view,
		Contacts:    contacts,
		Terms: dto.TermsStatus{
			Sent:     view.AgreementSent,
			Returned: view.AgreementReturned,
			Signed:   view.AgreementSigned,
			Comment:  view.AgreementComments,
		},
		Tapi: dto.TapiStatus{
			Sent:     view.TapiSent,
			Returned: view.TapiReturned,
			Aligned:  view.TapiSigned,
			Comment:  view.TapiComments,
		},
	}, nil
}

// ────────────────────── Update ──────────────────────

// Update 合并更新：请求中缺省的字段保留数据库原值
func (s *projectService) Update(ctx context.Context, id int, req *dto.UpdateProjectRequest) error {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.Int("id", id), zap.Error(err))
		return err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.Status != nil {
		project.Status = req.Status
	}
	if req.Period != nil {
		project.Period = req.Period
	}
	if req.Quarter != nil {
		project.Quarter = req.Quarter
	}
	if req.Year != nil {
		project.Year = req.Year
	}
	if req.NumPrototypes != nil {
		project.NumPrototypes = req.NumPrototypes
	}
	if req.PartnerID != nil {
		project.PartnerID = req.PartnerID
	}
	if req.ModuleID != nil {
		project.ModuleID = req.ModuleID
	}
	if req.AdvisorID != nil {
		project.AdvisorID = req.AdvisorID
	}
	if req.Comment != nil {
		project.Comment = req.Comment
	}

	if err := s.repo.Project.UpdateFields(ctx, project); err != nil {
		s.logger.Error("更新项目失败", zap.Int("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("项目已更新", zap.Int("id", id))
	return nil
}
