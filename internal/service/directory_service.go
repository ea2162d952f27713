package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
)

var ErrUnknownTable = errors.New("不支持的表")

// DirectoryService 本地合作伙伴 / 联系人 / 潜在客户查询
type DirectoryService interface {
	ListPartners(ctx context.Context) ([]model.Partner, error)
	ListContacts(ctx context.Context) ([]model.ContactView, error)
	ListLeads(ctx context.Context) ([]model.Lead, error)
	ListPartnersAndLeads(ctx context.Context) (*dto.PartnersAndLeadsResponse, error)
	// Latest 返回指定表最新一行（projects / contacts / staff），用于排查
	Latest(ctx context.Context, table string) (interface{}, error)
}

type directoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDirectoryService 创建 DirectoryService 实例
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger}
}

func (s *directoryService) ListPartners(ctx context.Context) ([]model.Partner, error) {
	partners, err := s.repo.Partner.List(ctx)
	if err != nil {
		s.logger.Error("查询合作伙伴失败", zap.Error(err))
		return nil, err
	}
	if partners == nil {
		partners = []model.Partner{}
	}
	return partners, nil
}

func (s *directoryService) ListContacts(ctx context.Context) ([]model.ContactView, error) {
	contacts, err := s.repo.Contact.ListWithPartner(ctx)
	if err != nil {
		s.logger.Error("查询联系人失败", zap.Error(err))
		return nil, err
	}
	if contacts == nil {
		contacts = []model.ContactView{}
	}
	return contacts, nil
}

func (s *directoryService) ListLeads(ctx context.Context) ([]model.Lead, error) {
	leads, err := s.repo.Lead.List(ctx)
	if err != nil {
		s.logger.Error("查询潜在客户失败", zap.Error(err))
		return nil, err
	}
	if leads == nil {
		leads = []model.Lead{}
	}
	return leads, nil
}

func (s *directoryService) ListPartnersAndLeads(ctx context.Context) (*dto.PartnersAndLeadsResponse, error) {
	partners, err := s.ListPartners(ctx)
	if err != nil {
		return nil, err
	}
	leads, err := s.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PartnersAndLeadsResponse{Partners: partners, Leads: leads}, nil
}

func (s *directoryService) Latest(ctx context.Context, table string) (interface{}, error) {
	var (
		rows interface{}
		err  error
	)
	switch table {
	case "projects":
		rows, err = s.repo.Diagnostic.LatestProject(ctx)
	case "contacts":
		rows, err = s.repo.Diagnostic.LatestContact(ctx)
	case "staff":
		rows, err = s.repo.Diagnostic.LatestStaff(ctx)
	default:
		return nil, ErrUnknownTable
	}
	if err != nil {
		s.logger.Error("查询最新记录失败", zap.String("table", table), zap.Error(err))
		return nil, err
	}
	return rows, nil
}
