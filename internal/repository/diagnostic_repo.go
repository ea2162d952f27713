package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// DiagnosticRepository 排查用：读取各表最新一行
type DiagnosticRepository interface {
	LatestProject(ctx context.Context) ([]model.Project, error)
	LatestContact(ctx context.Context) ([]model.Contact, error)
	LatestStaff(ctx context.Context) ([]model.Staff, error)
}

type diagnosticRepo struct {
	db *gorm.DB
}

// NewDiagnosticRepo 创建 DiagnosticRepository 实例
func NewDiagnosticRepo(db *gorm.DB) DiagnosticRepository {
	return &diagnosticRepo{db: db}
}

func (r *diagnosticRepo) LatestProject(ctx context.Context) ([]model.Project, error) {
	var rows []model.Project
	err := r.db.WithContext(ctx).Order("ProjectID DESC").Limit(1).Find(&rows).Error
	return rows, err
}

func (r *diagnosticRepo) LatestContact(ctx context.Context) ([]model.Contact, error) {
	var rows []model.Contact
	err := r.db.WithContext(ctx).Order("ContactID DESC").Limit(1).Find(&rows).Error
	return rows, err
}

func (r *diagnosticRepo) LatestStaff(ctx context.Context) ([]model.Staff, error) {
	var rows []model.Staff
	err := r.db.WithContext(ctx).Order("StaffID DESC").Limit(1).Find(&rows).Error
	return rows, err
}
