package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// LeadRepository 潜在客户数据访问接口
type LeadRepository interface {
	List(ctx context.Context) ([]model.Lead, error)
	Upsert(ctx context.Context, lead *model.Lead) error
}

type leadRepo struct {
	db *gorm.DB
}

// NewLeadRepo 创建 LeadRepository 实例
func NewLeadRepo(db *gorm.DB) LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) List(ctx context.Context) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Order("Name ASC").
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) Upsert(ctx context.Context, lead *model.Lead) error {
	stored, err := upsertBySalesforceID(ctx, r.db, lead, lead.SalesforceID,
		[]string{"Name", "Phone", "Email", "Company"})
	if err != nil {
		return err
	}
	lead.LeadID = stored.LeadID
	return nil
}
