package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// PartnerRepository 合作伙伴数据访问接口
type PartnerRepository interface {
	List(ctx context.Context) ([]model.Partner, error)
	GetBySalesforceID(ctx context.Context, sfID string) (*model.Partner, error)
	Upsert(ctx context.Context, partner *model.Partner) error
}

type partnerRepo struct {
	db *gorm.DB
}

// NewPartnerRepo 创建 PartnerRepository 实例
func NewPartnerRepo(db *gorm.DB) PartnerRepository {
	return &partnerRepo{db: db}
}

func (r *partnerRepo) List(ctx context.Context) ([]model.Partner, error) {
	var partners []model.Partner
	err := r.db.WithContext(ctx).
		Order("Name ASC").
		Find(&partners).Error
	return partners, err
}

func (r *partnerRepo) GetBySalesforceID(ctx context.Context, sfID string) (*model.Partner, error) {
	var partner model.Partner
	err := r.db.WithContext(ctx).
		Where("SalesforceID = ?", sfID).
		First(&partner).Error
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// Upsert 写入后回填 PartnerID
func (r *partnerRepo) Upsert(ctx context.Context, partner *model.Partner) error {
	stored, err := upsertBySalesforceID(ctx, r.db, partner, model.StringValue(partner.SalesforceID),
		[]string{"Name", "Sector", "Industry", "Activity"})
	if err != nil {
		return err
	}
	partner.PartnerID = stored.PartnerID
	return nil
}
