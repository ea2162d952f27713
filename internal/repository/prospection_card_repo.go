package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// ProspectionCardRepository 勘探卡数据访问接口
type ProspectionCardRepository interface {
	List(ctx context.Context) ([]model.ProspectionCard, error)
	GetByID(ctx context.Context, id int) (*model.ProspectionCard, error)
	FindBySlot(ctx context.Context, year, period int, course string) (*model.ProspectionCard, error)
	Create(ctx context.Context, card *model.ProspectionCard) error
	Update(ctx context.Context, card *model.ProspectionCard) error
}

type prospectionCardRepo struct {
	db *gorm.DB
}

// NewProspectionCardRepo 创建 ProspectionCardRepository 实例
func NewProspectionCardRepo(db *gorm.DB) ProspectionCardRepository {
	return &prospectionCardRepo{db: db}
}

func (r *prospectionCardRepo) List(ctx context.Context) ([]model.ProspectionCard, error) {
	var cards []model.ProspectionCard
	err := r.db.WithContext(ctx).
		Order("Year DESC, Period DESC, Course ASC").
		Find(&cards).Error
	return cards, err
}

func (r *prospectionCardRepo) GetByID(ctx context.Context, id int) (*model.ProspectionCard, error) {
	var card model.ProspectionCard
	err := r.db.WithContext(ctx).
		Where("ProspectionCardID = ?", id).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// FindBySlot 按 (Year, Period, Course) 查找已有卡片
func (r *prospectionCardRepo) FindBySlot(ctx context.Context, year, period int, course string) (*model.ProspectionCard, error) {
	var card model.ProspectionCard
	err := r.db.WithContext(ctx).
		Where("Year = ? AND Period = ? AND Course = ?", year, period, course).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *prospectionCardRepo) Create(ctx context.Context, card *model.ProspectionCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *prospectionCardRepo) Update(ctx context.Context, card *model.ProspectionCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}
