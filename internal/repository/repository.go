package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Partner         PartnerRepository
	Contact         ContactRepository
	Lead            LeadRepository
	Project         ProjectRepository
	Module          ModuleRepository
	Class           ClassRepository
	ProspectionCard ProspectionCardRepository
	Statistics      StatisticsRepository
	Diagnostic      DiagnosticRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		Partner:         NewPartnerRepo(db),
		Contact:         NewContactRepo(db),
		Lead:            NewLeadRepo(db),
		Project:         NewProjectRepo(db),
		Module:          NewModuleRepo(db),
		Class:           NewClassRepo(db),
		ProspectionCard: NewProspectionCardRepo(db),
		Statistics:      NewStatisticsRepo(db),
		Diagnostic:      NewDiagnosticRepo(db),
	}
}

// BeginTx 开启事务
// 单元测试中聚合由 mock 组装、db 为 nil，此时返回 nil 事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到事务连接的 Repository 聚合；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// upsertBySalesforceID 以 SalesforceID 为冲突键执行 INSERT ... ON DUPLICATE KEY UPDATE，
// 并回读存储后的行（MySQL 在更新分支下 LastInsertId 不可靠）
func upsertBySalesforceID[T any](ctx context.Context, db *gorm.DB, row *T, sfID string, updates []string) (*T, error) {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "SalesforceID"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	var stored T
	if err := db.WithContext(ctx).Where("SalesforceID = ?", sfID).Take(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
