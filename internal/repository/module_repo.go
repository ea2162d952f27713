package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// ModuleRepository 模块数据访问接口
type ModuleRepository interface {
	List(ctx context.Context) ([]model.Module, error)
	GetByID(ctx context.Context, id int) (*model.Module, error)
	FindByNamePeriod(ctx context.Context, name string, period *string) (*model.Module, error)
	Create(ctx context.Context, module *model.Module) error
	Update(ctx context.Context, module *model.Module) error
	UpdateLinkage(ctx context.Context, id int, classID *int, course *string) error
}

type moduleRepo struct {
	db *gorm.DB
}

// NewModuleRepo 创建 ModuleRepository 实例
func NewModuleRepo(db *gorm.DB) ModuleRepository {
	return &moduleRepo{db: db}
}

func (r *moduleRepo) List(ctx context.Context) ([]model.Module, error) {
	var modules []model.Module
	err := r.db.WithContext(ctx).
		Order("ModuleID ASC").
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) GetByID(ctx context.Context, id int) (*model.Module, error) {
	var module model.Module
	err := r.db.WithContext(ctx).
		Where("ModuleID = ?", id).
		First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// FindByNamePeriod period 为 nil 时匹配 Period IS NULL
func (r *moduleRepo) FindByNamePeriod(ctx context.Context, name string, period *string) (*model.Module, error) {
	q := r.db.WithContext(ctx).Where("Name = ?", name)
	if period == nil {
		q = q.Where("Period IS NULL")
	} else {
		q = q.Where("Period = ?", *period)
	}

	var module model.Module
	if err := q.Order("ModuleID ASC").First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepo) Create(ctx context.Context, module *model.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}

// Update 整行覆盖（含 NULL）
func (r *moduleRepo) Update(ctx context.Context, module *model.Module) error {
	return r.db.WithContext(ctx).
		Model(&model.Module{}).
		Where("ModuleID = ?", module.ModuleID).
		Select("Name", "Course", "Description", "Period", "ClassID", "FieldOfStudy").
		Updates(module).Error
}

func (r *moduleRepo) UpdateLinkage(ctx context.Context, id int, classID *int, course *string) error {
	return r.db.WithContext(ctx).
		Model(&model.Module{}).
		Where("ModuleID = ?", id).
		Updates(map[string]interface{}{"ClassID": classID, "Course": course}).Error
}

// ── Class Repository ──

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	List(ctx context.Context) ([]model.Class, error)
	FindOrCreate(ctx context.Context, code string) (*model.Class, error)
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) List(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Order("ClassID ASC").
		Find(&classes).Error
	return classes, err
}

// FindOrCreate 以 ClassCode 唯一键插入（已存在则忽略）后回读
func (r *classRepo) FindOrCreate(ctx context.Context, code string) (*model.Class, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Class{ClassCode: code}).Error
	if err != nil {
		return nil, err
	}

	var class model.Class
	if err := r.db.WithContext(ctx).Where("ClassCode = ?", code).First(&class).Error; err != nil {
		return nil, err
	}
	return &class, nil
}
