package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	GetByID(ctx context.Context, id int) (*model.Project, error)
	ListViews(ctx context.Context) ([]model.ProjectView, error)
	GetView(ctx context.Context, id int) (*model.ProjectView, error)
	ListContacts(ctx context.Context, projectID int) ([]model.ProjectContactView, error)
	UpdateFields(ctx context.Context, project *model.Project) error
	Upsert(ctx context.Context, project *model.Project) error
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

// projectViewColumns 项目联表查询列
const projectViewColumns = `
	p.ProjectID AS id, p.Title AS title, p.Description AS description, p.Comment AS comment,
	p.Status AS status, p.Period AS period, p.Year AS year, p.NumPrototypes AS numPrototypes,
	p.Quarter AS quarter, p.PartnerID AS partnerId, p.ModuleID AS moduleId,
	m.Name AS module, m.Course AS course, m.Description AS moduleDescription,
	pa.Name AS partner, pa.Sector AS sector, pa.Industry AS industry, pa.Activity AS activity,
	c.ClassCode AS classCode, c.Classroom AS classroom,
	s1.Name AS coordinator, s1.Email AS coordinatorEmail,
	s2.Name AS advisor, s2.Email AS advisorEmail,
	a.Sent AS agreementSent, a.Returned AS agreementReturned, a.Signed AS agreementSigned, a.Comments AS agreementComments,
	t.Sent AS tapiSent, t.Returned AS tapiReturned, t.Signed AS tapiSigned, t.Comments AS tapiComments,
	pg.Link AS githubLink`

// projectViewQuery 构造项目联表查询
func (r *projectRepo) projectViewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("Project p").
		Select(projectViewColumns).
		Joins("LEFT JOIN Module m ON p.ModuleID = m.ModuleID").
		Joins("LEFT JOIN Partner pa ON p.PartnerID = pa.PartnerID").
		Joins("LEFT JOIN Class c ON m.ClassID = c.ClassID").
		Joins("LEFT JOIN Staff s1 ON p.CoordinatorID = s1.StaffID").
		Joins("LEFT JOIN Staff s2 ON p.AdvisorID = s2.StaffID").
		Joins("LEFT JOIN Agreement a ON p.AgreementID = a.AgreementID").
		Joins("LEFT JOIN TAPI t ON p.TapiID = t.TapiID").
		Joins("LEFT JOIN ProjectGitHub pg ON p.ProjectID = pg.ProjectID")
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Order("ProjectID ASC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) GetByID(ctx context.Context, id int) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("ProjectID = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) ListViews(ctx context.Context) ([]model.ProjectView, error) {
	var rows []model.ProjectView
	err := r.projectViewQuery(ctx).
		Order("p.Year DESC, p.Period DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *projectRepo) GetView(ctx context.Context, id int) (*model.ProjectView, error) {
	var rows []model.ProjectView
	err := r.projectViewQuery(ctx).
		Where("p.ProjectID = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *projectRepo) ListContacts(ctx context.Context, projectID int) ([]model.ProjectContactView, error) {
	var rows []model.ProjectContactView
	err := r.db.WithContext(ctx).
		Table("ProjectContact pc").
		Select("c.Name AS name, c.Email AS email, c.Phone AS phone, c.Role AS role, pc.Role AS projectRole").
		Joins("JOIN Contact c ON pc.ContactID = c.ContactID").
		Where("pc.ProjectID = ?", projectID).
		Scan(&rows).Error
	return rows, err
}

// UpdateFields 写回页面可编辑的字段（NULL 值同样写入）
func (r *projectRepo) UpdateFields(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("ProjectID = ?", project.ProjectID).
		Select("Title", "Description", "Status", "Period", "Quarter", "Year",
			"NumPrototypes", "PartnerID", "ModuleID", "AdvisorID", "Comment").
		Updates(project)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Upsert 同步写入；仅覆盖 Salesforce 提供的字段，页面维护的字段保持不变
func (r *projectRepo) Upsert(ctx context.Context, project *model.Project) error {
	stored, err := upsertBySalesforceID(ctx, r.db, project, model.StringValue(project.SalesforceID),
		[]string{"Title", "Description", "Status", "Quarter", "Year", "PartnerID", "ModuleID"})
	if err != nil {
		return err
	}
	project.ProjectID = stored.ProjectID
	return nil
}
