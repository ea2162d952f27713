package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
)

// ── Mock PartnerRepository ──

type mockPartnerRepo struct {
	partners map[int]*model.Partner
	nextID   int
	failOn   map[string]error // SalesforceID → 写入时返回的错误
	writes   int
}

func newMockPartnerRepo() *mockPartnerRepo {
	return &mockPartnerRepo{partners: make(map[int]*model.Partner), nextID: 1, failOn: map[string]error{}}
}

func (m *mockPartnerRepo) List(_ context.Context) ([]model.Partner, error) {
	var result []model.Partner
	for _, p := range m.partners {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PartnerID < result[j].PartnerID })
	return result, nil
}

func (m *mockPartnerRepo) GetBySalesforceID(_ context.Context, sfID string) (*model.Partner, error) {
	for _, p := range m.partners {
		if model.StringValue(p.SalesforceID) == sfID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPartnerRepo) Upsert(ctx context.Context, partner *model.Partner) error {
	sfID := model.StringValue(partner.SalesforceID)
	if err := m.failOn[sfID]; err != nil {
		return err
	}
	m.writes++
	if existing, err := m.GetBySalesforceID(ctx, sfID); err == nil {
		partner.PartnerID = existing.PartnerID
	} else {
		partner.PartnerID = m.nextID
		m.nextID++
	}
	cp := *partner
	m.partners[cp.PartnerID] = &cp
	return nil
}

// ── Mock ContactRepository ──

type mockContactRepo struct {
	contacts map[string]*model.Contact // SalesforceID → Contact
	nextID   int
	writes   int
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{contacts: make(map[string]*model.Contact), nextID: 1}
}

func (m *mockContactRepo) List(_ context.Context) ([]model.Contact, error) {
	var result []model.Contact
	for _, c := range m.contacts {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockContactRepo) ListWithPartner(_ context.Context) ([]model.ContactView, error) {
	var result []model.ContactView
	for _, c := range m.contacts {
		result = append(result, model.ContactView{Contact: *c})
	}
	return result, nil
}

func (m *mockContactRepo) Upsert(_ context.Context, contact *model.Contact) error {
	m.writes++
	sfID := model.StringValue(contact.SalesforceID)
	if existing, ok := m.contacts[sfID]; ok {
		contact.ContactID = existing.ContactID
	} else {
		contact.ContactID = m.nextID
		m.nextID++
	}
	cp := *contact
	m.contacts[sfID] = &cp
	return nil
}

// ── Mock LeadRepository ──

type mockLeadRepo struct {
	leads  map[string]*model.Lead
	nextID int
	writes int
}

func newMockLeadRepo() *mockLeadRepo {
	return &mockLeadRepo{leads: make(map[string]*model.Lead), nextID: 1}
}

func (m *mockLeadRepo) List(_ context.Context) ([]model.Lead, error) {
	var result []model.Lead
	for _, l := range m.leads {
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLeadRepo) Upsert(_ context.Context, lead *model.Lead) error {
	m.writes++
	if existing, ok := m.leads[lead.SalesforceID]; ok {
		lead.LeadID = existing.LeadID
	} else {
		lead.LeadID = m.nextID
		m.nextID++
	}
	cp := *lead
	m.leads[lead.SalesforceID] = &cp
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[int]*model.Project
	views    map[int]*model.ProjectView
	contacts map[int][]model.ProjectContactView
	listErr  error
	nextID   int
	writes   int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{
		projects: make(map[int]*model.Project),
		views:    make(map[int]*model.ProjectView),
		contacts: make(map[int][]model.ProjectContactView),
		nextID:   1,
	}
}

func (m *mockProjectRepo) List(_ context.Context) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProjectID < result[j].ProjectID })
	return result, nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id int) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) ListViews(_ context.Context) ([]model.ProjectView, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.ProjectView
	for _, v := range m.views {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjectRepo) GetView(_ context.Context, id int) (*model.ProjectView, error) {
	if v, ok := m.views[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) ListContacts(_ context.Context, projectID int) ([]model.ProjectContactView, error) {
	return m.contacts[projectID], nil
}

func (m *mockProjectRepo) UpdateFields(_ context.Context, project *model.Project) error {
	m.writes++
	cp := *project
	m.projects[project.ProjectID] = &cp
	return nil
}

func (m *mockProjectRepo) Upsert(_ context.Context, project *model.Project) error {
	m.writes++
	sfID := model.StringValue(project.SalesforceID)
	for id, p := range m.projects {
		if model.StringValue(p.SalesforceID) == sfID {
			project.ProjectID = id
			// 仅覆盖同步字段
			p.Title, p.Description, p.Status = project.Title, project.Description, project.Status
			p.Quarter, p.Year, p.PartnerID, p.ModuleID = project.Quarter, project.Year, project.PartnerID, project.ModuleID
			return nil
		}
	}
	project.ProjectID = m.nextID
	m.nextID++
	cp := *project
	m.projects[cp.ProjectID] = &cp
	return nil
}

// ── Mock ModuleRepository ──

type mockModuleRepo struct {
	modules map[int]*model.Module
	nextID  int
}

func newMockModuleRepo() *mockModuleRepo {
	return &mockModuleRepo{modules: make(map[int]*model.Module), nextID: 1}
}

func (m *mockModuleRepo) List(_ context.Context) ([]model.Module, error) {
	var result []model.Module
	for _, mod := range m.modules {
		result = append(result, *mod)
	}
	return result, nil
}

func (m *mockModuleRepo) GetByID(_ context.Context, id int) (*model.Module, error) {
	if mod, ok := m.modules[id]; ok {
		cp := *mod
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModuleRepo) FindByNamePeriod(_ context.Context, name string, period *string) (*model.Module, error) {
	for _, mod := range m.modules {
		if mod.Name == name && (period == nil) == (mod.Period == nil) &&
			(period == nil || *period == *mod.Period) {
			cp := *mod
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModuleRepo) Create(_ context.Context, module *model.Module) error {
	module.ModuleID = m.nextID
	m.nextID++
	cp := *module
	m.modules[cp.ModuleID] = &cp
	return nil
}

func (m *mockModuleRepo) Update(_ context.Context, module *model.Module) error {
	if _, ok := m.modules[module.ModuleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *module
	m.modules[cp.ModuleID] = &cp
	return nil
}

func (m *mockModuleRepo) UpdateLinkage(_ context.Context, id int, classID *int, course *string) error {
	mod, ok := m.modules[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mod.ClassID, mod.Course = classID, course
	return nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Class
	nextID  int
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class), nextID: 1}
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockClassRepo) FindOrCreate(_ context.Context, code string) (*model.Class, error) {
	if c, ok := m.classes[code]; ok {
		return c, nil
	}
	c := &model.Class{ClassID: m.nextID, ClassCode: code}
	m.nextID++
	m.classes[code] = c
	return c, nil
}

// ── Mock ProspectionCardRepository ──

type mockProspectionCardRepo struct {
	cards    map[int]*model.ProspectionCard
	nextID   int
	writeErr error // Create / Update 返回的错误
}

func newMockProspectionCardRepo() *mockProspectionCardRepo {
	return &mockProspectionCardRepo{cards: make(map[int]*model.ProspectionCard), nextID: 1}
}

func (m *mockProspectionCardRepo) List(_ context.Context) ([]model.ProspectionCard, error) {
	var result []model.ProspectionCard
	for _, c := range m.cards {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProspectionCardID < result[j].ProspectionCardID })
	return result, nil
}

func (m *mockProspectionCardRepo) GetByID(_ context.Context, id int) (*model.ProspectionCard, error) {
	if c, ok := m.cards[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProspectionCardRepo) FindBySlot(_ context.Context, year, period int, course string) (*model.ProspectionCard, error) {
	for _, c := range m.cards {
		if c.Year == year && c.Period == period && c.Course == course {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProspectionCardRepo) Create(_ context.Context, card *model.ProspectionCard) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	card.ProspectionCardID = m.nextID
	m.nextID++
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	cp := *card
	m.cards[cp.ProspectionCardID] = &cp
	return nil
}

func (m *mockProspectionCardRepo) Update(_ context.Context, card *model.ProspectionCard) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	card.UpdatedAt = time.Now()
	cp := *card
	m.cards[cp.ProspectionCardID] = &cp
	return nil
}

// ── Mock StatisticsRepository（基于 mockProjectRepo 计数）──

type mockStatisticsRepo struct {
	projects *mockProjectRepo
	err      error
}

func (m *mockStatisticsRepo) CountProjects(_ context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.projects.projects)), nil
}

// CountByStatus 模拟 utf8mb4_unicode_ci 的大小写不敏感比较
func (m *mockStatisticsRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, p := range m.projects.projects {
		if p.Status != nil && strings.EqualFold(*p.Status, status) {
			n++
		}
	}
	return n, nil
}

func (m *mockStatisticsRepo) CountUnclassified(_ context.Context, statuses []string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, p := range m.projects.projects {
		if p.Status == nil {
			n++
			continue
		}
		known := false
		for _, s := range statuses {
			if strings.EqualFold(*p.Status, s) {
				known = true
				break
			}
		}
		if !known {
			n++
		}
	}
	return n, nil
}

// ── Mock DiagnosticRepository ──

type mockDiagnosticRepo struct {
	projects *mockProjectRepo
}

func (m *mockDiagnosticRepo) LatestProject(_ context.Context) ([]model.Project, error) {
	all, _ := m.projects.List(context.Background())
	if len(all) == 0 {
		return []model.Project{}, nil
	}
	return all[len(all)-1:], nil
}

func (m *mockDiagnosticRepo) LatestContact(_ context.Context) ([]model.Contact, error) {
	return []model.Contact{}, nil
}

func (m *mockDiagnosticRepo) LatestStaff(_ context.Context) ([]model.Staff, error) {
	return nil, errors.New("staff table unavailable")
}

// ── 聚合 ──

type mockRepos struct {
	partner  *mockPartnerRepo
	contact  *mockContactRepo
	lead     *mockLeadRepo
	project  *mockProjectRepo
	module   *mockModuleRepo
	class    *mockClassRepo
	card     *mockProspectionCardRepo
	stats    *mockStatisticsRepo
	diagnose *mockDiagnosticRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		partner: newMockPartnerRepo(),
		contact: newMockContactRepo(),
		lead:    newMockLeadRepo(),
		project: newMockProjectRepo(),
		module:  newMockModuleRepo(),
		class:   newMockClassRepo(),
		card:    newMockProspectionCardRepo(),
	}
	m.stats = &mockStatisticsRepo{projects: m.project}
	m.diagnose = &mockDiagnosticRepo{projects: m.project}

	repo := &repository.Repository{
		Partner:         m.partner,
		Contact:         m.contact,
		Lead:            m.lead,
		Project:         m.project,
		Module:          m.module,
		Class:           m.class,
		ProspectionCard: m.card,
		Statistics:      m.stats,
		Diagnostic:      m.diagnose,
	}
	return repo, m
}
