package service

import (
	"strings"

	"github.com/MilanAlbertz/pmo-dashboard/internal/dto"
	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

// projectTitlePrefix Salesforce 项目名的固定前缀，入库前去除
const projectTitlePrefix = "Parceiro Projeto-"

// 同步报告中的错误信息
const (
	errMsgPartnerNotFound = "Partner not found"
	errMsgMissingID       = "Missing Salesforce id"
	errMsgDuplicate       = "Duplicate Salesforce id in batch"
)

// RemoteData 从 Salesforce 拉取的四类记录
type RemoteData struct {
	Partners []salesforce.Account
	Contacts []salesforce.Contact
	Projects []salesforce.Opportunity
	Leads    []salesforce.Lead
}

// LocalSnapshot 事务内读取的本地数据
type LocalSnapshot struct {
	Partners []model.Partner
	Contacts []model.Contact
	Projects []model.Project
	Leads    []model.Lead
}

type writeKind int

const (
	writeInsert writeKind = iota
	writeUpdate
)

// PartnerWrite 待写入的合作伙伴
type PartnerWrite struct {
	Kind  writeKind
	Row   model.Partner
	Entry dto.ChangeEntry
}

// ContactWrite 待写入的联系人；PartnerID 在执行时按 PartnerSFID 解析
type ContactWrite struct {
	Kind        writeKind
	Row         model.Contact
	PartnerSFID string
	PartnerName string
	Entry       dto.ChangeEntry
}

// ModuleKey 模块身份：(名称, 周期)
type ModuleKey struct {
	Name   string
	Period string // 空串表示 NULL
}

// ProjectWrite 待写入的项目；PartnerID / ModuleID 在执行时解析
type ProjectWrite struct {
	Kind        writeKind
	Row         model.Project
	PartnerSFID string
	PartnerName string
	ClassCode   string
	Course      string
	Module      ModuleKey
	Entry       dto.ChangeEntry

	// StoredModuleID 仅 Relinks 使用：本地行当前的模块
	StoredModuleID *int
}

// LeadWrite 待写入的潜在客户
type LeadWrite struct {
	Kind  writeKind
	Row   model.Lead
	Entry dto.ChangeEntry
}

// SyncPlan 按执行顺序排列的写入集合
// Relinks 为声明字段未变的项目：执行时仍解析班级与模块并修正漂移，
// 仅当解析出的模块与本地不同才写入项目行
type SyncPlan struct {
	Partners []PartnerWrite
	Contacts []ContactWrite
	Projects []ProjectWrite
	Relinks  []ProjectWrite
	Leads    []LeadWrite
}

// Empty 是否没有确定的写入；Relinks 是否写入取决于执行时的模块解析
func (p *SyncPlan) Empty() bool {
	return len(p.Partners) == 0 && len(p.Contacts) == 0 && len(p.Projects) == 0 && len(p.Leads) == 0
}

// PlanSync 由远端记录与本地快照计算写入集合与初步报告
// 纯函数：不访问数据库与网络
func PlanSync(remote RemoteData, local LocalSnapshot) (*SyncPlan, *dto.SyncReport) {
	plan := &SyncPlan{}
	report := &dto.SyncReport{
		Partners: dto.NewEntityReport(len(remote.Partners)),
		Contacts: dto.NewEntityReport(len(remote.Contacts)),
		Projects: dto.NewEntityReport(len(remote.Projects)),
		Leads:    dto.NewEntityReport(len(remote.Leads)),
	}

	// 本地合作伙伴 SalesforceID → PartnerID
	localPartnerIDs := make(map[string]int, len(local.Partners))
	for _, p := range local.Partners {
		if p.SalesforceID != nil {
			localPartnerIDs[*p.SalesforceID] = p.PartnerID
		}
	}

	// 本次同步中会存在的合作伙伴（本地已有或远端提供）及其名称
	remotePartnerNames := make(map[string]string, len(remote.Partners))

	planPartners(plan, &report.Partners, remote.Partners, local.Partners, remotePartnerNames)
	planContacts(plan, &report.Contacts, remote.Contacts, local.Contacts, localPartnerIDs, remotePartnerNames)
	planProjects(plan, &report.Projects, remote.Projects, local.Projects, localPartnerIDs, remotePartnerNames)
	planLeads(plan, &report.Leads, remote.Leads, local.Leads)

	return plan, report
}

// ── Partners ──

func planPartners(plan *SyncPlan, rep *dto.EntityReport, remote []salesforce.Account, local []model.Partner, names map[string]string) {
	existing := make(map[string]model.Partner, len(local))
	for _, p := range local {
		if p.SalesforceID != nil {
			existing[*p.SalesforceID] = p
		}
	}

	seen := make(map[string]bool, len(remote))
	for _, acc := range remote {
		entry := dto.ChangeEntry{ID: acc.ID, Name: acc.Name}
		if !admit(rep, seen, entry) {
			continue
		}
		names[acc.ID] = acc.Name

		desired := model.Partner{
			SalesforceID: model.NullableString(acc.ID),
			Name:         acc.Name,
			Sector:       model.NullableString(acc.Sector),
			Industry:     model.NullableString(acc.Industry),
			Activity:     model.NullableString(acc.Activity),
		}

		stored, ok := existing[acc.ID]
		switch {
		case !ok:
			plan.Partners = append(plan.Partners, PartnerWrite{Kind: writeInsert, Row: desired, Entry: entry})
			rep.Inserted = append(rep.Inserted, entry)
		case len(partnerFields.Changed(stored, desired)) > 0:
			desired.PartnerID = stored.PartnerID
			plan.Partners = append(plan.Partners, PartnerWrite{Kind: writeUpdate, Row: desired, Entry: entry})
			rep.Updated = append(rep.Updated, entry)
		}
	}
}

// ── Contacts ──

func planContacts(plan *SyncPlan, rep *dto.EntityReport, remote []salesforce.Contact, local []model.Contact,
	localPartnerIDs map[string]int, remotePartnerNames map[string]string) {
	existing := make(map[string]model.Contact, len(local))
	for _, c := range local {
		if c.SalesforceID != nil {
			existing[*c.SalesforceID] = c
		}
	}

	seen := make(map[string]bool, len(remote))
	for _, rc := range remote {
		entry := dto.ChangeEntry{ID: rc.ID, Name: rc.Name}
		if !admit(rep, seen, entry) {
			continue
		}

		partnerID, known := resolvePartner(rc.AccountID, localPartnerIDs, remotePartnerNames)
		if !known {
			rep.Errors = append(rep.Errors, partnerNotFound(entry, rc.AccountID, accountName(rc.Account), remotePartnerNames))
			continue
		}

		desired := model.Contact{
			SalesforceID: model.NullableString(rc.ID),
			Name:         rc.Name,
			Email:        model.NullableString(rc.Email),
			Phone:        model.NullableString(rc.Phone),
			Role:         model.NullableString(rc.Title),
			PartnerID:    partnerID,
		}
		write := ContactWrite{
			Row:         desired,
			PartnerSFID: rc.AccountID,
			PartnerName: partnerName(rc.AccountID, accountName(rc.Account), remotePartnerNames),
			Entry:       entry,
		}

		stored, ok := existing[rc.ID]
		switch {
		case !ok:
			write.Kind = writeInsert
			plan.Contacts = append(plan.Contacts, write)
			rep.Inserted = append(rep.Inserted, entry)
		case partnerID == nil || len(contactFields.Changed(stored, desired)) > 0:
			// partnerID 为 nil：合作伙伴本次新建，关联必然变化
			write.Kind = writeUpdate
			write.Row.ContactID = stored.ContactID
			plan.Contacts = append(plan.Contacts, write)
			rep.Updated = append(rep.Updated, entry)
		}
	}
}

// ── Projects ──

func planProjects(plan *SyncPlan, rep *dto.EntityReport, remote []salesforce.Opportunity, local []model.Project,
	localPartnerIDs map[string]int, remotePartnerNames map[string]string) {
	existing := make(map[string]model.Project, len(local))
	for _, p := range local {
		if p.SalesforceID != nil {
			existing[*p.SalesforceID] = p
		}
	}

	seen := make(map[string]bool, len(remote))
	for _, opp := range remote {
		title := strings.TrimPrefix(opp.Name, projectTitlePrefix)
		entry := dto.ChangeEntry{ID: opp.ID, Name: title}
		if !admit(rep, seen, entry) {
			continue
		}

		partnerID, known := resolvePartner(opp.AccountID, localPartnerIDs, remotePartnerNames)
		if !known {
			rep.Errors = append(rep.Errors, partnerNotFound(entry, opp.AccountID, accountName(opp.Account), remotePartnerNames))
			continue
		}

		desired := model.Project{
			SalesforceID: model.NullableString(opp.ID),
			Title:        title,
			Description:  model.NullableString(opp.Description),
			Status:       model.NullableString(opp.StageName),
			PartnerID:    partnerID,
		}

		module := ModuleKey{Name: strings.TrimSpace(opp.ModuleName)}
		if cc, ok := ParseClassCode(opp.ClassCode); ok {
			desired.Year = model.IntPtr(cc.Year)
			desired.Quarter = model.IntPtr(cc.Quarter)
			if module.Name != "" {
				module.Period = cc.Period()
			}
		}
		if module.Name == "" {
			module = ModuleKey{Name: model.DefaultModuleName}
		}

		write := ProjectWrite{
			Row:         desired,
			PartnerSFID: opp.AccountID,
			PartnerName: partnerName(opp.AccountID, accountName(opp.Account), remotePartnerNames),
			ClassCode:   strings.TrimSpace(opp.ClassCode),
			Course:      strings.TrimSpace(opp.Course),
			Module:      module,
			Entry:       entry,
		}

		stored, ok := existing[opp.ID]
		switch {
		case !ok:
			write.Kind = writeInsert
			plan.Projects = append(plan.Projects, write)
			rep.Inserted = append(rep.Inserted, entry)
		case partnerID == nil || len(projectFields.Changed(stored, desired)) > 0:
			write.Kind = writeUpdate
			write.Row.ProjectID = stored.ProjectID
			plan.Projects = append(plan.Projects, write)
			rep.Updated = append(rep.Updated, entry)
		default:
			write.Kind = writeUpdate
			write.Row.ProjectID = stored.ProjectID
			write.Row.ModuleID = stored.ModuleID
			write.StoredModuleID = stored.ModuleID
			plan.Relinks = append(plan.Relinks, write)
		}
	}
}

// ── Leads ──

func planLeads(plan *SyncPlan, rep *dto.EntityReport, remote []salesforce.Lead, local []model.Lead) {
	existing := make(map[string]model.Lead, len(local))
	for _, l := range local {
		existing[l.SalesforceID] = l
	}

	seen := make(map[string]bool, len(remote))
	for _, rl := range remote {
		entry := dto.ChangeEntry{ID: rl.ID, Name: rl.Name}
		if !admit(rep, seen, entry) {
			continue
		}

		desired := model.Lead{
			SalesforceID: rl.ID,
			Name:         rl.Name,
			Phone:        model.NullableString(rl.Phone),
			Email:        model.NullableString(rl.Email),
			Company:      model.NullableString(rl.Company),
		}

		stored, ok := existing[rl.ID]
		switch {
		case !ok:
			plan.Leads = append(plan.Leads, LeadWrite{Kind: writeInsert, Row: desired, Entry: entry})
			rep.Inserted = append(rep.Inserted, entry)
		case len(leadFields.Changed(stored, desired)) > 0:
			desired.LeadID = stored.LeadID
			plan.Leads = append(plan.Leads, LeadWrite{Kind: writeUpdate, Row: desired, Entry: entry})
			rep.Updated = append(rep.Updated, entry)
		}
	}
}

// ── 辅助函数 ──

// admit 过滤缺少 ID 或批内重复的记录，并记入错误
func admit(rep *dto.EntityReport, seen map[string]bool, entry dto.ChangeEntry) bool {
	if entry.ID == "" {
		rep.Errors = append(rep.Errors, dto.SyncError{Name: entry.Name, Error: errMsgMissingID})
		return false
	}
	if seen[entry.ID] {
		rep.Errors = append(rep.Errors, dto.SyncError{ID: entry.ID, Name: entry.Name, Error: errMsgDuplicate})
		return false
	}
	seen[entry.ID] = true
	return true
}

// resolvePartner 返回本地 PartnerID；合作伙伴仅在本次远端数据中出现时返回 (nil, true)
func resolvePartner(sfID string, localIDs map[string]int, remoteNames map[string]string) (*int, bool) {
	if sfID == "" {
		return nil, false
	}
	if id, ok := localIDs[sfID]; ok {
		return model.IntPtr(id), true
	}
	if _, ok := remoteNames[sfID]; ok {
		return nil, true
	}
	return nil, false
}

// partnerNotFound 构造缺少合作伙伴的错误项，名称尽量从远端列表补全
func partnerNotFound(entry dto.ChangeEntry, partnerSFID, fallbackName string, remoteNames map[string]string) dto.SyncError {
	return dto.SyncError{
		ID:          entry.ID,
		Name:        entry.Name,
		Error:       errMsgPartnerNotFound,
		PartnerID:   partnerSFID,
		PartnerName: partnerName(partnerSFID, fallbackName, remoteNames),
	}
}

// partnerName 优先取远端合作伙伴列表中的名称，其次取记录自带的 Account.Name
func partnerName(partnerSFID, fallbackName string, remoteNames map[string]string) string {
	if name := remoteNames[partnerSFID]; name != "" {
		return name
	}
	return fallbackName
}

func accountName(ref *salesforce.AccountRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}
