package dto

import "time"

// ── 同步报告 DTO ──

// ChangeEntry 单条写入记录
type ChangeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SyncError 单条记录的同步失败原因
type SyncError struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Error       string `json:"error"`
	PartnerID   string `json:"partnerId,omitempty"`
	PartnerName string `json:"partnerName,omitempty"`
}

// EntityReport 单类实体的变更明细
type EntityReport struct {
	Total    int           `json:"total"`
	Inserted []ChangeEntry `json:"inserted"`
	Updated  []ChangeEntry `json:"updated"`
	Errors   []SyncError   `json:"errors"`
}

// NewEntityReport 创建空报告（列表序列化为 [] 而非 null）
func NewEntityReport(total int) EntityReport {
	return EntityReport{
		Total:    total,
		Inserted: []ChangeEntry{},
		Updated:  []ChangeEntry{},
		Errors:   []SyncError{},
	}
}

// SyncReport 四类实体的变更明细
type SyncReport struct {
	Partners EntityReport `json:"partners"`
	Contacts EntityReport `json:"contacts"`
	Projects EntityReport `json:"projects"`
	Leads    EntityReport `json:"leads"`
}

// EntityStats 单类实体计数
type EntityStats struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Errors   int `json:"errors"`
}

// Stats 由明细汇总计数
func (r EntityReport) Stats() EntityStats {
	return EntityStats{
		Total:    r.Total,
		Inserted: len(r.Inserted),
		Updated:  len(r.Updated),
		Errors:   len(r.Errors),
	}
}

// SyncStats 四类实体计数
type SyncStats struct {
	Partners EntityStats `json:"partners"`
	Contacts EntityStats `json:"contacts"`
	Projects EntityStats `json:"projects"`
	Leads    EntityStats `json:"leads"`
}

// Stats 汇总四类实体计数
func (r SyncReport) Stats() SyncStats {
	return SyncStats{
		Partners: r.Partners.Stats(),
		Contacts: r.Contacts.Stats(),
		Projects: r.Projects.Stats(),
		Leads:    r.Leads.Stats(),
	}
}

// SyncResult 一次同步的完整结果
type SyncResult struct {
	RunID      string     `json:"runId"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt time.Time  `json:"finishedAt"`
	Stats      SyncStats  `json:"stats"`
	Changes    SyncReport `json:"changes"`
}
