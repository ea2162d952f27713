package dto

import "github.com/MilanAlbertz/pmo-dashboard/internal/model"

// ── 项目模块 DTO ──

// UpdateProjectRequest 项目更新请求
// 字段缺省（或为 null）时保留数据库中的原值
type UpdateProjectRequest struct {
	Title         *string `json:"title"         binding:"omitempty,min=1,max=255"`
	Description   *string `json:"description"`
	Status        *string `json:"status"        binding:"omitempty,max=100"`
	Period        *string `json:"period"        binding:"omitempty,max=20"`
	Quarter       *int    `json:"quarter"       binding:"omitempty,min=1,max=8"`
	Year          *int    `json:"year"          binding:"omitempty,min=2000,max=2100"`
	NumPrototypes *int    `json:"numPrototypes" binding:"omitempty,min=0"`
	PartnerID     *int    `json:"partnerId"     binding:"omitempty,min=1"`
	ModuleID      *int    `json:"moduleId"      binding:"omitempty,min=1"`
	AdvisorID     *int    `json:"advisorId"     binding:"omitempty,min=1"`
	Comment       *string `json:"comment"`
}

// TermsStatus 合作协议进度
type TermsStatus struct {
	Sent     *bool   `json:"sent"`
	Returned *bool   `json:"returned"`
	Signed   *bool   `json:"signed"`
	Comment  *string `json:"comment"`
}

// TapiStatus 意向书进度
type TapiStatus struct {
	Sent     *bool   `json:"sent"`
	Returned *bool   `json:"returned"`
	Aligned  *bool   `json:"aligned"`
	Comment  *string `json:"comment"`
}

// ProjectDetailResponse 项目详情
type ProjectDetailResponse struct {
	model.ProjectView
	Contacts []model.ProjectContactView `json:"contacts"`
	Terms    TermsStatus                `json:"terms"`
	Tapi     TapiStatus                 `json:"tapi"`
}

// ── 模块 DTO ──

// UpdateModuleRequest 模块更新请求（缺省字段保留原值）
type UpdateModuleRequest struct {
	Name         *string `json:"name"         binding:"omitempty,min=1,max=255"`
	Course       *string `json:"course"       binding:"omitempty,max=255"`
	Description  *string `json:"description"`
	Period       *string `json:"period"       binding:"omitempty,max=20"`
	ClassID      *int    `json:"classId"      binding:"omitempty,min=1"`
	FieldOfStudy *string `json:"fieldOfStudy" binding:"omitempty,max=255"`
}

// ── 统计 DTO ──

// StatisticsResponse 项目状态统计
type StatisticsResponse struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completed"`
	InProgress   int64 `json:"inProgress"`
	Waiting      int64 `json:"waiting"`
	Open         int64 `json:"open"`
	Unclassified int64 `json:"unclassified"`
}

// PartnersAndLeadsResponse 合作伙伴与潜在客户合并列表
type PartnersAndLeadsResponse struct {
	Partners []model.Partner `json:"partners"`
	Leads    []model.Lead    `json:"leads"`
}
