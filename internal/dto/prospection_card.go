package dto

import "time"

// ── 勘探卡 DTO ──

// CreateProspectionCardRequest 创建勘探卡请求
type CreateProspectionCardRequest struct {
	Name        string `json:"name"        binding:"max=255"`
	Course      string `json:"course"      binding:"required,max=255"`
	Description string `json:"description"`
	Year        int    `json:"year"        binding:"required,min=2000,max=2100"`
	Period      int    `json:"period"      binding:"required,min=1,max=8"`
	ClassCode   string `json:"classCode"   binding:"omitempty,classcode"`
	Status      string `json:"status"      binding:"omitempty,oneof='Open for partners' Pending Confirmed"`
	Advisor     string `json:"advisor"     binding:"max=255"`
	Classroom   string `json:"classroom"   binding:"max=20"`
	PartnerName string `json:"partnerName" binding:"max=255"`
}

// UpdateProspectionCardRequest 勘探卡合并更新请求
type UpdateProspectionCardRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=255"`
	Course      *string `json:"course"      binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Year        *int    `json:"year"        binding:"omitempty,min=2000,max=2100"`
	Period      *int    `json:"period"      binding:"omitempty,min=1,max=8"`
	ClassCode   *string `json:"classCode"   binding:"omitempty,classcode"`
	Status      *string `json:"status"      binding:"omitempty,oneof='Open for partners' Pending Confirmed"`
	Advisor     *string `json:"advisor"     binding:"omitempty,max=255"`
	Classroom   *string `json:"classroom"   binding:"omitempty,max=20"`
	PartnerName *string `json:"partnerName" binding:"omitempty,max=255"`
}

// ProspectionCardResponse 勘探卡响应
type ProspectionCardResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Course      string    `json:"course"`
	Description string    `json:"description"`
	Year        int       `json:"year"`
	Period      int       `json:"period"`
	ClassCode   string    `json:"classCode"`
	Status      string    `json:"status"`
	Advisor     string    `json:"advisor"`
	Classroom   string    `json:"classroom"`
	PartnerName string    `json:"partnerName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
