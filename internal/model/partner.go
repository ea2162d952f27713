package model

// Partner 合作伙伴表 — 对应 Partner，由 Salesforce Account 同步
type Partner struct {
	PartnerID    int     `gorm:"column:PartnerID;primaryKey;autoIncrement"    json:"PartnerID"`
	SalesforceID *string `gorm:"column:SalesforceID;type:varchar(18);unique"  json:"SalesforceID,omitempty"`
	Name         string  `gorm:"column:Name;type:varchar(255);not null"       json:"Name"`
	Sector       *string `gorm:"column:Sector;type:varchar(100)"              json:"Sector"`
	Industry     *string `gorm:"column:Industry;type:varchar(100)"            json:"Industry"`
	Activity     *string `gorm:"column:Activity;type:varchar(255)"            json:"Activity"`
}

// TableName 指定表名
func (Partner) TableName() string { return "Partner" }

// Contact 联系人表 — 对应 Contact，依赖 Partner
type Contact struct {
	ContactID    int     `gorm:"column:ContactID;primaryKey;autoIncrement"   json:"ContactID"`
	SalesforceID *string `gorm:"column:SalesforceID;type:varchar(18);unique" json:"SalesforceID,omitempty"`
	Name         string  `gorm:"column:Name;type:varchar(255);not null"      json:"Name"`
	Email        *string `gorm:"column:Email;type:varchar(255)"              json:"Email"`
	Phone        *string `gorm:"column:Phone;type:varchar(50)"               json:"Phone"`
	Role         *string `gorm:"column:Role;type:varchar(255)"               json:"Role"`
	PartnerID    *int    `gorm:"column:PartnerID"                            json:"PartnerID"`
}

// TableName 指定表名
func (Contact) TableName() string { return "Contact" }

// Lead 潜在客户表 — 对应 Leads，无外键依赖
type Lead struct {
	LeadID       int     `gorm:"column:LeadID;primaryKey;autoIncrement"               json:"LeadID"`
	SalesforceID string  `gorm:"column:SalesforceID;type:varchar(18);unique;not null" json:"SalesforceID"`
	Name         string  `gorm:"column:Name;type:varchar(255);not null"               json:"Name"`
	Phone        *string `gorm:"column:Phone;type:varchar(50)"                        json:"Phone"`
	Email        *string `gorm:"column:Email;type:varchar(255)"                       json:"Email"`
	Company      *string `gorm:"column:Company;type:varchar(255)"                     json:"Company"`
}

// TableName 指定表名
func (Lead) TableName() string { return "Leads" }
