package model

// Project 项目表 — 对应 Project
// 由同步写入，也可通过 PUT /api/projects/:id 直接修改
type Project struct {
	ProjectID     int     `gorm:"column:ProjectID;primaryKey;autoIncrement"   json:"ProjectID"`
	SalesforceID  *string `gorm:"column:SalesforceID;type:varchar(18);unique" json:"SalesforceID,omitempty"`
	Title         string  `gorm:"column:Title;type:varchar(255);not null"     json:"Title"`
	Description   *string `gorm:"column:Description;type:text"                json:"Description"`
	Comment       *string `gorm:"column:Comment;type:text"                    json:"Comment"`
	Status        *string `gorm:"column:Status;type:varchar(100)"             json:"Status"`
	Period        *string `gorm:"column:Period;type:varchar(20)"              json:"Period"`
	Quarter       *int    `gorm:"column:Quarter"                              json:"Quarter"`
	Year          *int    `gorm:"column:Year"                                 json:"Year"`
	NumPrototypes *int    `gorm:"column:NumPrototypes"                        json:"NumPrototypes"`
	PartnerID     *int    `gorm:"column:PartnerID"                            json:"PartnerID"`
	ModuleID      *int    `gorm:"column:ModuleID"                             json:"ModuleID"`
	CoordinatorID *int    `gorm:"column:CoordinatorID"                        json:"CoordinatorID"`
	AdvisorID     *int    `gorm:"column:AdvisorID"                            json:"AdvisorID"`
	AgreementID   *int    `gorm:"column:AgreementID"                          json:"AgreementID"`
	TapiID        *int    `gorm:"column:TapiID"                               json:"TapiID"`
}

// TableName 指定表名
func (Project) TableName() string { return "Project" }

// ProjectGitHub 项目仓库链接
type ProjectGitHub struct {
	ProjectID int    `gorm:"column:ProjectID;primaryKey"            json:"ProjectID"`
	Link      string `gorm:"column:Link;type:varchar(500);not null" json:"Link"`
}

// TableName 指定表名
func (ProjectGitHub) TableName() string { return "ProjectGitHub" }

// ProjectContact 项目-联系人关联
type ProjectContact struct {
	ProjectID int     `gorm:"column:ProjectID;primaryKey"    json:"ProjectID"`
	ContactID int     `gorm:"column:ContactID;primaryKey"    json:"ContactID"`
	Role      *string `gorm:"column:Role;type:varchar(100)" json:"Role"`
}

// TableName 指定表名
func (ProjectContact) TableName() string { return "ProjectContact" }
