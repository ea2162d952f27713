package model

import "time"

// 勘探卡状态
const (
	CardStatusOpen      = "Open for partners"
	CardStatusPending   = "Pending"
	CardStatusConfirmed = "Confirmed"
)

// ProspectionCard 勘探卡 — 对应 ProspectionCards
// 本地创建，不参与同步；(Year, Period, Course) 非正式唯一
type ProspectionCard struct {
	ProspectionCardID int       `gorm:"column:ProspectionCardID;primaryKey;autoIncrement" json:"ProspectionCardID"`
	Name              *string   `gorm:"column:Name;type:varchar(255)"                     json:"Name"`
	Course            string    `gorm:"column:Course;type:varchar(255);not null"          json:"Course"`
	Description       *string   `gorm:"column:Description;type:text"                      json:"Description"`
	Year              int       `gorm:"column:Year;not null"                              json:"Year"`
	Period            int       `gorm:"column:Period;not null"                            json:"Period"`
	ClassCode         *string   `gorm:"column:ClassCode;type:varchar(50)"                 json:"ClassCode"`
	Status            string    `gorm:"column:Status;type:varchar(50);not null"           json:"Status"`
	Advisor           *string   `gorm:"column:Advisor;type:varchar(255)"                  json:"Advisor"`
	Classroom         *string   `gorm:"column:Classroom;type:varchar(20)"                 json:"Classroom"`
	PartnerName       *string   `gorm:"column:PartnerName;type:varchar(255)"              json:"PartnerName"`
	CreatedAt         time.Time `gorm:"column:CreatedAt;autoCreateTime"                   json:"CreatedAt"`
	UpdatedAt         time.Time `gorm:"column:UpdatedAt;autoUpdateTime"                   json:"UpdatedAt"`
}

// TableName 指定表名
func (ProspectionCard) TableName() string { return "ProspectionCards" }
