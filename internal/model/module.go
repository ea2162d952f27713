package model

// DefaultModuleName 缺少模块名的项目共用的占位模块
const DefaultModuleName = "Default Module"

// Module 模块表 — 对应 Module
// (Name, Period) 唯一确定一个模块；Period 形如 "2024.1"
type Module struct {
	ModuleID     int     `gorm:"column:ModuleID;primaryKey;autoIncrement" json:"ModuleID"`
	Name         string  `gorm:"column:Name;type:varchar(255);not null"   json:"Name"`
	Course       *string `gorm:"column:Course;type:varchar(255)"          json:"Course"`
	Description  *string `gorm:"column:Description;type:text"             json:"Description"`
	Period       *string `gorm:"column:Period;type:varchar(20)"           json:"Period"`
	ClassID      *int    `gorm:"column:ClassID"                           json:"ClassID"`
	FieldOfStudy *string `gorm:"column:FieldOfStudy;type:varchar(255)"    json:"FieldOfStudy"`
}

// TableName 指定表名
func (Module) TableName() string { return "Module" }

// Class 班级表 — 对应 Class，ClassCode 唯一
type Class struct {
	ClassID   int     `gorm:"column:ClassID;primaryKey;autoIncrement"        json:"ClassID"`
	ClassCode string  `gorm:"column:ClassCode;type:varchar(50);unique;not null" json:"ClassCode"`
	Classroom *string `gorm:"column:Classroom;type:varchar(20)"              json:"Classroom"`
}

// TableName 指定表名
func (Class) TableName() string { return "Class" }
