package model

// Staff 教职人员（协调人 / 导师）
type Staff struct {
	StaffID int     `gorm:"column:StaffID;primaryKey;autoIncrement" json:"StaffID"`
	Name    string  `gorm:"column:Name;type:varchar(255);not null"  json:"Name"`
	Email   *string `gorm:"column:Email;type:varchar(255)"          json:"Email"`
	Role    *string `gorm:"column:Role;type:varchar(100)"           json:"Role"`
}

// TableName 指定表名
func (Staff) TableName() string { return "Staff" }

// Agreement 合作协议进度
type Agreement struct {
	AgreementID int     `gorm:"column:AgreementID;primaryKey;autoIncrement" json:"AgreementID"`
	Sent        bool    `gorm:"column:Sent;not null;default:false"          json:"Sent"`
	Returned    bool    `gorm:"column:Returned;not null;default:false"      json:"Returned"`
	Signed      bool    `gorm:"column:Signed;not null;default:false"        json:"Signed"`
	Comments    *string `gorm:"column:Comments;type:text"                   json:"Comments"`
}

// TableName 指定表名
func (Agreement) TableName() string { return "Agreement" }

// TAPI 项目意向书（TAPI）进度
type TAPI struct {
	TapiID   int     `gorm:"column:TapiID;primaryKey;autoIncrement" json:"TapiID"`
	Sent     bool    `gorm:"column:Sent;not null;default:false"     json:"Sent"`
	Returned bool    `gorm:"column:Returned;not null;default:false" json:"Returned"`
	Signed   bool    `gorm:"column:Signed;not null;default:false"   json:"Signed"`
	Comments *string `gorm:"column:Comments;type:text"              json:"Comments"`
}

// TableName 指定表名
func (TAPI) TableName() string { return "TAPI" }
