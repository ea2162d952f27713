package model

// ── 只读联表视图 ──
// 列别名沿用前端已使用的 camelCase 字段名

// ProjectView 项目列表 / 详情联表行
type ProjectView struct {
	ID                int     `gorm:"column:id"                json:"id"`
	Title             string  `gorm:"column:title"             json:"title"`
	Description       *string `gorm:"column:description"       json:"description"`
	Comment           *string `gorm:"column:comment"           json:"comment"`
	Status            *string `gorm:"column:status"            json:"status"`
	Period            *string `gorm:"column:period"            json:"period"`
	Year              *int    `gorm:"column:year"              json:"year"`
	NumPrototypes     *int    `gorm:"column:numPrototypes"     json:"numPrototypes"`
	Quarter           *int    `gorm:"column:quarter"           json:"quarter"`
	PartnerID         *int    `gorm:"column:partnerId"         json:"partnerId"`
	ModuleID          *int    `gorm:"column:moduleId"          json:"moduleId"`
	Module            *string `gorm:"column:module"            json:"module"`
	Course            *string `gorm:"column:course"            json:"course"`
	ModuleDescription *string `gorm:"column:moduleDescription" json:"moduleDescription"`
	Partner           *string `gorm:"column:partner"           json:"partner"`
	Sector            *string `gorm:"column:sector"            json:"sector"`
	Industry          *string `gorm:"column:industry"          json:"industry"`
	Activity          *string `gorm:"column:activity"          json:"activity"`
	ClassCode         *string `gorm:"column:classCode"         json:"classCode"`
	Classroom         *string `gorm:"column:classroom"         json:"classroom"`
	Coordinator       *string `gorm:"column:coordinator"       json:"coordinator"`
	CoordinatorEmail  *string `gorm:"column:coordinatorEmail"  json:"coordinatorEmail"`
	Advisor           *string `gorm:"column:advisor"           json:"advisor"`
	AdvisorEmail      *string `gorm:"column:advisorEmail"      json:"advisorEmail"`
	AgreementSent     *bool   `gorm:"column:agreementSent"     json:"agreementSent"`
	AgreementReturned *bool   `gorm:"column:agreementReturned" json:"agreementReturned"`
	AgreementSigned   *bool   `gorm:"column:agreementSigned"   json:"agreementSigned"`
	AgreementComments *string `gorm:"column:agreementComments" json:"agreementComments"`
	TapiSent          *bool   `gorm:"column:tapiSent"          json:"tapiSent"`
	TapiReturned      *bool   `gorm:"column:tapiReturned"      json:"tapiReturned"`
	TapiSigned        *bool   `gorm:"column:tapiSigned"        json:"tapiSigned"`
	TapiComments      *string `gorm:"column:tapiComments"      json:"tapiComments"`
	GithubLink        *string `gorm:"column:githubLink"        json:"githubLink"`
}

// ProjectContactView 项目详情中的联系人
type ProjectContactView struct {
	Name        string  `gorm:"column:name"        json:"name"`
	Email       *string `gorm:"column:email"       json:"email"`
	Phone       *string `gorm:"column:phone"       json:"phone"`
	Role        *string `gorm:"column:role"        json:"role"`
	ProjectRole *string `gorm:"column:projectRole" json:"projectRole"`
}

// ContactView 联系人及所属合作伙伴名称
type ContactView struct {
	Contact
	PartnerName *string `gorm:"column:PartnerName" json:"PartnerName"`
}
