package service

import (
	"strconv"

	"github.com/MilanAlbertz/pmo-dashboard/internal/model"
)

// comparedField 参与变更判断的字段
type comparedField[T any] struct {
	name  string
	value func(T) string
}

// fieldSet 一类实体声明的可比较字段
// 取值统一规整为字符串：NULL 与空串视为相同
type fieldSet[T any] []comparedField[T]

// Changed 返回发生变化的字段名；为空表示无变化
func (fs fieldSet[T]) Changed(stored, desired T) []string {
	var changed []string
	for _, f := range fs {
		if f.value(stored) != f.value(desired) {
			changed = append(changed, f.name)
		}
	}
	return changed
}

func str(p *string) string { return model.StringValue(p) }

func num(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// ── 各实体声明的比较字段 ──

var partnerFields = fieldSet[model.Partner]{
	{"name", func(p model.Partner) string { return p.Name }},
	{"sector", func(p model.Partner) string { return str(p.Sector) }},
	{"industry", func(p model.Partner) string { return str(p.Industry) }},
	{"activity", func(p model.Partner) string { return str(p.Activity) }},
}

var contactFields = fieldSet[model.Contact]{
	{"name", func(c model.Contact) string { return c.Name }},
	{"email", func(c model.Contact) string { return str(c.Email) }},
	{"phone", func(c model.Contact) string { return str(c.Phone) }},
	{"role", func(c model.Contact) string { return str(c.Role) }},
	{"partner", func(c model.Contact) string { return num(c.PartnerID) }},
}

var projectFields = fieldSet[model.Project]{
	{"title", func(p model.Project) string { return p.Title }},
	{"partner", func(p model.Project) string { return num(p.PartnerID) }},
	{"description", func(p model.Project) string { return str(p.Description) }},
	{"quarter", func(p model.Project) string { return num(p.Quarter) }},
	{"year", func(p model.Project) string { return num(p.Year) }},
	{"status", func(p model.Project) string { return str(p.Status) }},
}

var leadFields = fieldSet[model.Lead]{
	{"name", func(l model.Lead) string { return l.Name }},
	{"phone", func(l model.Lead) string { return str(l.Phone) }},
	{"email", func(l model.Lead) string { return str(l.Email) }},
	{"company", func(l model.Lead) string { return str(l.Company) }},
}
