package salesforce

import (
	"context"
	"fmt"
	"strings"
)

// pageLimit 单次查询上限；不做分页，超出部分被截断
const pageLimit = 2000

const (
	partnerRelation   = "Parceiro"
	projectRecordType = "Projeto"
	projectSObject    = "Opportunity"
	courseField       = "Curso__c"
	moduleField       = "Modulo__c"
)

// escapeSOQL 转义 SOQL 字符串字面量
func escapeSOQL(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return r.Replace(s)
}

// GetAccounts 获取任意 Account（调试用）
func (c *Client) GetAccounts(ctx context.Context, limit int) (*Result[Account], error) {
	if limit <= 0 {
		limit = 10
	}
	raw, err := c.Query(ctx, fmt.Sprintf("SELECT Id, Name FROM Account LIMIT %d", limit))
	if err != nil {
		return nil, err
	}
	return decodeRecords[Account](raw)
}

// GetPartners 获取合作伙伴 Account
func (c *Client) GetPartners(ctx context.Context) (*Result[Account], error) {
	soql := fmt.Sprintf(
		"SELECT Id, Name, Type__c, Industry, Atividade__c FROM Account WHERE Relacao__c = '%s' LIMIT %d",
		partnerRelation, pageLimit,
	)
	raw, err := c.Query(ctx, soql)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Account](raw)
}

// GetContacts 获取合作伙伴下的联系人
func (c *Client) GetContacts(ctx context.Context) (*Result[Contact], error) {
	soql := fmt.Sprintf(
		"SELECT Id, Name, Email, Phone, Title, AccountId, Account.Name FROM Contact WHERE Account.Relacao__c = '%s' LIMIT %d",
		partnerRelation, pageLimit,
	)
	raw, err := c.Query(ctx, soql)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Contact](raw)
}

// GetProjects 获取项目记录类型的 Opportunity
func (c *Client) GetProjects(ctx context.Context) (*Result[Opportunity], error) {
	soql := fmt.Sprintf(
		"SELECT Id, Name, Description, StageName, AccountId, Account.Name, Turma__c, Modulo__c, Curso__c "+
			"FROM Opportunity WHERE RecordType.DeveloperName = '%s' LIMIT %d",
		projectRecordType, pageLimit,
	)
	raw, err := c.Query(ctx, soql)
	if err != nil {
		return nil, err
	}
	return decodeRecords[Opportunity](raw)
}

// GetLeads 获取潜在客户
func (c *Client) GetLeads(ctx context.Context) (*Result[Lead], error) {
	raw, err := c.Query(ctx, fmt.Sprintf("SELECT Id, Name, Phone, Email, Company FROM Lead LIMIT %d", pageLimit))
	if err != nil {
		return nil, err
	}
	return decodeRecords[Lead](raw)
}

// GetModuleNames 获取已使用的模块名，course 非空时按课程过滤
func (c *Client) GetModuleNames(ctx context.Context, course string) (*Result[ModuleName], error) {
	where := "Modulo__c != null"
	if course != "" {
		where += fmt.Sprintf(" AND Curso__c = '%s'", escapeSOQL(course))
	}
	soql := fmt.Sprintf("SELECT Modulo__c FROM Opportunity WHERE %s GROUP BY Modulo__c LIMIT %d", where, pageLimit)

	raw, err := c.Query(ctx, soql)
	if err != nil {
		return nil, err
	}
	return decodeRecords[ModuleName](raw)
}

// GetCourses 课程选项列表
func (c *Client) GetCourses(ctx context.Context) (*Result[PicklistValue], error) {
	return c.picklist(ctx, projectSObject, courseField)
}

// GetModulePicklistValues 模块选项列表
func (c *Client) GetModulePicklistValues(ctx context.Context) (*Result[PicklistValue], error) {
	return c.picklist(ctx, projectSObject, moduleField)
}

// picklist 从 describe 元数据中提取指定字段的启用选项
func (c *Client) picklist(ctx context.Context, sobject, field string) (*Result[PicklistValue], error) {
	desc, err := c.Describe(ctx, sobject)
	if err != nil {
		return nil, err
	}

	for _, f := range desc.Fields {
		if f.Name != field {
			continue
		}
		values := make([]PicklistValue, 0, len(f.PicklistValues))
		for _, v := range f.PicklistValues {
			if v.Active {
				values = append(values, v)
			}
		}
		return &Result[PicklistValue]{TotalSize: len(values), Records: values}, nil
	}

	return nil, fmt.Errorf("%w: %s 上不存在字段 %s", ErrQuery, sobject, field)
}
