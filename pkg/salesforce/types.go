package salesforce

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Result 类型化查询结果
type Result[T any] struct {
	TotalSize int `json:"totalSize"`
	Records   []T `json:"records"`
}

// decodeRecords 将原始记录解码为指定类型
func decodeRecords[T any](raw *QueryResult) (*Result[T], error) {
	records := make([]T, 0, len(raw.Records))
	for i, r := range raw.Records {
		var rec T
		if err := json.Unmarshal(r, &rec); err != nil {
			return nil, fmt.Errorf("%w: 第 %d 条记录解码失败: %v", ErrQuery, i, err)
		}
		records = append(records, rec)
	}
	return &Result[T]{TotalSize: raw.TotalSize, Records: records}, nil
}

// AccountRef 关联 Account 的名称
type AccountRef struct {
	Name string `json:"Name"`
}

// Account Salesforce Account（合作伙伴）
type Account struct {
	ID       string `json:"Id"`
	Name     string `json:"Name"`
	Sector   string `json:"Type__c,omitempty"`
	Industry string `json:"Industry,omitempty"`
	Activity string `json:"Atividade__c,omitempty"`
}

// Contact Salesforce Contact
type Contact struct {
	ID        string      `json:"Id"`
	Name      string      `json:"Name"`
	Email     string      `json:"Email,omitempty"`
	Phone     string      `json:"Phone,omitempty"`
	Title     string      `json:"Title,omitempty"`
	AccountID string      `json:"AccountId"`
	Account   *AccountRef `json:"Account,omitempty"`
}

// Opportunity Salesforce Opportunity（项目记录类型）
type Opportunity struct {
	ID          string      `json:"Id"`
	Name        string      `json:"Name"`
	Description string      `json:"Description,omitempty"`
	StageName   string      `json:"StageName,omitempty"`
	AccountID   string      `json:"AccountId"`
	Account     *AccountRef `json:"Account,omitempty"`
	ClassCode   string      `json:"Turma__c,omitempty"`
	ModuleName  string      `json:"Modulo__c,omitempty"`
	Course      string      `json:"Curso__c,omitempty"`
}

// Lead Salesforce Lead
type Lead struct {
	ID      string `json:"Id"`
	Name    string `json:"Name"`
	Phone   string `json:"Phone,omitempty"`
	Email   string `json:"Email,omitempty"`
	Company string `json:"Company,omitempty"`
}

// ModuleName 模块名聚合结果
type ModuleName struct {
	Name string `json:"Modulo__c"`
}

// PicklistValue 选项列表值
type PicklistValue struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Active bool   `json:"active"`
}
