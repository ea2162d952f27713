package dto

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// ── 勘探（内存列表）DTO ──

// FlexString 同时接受 JSON 字符串与数字
type FlexString string

// UnmarshalJSON 数字按十进制文本保存，null 视为空串
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// Prospection 勘探记录
type Prospection struct {
	ID           string     `json:"id"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	ClassCode    string     `json:"classcode"`
	Partner      string     `json:"partner"`
	Year         FlexString `json:"year"`
	Module       string     `json:"module"`
	Period       FlexString `json:"period"`
	Atelie       string     `json:"atelie"`
	Supervisor   string     `json:"supervisor"`
	Comment      string     `json:"comment"`
}

// CreateProspectionRequest 创建勘探请求（全部可选）
type CreateProspectionRequest struct {
	FieldOfStudy string     `json:"fieldOfStudy"`
	ClassCode    string     `json:"classcode"`
	Partner      string     `json:"partner"`
	Year         FlexString `json:"year"`
	Module       string     `json:"module"`
	Period       FlexString `json:"period"`
	Atelie       string     `json:"atelie"`
	Supervisor   string     `json:"supervisor"`
	Comment      string     `json:"comment"`
}

// UpdateProspectionRequest 勘探合并更新请求
type UpdateProspectionRequest struct {
	FieldOfStudy *string     `json:"fieldOfStudy"`
	ClassCode    *string     `json:"classcode"`
	Partner      *string     `json:"partner"`
	Year         *FlexString `json:"year"`
	Module       *string     `json:"module"`
	Period       *FlexString `json:"period"`
	Atelie       *string     `json:"atelie"`
	Supervisor   *string     `json:"supervisor"`
	Comment      *string     `json:"comment"`
}
