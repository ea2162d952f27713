package service

import (
	"fmt"
	"regexp"
	"strconv"
)

// classCodePattern 班级编码，如 2024-1A-T08：年份-学期+半学期-班号
var classCodePattern = regexp.MustCompile(`^(\d{4})-(\d)([AB])-T\d+$`)

// ClassCode 解析后的班级编码
type ClassCode struct {
	Year     int
	Semester int
	Half     string // "A" | "B"
	Quarter  int
}

// Period 模块周期字符串 "year.semester"
func (c ClassCode) Period() string {
	return fmt.Sprintf("%d.%d", c.Year, c.Semester)
}

// ParseClassCode 解析班级编码；不匹配时 ok=false
// quarter = (semester-1)*2 + (A→1, B→2)
func ParseClassCode(code string) (ClassCode, bool) {
	m := classCodePattern.FindStringSubmatch(code)
	if m == nil {
		return ClassCode{}, false
	}
	year, _ := strconv.Atoi(m[1])
	semester, _ := strconv.Atoi(m[2])
	quarter := (semester-1)*2 + 1
	if m[3] == "B" {
		quarter++
	}
	return ClassCode{Year: year, Semester: semester, Half: m[3], Quarter: quarter}, true
}

// ValidClassCode 供请求校验使用
func ValidClassCode(code string) bool {
	return classCodePattern.MatchString(code)
}
