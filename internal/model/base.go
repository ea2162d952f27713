package model

// ── 可空列辅助函数 ──
//
// 原有库表大量使用可空列；同步比较时 NULL 与空串视为相同值。

// NullableString 空串转为 nil（写入 NULL）
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue 读取可空字符串，nil 返回空串
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// IntPtr 返回 int 指针
func IntPtr(n int) *int { return &n }

// EqualIntPtr 比较两个可空整数
func EqualIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
