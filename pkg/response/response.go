package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应结构（与前端约定一致）
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应，fields 直接平铺在顶层（前端按 data.projects / data.records 读取）
func OK(c *gin.Context, fields gin.H) {
	write(c, http.StatusOK, fields)
}

// Created 201 创建成功
func Created(c *gin.Context, fields gin.H) {
	write(c, http.StatusCreated, fields)
}

// Message 200 仅携带提示信息
func Message(c *gin.Context, message string) {
	write(c, http.StatusOK, gin.H{"message": message})
}

func write(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// ── 错误响应 ──

// Error 通用错误响应；err 为空时不输出 error 字段
func Error(c *gin.Context, httpStatus int, message string, err error) {
	body := ErrorBody{Success: false, Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(httpStatus, body)
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// Conflict 409
func Conflict(c *gin.Context, message string, err error) {
	Error(c, http.StatusConflict, message, err)
}

// ServiceUnavailable 503
func ServiceUnavailable(c *gin.Context, message string, err error) {
	Error(c, http.StatusServiceUnavailable, message, err)
}

// InternalError 500
func InternalError(c *gin.Context, message string, err error) {
	Error(c, http.StatusInternalServerError, message, err)
}
