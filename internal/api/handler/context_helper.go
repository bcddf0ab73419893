package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"smash-signup/pkg/response"
)

// MustGetJTI 从 Gin 上下文中安全提取当前令牌的 jti。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetJTI(c *gin.Context) (string, bool) {
	v, exists := c.Get("jti")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetTokenExpiry 从 Gin 上下文中安全提取当前令牌过期时间。
func MustGetTokenExpiry(c *gin.Context) (time.Time, bool) {
	v, exists := c.Get("token_expires_at")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return time.Time{}, false
	}
	return t, true
}
