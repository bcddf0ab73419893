package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smash-signup/config"
	"smash-signup/internal/api/handler"
	"smash-signup/internal/api/middleware"
	"smash-signup/pkg/jwt"
	"smash-signup/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(5 << 20)) // 名册文件上限 5MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开查询：通道状态与名单（前端首页轮询，无需认证）
		v1.GET("/system/info", h.Timer.GetSystemInfo)
		v1.GET("/lanes", h.Timer.GetLaneStates)
		v1.GET("/lanes/:lane_id", h.Timer.GetLaneState)
		v1.GET("/signup/roster/:day", h.Signup.Roster)

		// 社员报名：学号+密码随请求提交，无会话
		signup := v1.Group("/signup")
		signup.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			signup.POST("/apply", h.Signup.Apply)
			signup.POST("/cancel", h.Signup.Cancel)
		}

		// 管理员登录（共享密钥，限流防爆破）
		v1.POST("/admin/login", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Login)
		v1.POST("/admin/refresh", h.Auth.Refresh)

		// 管理操作（JWT + admin 角色）
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(jwtMgr, rdb), middleware.RoleAuth("admin"))
		{
			admin.POST("/logout", h.Auth.Logout)

			admin.PUT("/overrides", h.Admin.SetOverride)
			admin.DELETE("/overrides", h.Admin.ClearOverrides)

			admin.POST("/semester/reset", h.Admin.ResetSemester)
			admin.POST("/week/increment", h.Admin.IncrementWeek)
			admin.POST("/rollover", h.Admin.RunRollover)

			admin.POST("/members/import", h.Admin.ImportMembers)
			admin.GET("/applications/export", h.Admin.ExportApplications)
			admin.DELETE("/lanes/:lane_id/roster", h.Admin.ClearLaneRoster)

			admin.POST("/signup/apply", h.Admin.ProxyApply)
			admin.POST("/signup/cancel", h.Admin.ProxyCancel)
		}
	}

	return r
}
