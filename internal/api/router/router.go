package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/api/handler"
	"github.com/MilanAlbertz/pmo-dashboard/internal/api/middleware"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时登录接口不限流
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	authSvc service.AuthService,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// 认证模块（无需会话）
		loginLimit := middleware.RateLimit(limiter, cfg.Auth.LoginLimit.Max, cfg.Auth.LoginLimit.Window, logger)
		api.POST("/login", loginLimit, h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/check", h.Auth.Check)

		protected := api.Group("")
		if cfg.Auth.RequireSession {
			protected.Use(middleware.SessionAuth(authSvc, cfg.Auth.Cookie.Name))
		}

		// 勘探记录（内存）
		prospections := protected.Group("/prospections")
		{
			prospections.GET("", h.Prospection.List)
			prospections.POST("", h.Prospection.Create)
			prospections.GET("/:id", h.Prospection.Get)
			prospections.PUT("/:id", h.Prospection.Update)
		}

		// Salesforce 透传查询
		sf := protected.Group("/salesforce")
		{
			sf.GET("/accounts", h.Salesforce.Accounts)
			sf.GET("/partners", h.Salesforce.Partners)
			sf.GET("/contacts", h.Salesforce.Contacts)
			sf.GET("/projects", h.Salesforce.Projects)
			sf.GET("/leads", h.Salesforce.Leads)
			sf.GET("/courses", h.Salesforce.Courses)
			sf.GET("/modules", h.Salesforce.Modules)
			sf.GET("/module-picklist", h.Salesforce.ModulePicklist)
			sf.GET("/status", h.Salesforce.Status)
		}

		// 项目模块
		projects := protected.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.GET("/export", h.Export.ExportProjects)
			projects.GET("/:id", h.Project.Get)
			projects.PUT("/:id", h.Project.Update)
		}

		protected.PUT("/modules/:id", h.Module.Update)

		// 本地名录
		protected.GET("/partners", h.Directory.Partners)
		protected.GET("/contacts", h.Directory.Contacts)
		protected.GET("/leads", h.Directory.Leads)
		protected.GET("/partners-and-leads", h.Directory.PartnersAndLeads)
		protected.GET("/test/:table", h.Directory.Latest)

		protected.GET("/statistics", h.Statistics.Get)
		protected.POST("/sync/salesforce", h.Sync.SyncSalesforce)

		// 勘探卡
		cards := protected.Group("/prospection-cards")
		{
			cards.GET("", h.ProspectionCard.List)
			cards.POST("", h.ProspectionCard.Create)
			cards.GET("/:id", h.ProspectionCard.Get)
			cards.PUT("/:id", h.ProspectionCard.Update)
		}
	}

	return r, nil
}
