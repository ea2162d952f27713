package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MilanAlbertz/pmo-dashboard/config"
	"github.com/MilanAlbertz/pmo-dashboard/internal/api/handler"
	"github.com/MilanAlbertz/pmo-dashboard/internal/api/middleware"
	"github.com/MilanAlbertz/pmo-dashboard/internal/api/router"
	"github.com/MilanAlbertz/pmo-dashboard/internal/repository"
	"github.com/MilanAlbertz/pmo-dashboard/internal/service"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/database"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/jwt"
	applogger "github.com/MilanAlbertz/pmo-dashboard/pkg/logger"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/redis"
	"github.com/MilanAlbertz/pmo-dashboard/pkg/salesforce"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("PMO_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
	}

	// 4. 连接 Redis（可选：未启用或连接失败时降级运行）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，同步锁、登出黑名单与登录限流将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 5. Salesforce 客户端（凭据缺失时各查询返回 ErrNotConfigured）
	httpClient := &http.Client{Timeout: cfg.Salesforce.Timeout}
	tokens := salesforce.NewTokenProvider(salesforce.Credentials{
		LoginURL:     cfg.Salesforce.LoginURL,
		ClientID:     cfg.Salesforce.ClientID,
		ClientSecret: cfg.Salesforce.ClientSecret,
	}, httpClient)
	sf := salesforce.NewClient(tokens, salesforce.Options{
		BaseURL:    cfg.Salesforce.LoginURL,
		APIVersion: cfg.Salesforce.APIVersion,
		HTTPClient: httpClient,
		Logger:     logger.Named("salesforce"),
	})
	if !cfg.Salesforce.Configured() {
		logger.Warn("Salesforce 凭据不完整，相关接口将返回 503")
	}

	// 6. 依赖注入: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, jwtMgr, rdb, sf, logger)
	if err != nil {
		logger.Fatal("初始化服务失败", zap.Error(err))
	}
	h := handler.NewHandler(svc, cfg.Auth.Cookie)

	// 7. 初始化路由（避免把 nil 指针装进非 nil 接口）
	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	engine, err := router.Setup(cfg, h, svc.Auth, limiter, logger)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
