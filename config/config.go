package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Salesforce SalesforceConfig `mapstructure:"sf"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BodyLimit    int64      `mapstructure:"body_limit"`
	CORS         CORSConfig `mapstructure:"cors"`
	ReadTimeout  int        `mapstructure:"read_timeout"`  // 秒
	WriteTimeout int        `mapstructure:"write_timeout"` // 秒；同步请求可能持续较久
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig MySQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Charset         string `mapstructure:"charset"`
	Collation       string `mapstructure:"collation"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// DSN 生成 go-sql-driver/mysql 连接字符串
// multiStatements 供迁移文件一次执行多条语句
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=%s&collation=%s&parseTime=true&loc=Local&multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.Name, c.Charset, c.Collation,
	)
}

// RedisConfig Redis 配置（可选，用于同步互斥锁、登出黑名单与登录限流）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

// AuthConfig 登录配置
// 账号密码为固定值，仅做简单校验
type AuthConfig struct {
	Email      string        `mapstructure:"email"`
	Password   string        `mapstructure:"password"`
	JWTSecret  string        `mapstructure:"jwt_secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	Cookie     CookieConfig  `mapstructure:"cookie"`

	// RequireSession 为 true 时 /api 下除登录相关外的接口都需要有效会话
	RequireSession bool             `mapstructure:"require_session"`
	LoginLimit     LoginLimitConfig `mapstructure:"login_limit"`
}

// LoginLimitConfig 登录限流（依赖 Redis）
type LoginLimitConfig struct {
	Max    int           `mapstructure:"max"`
	Window time.Duration `mapstructure:"window"`
}

// CookieConfig Cookie 安全配置
type CookieConfig struct {
	Name   string `mapstructure:"name"`
	Secure bool   `mapstructure:"secure"`
	Domain string `mapstructure:"domain"`
}

// SalesforceConfig Salesforce 连接配置
type SalesforceConfig struct {
	LoginURL     string        `mapstructure:"login_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	APIVersion   string        `mapstructure:"api_version"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Configured 判断 Salesforce 凭据是否齐全
func (c *SalesforceConfig) Configured() bool {
	return c.LoginURL != "" && c.ClientID != "" && c.ClientSecret != ""
}

// SyncConfig 同步任务配置
type SyncConfig struct {
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envBindings 沿用原有部署的环境变量名（无前缀）
var envBindings = map[string]string{
	"db.host":          "DB_HOST",
	"db.port":          "DB_PORT",
	"db.user":          "DB_USER",
	"db.password":      "DB_PASSWORD",
	"db.name":          "DB_NAME",
	"sf.login_url":     "SF_LOGIN_URL",
	"sf.client_id":     "SF_CLIENT_ID",
	"sf.client_secret": "SF_CLIENT_SECRET",
}

// Load 从 .env、配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000", "http://localhost:9995"})
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 300)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.name", "pmo_office_db")
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.charset", "utf8mb4")
	v.SetDefault("db.collation", "utf8mb4_unicode_ci")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", false)

	v.SetDefault("auth.email", "test.test@test.nl")
	v.SetDefault("auth.password", "test123")
	v.SetDefault("auth.jwt_secret", "pmo-office-dev-secret-change-me")
	v.SetDefault("auth.session_ttl", "12h")
	v.SetDefault("auth.cookie.name", "authToken")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.require_session", false)
	v.SetDefault("auth.login_limit.max", 10)
	v.SetDefault("auth.login_limit.window", "1m")

	v.SetDefault("sf.login_url", "https://test.salesforce.com")
	v.SetDefault("sf.api_version", "v57.0")
	v.SetDefault("sf.timeout", "30s")

	v.SetDefault("sync.lock_ttl", "10m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("PMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Database.MaxOpenConns < 0 {
		return fmt.Errorf("配置校验失败: db.max_open_conns 不能为负数")
	}
	return nil
}
