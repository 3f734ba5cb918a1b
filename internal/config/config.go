package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 主配置结构
type Config struct {
	App       App      `yaml:"app"`
	Server    Server   `yaml:"server"`
	Database  DB       `yaml:"database"`
	Cache     Cache    `yaml:"cache"`
	Auth      Auth     `yaml:"auth"`
	OAuth     OAuth    `yaml:"oauth"`
	RateLimit Limit    `yaml:"rate_limit"`
	Tracking  Tracking `yaml:"tracking"`
	Storage   Storage  `yaml:"storage"`
	Log       Log      `yaml:"log"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
	BaseURL string `yaml:"base_url"`
}

// 服务器配置
type Server struct {
	Port         int `yaml:"port"`
	ReadTimeout  int `yaml:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout"`
}

// 数据库配置
type DB struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	Charset      string `yaml:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// 缓存配置（Redis）
type Cache struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 本地 TinyLFU 缓存容量
	LocalSize int `yaml:"local_size"`
}

// 认证配置
type Auth struct {
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	ExpirationHours int    `yaml:"expiration_hours"`
	CookieSecure    bool   `yaml:"cookie_secure"`
}

// OAuth 登录配置（Google）
type OAuth struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	SuccessURL   string `yaml:"success_url"`
}

// 限流配置
type Limit struct {
	Enabled   bool     `yaml:"enabled"`
	Requests  int64    `yaml:"requests_per_minute"`
	Burst     int64    `yaml:"burst"`
	SkipPaths []string `yaml:"skip_paths"`
}

// 访问追踪配置
type Tracking struct {
	// IP 哈希盐，不同部署应使用不同的值
	IPSalt string `yaml:"ip_salt"`
	// 访问记录保留时长，默认两年
	Retention time.Duration `yaml:"retention"`
	// 清理任务 cron 表达式
	PurgeSchedule string `yaml:"purge_schedule"`
	PurgeBatch    int    `yaml:"purge_batch"`
	// 单次记录访问的超时时间
	RecordTimeout time.Duration `yaml:"record_timeout"`
	MaxSlugTries  int           `yaml:"max_slug_attempts"`
}

// 对象存储配置（OSS）
type Storage struct {
	Region          string        `yaml:"region"`
	Bucket          string        `yaml:"bucket"`
	Endpoint        string        `yaml:"endpoint"`
	PublicBaseURL   string        `yaml:"public_base_url"`
	AccessKeyID     string        `yaml:"access_key_id"`
	AccessKeySecret string        `yaml:"access_key_secret"`
	UploadExpiry    time.Duration `yaml:"upload_expiry"`
}

// 日志配置
type Log struct {
	Level    string `yaml:"level"`
	Filename string `yaml:"filename"`
}

// DefaultRetention 访问记录默认保留两年
const DefaultRetention = 2 * 365 * 24 * time.Hour

// 加载配置
func Load(path string) (*Config, error) {
	// .env 不存在时忽略（生产环境直接注入环境变量）
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv 敏感信息允许通过环境变量覆盖
func (c *Config) applyEnv() {
	overrideString(&c.Auth.Secret, "AUTH_SECRET")
	overrideString(&c.Database.Password, "DATABASE_PASSWORD")
	overrideString(&c.OAuth.ClientID, "OAUTH_CLIENT_ID")
	overrideString(&c.OAuth.ClientSecret, "OAUTH_CLIENT_SECRET")
	overrideString(&c.Tracking.IPSalt, "TRACKING_IP_SALT")
	overrideString(&c.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	overrideString(&c.Storage.AccessKeySecret, "STORAGE_ACCESS_KEY_SECRET")
	if v, ok := os.LookupEnv("SERVER_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Auth.ExpirationHours == 0 {
		c.Auth.ExpirationHours = 24
	}
	if c.Cache.LocalSize == 0 {
		c.Cache.LocalSize = 1000
	}
	if c.Tracking.Retention == 0 {
		c.Tracking.Retention = DefaultRetention
	}
	if c.Tracking.PurgeSchedule == "" {
		c.Tracking.PurgeSchedule = "@every 1h"
	}
	if c.Tracking.PurgeBatch == 0 {
		c.Tracking.PurgeBatch = 1000
	}
	if c.Tracking.RecordTimeout == 0 {
		c.Tracking.RecordTimeout = 2 * time.Second
	}
	if c.Tracking.MaxSlugTries == 0 {
		c.Tracking.MaxSlugTries = 5
	}
	if c.Storage.UploadExpiry == 0 {
		c.Storage.UploadExpiry = time.Hour
	}
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
