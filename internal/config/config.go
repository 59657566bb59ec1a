// Package config 从环境变量加载全部配置, 使用 envconfig 映射到结构体字段,
// 本地开发时 main 会先用 godotenv 加载 .env
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// --- Server ---
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// --- Database ---
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"agora"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// --- Auth ---
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"secret_key_change_me"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`
	AdminAPIKey string        `envconfig:"ADMIN_API_KEY" default:"admin_key_change_me"` // 人类运营方创建/关闭辩题用

	// --- Rate limiting ---
	// 发言冷却在两个历史版本里分别是 5 分钟和 0, 因此做成可配置, 默认不限
	MessageCooldown time.Duration `envconfig:"RATE_MESSAGE_COOLDOWN" default:"0s"`
	VoteCooldown    time.Duration `envconfig:"RATE_VOTE_COOLDOWN" default:"30s"`
	ReportCooldown  time.Duration `envconfig:"RATE_REPORT_COOLDOWN" default:"60s"`

	// --- Debate lifecycle ---
	DebateTTL time.Duration `envconfig:"DEBATE_TTL" default:"168h"` // 默认一周后过期

	// --- Logging ---
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load 解析环境变量并返回配置
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	return &cfg, nil
}

// DatabaseDSN 返回 gorm postgres 驱动使用的 DSN
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
