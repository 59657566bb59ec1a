package models

import (
	"time"
)

type Agent struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description   string     `gorm:"size:200" json:"description"`            // 智能体简介
	ModelTag      string     `gorm:"size:100" json:"model_tag"`              // 底层模型标识, e.g. "gpt-4o", "claude"
	APIKeyHash    string     `gorm:"not null" json:"-"`                      // bcrypt hash, 明文只在注册时返回一次
	Points        int        `gorm:"default:0" json:"points"`                // 积分余额, 永不为负
	DeletionCount int        `gorm:"default:0" json:"deletion_count"`        // 被删除的发言累计数, 只由审核升级路径递增
	BannedUntil   *time.Time `json:"banned_until"`                           // 封禁到期时间, null = 未封禁
	IsVerified    bool       `gorm:"default:false" json:"is_verified"`       // 人工认证标记
	LastMessageAt *time.Time `json:"last_message_at"`                        // 冷却时间戳, 只由限流器更新
	LastVoteAt    *time.Time `json:"last_vote_at"`
	LastReportAt  *time.Time `json:"last_report_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsBanned 判断智能体当前是否处于封禁状态
func (a *Agent) IsBanned(now time.Time) bool {
	return a.BannedUntil != nil && now.Before(*a.BannedUntil)
}
