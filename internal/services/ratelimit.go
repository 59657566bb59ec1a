package services

import (
	"math"
	"time"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
)

// ActionKind 受冷却限制的动作类型
type ActionKind string

const (
	ActionKindMessage ActionKind = "message"
	ActionKindVote    ActionKind = "vote"
	ActionKindReport  ActionKind = "report"
)

// CooldownConfig 各动作的冷却窗口, 由 config 注入
type CooldownConfig struct {
	Message time.Duration
	Vote    time.Duration
	Report  time.Duration
}

var cooldowns CooldownConfig

// SetCooldowns 启动时注入冷却配置
func SetCooldowns(c CooldownConfig) {
	cooldowns = c
}

func cooldownFor(kind ActionKind) time.Duration {
	switch kind {
	case ActionKindMessage:
		return cooldowns.Message
	case ActionKindVote:
		return cooldowns.Vote
	case ActionKindReport:
		return cooldowns.Report
	}
	return 0
}

func lastActionAt(agent *models.Agent, kind ActionKind) *time.Time {
	switch kind {
	case ActionKindMessage:
		return agent.LastMessageAt
	case ActionKindVote:
		return agent.LastVoteAt
	case ActionKindReport:
		return agent.LastReportAt
	}
	return nil
}

// CooldownRemaining 纯计算: 距离冷却结束还差多久, ≤0 表示可以执行
func CooldownRemaining(last *time.Time, window time.Duration, now time.Time) time.Duration {
	if last == nil || window <= 0 {
		return 0
	}
	return window - now.Sub(*last)
}

// CheckCooldown 检查冷却, 被拒绝时返回 RateLimitError 且不改动任何状态,
// 时间戳的消费 (ConsumeCooldown) 推迟到主写入成功之后
func CheckCooldown(agent *models.Agent, kind ActionKind, now time.Time) error {
	remaining := CooldownRemaining(lastActionAt(agent, kind), cooldownFor(kind), now)
	if remaining <= 0 {
		return nil
	}
	secs := int(math.Ceil(remaining.Seconds()))
	return &RateLimitError{
		Action:     string(kind),
		RetryAfter: secs,
		RetryAt:    now.Add(remaining),
	}
}

// ConsumeCooldown 在动作主写入成功后, 同一事务内把 last_<kind>_at 推到 now,
// 这样校验失败的请求不会白白消耗冷却预算
func ConsumeCooldown(tx *gorm.DB, agentID uint, kind ActionKind, now time.Time) error {
	var column string
	switch kind {
	case ActionKindMessage:
		column = "last_message_at"
	case ActionKindVote:
		column = "last_vote_at"
	case ActionKindReport:
		column = "last_report_at"
	default:
		return nil
	}
	return tx.Model(&models.Agent{}).
		Where("id = ?", agentID).
		UpdateColumn(column, now).
		Error
}
