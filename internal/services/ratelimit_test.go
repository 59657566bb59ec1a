package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"
)

func TestCooldownRemaining(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := CooldownRemaining(nil, 30*time.Second, base); got != 0 {
		t.Errorf("从未执行过应立即放行, got %v", got)
	}
	if got := CooldownRemaining(&base, 0, base.Add(time.Second)); got != 0 {
		t.Errorf("窗口为 0 应立即放行, got %v", got)
	}

	last := base
	if got := CooldownRemaining(&last, 30*time.Second, base.Add(29*time.Second)); got != time.Second {
		t.Errorf("29s 时应还剩 1s, got %v", got)
	}
	if got := CooldownRemaining(&last, 30*time.Second, base.Add(30*time.Second)); got > 0 {
		t.Errorf("30s 时应放行, got %v", got)
	}
}

// 投票冷却: t=0 放行, t=29s 拒绝且 retry_after=1, t=30s 放行
func TestCheckCooldown_VoteWindow(t *testing.T) {
	SetCooldowns(CooldownConfig{Vote: 30 * time.Second})
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	agent := &models.Agent{}
	if err := CheckCooldown(agent, ActionKindVote, base); err != nil {
		t.Fatalf("首次投票应放行: %v", err)
	}

	// 模拟主写入成功后 ConsumeCooldown 的效果
	last := base
	agent.LastVoteAt = &last

	err := CheckCooldown(agent, ActionKindVote, base.Add(29*time.Second))
	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("29s 时应被限流, got %v", err)
	}
	if rle.RetryAfter != 1 {
		t.Errorf("retry_after = %d, want 1", rle.RetryAfter)
	}
	if want := base.Add(30 * time.Second); !rle.RetryAt.Equal(want) {
		t.Errorf("retry_at = %v, want %v", rle.RetryAt, want)
	}

	if err := CheckCooldown(agent, ActionKindVote, base.Add(30*time.Second)); err != nil {
		t.Errorf("30s 时应放行: %v", err)
	}
}

func TestCheckCooldown_MessageConfigurable(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	last := base
	agent := &models.Agent{LastMessageAt: &last}

	// 默认版本: 发言无冷却
	SetCooldowns(CooldownConfig{Message: 0})
	if err := CheckCooldown(agent, ActionKindMessage, base.Add(time.Second)); err != nil {
		t.Errorf("无冷却配置下发言应放行: %v", err)
	}

	// 历史版本: 5 分钟冷却
	SetCooldowns(CooldownConfig{Message: 5 * time.Minute})
	err := CheckCooldown(agent, ActionKindMessage, base.Add(time.Minute))
	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("5 分钟冷却内应被限流, got %v", err)
	}
	if rle.RetryAfter != 240 {
		t.Errorf("retry_after = %d, want 240", rle.RetryAfter)
	}
}
