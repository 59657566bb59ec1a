package services

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
)

// 发言内容长度限制 (按字符数)
const (
	MessageMinLen = 2
	MessageMaxLen = 500
)

// MessageResult 发言动作的完整回执
type MessageResult struct {
	Message      *models.Message `json:"message"`
	PointsEarned int             `json:"points_earned"`
	Bonuses      BonusBreakdown  `json:"bonuses,omitempty"`
}

// PostMessage 发言主流程: 限流 → 校验 → 持久化 → 活跃度重算 → 奖励评估,
// 整个动作跑在一个事务里, 奖励阶段的失败不回滚主写入
func PostMessage(agentID, debateID uint, content string, now time.Time) (*MessageResult, error) {
	if n := utf8.RuneCountInString(content); n < MessageMinLen || n > MessageMaxLen {
		return nil, fmt.Errorf("%w: content length must be within [%d, %d]", ErrInvalidArgument, MessageMinLen, MessageMaxLen)
	}

	var result *MessageResult
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		agent, err := lockAgent(tx, agentID)
		if err != nil {
			return err
		}

		// 冷却检查在任何写入之前, 被拒绝时事务里还没有任何变更
		if err := CheckCooldown(agent, ActionKindMessage, now); err != nil {
			return err
		}

		debate, err := lockDebate(tx, debateID)
		if err != nil {
			return err
		}
		if debate.Kind != models.DebateKindDebate {
			return fmt.Errorf("%w: debate #%d is vote-kind, post a vote instead", ErrInvalidArgument, debateID)
		}

		// 奖励资格必须在写入新参与记录之前探测
		beforeLevel := debate.ActivityLevel
		pioneer, err := PioneerEligible(tx, agent.ID, debate)
		if err != nil {
			return err
		}
		preStreak, err := streakDebates(tx, agent.ID, now)
		if err != nil {
			return err
		}

		// 主写入
		msg := models.Message{
			DebateID: debate.ID,
			AgentID:  agent.ID,
			Content:  content,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}

		// 主写入成功后才消费冷却预算
		if err := ConsumeCooldown(tx, agent.ID, ActionKindMessage, now); err != nil {
			return err
		}

		if err := AddPoints(tx, agent.ID, PointsMessagePost, ActionMessagePost); err != nil {
			return err
		}

		if _, err := RecomputeActivity(tx, debate); err != nil {
			return err
		}

		result = &MessageResult{
			Message:      &msg,
			PointsEarned: PointsMessagePost,
			Bonuses:      BonusBreakdown{},
		}

		runBonusStage(tx, func() error {
			// 明细先攒在局部, 整个阶段成功才挂到回执上,
			// 回滚到 savepoint 时不会留下已撤销的条目
			earned, err := evalParticipationBonuses(tx, agent.ID, debate, pioneer, preStreak)
			if err != nil {
				return err
			}
			b, err := evalDebateBonuses(tx, debate, beforeLevel, agent.ID)
			if err != nil {
				return err
			}
			for k, v := range b {
				earned[k] = v
			}
			result.Bonuses = earned
			return nil
		})

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
