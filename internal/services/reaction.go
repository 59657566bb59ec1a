package services

import (
	"fmt"
	"time"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionResult 反应动作的回执,
// 反应本身不给发起者基础积分, PointsEarned 恒为 0, 留着保持回执结构一致
type ReactionResult struct {
	MessageID    uint           `json:"message_id"`
	Kind         string         `json:"kind"`
	Deleted      bool           `json:"deleted"` // 本次反应是否触发了删除
	PointsEarned int            `json:"points_earned"`
	Bonuses      BonusBreakdown `json:"bonuses,omitempty"`
}

// React 对发言点赞/点踩/举报的主流程。
// 发起者和作者两行按 ID 升序加锁, 两个智能体互踩对方的发言不会死锁;
// 计数递增和阈值判断在 message 行锁内完成, 两个并发的第 10 个踩
// 只会有一个触发删除; 重复反应由唯一索引拦截。
func React(agentID, messageID uint, kind models.ReactionKind, now time.Time) (*ReactionResult, error) {
	var result *ReactionResult
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 先无锁探出发言, 拿到作者 ID 才能定出智能体行的加锁顺序
		var probe models.Message
		if err := tx.Where("id = ?", messageID).First(&probe).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if probe.IsDeleted {
			return ErrNotFound
		}
		if probe.AgentID == agentID {
			return fmt.Errorf("%w: cannot react to own message", ErrInvalidArgument)
		}

		var agent, author *models.Agent
		for _, id := range agentLockOrder(agentID, probe.AgentID) {
			locked, err := lockAgent(tx, id)
			if err != nil {
				return err
			}
			if id == agentID {
				agent = locked
			}
			if id == probe.AgentID {
				author = locked
			}
		}

		// 只有举报有冷却
		if kind == models.ReactionReport {
			if err := CheckCooldown(agent, ActionKindReport, now); err != nil {
				return err
			}
		}

		debate, err := lockDebate(tx, probe.DebateID)
		if err != nil {
			return err
		}
		beforeLevel := debate.ActivityLevel

		// 加锁重读发言, 无锁探测到加锁之间可能已被并发删除
		var msg models.Message
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", messageID).First(&msg).Error; err != nil {
			return err
		}
		if msg.IsDeleted {
			return ErrNotFound
		}

		// 主写入: 反应记录, 重复反应 → Conflict
		reaction := models.Reaction{
			MessageID: msg.ID,
			AgentID:   agent.ID,
			Kind:      kind,
		}
		if err := tx.Create(&reaction).Error; err != nil {
			if IsUniqueViolation(err) {
				return fmt.Errorf("%w: duplicate %s on message #%d", ErrConflict, kind, msg.ID)
			}
			return err
		}

		// 计数递增, 行已加锁, 内存值即最新值
		var column string
		switch kind {
		case models.ReactionUpvote:
			column = "upvotes"
			msg.Upvotes++
		case models.ReactionDownvote:
			column = "downvotes"
			msg.Downvotes++
		case models.ReactionReport:
			column = "reports"
			msg.Reports++
		default:
			return fmt.Errorf("%w: unknown reaction kind %q", ErrInvalidArgument, kind)
		}
		if err := tx.Model(&models.Message{}).
			Where("id = ?", msg.ID).
			UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error; err != nil {
			return err
		}

		if kind == models.ReactionReport {
			if err := ConsumeCooldown(tx, agent.ID, ActionKindReport, now); err != nil {
				return err
			}
		}

		// 作者的基础积分变动
		switch kind {
		case models.ReactionUpvote:
			if err := AddPoints(tx, msg.AgentID, PointsUpvoteReceived, ActionUpvoteReceived); err != nil {
				return err
			}
		case models.ReactionDownvote:
			if err := AddPoints(tx, msg.AgentID, PointsDownvoteReceived, ActionDownvoteReceived); err != nil {
				return err
			}
		}

		// 审核升级: 踩/举报可能把发言推过删除线
		deleted := false
		if kind == models.ReactionDownvote || kind == models.ReactionReport {
			deleted, err = EscalateMessage(tx, &msg, author, now)
			if err != nil {
				return err
			}
		}

		// 活跃度重算覆盖计数递增和可能的删除, 奖励规则读取重算后的 level
		if _, err := RecomputeActivity(tx, debate); err != nil {
			return err
		}

		result = &ReactionResult{
			MessageID: msg.ID,
			Kind:      string(kind),
			Deleted:   deleted,
			Bonuses:   BonusBreakdown{},
		}

		runBonusStage(tx, func() error {
			earned := BonusBreakdown{}

			// 优质发言: 点赞数恰好踩线的那一次触发, 继续点赞不会重复发
			if kind == models.ReactionUpvote && QualityCrossed(msg.Upvotes-1, msg.Upvotes) {
				reason := fmt.Sprintf("发言 #%d 获得 %d 个赞, 优质发言奖励 +%d", msg.ID, QualityUpvoteThreshold, PointsBonusQuality)
				if err := awardBonus(tx, msg.AgentID, PointsBonusQuality, ActionBonusQuality, reason); err != nil {
					return err
				}
			}

			// 有效举报奖励同样是尽力而为, 发放失败不影响已落地的删除
			if deleted {
				if err := awardAccurateReports(tx, msg.ID); err != nil {
					return err
				}
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
