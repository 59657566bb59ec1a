package services

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockAgent 取最新的智能体行并加排它锁,
// 冷却检查和积分更新都以锁内快照为准
func lockAgent(tx *gorm.DB, agentID uint) (*models.Agent, error) {
	var agent models.Agent
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", agentID).First(&agent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &agent, nil
}

// agentLockOrder 一个事务要锁多个智能体行时统一按 ID 升序排,
// 两个智能体互相反应对方的发言不会各持一把锁等对方
func agentLockOrder(ids ...uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// lockDebate 取辩题行并加排它锁, 缺失或已关闭都按 NotFound 处理,
// 同一辩题上的计数递增和阈值判断由这把行锁串行化
func lockDebate(tx *gorm.DB, debateID uint) (*models.Debate, error) {
	var debate models.Debate
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", debateID).First(&debate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !debate.IsActive {
		return nil, ErrNotFound
	}
	return &debate, nil
}

// runBonusStage 奖励评估整体放在 savepoint 里跑:
// 评估失败回滚到 savepoint 并记日志, 绝不连累已成功的主写入
func runBonusStage(tx *gorm.DB, fn func() error) {
	if err := tx.SavePoint("bonus_stage").Error; err != nil {
		log.WithError(err).Error("创建奖励 savepoint 失败")
		return
	}
	if err := fn(); err != nil {
		tx.RollbackTo("bonus_stage")
		log.WithError(err).Error("奖励评估失败, 主动作不受影响")
	}
}

// evalParticipationBonuses 与"参与"挂钩的奖励: 冷场开拓与连续参与,
// 资格标志在主写入之前探测, 发放在主写入之后
func evalParticipationBonuses(tx *gorm.DB, agentID uint, debate *models.Debate, pioneer bool, preStreak []uint) (BonusBreakdown, error) {
	b := BonusBreakdown{}
	if pioneer {
		reason := fmt.Sprintf("率先参与冷场辩题 #%d, 开拓奖励 +%d", debate.ID, PointsBonusPioneer)
		if err := awardBonus(tx, agentID, PointsBonusPioneer, ActionBonusPioneer, reason); err != nil {
			return nil, err
		}
		b[ActionBonusPioneer] = PointsBonusPioneer
	}
	if StreakCrossed(preStreak, debate.ID) {
		reason := fmt.Sprintf("24 小时内参与 %d 个辩题, 连续参与奖励 +%d", StreakDistinctDebates, PointsBonusStreak)
		if err := awardBonus(tx, agentID, PointsBonusStreak, ActionBonusStreak, reason); err != nil {
			return nil, err
		}
		b[ActionBonusStreak] = PointsBonusStreak
	}
	return b, nil
}

// evalDebateBonuses 与辩题活跃度挂钩的奖励: 引爆与最佳辩论,
// 在活跃度重算之后调用, beforeLevel 是重算前锁内读到的值。
// 返回归属于本次动作发起者的那部分明细。
func evalDebateBonuses(tx *gorm.DB, debate *models.Debate, beforeLevel int, actorID uint) (BonusBreakdown, error) {
	b := BonusBreakdown{}

	if ActivationCrossed(beforeLevel, debate.ActivityLevel) {
		ids, err := AwardActivation(tx, debate)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if id == actorID {
				b[ActionBonusActivation] = PointsBonusActivation
			}
		}
	}

	// vote 类型没有发言, 永远凑不齐最佳辩论的发言数条件
	if debate.Kind == models.DebateKindDebate {
		paid, ids, err := EvaluateBestDebate(tx, debate)
		if err != nil {
			return nil, err
		}
		if paid {
			for _, id := range ids {
				if id == actorID {
					b[ActionBonusBestDebate] = PointsBonusBestDebate
				}
			}
		}
	}

	return b, nil
}
