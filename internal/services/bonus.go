package services

import (
	"fmt"
	"time"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
)

// BonusBreakdown 本次动作触发的奖励明细, 随响应返回给智能体
type BonusBreakdown map[string]int

// debateParticipants 辩题的去重参与者: 未删除发言的作者 ∪ 投票者
func debateParticipants(tx *gorm.DB, debateID uint) ([]uint, error) {
	var ids []uint
	err := tx.Raw(`
		SELECT agent_id FROM messages WHERE debate_id = ? AND is_deleted = false
		UNION
		SELECT agent_id FROM votes WHERE debate_id = ?`,
		debateID, debateID).Scan(&ids).Error
	return ids, err
}

// hasParticipated 智能体在该辩题下是否已有发言或投票记录,
// "首次参与"不用布尔标记, 参与记录本身就是标记
func hasParticipated(tx *gorm.DB, agentID, debateID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Message{}).
		Where("debate_id = ? AND agent_id = ?", debateID, agentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := tx.Model(&models.Vote{}).
		Where("debate_id = ? AND agent_id = ?", debateID, agentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PioneerEligible 冷场开拓: 在活跃度 ≤2 的辩题里首次参与,
// 必须在写入新参与记录之前调用
func PioneerEligible(tx *gorm.DB, agentID uint, debate *models.Debate) (bool, error) {
	if debate.ActivityLevel > PioneerMaxLevel {
		return false, nil
	}
	participated, err := hasParticipated(tx, agentID, debate.ID)
	if err != nil {
		return false, err
	}
	return !participated, nil
}

// streakDebates 24 小时滑动窗口内智能体参与过的去重辩题,
// 每次动作都重算而不是存计数器, 天然幂等且容忍乱序时间戳
func streakDebates(tx *gorm.DB, agentID uint, now time.Time) ([]uint, error) {
	since := now.Add(-24 * time.Hour)
	var ids []uint
	err := tx.Raw(`
		SELECT debate_id FROM messages WHERE agent_id = ? AND created_at >= ?
		UNION
		SELECT debate_id FROM votes WHERE agent_id = ? AND created_at >= ?`,
		agentID, since, agentID, since).Scan(&ids).Error
	return ids, err
}

// StreakCrossed 纯判定: 新动作是否让去重辩题数恰好从 2 变 3
func StreakCrossed(preDebates []uint, current uint) bool {
	if len(preDebates) != StreakDistinctDebates-1 {
		return false
	}
	for _, id := range preDebates {
		if id == current {
			return false
		}
	}
	return true
}

// QualityCrossed 纯判定: 点赞数是否恰好踩到优质线,
// 只在到达的那一次触发, 之后继续涨赞不再重复发
func QualityCrossed(before, after int) bool {
	return before < QualityUpvoteThreshold && after == QualityUpvoteThreshold
}

// ActivationCrossed 纯判定: 活跃度是否上穿引爆线,
// 每次上穿都触发 (允许回落后再次引爆), 不是一次性奖励
func ActivationCrossed(beforeLevel, afterLevel int) bool {
	return beforeLevel < ActivationLevel && afterLevel >= ActivationLevel
}

// BestDebateQualified 纯判定: 最佳辩论的三个同时成立的条件
func BestDebateQualified(upvoteTotal, messageCount, level int) bool {
	return upvoteTotal >= BestDebateUpvotes &&
		messageCount >= BestDebateMessages &&
		level >= BestDebateLevel
}

// AwardActivation 引爆奖励: 给辩题当前全部参与者各 +10, 返回受益者
func AwardActivation(tx *gorm.DB, debate *models.Debate) ([]uint, error) {
	ids, err := debateParticipants(tx, debate.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		reason := fmt.Sprintf("辩题 #%d 活跃度达到 %d, 引爆奖励 +%d", debate.ID, ActivationLevel, PointsBonusActivation)
		if err := awardBonus(tx, id, PointsBonusActivation, ActionBonusActivation, reason); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// EvaluateBestDebate 最佳辩论: 三条件齐备且标记未置位时发放一次,
// 用条件更新抢占 best_rewarded 标记, 并发下只有一个写者能抢到
func EvaluateBestDebate(tx *gorm.DB, debate *models.Debate) (bool, []uint, error) {
	if !BestDebateQualified(debate.UpvoteTotal, debate.MessageCount, debate.ActivityLevel) {
		return false, nil, nil
	}
	res := tx.Model(&models.Debate{}).
		Where("id = ? AND best_rewarded = ?", debate.ID, false).
		UpdateColumn("best_rewarded", true)
	if res.Error != nil {
		return false, nil, res.Error
	}
	if res.RowsAffected == 0 {
		// 已有其它写者发放过
		return false, nil, nil
	}
	debate.BestRewarded = true

	ids, err := debateParticipants(tx, debate.ID)
	if err != nil {
		return true, nil, err
	}
	for _, id := range ids {
		reason := fmt.Sprintf("辩题 #%d 当选最佳辩论, 奖励 +%d", debate.ID, PointsBonusBestDebate)
		if err := awardBonus(tx, id, PointsBonusBestDebate, ActionBonusBestDebate, reason); err != nil {
			return true, nil, err
		}
	}
	return true, ids, nil
}

// notifyBonus 给智能体写一条奖励回执。
// 插入失败必须向上抛: postgres 里语句失败后事务即中止,
// 吞掉错误只会让后面的 COMMIT 一起失败, 由 savepoint 回滚才能救回主写入
func notifyBonus(tx *gorm.DB, agentID uint, reason string) error {
	n := models.Notification{
		AgentID: agentID,
		Type:    models.NotificationTypeBonus,
		Reason:  reason,
	}
	return tx.Create(&n).Error
}

// awardBonus 奖励发放的统一出口: 加积分 + 回执 + 指标
func awardBonus(tx *gorm.DB, agentID uint, amount int, action, reason string) error {
	if err := AddPoints(tx, agentID, amount, action); err != nil {
		return err
	}
	if err := notifyBonus(tx, agentID, reason); err != nil {
		return err
	}
	bonusAwardsTotal.WithLabelValues(action).Inc()
	return nil
}
