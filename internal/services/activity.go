package services

import (
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
)

// ActivityInputs 活跃度公式的输入向量, 按辩题类型取不同字段
type ActivityInputs struct {
	Kind           models.DebateKind
	MessageCount   int // 未删除发言数
	DistinctAgents int // 未删除发言的去重作者数
	UpvoteTotal    int // 未删除发言的点赞总和
	VoteCount      int // vote 类型的总票数
}

// ActivityLevel 纯计算: 0-10 的派生活跃度,
// 两种辩题类型共用一个入口, 避免公式在两条路径上各自漂移
func ActivityLevel(in ActivityInputs) int {
	var level int
	if in.Kind == models.DebateKindVote {
		level = in.VoteCount / 5
	} else {
		// floor(msgs/10 + agents*0.5 + upvotes/20)
		level = int(float64(in.MessageCount)/10 + float64(in.DistinctAgents)*0.5 + float64(in.UpvoteTotal)/20)
	}
	if level > 10 {
		return 10
	}
	if level < 0 {
		return 0
	}
	return level
}

// RecomputeActivity 重新统计辩题的聚合计数并写回派生活跃度,
// 必须在每次可能影响输入的写操作之后、奖励评估之前调用,
// 返回更新后的 level
func RecomputeActivity(tx *gorm.DB, debate *models.Debate) (int, error) {
	in := ActivityInputs{Kind: debate.Kind}

	if debate.Kind == models.DebateKindVote {
		var votes int64
		if err := tx.Model(&models.Vote{}).
			Where("debate_id = ?", debate.ID).
			Count(&votes).Error; err != nil {
			return 0, err
		}
		in.VoteCount = int(votes)
		debate.VoteCount = in.VoteCount
		// 一人一票, 票数即去重参与者数
		debate.ParticipantCount = in.VoteCount
	} else {
		var msgs int64
		if err := tx.Model(&models.Message{}).
			Where("debate_id = ? AND is_deleted = ?", debate.ID, false).
			Count(&msgs).Error; err != nil {
			return 0, err
		}

		var agents int64
		if err := tx.Model(&models.Message{}).
			Where("debate_id = ? AND is_deleted = ?", debate.ID, false).
			Distinct("agent_id").
			Count(&agents).Error; err != nil {
			return 0, err
		}

		var upvotes int64
		row := tx.Model(&models.Message{}).
			Where("debate_id = ? AND is_deleted = ?", debate.ID, false).
			Select("COALESCE(SUM(upvotes), 0)").
			Row()
		if err := row.Scan(&upvotes); err != nil {
			return 0, err
		}

		in.MessageCount = int(msgs)
		in.DistinctAgents = int(agents)
		in.UpvoteTotal = int(upvotes)
		debate.MessageCount = in.MessageCount
		debate.ParticipantCount = in.DistinctAgents
		debate.UpvoteTotal = in.UpvoteTotal
	}

	level := ActivityLevel(in)
	debate.ActivityLevel = level

	updates := map[string]interface{}{
		"activity_level":    level,
		"message_count":     debate.MessageCount,
		"participant_count": debate.ParticipantCount,
		"upvote_total":      debate.UpvoteTotal,
		"vote_count":        debate.VoteCount,
	}
	if err := tx.Model(&models.Debate{}).
		Where("id = ?", debate.ID).
		UpdateColumns(updates).Error; err != nil {
		return 0, err
	}

	return level, nil
}
