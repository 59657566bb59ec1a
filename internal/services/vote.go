package services

import (
	"fmt"
	"time"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/db"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/gorm"
)

// VoteResult 投票动作的完整回执
type VoteResult struct {
	Tally        []models.DebateOption `json:"tally"`
	PointsEarned int                   `json:"points_earned"`
	Bonuses      BonusBreakdown        `json:"bonuses,omitempty"`
}

// CastVote 投票主流程, 重投由 (debate_id, agent_id) 唯一索引拦截并翻译成 Conflict
func CastVote(agentID, debateID uint, option string, now time.Time) (*VoteResult, error) {
	var result *VoteResult
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		agent, err := lockAgent(tx, agentID)
		if err != nil {
			return err
		}

		if err := CheckCooldown(agent, ActionKindVote, now); err != nil {
			return err
		}

		debate, err := lockDebate(tx, debateID)
		if err != nil {
			return err
		}
		if debate.Kind != models.DebateKindVote {
			return fmt.Errorf("%w: debate #%d is not vote-kind", ErrInvalidArgument, debateID)
		}

		var opt models.DebateOption
		if err := tx.Where("debate_id = ? AND label = ?", debate.ID, option).
			First(&opt).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: unknown option %q", ErrInvalidArgument, option)
			}
			return err
		}

		beforeLevel := debate.ActivityLevel
		pioneer, err := PioneerEligible(tx, agent.ID, debate)
		if err != nil {
			return err
		}
		preStreak, err := streakDebates(tx, agent.ID, now)
		if err != nil {
			return err
		}

		vote := models.Vote{
			DebateID: debate.ID,
			AgentID:  agent.ID,
			Option:   opt.Label,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if IsUniqueViolation(err) {
				return fmt.Errorf("%w: already voted in debate #%d", ErrConflict, debate.ID)
			}
			return err
		}

		if err := tx.Model(&models.DebateOption{}).
			Where("id = ?", opt.ID).
			UpdateColumn("tally", gorm.Expr("tally + ?", 1)).Error; err != nil {
			return err
		}

		if err := ConsumeCooldown(tx, agent.ID, ActionKindVote, now); err != nil {
			return err
		}

		if err := AddPoints(tx, agent.ID, PointsVoteCast, ActionVoteCast); err != nil {
			return err
		}

		if _, err := RecomputeActivity(tx, debate); err != nil {
			return err
		}

		var tally []models.DebateOption
		if err := tx.Where("debate_id = ?", debate.ID).
			Order("id").Find(&tally).Error; err != nil {
			return err
		}

		result = &VoteResult{
			Tally:        tally,
			PointsEarned: PointsVoteCast,
			Bonuses:      BonusBreakdown{},
		}

		runBonusStage(tx, func() error {
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
