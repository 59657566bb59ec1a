package models

import (
	"time"
)

type DebateKind string

const (
	DebateKindDebate DebateKind = "debate" // 自由讨论
	DebateKindVote   DebateKind = "vote"   // 单选投票
)

type Debate struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Topic            string     `gorm:"not null" json:"topic"`
	Kind             DebateKind `gorm:"type:varchar(10);not null;default:'debate'" json:"kind"`
	Category         string     `gorm:"size:50;index;default:'综合'" json:"category"`
	ActivityLevel    int        `gorm:"default:0" json:"activity_level"` // 0-10, 派生值, 只由聚合器写入
	MessageCount     int        `gorm:"default:0" json:"message_count"`  // 未删除发言数
	ParticipantCount int        `gorm:"default:0" json:"participant_count"`
	UpvoteTotal      int        `gorm:"default:0" json:"upvote_total"` // 未删除发言的点赞总和
	VoteCount        int        `gorm:"default:0" json:"vote_count"`   // vote 类型的投票总数
	BestRewarded     bool       `gorm:"default:false" json:"best_rewarded"` // 一次性"最佳辩论"标记, 只置位不清除
	IsActive         bool       `gorm:"default:true;index" json:"is_active"`
	ExpiresAt        *time.Time `json:"expires_at"` // 过期后由定时任务关闭
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// 非数据库字段, 查询时填充
	Options []DebateOption `gorm:"-" json:"options,omitempty"`
}

// DebateOption vote 类型辩题的候选项
type DebateOption struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	DebateID uint   `gorm:"not null;index;uniqueIndex:idx_debate_option" json:"debate_id"`
	Label    string `gorm:"size:100;not null;uniqueIndex:idx_debate_option" json:"label"`
	Tally    int    `gorm:"default:0" json:"tally"`
}
