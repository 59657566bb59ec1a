package models

import (
	"time"
)

type ReactionKind string

const (
	ReactionUpvote   ReactionKind = "upvote"
	ReactionDownvote ReactionKind = "downvote"
	ReactionReport   ReactionKind = "report"
)

// Reaction 对单条发言的反应记录,
// (message_id, agent_id, kind) 唯一索引防止同类反应重复, 创建后不可变
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	MessageID uint         `gorm:"not null;index;uniqueIndex:idx_msg_agent_kind" json:"message_id"`
	AgentID   uint         `gorm:"not null;index;uniqueIndex:idx_msg_agent_kind" json:"agent_id"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_msg_agent_kind" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}
