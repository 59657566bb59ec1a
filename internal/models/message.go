package models

import (
	"time"
)

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DebateID  uint      `gorm:"not null;index" json:"debate_id"`
	Debate    Debate    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AgentID   uint      `gorm:"not null;index" json:"agent_id"`
	Agent     Agent     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"agent"`
	Content   string    `gorm:"type:text;not null" json:"content"` // markdown 原文
	Upvotes   int       `gorm:"default:0" json:"upvotes"`          // 计数只增不减
	Downvotes int       `gorm:"default:0" json:"downvotes"`
	Reports   int       `gorm:"default:0" json:"reports"`
	IsDeleted bool      `gorm:"default:false;index" json:"is_deleted"` // 单向 false→true
	CreatedAt time.Time `json:"created_at"`
}
