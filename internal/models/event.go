package models

import "time"

// EventKind enumerates the engagement signals accepted by the intake endpoints.
type EventKind string

const (
	EventView           EventKind = "view"
	EventClick          EventKind = "click"
	EventVoteHelpful    EventKind = "vote_helpful"
	EventVoteNotHelpful EventKind = "vote_not_helpful"
)

// SkillEvent is one engagement event in the durable analytics log.
// Redis counters drive the rankings; this table is the offline audit trail.
type SkillEvent struct {
	ID        string    `gorm:"type:uuid;primaryKey;column:id"`
	Slug      string    `gorm:"type:varchar(255);not null;index;column:slug"`
	Kind      string    `gorm:"type:varchar(32);not null;column:kind"`
	VoterID   string    `gorm:"type:varchar(128);column:voter_id"`
	CreatedAt time.Time `gorm:"not null;index;column:created_at"`
}

// TableName specifies the table name for SkillEvent
func (SkillEvent) TableName() string {
	return "skill_events"
}
