package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DraftStatus represents the disposition state of an AI draft
type DraftStatus string

const (
	DraftStatusPending  DraftStatus = "PENDING"
	DraftStatusApplied  DraftStatus = "APPLIED"
	DraftStatusRejected DraftStatus = "REJECTED"
)

// ProposalType enumerates the kinds of structured proposals the
// summarizer may return
type ProposalType string

const (
	ProposalCarryForwardTodo  ProposalType = "carry_forward_todo"
	ProposalCarryForwardIssue ProposalType = "carry_forward_issue"
	ProposalFlagStaleRock     ProposalType = "flag_stale_rock"
	ProposalFlagPattern       ProposalType = "flag_pattern"
	ProposalSuggestAction     ProposalType = "suggest_action"
)

// Proposal is one structured suggestion inside a draft
type Proposal struct {
	Type        ProposalType           `json:"type"`
	EntityID    string                 `json:"entityId,omitempty"`
	Description string                 `json:"description"`
	Patch       map[string]interface{} `json:"patch,omitempty"`
}

// AiDraft wraps one summarization output for human review. A draft is
// created PENDING and transitions exactly once to APPLIED or REJECTED.
// Multiple drafts may coexist for a meeting, one per summarization run.
type AiDraft struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	MeetingID   uuid.UUID      `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Meeting     *Meeting       `json:"meeting,omitempty" gorm:"foreignKey:MeetingID"`
	SummaryText string         `json:"summary_text" gorm:"type:text;not null"`
	Proposals   datatypes.JSON `json:"proposals" gorm:"type:jsonb;default:'[]'"`
	Warnings    datatypes.JSON `json:"warnings" gorm:"type:jsonb;default:'[]'"`
	Confidence  float64        `json:"confidence" gorm:"not null;default:0"`
	Status      DraftStatus    `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for AiDraft
func (AiDraft) TableName() string {
	return "ai_drafts"
}

// BeforeCreate assigns the primary key
func (d *AiDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsPending reports whether the draft still awaits disposition
func (d *AiDraft) IsPending() bool {
	return d.Status == DraftStatusPending
}
