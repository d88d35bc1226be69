package models

import (
	"time"
)

// Approval record statuses. A record moves from pending to exactly one of
// the other values and is never touched again.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
	ApprovalSkipped  = "skipped"
)

// MaxCommentLength bounds approver comments and rejection reasons.
const MaxCommentLength = 1000

// Approval is one approver's decision slot for one document step. Exactly one
// record exists per (document, step number), created when the document is
// submitted.
type Approval struct {
	ApprovalID       int        `gorm:"primaryKey;column:approval_id" json:"approval_id"`
	DocumentID       int        `gorm:"column:document_id;index:idx_doc_step,unique" json:"document_id"`
	StepNumber       int        `gorm:"column:step_number;index:idx_doc_step,unique" json:"step_number"`
	ApproverID       int        `gorm:"column:approver_id;index" json:"approver_id"`
	ApproverName     string     `gorm:"column:approver_name" json:"approver_name"`
	Required         bool       `gorm:"column:required;default:true" json:"required"`
	Status           string     `gorm:"column:status;index;default:pending" json:"status"`
	Comments         *string    `gorm:"column:comments" json:"comments,omitempty"`
	SignedAt         *time.Time `gorm:"column:signed_at" json:"signed_at,omitempty"`
	SignatureApplied bool       `gorm:"column:signature_applied;default:false" json:"signature_applied"`
	CreateAt         *time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
}

func (Approval) TableName() string {
	return "approvals"
}
