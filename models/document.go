package models

import (
	"time"
)

// Document statuses. "completed" is the only fully-approved terminal status;
// per-step approvals carry their own decision values.
const (
	DocStatusPending    = "pending"
	DocStatusInProgress = "in-progress"
	DocStatusRejected   = "rejected"
	DocStatusCompleted  = "completed"
)

// MimeTypePDF is the only accepted upload MIME type.
const MimeTypePDF = "application/pdf"

// TerminalDocStatus reports whether status accepts no further decisions.
func TerminalDocStatus(status string) bool {
	return status == DocStatusRejected || status == DocStatusCompleted
}

// Document is a submitted file routed through an ordered approver sequence.
// The workflow name and step count are snapshots taken at submission, so the
// document is immune to later workflow edits. CurrentStep stays within
// [1, TotalSteps] and never decreases.
type Document struct {
	DocumentID       int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	Title            string     `gorm:"column:title" json:"title"`
	OriginalFileName string     `gorm:"column:original_file_name" json:"original_file_name"`
	FilePath         string     `gorm:"column:file_path" json:"-"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	MimeType         string     `gorm:"column:mime_type" json:"mime_type"`
	UploadedBy       int        `gorm:"column:uploaded_by;index" json:"uploaded_by"`
	UploaderName     string     `gorm:"column:uploader_name" json:"uploader_name"`
	WorkflowID       int        `gorm:"column:workflow_id;index" json:"workflow_id"`
	WorkflowName     string     `gorm:"column:workflow_name" json:"workflow_name"`
	CurrentStep      int        `gorm:"column:current_step;default:1" json:"current_step"`
	TotalSteps       int        `gorm:"column:total_steps" json:"total_steps"`
	Status           string     `gorm:"column:status;index;default:pending" json:"status"`
	TrackingNumber   string     `gorm:"column:tracking_number;unique" json:"tracking_number"`
	RejectionReason  *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	RejectedBy       *int       `gorm:"column:rejected_by" json:"rejected_by,omitempty"`
	RejectedAt       *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	CompletedAt      *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`

	Approvals []Approval `gorm:"foreignKey:DocumentID" json:"approvals,omitempty"`
}

func (Document) TableName() string {
	return "documents"
}
