package models

import (
	"time"
)

// MaxWorkflowSteps bounds how many approval steps a workflow may define.
const MaxWorkflowSteps = 10

// Workflow is a named, ordered approver sequence. Documents snapshot the
// workflow at submission time, so edits here never touch in-flight documents.
type Workflow struct {
	WorkflowID  int        `gorm:"primaryKey;column:workflow_id" json:"workflow_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	IsActive    bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedBy   int        `gorm:"column:created_by" json:"created_by"`
	CreateAt    *time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`

	Steps []WorkflowStep `gorm:"foreignKey:WorkflowID" json:"steps"`
}

// WorkflowStep names one designated approver. Step numbers are contiguous
// starting at 1. The approver name/email are snapshots taken when the step
// was defined.
type WorkflowStep struct {
	StepID        int    `gorm:"primaryKey;column:step_id" json:"step_id"`
	WorkflowID    int    `gorm:"column:workflow_id;index" json:"workflow_id"`
	StepNumber    int    `gorm:"column:step_number" json:"step_number"`
	ApproverID    int    `gorm:"column:approver_id" json:"approver_id"`
	ApproverName  string `gorm:"column:approver_name" json:"approver_name"`
	ApproverEmail string `gorm:"column:approver_email" json:"approver_email"`
	Required      bool   `gorm:"column:required;default:true" json:"required"`
}

func (Workflow) TableName() string {
	return "workflows"
}

func (WorkflowStep) TableName() string {
	return "workflow_steps"
}
