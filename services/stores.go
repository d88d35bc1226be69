package services

import (
	"time"

	"document-approval-api/models"
)

// Store interfaces consumed by the services. The repository package provides
// the GORM implementations; tests substitute in-memory fakes.

type UserStore interface {
	Create(user *models.User) error
	Update(user *models.User) error
	FindByID(id int) (*models.User, error)
	// FindActiveByEmail matches the lowercase email of a non-deactivated user.
	FindActiveByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
}

type WorkflowStore interface {
	Create(workflow *models.Workflow) error
	FindByID(id int) (*models.Workflow, error)
	ListActive() ([]models.Workflow, error)
	Deactivate(id int) error
}

// StepResolution is the atomic outcome applied to one document step: the
// pending approval record flips to a terminal decision and the document moves
// in the same transaction. The repository guards both writes with conditional
// updates (approval still pending, document still on this step) so two
// concurrent deciders cannot both win.
type StepResolution struct {
	DocumentID int
	StepNumber int

	ApprovalStatus   string // approved, rejected, or skipped
	Comments         *string
	SignedAt         *time.Time
	SignatureApplied bool

	DocStatus       string
	NewCurrentStep  int
	RejectionReason *string
	RejectedBy      *int
	RejectedAt      *time.Time
	CompletedAt     *time.Time
}

type DocumentStore interface {
	// CreateWithApprovals inserts the document and its per-step approval
	// records as one transaction.
	CreateWithApprovals(doc *models.Document, approvals []models.Approval) error
	// FindByID returns the document with its approvals ordered by step.
	FindByID(id int) (*models.Document, error)
	FindApproval(documentID, stepNumber int) (*models.Approval, error)
	// ResolveStep applies res atomically. It fails with ErrAlreadyDecided if
	// the approval is no longer pending and ErrInvalidState if the document
	// has moved off the step or reached a terminal status.
	ResolveStep(res StepResolution) error

	ListByUploader(userID int) ([]models.Document, error)
	// ListForApprover returns documents that name the approver on any step.
	ListForApprover(approverID int) ([]models.Document, error)
	ListAll() ([]models.Document, error)
	// QueueForApprover returns documents whose live current step names the
	// approver and is still pending.
	QueueForApprover(approverID int) ([]models.Document, error)
	// HistoryForApprover returns the approver's resolved records, newest first.
	HistoryForApprover(approverID int) ([]models.Approval, error)
}
