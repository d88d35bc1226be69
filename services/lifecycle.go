package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"document-approval-api/errs"
	"document-approval-api/models"
)

// Decision values accepted by RecordDecision.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// SubmitInput carries the upload metadata for a new document. The file itself
// is already on disk by the time Submit runs; FilePath points at it.
type SubmitInput struct {
	Title            string
	OriginalFileName string
	FilePath         string
	FileSize         int64
	MimeType         string
	WorkflowID       int
}

// Notifier receives lifecycle events for best-effort delivery. Implementations
// must never fail the calling request.
type Notifier interface {
	StepPending(doc *models.Document, approverID int)
	DocumentRejected(doc *models.Document)
	DocumentCompleted(doc *models.Document)
}

// LifecycleService owns the document state machine: submission seeds one
// pending approval per workflow step, each decision resolves the live step,
// and the document walks monotonically to completed or rejected.
type LifecycleService struct {
	docs      DocumentStore
	workflows WorkflowStore
	notifier  Notifier
}

func NewLifecycleService(docs DocumentStore, workflows WorkflowStore, notifier Notifier) *LifecycleService {
	return &LifecycleService{docs: docs, workflows: workflows, notifier: notifier}
}

// Submit creates a document bound to a workflow template. The template's name
// and step list are snapshotted into the document and its approval records, so
// later template edits never alter this document's routing.
func (s *LifecycleService) Submit(uploader *models.User, in SubmitInput) (*models.Document, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 200 {
		return nil, fmt.Errorf("%w: title must be 1-200 characters", errs.ErrValidation)
	}
	if in.MimeType != models.MimeTypePDF {
		return nil, fmt.Errorf("%w: only PDF uploads are accepted", errs.ErrValidation)
	}
	if in.FileSize <= 0 {
		return nil, fmt.Errorf("%w: empty file", errs.ErrValidation)
	}

	workflow, err := s.workflows.FindByID(in.WorkflowID)
	if err != nil {
		return nil, err
	}
	if !workflow.IsActive {
		return nil, fmt.Errorf("%w: workflow %q is inactive", errs.ErrValidation, workflow.Name)
	}
	if len(workflow.Steps) == 0 {
		return nil, fmt.Errorf("%w: workflow %q has no steps", errs.ErrValidation, workflow.Name)
	}

	doc := &models.Document{
		Title:            title,
		OriginalFileName: in.OriginalFileName,
		FilePath:         in.FilePath,
		FileSize:         in.FileSize,
		MimeType:         in.MimeType,
		UploadedBy:       uploader.UserID,
		UploaderName:     uploader.Name,
		WorkflowID:       workflow.WorkflowID,
		WorkflowName:     workflow.Name,
		CurrentStep:      1,
		TotalSteps:       len(workflow.Steps),
		Status:           models.DocStatusPending,
		TrackingNumber:   newTrackingNumber(),
	}

	approvals := make([]models.Approval, 0, len(workflow.Steps))
	for _, step := range workflow.Steps {
		approvals = append(approvals, models.Approval{
			StepNumber:   step.StepNumber,
			ApproverID:   step.ApproverID,
			ApproverName: step.ApproverName,
			Required:     step.Required,
			Status:       models.ApprovalPending,
		})
	}

	if err := s.docs.CreateWithApprovals(doc, approvals); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.StepPending(doc, approvals[0].ApproverID)
	}
	return s.docs.FindByID(doc.DocumentID)
}

// RecordDecision resolves the document's current step with the approver's
// decision. The pending-record flip and the document move run as a single
// conditional update in the store, so a concurrent double-decision loses
// cleanly instead of corrupting the walk.
func (s *LifecycleService) RecordDecision(documentID, approverID, stepNumber int, decision string, comments string) (*models.Document, error) {
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", errs.ErrValidation)
	}
	if len(comments) > models.MaxCommentLength {
		return nil, fmt.Errorf("%w: comments must be at most %d characters", errs.ErrValidation, models.MaxCommentLength)
	}

	doc, err := s.docs.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	approval, err := s.docs.FindApproval(documentID, stepNumber)
	if err != nil {
		return nil, err
	}
	if approval.ApproverID != approverID {
		return nil, fmt.Errorf("%w: step %d is assigned to another approver", errs.ErrForbidden, stepNumber)
	}
	if models.TerminalDocStatus(doc.Status) {
		return nil, fmt.Errorf("%w: document is %s", errs.ErrInvalidState, doc.Status)
	}
	if stepNumber != doc.CurrentStep {
		return nil, fmt.Errorf("%w: document is at step %d, not %d", errs.ErrInvalidState, doc.CurrentStep, stepNumber)
	}
	if approval.Status != models.ApprovalPending {
		return nil, fmt.Errorf("%w: step %d is already %s", errs.ErrAlreadyDecided, stepNumber, approval.Status)
	}

	now := time.Now()
	res := StepResolution{
		DocumentID: documentID,
		StepNumber: stepNumber,
		SignedAt:   &now,
	}
	if comments != "" {
		res.Comments = &comments
	}

	if decision == DecisionRejected {
		res.ApprovalStatus = models.ApprovalRejected
		res.DocStatus = models.DocStatusRejected
		res.NewCurrentStep = doc.CurrentStep
		res.RejectedBy = &approverID
		res.RejectedAt = &now
		if comments != "" {
			res.RejectionReason = &comments
		}
	} else {
		res.ApprovalStatus = models.ApprovalApproved
		res.SignatureApplied = true
		if stepNumber == doc.TotalSteps {
			res.DocStatus = models.DocStatusCompleted
			res.NewCurrentStep = doc.CurrentStep
			res.CompletedAt = &now
		} else {
			res.DocStatus = models.DocStatusInProgress
			res.NewCurrentStep = doc.CurrentStep + 1
		}
	}

	if err := s.docs.ResolveStep(res); err != nil {
		return nil, err
	}

	updated, err := s.docs.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	s.notifyOutcome(updated)
	return updated, nil
}

// SkipStep resolves a non-required step without a decision. Only the
// document's uploader or an admin may skip, and only while the step is the
// live current step. Required steps can never be skipped.
func (s *LifecycleService) SkipStep(documentID int, caller *models.User, stepNumber int) (*models.Document, error) {
	doc, err := s.docs.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && doc.UploadedBy != caller.UserID {
		return nil, fmt.Errorf("%w: only the uploader or an admin may skip a step", errs.ErrForbidden)
	}
	approval, err := s.docs.FindApproval(documentID, stepNumber)
	if err != nil {
		return nil, err
	}
	if approval.Required {
		return nil, fmt.Errorf("%w: step %d is required and cannot be skipped", errs.ErrInvalidState, stepNumber)
	}
	if models.TerminalDocStatus(doc.Status) {
		return nil, fmt.Errorf("%w: document is %s", errs.ErrInvalidState, doc.Status)
	}
	if stepNumber != doc.CurrentStep {
		return nil, fmt.Errorf("%w: document is at step %d, not %d", errs.ErrInvalidState, doc.CurrentStep, stepNumber)
	}
	if approval.Status != models.ApprovalPending {
		return nil, fmt.Errorf("%w: step %d is already %s", errs.ErrAlreadyDecided, stepNumber, approval.Status)
	}

	now := time.Now()
	res := StepResolution{
		DocumentID:     documentID,
		StepNumber:     stepNumber,
		ApprovalStatus: models.ApprovalSkipped,
	}
	if stepNumber == doc.TotalSteps {
		res.DocStatus = models.DocStatusCompleted
		res.NewCurrentStep = doc.CurrentStep
		res.CompletedAt = &now
	} else {
		res.DocStatus = models.DocStatusInProgress
		res.NewCurrentStep = doc.CurrentStep + 1
	}

	if err := s.docs.ResolveStep(res); err != nil {
		return nil, err
	}

	updated, err := s.docs.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	s.notifyOutcome(updated)
	return updated, nil
}

// Get returns a document if the caller may see it: its uploader, any approver
// named on one of its steps, or a ceo/admin.
func (s *LifecycleService) Get(documentID int, caller *models.User) (*models.Document, error) {
	doc, err := s.docs.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	if s.canView(doc, caller) {
		return doc, nil
	}
	return nil, fmt.Errorf("%w: no access to this document", errs.ErrForbidden)
}

// ListForUser returns the documents visible to the caller's role: uploaders
// see their own, approvers see documents naming them on any step, ceo and
// admin see everything.
func (s *LifecycleService) ListForUser(caller *models.User) ([]models.Document, error) {
	switch caller.Role {
	case models.RoleCEO, models.RoleAdmin:
		return s.docs.ListAll()
	case models.RoleApprover:
		return s.docs.ListForApprover(caller.UserID)
	default:
		return s.docs.ListByUploader(caller.UserID)
	}
}

// Queue returns documents waiting on the approver right now: the live current
// step names them and is still pending.
func (s *LifecycleService) Queue(approverID int) ([]models.Document, error) {
	return s.docs.QueueForApprover(approverID)
}

// History returns the approver's resolved records.
func (s *LifecycleService) History(approverID int) ([]models.Approval, error) {
	return s.docs.HistoryForApprover(approverID)
}

func (s *LifecycleService) canView(doc *models.Document, caller *models.User) bool {
	switch caller.Role {
	case models.RoleCEO, models.RoleAdmin:
		return true
	}
	if doc.UploadedBy == caller.UserID {
		return true
	}
	for _, approval := range doc.Approvals {
		if approval.ApproverID == caller.UserID {
			return true
		}
	}
	return false
}

func (s *LifecycleService) notifyOutcome(doc *models.Document) {
	if s.notifier == nil {
		return
	}
	switch doc.Status {
	case models.DocStatusRejected:
		s.notifier.DocumentRejected(doc)
	case models.DocStatusCompleted:
		s.notifier.DocumentCompleted(doc)
	case models.DocStatusInProgress:
		for _, approval := range doc.Approvals {
			if approval.StepNumber == doc.CurrentStep && approval.Status == models.ApprovalPending {
				s.notifier.StepPending(doc, approval.ApproverID)
				break
			}
		}
	}
}

func newTrackingNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("DOC-%d-%s", time.Now().Year(), id[:8])
}
