package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-approval-api/errs"
	"document-approval-api/models"
)

type lifecycleFixture struct {
	svc      *LifecycleService
	docs     *memDocumentStore
	notifier *recordingNotifier
	uploader *models.User
	admin    *models.User
	steps    []models.WorkflowStep
	workflow *models.Workflow
}

// newLifecycleFixture builds a lifecycle service around a workflow whose
// step approvers are user IDs 101, 102, ... in order. The required flags
// apply per step.
func newLifecycleFixture(t *testing.T, required ...bool) *lifecycleFixture {
	t.Helper()

	workflows := newMemWorkflowStore()
	docs := newMemDocumentStore()
	notifier := &recordingNotifier{}

	steps := make([]models.WorkflowStep, 0, len(required))
	for i, req := range required {
		steps = append(steps, models.WorkflowStep{
			StepNumber:    i + 1,
			ApproverID:    101 + i,
			ApproverName:  "Approver",
			ApproverEmail: "approver@company.com",
			Required:      req,
		})
	}
	workflow := &models.Workflow{
		Name:     "Test Workflow",
		IsActive: true,
		Steps:    steps,
	}
	require.NoError(t, workflows.Create(workflow))

	return &lifecycleFixture{
		svc:      NewLifecycleService(docs, workflows, notifier),
		docs:     docs,
		notifier: notifier,
		uploader: &models.User{UserID: 1, Name: "Dana Uploader", Role: models.RoleUploader},
		admin:    &models.User{UserID: 99, Name: "Admin", Role: models.RoleAdmin},
		steps:    steps,
		workflow: workflow,
	}
}

func (f *lifecycleFixture) submit(t *testing.T) *models.Document {
	t.Helper()
	doc, err := f.svc.Submit(f.uploader, SubmitInput{
		Title:            "Quarterly Report",
		OriginalFileName: "report.pdf",
		FilePath:         "/tmp/report.pdf",
		FileSize:         2048,
		MimeType:         models.MimeTypePDF,
		WorkflowID:       f.workflow.WorkflowID,
	})
	require.NoError(t, err)
	return doc
}

func TestSubmitSeedsApprovalRecords(t *testing.T) {
	f := newLifecycleFixture(t, true, true, true)
	doc := f.submit(t)

	assert.Equal(t, 1, doc.CurrentStep)
	assert.Equal(t, 3, doc.TotalSteps)
	assert.Equal(t, models.DocStatusPending, doc.Status)
	assert.True(t, strings.HasPrefix(doc.TrackingNumber, "DOC-"))

	require.Len(t, doc.Approvals, 3)
	for i, approval := range doc.Approvals {
		assert.Equal(t, i+1, approval.StepNumber)
		assert.Equal(t, 101+i, approval.ApproverID)
		assert.Equal(t, models.ApprovalPending, approval.Status)
	}

	// First approver is told a step is waiting.
	assert.Equal(t, []int{101}, f.notifier.pending)
}

func TestSubmitValidation(t *testing.T) {
	f := newLifecycleFixture(t, true)

	tests := []struct {
		name    string
		mutate  func(*SubmitInput)
		wantErr error
	}{
		{"empty title", func(in *SubmitInput) { in.Title = "  " }, errs.ErrValidation},
		{"overlong title", func(in *SubmitInput) { in.Title = strings.Repeat("x", 201) }, errs.ErrValidation},
		{"non-pdf mime", func(in *SubmitInput) { in.MimeType = "image/png" }, errs.ErrValidation},
		{"empty file", func(in *SubmitInput) { in.FileSize = 0 }, errs.ErrValidation},
		{"unknown workflow", func(in *SubmitInput) { in.WorkflowID = 999 }, errs.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := SubmitInput{
				Title:            "Quarterly Report",
				OriginalFileName: "report.pdf",
				FilePath:         "/tmp/report.pdf",
				FileSize:         2048,
				MimeType:         models.MimeTypePDF,
				WorkflowID:       f.workflow.WorkflowID,
			}
			tt.mutate(&in)
			_, err := f.svc.Submit(f.uploader, in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitRejectsInactiveWorkflow(t *testing.T) {
	f := newLifecycleFixture(t, true)
	require.NoError(t, f.svc.workflows.(*memWorkflowStore).Deactivate(f.workflow.WorkflowID))

	_, err := f.svc.Submit(f.uploader, SubmitInput{
		Title:            "Quarterly Report",
		OriginalFileName: "report.pdf",
		FilePath:         "/tmp/report.pdf",
		FileSize:         2048,
		MimeType:         models.MimeTypePDF,
		WorkflowID:       f.workflow.WorkflowID,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestThreeStepApprovalWalk(t *testing.T) {
	f := newLifecycleFixture(t, true, true, true)
	doc := f.submit(t)

	doc, err := f.svc.RecordDecision(doc.DocumentID, 101, 1, DecisionApproved, "looks good")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.CurrentStep)
	assert.Equal(t, models.DocStatusInProgress, doc.Status)

	doc, err = f.svc.RecordDecision(doc.DocumentID, 102, 2, DecisionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, 3, doc.CurrentStep)
	assert.Equal(t, models.DocStatusInProgress, doc.Status)

	doc, err = f.svc.RecordDecision(doc.DocumentID, 103, 3, DecisionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, models.DocStatusCompleted, doc.Status)
	require.NotNil(t, doc.CompletedAt)

	// Current step never regressed and every record is resolved in order.
	assert.Equal(t, 3, doc.CurrentStep)
	for _, approval := range doc.Approvals {
		assert.Equal(t, models.ApprovalApproved, approval.Status)
		assert.True(t, approval.SignatureApplied)
		require.NotNil(t, approval.SignedAt)
	}

	assert.Equal(t, []int{101, 102, 103}, f.notifier.pending)
	assert.Equal(t, []int{doc.DocumentID}, f.notifier.completed)
}

func TestRejectionIsTerminal(t *testing.T) {
	f := newLifecycleFixture(t, true, true)
	doc := f.submit(t)

	doc, err := f.svc.RecordDecision(doc.DocumentID, 101, 1, DecisionRejected, "missing signature")
	require.NoError(t, err)
	assert.Equal(t, models.DocStatusRejected, doc.Status)
	require.NotNil(t, doc.RejectionReason)
	assert.Equal(t, "missing signature", *doc.RejectionReason)
	require.NotNil(t, doc.RejectedBy)
	assert.Equal(t, 101, *doc.RejectedBy)
	require.NotNil(t, doc.RejectedAt)

	// Step 2's record stays pending forever.
	assert.Equal(t, models.ApprovalPending, doc.Approvals[1].Status)

	// No further decision succeeds, including on the untouched step.
	_, err = f.svc.RecordDecision(doc.DocumentID, 102, 2, DecisionApproved, "")
	assert.ErrorIs(t, err, errs.ErrInvalidState)

	assert.Equal(t, []int{doc.DocumentID}, f.notifier.rejected)
}

func TestDecisionOnWrongStep(t *testing.T) {
	f := newLifecycleFixture(t, true, true)
	doc := f.submit(t)

	for _, decision := range []string{DecisionApproved, DecisionRejected} {
		_, err := f.svc.RecordDecision(doc.DocumentID, 102, 2, decision, "")
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	}

	// A step with no record at all is a not-found, not a state error.
	_, err := f.svc.RecordDecision(doc.DocumentID, 101, 7, DecisionApproved, "")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDecisionByWrongApprover(t *testing.T) {
	f := newLifecycleFixture(t, true, true)
	doc := f.submit(t)

	_, err := f.svc.RecordDecision(doc.DocumentID, 555, 1, DecisionApproved, "")
	assert.ErrorIs(t, err, errs.ErrForbidden)

	// Step 2's approver cannot act on step 1 either.
	_, err = f.svc.RecordDecision(doc.DocumentID, 102, 1, DecisionRejected, "")
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestDecisionValidation(t *testing.T) {
	f := newLifecycleFixture(t, true)
	doc := f.submit(t)

	_, err := f.svc.RecordDecision(doc.DocumentID, 101, 1, "maybe", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.svc.RecordDecision(doc.DocumentID, 101, 1, DecisionApproved, strings.Repeat("x", 1001))
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.svc.RecordDecision(999, 101, 1, DecisionApproved, "")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTerminalStateRefusesDecisions(t *testing.T) {
	f := newLifecycleFixture(t, true)
	doc := f.submit(t)

	doc, err := f.svc.RecordDecision(doc.DocumentID, 101, 1, DecisionApproved, "")
	require.NoError(t, err)
	require.Equal(t, models.DocStatusCompleted, doc.Status)

	_, err = f.svc.RecordDecision(doc.DocumentID, 101, 1, DecisionApproved, "")
	assert.Error(t, err)
}

func TestResolveStepGuardsDoubleDecision(t *testing.T) {
	f := newLifecycleFixture(t, true, true)
	doc := f.submit(t)

	// Two racing resolutions of step 1: the second hits the pending guard.
	res := StepResolution{
		DocumentID:     doc.DocumentID,
		StepNumber:     1,
		ApprovalStatus: models.ApprovalApproved,
		DocStatus:      models.DocStatusInProgress,
		NewCurrentStep: 2,
	}
	require.NoError(t, f.docs.ResolveStep(res))
	assert.ErrorIs(t, f.docs.ResolveStep(res), errs.ErrAlreadyDecided)
}

func TestSkipStep(t *testing.T) {
	f := newLifecycleFixture(t, true, false, true)
	doc := f.submit(t)

	doc, err := f.svc.RecordDecision(doc.DocumentID, 101, 1, DecisionApproved, "")
	require.NoError(t, err)
	require.Equal(t, 2, doc.CurrentStep)

	// A stranger cannot skip.
	stranger := &models.User{UserID: 42, Role: models.RoleApprover}
	_, err = f.svc.SkipStep(doc.DocumentID, stranger, 2)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	// The uploader may skip the non-required step.
	doc, err = f.svc.SkipStep(doc.DocumentID, f.uploader, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.CurrentStep)
	assert.Equal(t, models.DocStatusInProgress, doc.Status)
	assert.Equal(t, models.ApprovalSkipped, doc.Approvals[1].Status)

	// Required steps can never be skipped, even by an admin.
	_, err = f.svc.SkipStep(doc.DocumentID, f.admin, 3)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestSkipOnlyCurrentStep(t *testing.T) {
	f := newLifecycleFixture(t, true, false)
	doc := f.submit(t)

	_, err := f.svc.SkipStep(doc.DocumentID, f.admin, 2)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestQueueReflectsCurrentStepOnly(t *testing.T) {
	f := newLifecycleFixture(t, true, true)
	doc := f.submit(t)

	queue, err := f.svc.Queue(101)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, doc.DocumentID, queue[0].DocumentID)

	queue, err = f.svc.Queue(102)
	require.NoError(t, err)
	assert.Empty(t, queue)

	_, err = f.svc.RecordDecision(doc.DocumentID, 101, 1, DecisionApproved, "")
	require.NoError(t, err)

	queue, err = f.svc.Queue(101)
	require.NoError(t, err)
	assert.Empty(t, queue)

	queue, err = f.svc.Queue(102)
	require.NoError(t, err)
	require.Len(t, queue, 1)
}

func TestGetAccessControl(t *testing.T) {
	f := newLifecycleFixture(t, true)
	doc := f.submit(t)

	// Uploader, named approver, and admin can view.
	for _, caller := range []*models.User{
		f.uploader,
		{UserID: 101, Role: models.RoleApprover},
		f.admin,
		{UserID: 7, Role: models.RoleCEO},
	} {
		_, err := f.svc.Get(doc.DocumentID, caller)
		assert.NoError(t, err)
	}

	_, err := f.svc.Get(doc.DocumentID, &models.User{UserID: 500, Role: models.RoleUploader})
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestListForUserScopes(t *testing.T) {
	f := newLifecycleFixture(t, true)
	doc := f.submit(t)

	docs, err := f.svc.ListForUser(f.uploader)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	docs, err = f.svc.ListForUser(&models.User{UserID: 101, Role: models.RoleApprover})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.DocumentID, docs[0].DocumentID)

	docs, err = f.svc.ListForUser(&models.User{UserID: 500, Role: models.RoleUploader})
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = f.svc.ListForUser(&models.User{UserID: 500, Role: models.RoleCEO})
	require.NoError(t, err)
	require.Len(t, docs, 1)
}
