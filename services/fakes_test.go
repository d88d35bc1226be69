package services

import (
	"fmt"
	"sort"
	"sync"

	"document-approval-api/errs"
	"document-approval-api/models"
)

// In-memory store fakes mirroring the repository guard semantics, so the
// lifecycle tests exercise the same race outcomes the database enforces.

type memUserStore struct {
	mu    sync.Mutex
	users map[int]*models.User
	next  int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[int]*models.User{}, next: 1}
}

func (s *memUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.UserID = s.next
	s.next++
	cp := *user
	s.users[user.UserID] = &cp
	return nil
}

func (s *memUserStore) Update(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return errs.ErrNotFound
	}
	cp := *user
	s.users[user.UserID] = &cp
	return nil
}

func (s *memUserStore) FindByID(id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *memUserStore) FindActiveByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email && user.IsActive {
			cp := *user
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *memUserStore) List() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type memWorkflowStore struct {
	mu        sync.Mutex
	workflows map[int]*models.Workflow
	next      int
}

func newMemWorkflowStore() *memWorkflowStore {
	return &memWorkflowStore{workflows: map[int]*models.Workflow{}, next: 1}
}

func (s *memWorkflowStore) Create(workflow *models.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow.WorkflowID = s.next
	s.next++
	for i := range workflow.Steps {
		workflow.Steps[i].WorkflowID = workflow.WorkflowID
	}
	cp := *workflow
	cp.Steps = append([]models.WorkflowStep(nil), workflow.Steps...)
	s.workflows[workflow.WorkflowID] = &cp
	return nil
}

func (s *memWorkflowStore) FindByID(id int) (*models.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow, ok := s.workflows[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *workflow
	cp.Steps = append([]models.WorkflowStep(nil), workflow.Steps...)
	return &cp, nil
}

func (s *memWorkflowStore) ListActive() ([]models.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Workflow, 0, len(s.workflows))
	for _, workflow := range s.workflows {
		if workflow.IsActive {
			out = append(out, *workflow)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkflowID < out[j].WorkflowID })
	return out, nil
}

func (s *memWorkflowStore) Deactivate(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow, ok := s.workflows[id]
	if !ok {
		return errs.ErrNotFound
	}
	workflow.IsActive = false
	return nil
}

type memDocumentStore struct {
	mu        sync.Mutex
	docs      map[int]*models.Document
	approvals map[int][]*models.Approval
	nextDoc   int
	nextApr   int
}

func newMemDocumentStore() *memDocumentStore {
	return &memDocumentStore{
		docs:      map[int]*models.Document{},
		approvals: map[int][]*models.Approval{},
		nextDoc:   1,
		nextApr:   1,
	}
}

func (s *memDocumentStore) CreateWithApprovals(doc *models.Document, approvals []models.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.DocumentID = s.nextDoc
	s.nextDoc++
	cp := *doc
	s.docs[doc.DocumentID] = &cp
	for i := range approvals {
		approvals[i].DocumentID = doc.DocumentID
		approvals[i].ApprovalID = s.nextApr
		s.nextApr++
		acp := approvals[i]
		s.approvals[doc.DocumentID] = append(s.approvals[doc.DocumentID], &acp)
	}
	return nil
}

func (s *memDocumentStore) FindByID(id int) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *doc
	for _, approval := range s.approvals[id] {
		cp.Approvals = append(cp.Approvals, *approval)
	}
	sort.Slice(cp.Approvals, func(i, j int) bool {
		return cp.Approvals[i].StepNumber < cp.Approvals[j].StepNumber
	})
	return &cp, nil
}

func (s *memDocumentStore) FindApproval(documentID, stepNumber int) (*models.Approval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, approval := range s.approvals[documentID] {
		if approval.StepNumber == stepNumber {
			cp := *approval
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *memDocumentStore) ResolveStep(res StepResolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var approval *models.Approval
	for _, a := range s.approvals[res.DocumentID] {
		if a.StepNumber == res.StepNumber {
			approval = a
			break
		}
	}
	if approval == nil || approval.Status != models.ApprovalPending {
		return fmt.Errorf("%w: step %d already resolved", errs.ErrAlreadyDecided, res.StepNumber)
	}

	doc, ok := s.docs[res.DocumentID]
	if !ok || doc.CurrentStep != res.StepNumber ||
		(doc.Status != models.DocStatusPending && doc.Status != models.DocStatusInProgress) {
		return fmt.Errorf("%w: document moved off step %d", errs.ErrInvalidState, res.StepNumber)
	}

	approval.Status = res.ApprovalStatus
	approval.Comments = res.Comments
	approval.SignedAt = res.SignedAt
	approval.SignatureApplied = res.SignatureApplied

	doc.Status = res.DocStatus
	doc.CurrentStep = res.NewCurrentStep
	if res.RejectionReason != nil {
		doc.RejectionReason = res.RejectionReason
	}
	if res.RejectedBy != nil {
		doc.RejectedBy = res.RejectedBy
	}
	if res.RejectedAt != nil {
		doc.RejectedAt = res.RejectedAt
	}
	if res.CompletedAt != nil {
		doc.CompletedAt = res.CompletedAt
	}
	return nil
}

func (s *memDocumentStore) ListByUploader(userID int) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for _, doc := range s.docs {
		if doc.UploadedBy == userID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (s *memDocumentStore) ListForApprover(approverID int) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for id, doc := range s.docs {
		for _, approval := range s.approvals[id] {
			if approval.ApproverID == approverID {
				out = append(out, *doc)
				break
			}
		}
	}
	return out, nil
}

func (s *memDocumentStore) ListAll() ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for _, doc := range s.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func (s *memDocumentStore) QueueForApprover(approverID int) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for id, doc := range s.docs {
		if doc.Status != models.DocStatusPending && doc.Status != models.DocStatusInProgress {
			continue
		}
		for _, approval := range s.approvals[id] {
			if approval.StepNumber == doc.CurrentStep &&
				approval.ApproverID == approverID &&
				approval.Status == models.ApprovalPending {
				out = append(out, *doc)
				break
			}
		}
	}
	return out, nil
}

func (s *memDocumentStore) HistoryForApprover(approverID int) ([]models.Approval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Approval
	for _, approvals := range s.approvals {
		for _, approval := range approvals {
			if approval.ApproverID == approverID && approval.Status != models.ApprovalPending {
				out = append(out, *approval)
			}
		}
	}
	return out, nil
}

// recordingNotifier captures lifecycle events for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	pending   []int
	rejected  []int
	completed []int
}

func (n *recordingNotifier) StepPending(doc *models.Document, approverID int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, approverID)
}

func (n *recordingNotifier) DocumentRejected(doc *models.Document) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, doc.DocumentID)
}

func (n *recordingNotifier) DocumentCompleted(doc *models.Document) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, doc.DocumentID)
}
