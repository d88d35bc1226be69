package controllers

import (
	"document-approval-api/errs"
	"document-approval-api/models"
	"document-approval-api/services"
)

// fakeLifecycle returns canned results; each field nil means "not found".
type fakeLifecycle struct {
	doc     *models.Document
	docs    []models.Document
	history []models.Approval
	err     error

	lastDecision string
	lastComments string
	lastStep     int
}

func (f *fakeLifecycle) Submit(uploader *models.User, in services.SubmitInput) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeLifecycle) RecordDecision(documentID, approverID, stepNumber int, decision, comments string) (*models.Document, error) {
	f.lastDecision = decision
	f.lastComments = comments
	f.lastStep = stepNumber
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeLifecycle) SkipStep(documentID int, caller *models.User, stepNumber int) (*models.Document, error) {
	f.lastStep = stepNumber
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeLifecycle) Get(documentID int, caller *models.User) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeLifecycle) ListForUser(caller *models.User) ([]models.Document, error) {
	return f.docs, f.err
}

func (f *fakeLifecycle) Queue(approverID int) ([]models.Document, error) {
	return f.docs, f.err
}

func (f *fakeLifecycle) History(approverID int) ([]models.Approval, error) {
	return f.history, f.err
}

// stubUsers backs the auth controller tests.
type stubUsers struct {
	byEmail map[string]*models.User
	byID    map[int]*models.User
	updated *models.User
}

func (s *stubUsers) Create(user *models.User) error {
	user.UserID = 1
	return nil
}

func (s *stubUsers) Update(user *models.User) error {
	s.updated = user
	return nil
}

func (s *stubUsers) FindByID(id int) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, errs.ErrNotFound
}

func (s *stubUsers) FindActiveByEmail(email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok && user.IsActive {
		return user, nil
	}
	return nil, errs.ErrNotFound
}

func (s *stubUsers) List() ([]models.User, error) { return nil, nil }
