package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"document-approval-api/errs"
	"document-approval-api/models"
	"document-approval-api/services"
)

type documentStore struct {
	db *gorm.DB
}

// NewDocumentStore returns the GORM-backed document and approval store.
func NewDocumentStore(db *gorm.DB) services.DocumentStore {
	return &documentStore{db: db}
}

func (s *documentStore) CreateWithApprovals(doc *models.Document, approvals []models.Approval) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		for i := range approvals {
			approvals[i].DocumentID = doc.DocumentID
		}
		return tx.Create(&approvals).Error
	})
	return wrap(err)
}

func (s *documentStore) FindByID(id int) (*models.Document, error) {
	var doc models.Document
	err := s.db.Preload("Approvals", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_number ASC")
	}).Where("document_id = ?", id).First(&doc).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &doc, nil
}

func (s *documentStore) FindApproval(documentID, stepNumber int) (*models.Approval, error) {
	var approval models.Approval
	err := s.db.Where("document_id = ? AND step_number = ?", documentID, stepNumber).
		First(&approval).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &approval, nil
}

// ResolveStep flips the pending approval and moves the document in one
// transaction. Both updates are guarded: the approval must still be pending
// and the document must still sit on this step in a non-terminal status.
// Zero affected rows on either guard means another caller won the race.
func (s *documentStore) ResolveStep(res services.StepResolution) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		approvalFields := map[string]interface{}{
			"status":            res.ApprovalStatus,
			"comments":          res.Comments,
			"signed_at":         res.SignedAt,
			"signature_applied": res.SignatureApplied,
		}
		result := tx.Model(&models.Approval{}).
			Where("document_id = ? AND step_number = ? AND status = ?",
				res.DocumentID, res.StepNumber, models.ApprovalPending).
			Updates(approvalFields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: step %d already resolved", errs.ErrAlreadyDecided, res.StepNumber)
		}

		docFields := map[string]interface{}{
			"status":       res.DocStatus,
			"current_step": res.NewCurrentStep,
		}
		if res.RejectionReason != nil {
			docFields["rejection_reason"] = res.RejectionReason
		}
		if res.RejectedBy != nil {
			docFields["rejected_by"] = res.RejectedBy
		}
		if res.RejectedAt != nil {
			docFields["rejected_at"] = res.RejectedAt
		}
		if res.CompletedAt != nil {
			docFields["completed_at"] = res.CompletedAt
		}
		result = tx.Model(&models.Document{}).
			Where("document_id = ? AND current_step = ? AND status IN ?",
				res.DocumentID, res.StepNumber,
				[]string{models.DocStatusPending, models.DocStatusInProgress}).
			Updates(docFields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: document moved off step %d", errs.ErrInvalidState, res.StepNumber)
		}
		return nil
	})
	if err != nil {
		// Keep taxonomy errors as-is; wrap only driver failures.
		if errors.Is(err, errs.ErrAlreadyDecided) || errors.Is(err, errs.ErrInvalidState) {
			return err
		}
		return wrap(err)
	}
	return nil
}

func (s *documentStore) ListByUploader(userID int) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.Where("uploaded_by = ?", userID).
		Order("create_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, wrap(err)
	}
	return docs, nil
}

func (s *documentStore) ListForApprover(approverID int) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.
		Joins("JOIN approvals ON approvals.document_id = documents.document_id").
		Where("approvals.approver_id = ?", approverID).
		Group("documents.document_id").
		Order("documents.create_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, wrap(err)
	}
	return docs, nil
}

func (s *documentStore) ListAll() ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.Order("create_at DESC").Find(&docs).Error; err != nil {
		return nil, wrap(err)
	}
	return docs, nil
}

// QueueForApprover joins documents to the approval record of their live
// current step only, so steps already resolved for other approvers never
// reappear.
func (s *documentStore) QueueForApprover(approverID int) ([]models.Document, error) {
	var docs []models.Document
	err := s.db.
		Joins("JOIN approvals ON approvals.document_id = documents.document_id AND approvals.step_number = documents.current_step").
		Where("approvals.approver_id = ? AND approvals.status = ?", approverID, models.ApprovalPending).
		Where("documents.status IN ?", []string{models.DocStatusPending, models.DocStatusInProgress}).
		Order("documents.create_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, wrap(err)
	}
	return docs, nil
}

func (s *documentStore) HistoryForApprover(approverID int) ([]models.Approval, error) {
	var approvals []models.Approval
	err := s.db.Where("approver_id = ? AND status <> ?", approverID, models.ApprovalPending).
		Order("signed_at DESC").
		Find(&approvals).Error
	if err != nil {
		return nil, wrap(err)
	}
	return approvals, nil
}
