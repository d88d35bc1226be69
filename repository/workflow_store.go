package repository

import (
	"gorm.io/gorm"

	"document-approval-api/models"
	"document-approval-api/services"
)

type workflowStore struct {
	db *gorm.DB
}

// NewWorkflowStore returns the GORM-backed workflow store.
func NewWorkflowStore(db *gorm.DB) services.WorkflowStore {
	return &workflowStore{db: db}
}

func (s *workflowStore) Create(workflow *models.Workflow) error {
	// Steps ride along through the association.
	return wrap(s.db.Create(workflow).Error)
}

func (s *workflowStore) FindByID(id int) (*models.Workflow, error) {
	var workflow models.Workflow
	err := s.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_number ASC")
	}).Where("workflow_id = ?", id).First(&workflow).Error
	if err != nil {
		return nil, wrap(err)
	}
	return &workflow, nil
}

func (s *workflowStore) ListActive() ([]models.Workflow, error) {
	var workflows []models.Workflow
	err := s.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_number ASC")
	}).Where("is_active = ?", true).
		Order("create_at ASC").
		Find(&workflows).Error
	if err != nil {
		return nil, wrap(err)
	}
	return workflows, nil
}

func (s *workflowStore) Deactivate(id int) error {
	return wrap(s.db.Model(&models.Workflow{}).
		Where("workflow_id = ?", id).
		Update("is_active", false).Error)
}
