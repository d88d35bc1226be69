package services

import (
	"fmt"
	"sort"
	"strings"

	"document-approval-api/errs"
	"document-approval-api/models"
)

// WorkflowStepInput is one step of a workflow being created. Approver name
// and e-mail are snapshotted from the user record, not trusted from input.
type WorkflowStepInput struct {
	StepNumber int  `json:"step_number" binding:"required,min=1"`
	ApproverID int  `json:"approver_id" binding:"required"`
	Required   bool `json:"required"`
}

// WorkflowService owns workflow template creation and lookup.
type WorkflowService struct {
	workflows WorkflowStore
	users     UserStore
}

func NewWorkflowService(workflows WorkflowStore, users UserStore) *WorkflowService {
	return &WorkflowService{workflows: workflows, users: users}
}

// Create validates and stores a new workflow template. Steps must be
// non-empty, at most MaxWorkflowSteps, and numbered contiguously from 1.
func (s *WorkflowService) Create(creatorID int, name, description string, steps []WorkflowStepInput) (*models.Workflow, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, fmt.Errorf("%w: workflow name must be 1-100 characters", errs.ErrValidation)
	}
	if len(description) > 500 {
		return nil, fmt.Errorf("%w: description must be at most 500 characters", errs.ErrValidation)
	}
	if len(steps) == 0 || len(steps) > models.MaxWorkflowSteps {
		return nil, fmt.Errorf("%w: workflow must have between 1 and %d steps", errs.ErrValidation, models.MaxWorkflowSteps)
	}

	seen := make(map[int]bool, len(steps))
	for _, step := range steps {
		if step.StepNumber < 1 || step.StepNumber > len(steps) || seen[step.StepNumber] {
			return nil, fmt.Errorf("%w: step numbers must be contiguous starting at 1", errs.ErrValidation)
		}
		seen[step.StepNumber] = true
	}

	workflow := &models.Workflow{
		Name:      name,
		IsActive:  true,
		CreatedBy: creatorID,
		Steps:     make([]models.WorkflowStep, 0, len(steps)),
	}
	if description != "" {
		workflow.Description = &description
	}

	for _, step := range steps {
		approver, err := s.users.FindByID(step.ApproverID)
		if err != nil {
			return nil, fmt.Errorf("%w: approver %d for step %d", errs.ErrNotFound, step.ApproverID, step.StepNumber)
		}
		if !approver.IsActive {
			return nil, fmt.Errorf("%w: approver %q is deactivated", errs.ErrValidation, approver.Email)
		}
		workflow.Steps = append(workflow.Steps, models.WorkflowStep{
			StepNumber:    step.StepNumber,
			ApproverID:    approver.UserID,
			ApproverName:  approver.Name,
			ApproverEmail: approver.Email,
			Required:      step.Required,
		})
	}

	// Store steps in step order regardless of input order.
	sort.Slice(workflow.Steps, func(i, j int) bool {
		return workflow.Steps[i].StepNumber < workflow.Steps[j].StepNumber
	})

	if err := s.workflows.Create(workflow); err != nil {
		return nil, err
	}
	return workflow, nil
}

func (s *WorkflowService) Get(id int) (*models.Workflow, error) {
	return s.workflows.FindByID(id)
}

func (s *WorkflowService) ListActive() ([]models.Workflow, error) {
	return s.workflows.ListActive()
}

// Deactivate hides a workflow from new submissions. Documents already bound
// to it keep their snapshot and are unaffected.
func (s *WorkflowService) Deactivate(id int) error {
	if _, err := s.workflows.FindByID(id); err != nil {
		return err
	}
	return s.workflows.Deactivate(id)
}
