package main

import (
	"log"

	"gorm.io/gorm"

	"document-approval-api/models"
	"document-approval-api/services"
)

func strPtr(s string) *string { return &s }

// seed creates the sample accounts and two workflows routed through them.
// Every account gets the same development password.
func seed(db *gorm.DB) error {
	hash, err := services.HashPassword("password123")
	if err != nil {
		return err
	}

	users := []models.User{
		{
			Email:    "admin@company.com",
			Password: hash,
			Name:     "System Admin",
			Role:     models.RoleAdmin,
			IsActive: true,
		},
		{
			Email:      "uploader@company.com",
			Password:   hash,
			Name:       "Dana Uploader",
			Role:       models.RoleUploader,
			Department: strPtr("Operations"),
			IsActive:   true,
		},
		{
			Email:      "manager@company.com",
			Password:   hash,
			Name:       "Morgan Manager",
			Role:       models.RoleApprover,
			Department: strPtr("Operations"),
			Position:   strPtr("Department Manager"),
			IsActive:   true,
		},
		{
			Email:      "finance@company.com",
			Password:   hash,
			Name:       "Frankie Finance",
			Role:       models.RoleApprover,
			Department: strPtr("Finance"),
			Position:   strPtr("Finance Lead"),
			IsActive:   true,
		},
		{
			Email:    "ceo@company.com",
			Password: hash,
			Name:     "Casey Executive",
			Role:     models.RoleCEO,
			Position: strPtr("Chief Executive Officer"),
			IsActive: true,
		},
	}

	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
		log.Printf("Created user %s (%s)", users[i].Email, users[i].Role)
	}

	admin := users[0]
	manager := users[2]
	finance := users[3]
	ceo := users[4]

	workflows := []models.Workflow{
		{
			Name:        "Standard Approval",
			Description: strPtr("Manager review followed by CEO sign-off"),
			IsActive:    true,
			CreatedBy:   admin.UserID,
			Steps: []models.WorkflowStep{
				{StepNumber: 1, ApproverID: manager.UserID, ApproverName: manager.Name, ApproverEmail: manager.Email, Required: true},
				{StepNumber: 2, ApproverID: ceo.UserID, ApproverName: ceo.Name, ApproverEmail: ceo.Email, Required: true},
			},
		},
		{
			Name:        "Finance Approval",
			Description: strPtr("Manager, finance review, then CEO sign-off"),
			IsActive:    true,
			CreatedBy:   admin.UserID,
			Steps: []models.WorkflowStep{
				{StepNumber: 1, ApproverID: manager.UserID, ApproverName: manager.Name, ApproverEmail: manager.Email, Required: true},
				{StepNumber: 2, ApproverID: finance.UserID, ApproverName: finance.Name, ApproverEmail: finance.Email, Required: false},
				{StepNumber: 3, ApproverID: ceo.UserID, ApproverName: ceo.Name, ApproverEmail: ceo.Email, Required: true},
			},
		},
	}

	for i := range workflows {
		if err := db.Create(&workflows[i]).Error; err != nil {
			return err
		}
		log.Printf("Created workflow %q with %d steps", workflows[i].Name, len(workflows[i].Steps))
	}

	return nil
}
