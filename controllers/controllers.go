// Package controllers holds the HTTP handlers. Controllers are plain structs
// with their dependencies injected at startup; they translate taxonomy errors
// to HTTP statuses at this boundary and never leak storage detail to callers.
package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"document-approval-api/errs"
	"document-approval-api/models"
	"document-approval-api/services"
)

// Lifecycle is the slice of the document lifecycle service the controllers
// consume. services.LifecycleService satisfies it.
type Lifecycle interface {
	Submit(uploader *models.User, in services.SubmitInput) (*models.Document, error)
	RecordDecision(documentID, approverID, stepNumber int, decision, comments string) (*models.Document, error)
	SkipStep(documentID int, caller *models.User, stepNumber int) (*models.Document, error)
	Get(documentID int, caller *models.User) (*models.Document, error)
	ListForUser(caller *models.User) ([]models.Document, error)
	Queue(approverID int) ([]models.Document, error)
	History(approverID int) ([]models.Approval, error)
}

// Set groups every controller for route registration.
type Set struct {
	Auth      *AuthController
	Users     *UserController
	Workflows *WorkflowController
	Documents *DocumentController
	Approvals *ApprovalController
	Dashboard *DashboardController
}

// respondError maps a taxonomy error to its HTTP status. Infrastructure
// failures are logged with detail and surfaced as a generic message.
func respondError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}
