package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"document-approval-api/middleware"
	"document-approval-api/services"
)

type WorkflowController struct {
	workflows *services.WorkflowService
}

func NewWorkflowController(workflows *services.WorkflowService) *WorkflowController {
	return &WorkflowController{workflows: workflows}
}

type CreateWorkflowRequest struct {
	Name        string                       `json:"name" binding:"required"`
	Description string                       `json:"description"`
	Steps       []services.WorkflowStepInput `json:"steps" binding:"required"`
}

func (ctl *WorkflowController) Create(c *gin.Context) {
	var req CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creator := middleware.CurrentUser(c)
	workflow, err := ctl.workflows.Create(creator.UserID, req.Name, req.Description, req.Steps)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"workflow": workflow})
}

func (ctl *WorkflowController) List(c *gin.Context) {
	workflows, err := ctl.workflows.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workflows": workflows})
}

func (ctl *WorkflowController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	workflow, err := ctl.workflows.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workflow": workflow})
}

// Deactivate retires a workflow from new submissions. In-flight documents
// keep their snapshot.
func (ctl *WorkflowController) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctl.workflows.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workflow deactivated"})
}
