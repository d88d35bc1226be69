package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"document-approval-api/middleware"
	"document-approval-api/utils"
)

type ApprovalController struct {
	lifecycle Lifecycle
}

func NewApprovalController(lifecycle Lifecycle) *ApprovalController {
	return &ApprovalController{lifecycle: lifecycle}
}

type DecisionRequest struct {
	StepNumber int    `json:"step_number" binding:"required,min=1"`
	Decision   string `json:"decision" binding:"required"`
	Comments   string `json:"comments"`
}

// Decide records the caller's decision on a document step. The approver
// identity comes from the token, never from the payload.
func (ctl *ApprovalController) Decide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.CurrentUser(c)
	doc, err := ctl.lifecycle.RecordDecision(id, caller.UserID, req.StepNumber, req.Decision, utils.SanitizeInput(req.Comments))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

type SkipRequest struct {
	StepNumber int `json:"step_number" binding:"required,min=1"`
}

// Skip resolves a non-required step without a decision. Allowed for the
// document's uploader and admins only.
func (ctl *ApprovalController) Skip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.CurrentUser(c)
	doc, err := ctl.lifecycle.SkipStep(id, caller, req.StepNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// Queue returns documents waiting on the caller's decision right now.
func (ctl *ApprovalController) Queue(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	docs, err := ctl.lifecycle.Queue(caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// History returns the caller's resolved approval records.
func (ctl *ApprovalController) History(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	approvals, err := ctl.lifecycle.History(caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approvals": approvals})
}
