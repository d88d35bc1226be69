package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"document-approval-api/middleware"
	"document-approval-api/models"
	"document-approval-api/services"
)

type DashboardController struct {
	lifecycle Lifecycle
}

func NewDashboardController(lifecycle Lifecycle) *DashboardController {
	return &DashboardController{lifecycle: lifecycle}
}

// Get returns the caller's capability entry plus the counts their dashboard
// shows. The capability table replaces per-role branching: the role picks a
// queue, and everything else follows from that.
func (ctl *DashboardController) Get(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	capability := services.Capabilities(caller.Role)

	var docs []models.Document
	var err error
	switch capability.Queue {
	case services.QueuePendingSteps:
		docs, err = ctl.lifecycle.Queue(caller.UserID)
	default:
		docs, err = ctl.lifecycle.ListForUser(caller)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	counts := map[string]int{
		models.DocStatusPending:    0,
		models.DocStatusInProgress: 0,
		models.DocStatusRejected:   0,
		models.DocStatusCompleted:  0,
	}
	for _, doc := range docs {
		counts[doc.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"role":         caller.Role,
		"capabilities": capability,
		"queue_size":   len(docs),
		"counts":       counts,
	})
}
