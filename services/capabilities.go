package services

import (
	"document-approval-api/models"
)

// Capability describes what a role may do and which queue its dashboard
// shows. Dashboards read this table instead of branching on role.
type Capability struct {
	Actions []string `json:"actions"`
	Queue   string   `json:"queue"`
}

// Dashboard queue kinds.
const (
	QueueOwnDocuments = "own-documents"
	QueuePendingSteps = "pending-steps"
	QueueAllDocuments = "all-documents"
)

var capabilityTable = map[string]Capability{
	models.RoleUploader: {
		Actions: []string{"upload", "track-own"},
		Queue:   QueueOwnDocuments,
	},
	models.RoleApprover: {
		Actions: []string{"decide", "view-assigned"},
		Queue:   QueuePendingSteps,
	},
	// The CEO dashboard queues only steps awaiting their own sign-off;
	// view-all governs document listing and detail access.
	models.RoleCEO: {
		Actions: []string{"decide", "view-all"},
		Queue:   QueuePendingSteps,
	},
	models.RoleAdmin: {
		Actions: []string{"upload", "decide", "skip-step", "manage-users", "manage-workflows", "view-all"},
		Queue:   QueueAllDocuments,
	},
}

// Capabilities returns the capability entry for role. Unknown roles get an
// empty capability with no queue.
func Capabilities(role string) Capability {
	return capabilityTable[role]
}
