// Package tracker holds the board's entity collections and the derivation
// rules that keep project progress and member workload consistent with the
// live task graph.
package tracker

// Status enumerates the derived lifecycle states of a project.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// RiskTier classifies a member's workload relative to capacity.
type RiskTier string

const (
	RiskNormal   RiskTier = "normal"
	RiskElevated RiskTier = "elevated"
	RiskCritical RiskTier = "critical"
)

// Project is a unit of work whose progress and status are derived from its
// task set unless a manual override is in effect.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Progress is 0-100. Derived from tasks, or user-supplied via an
	// override that lasts until the next task-driven recompute.
	Progress int    `json:"progress"`
	Status   Status `json:"status"`
}

// Task is an atomic unit of work belonging to exactly one project and
// optionally assigned to one team member.
type Task struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Complete  bool   `json:"complete"`
	// AssigneeID is empty when the task is unassigned.
	AssigneeID string `json:"assignee_id,omitempty"`
}

// Member is a staffing unit with a maximum concurrent open-task capacity.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// MaxCapacity is always >= 1; writes clamp it.
	MaxCapacity int `json:"max_capacity"`
}

// MemberView is a member plus the workload fields derived on read.
type MemberView struct {
	Member
	OpenTasks int
	// CapacityPct is clamped to [0,100] for display; risk classification
	// uses the unclamped ratio.
	CapacityPct int
	Risk        RiskTier
}

// OverCapacity reports how many open tasks exceed the member's capacity.
func (v MemberView) OverCapacity() int {
	if v.OpenTasks <= v.MaxCapacity {
		return 0
	}
	return v.OpenTasks - v.MaxCapacity
}
