package tracker

// State is the single materialized snapshot of all three entity
// collections. The Store owns the live copy; everything handed outward is
// a deep clone, so readers can never mutate committed state.
type State struct {
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
	Members  []Member  `json:"team_members"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{}
	if len(s.Projects) > 0 {
		out.Projects = make([]Project, len(s.Projects))
		copy(out.Projects, s.Projects)
	}
	if len(s.Tasks) > 0 {
		out.Tasks = make([]Task, len(s.Tasks))
		copy(out.Tasks, s.Tasks)
	}
	if len(s.Members) > 0 {
		out.Members = make([]Member, len(s.Members))
		copy(out.Members, s.Members)
	}
	return out
}

// Seed returns the fixed starter dataset used when no snapshot exists or
// the stored one cannot be read.
func Seed() State {
	state := State{
		Projects: []Project{
			{ID: "proj-aurora", Name: "Aurora Website Refresh"},
			{ID: "proj-mobile", Name: "Mobile Companion App"},
			{ID: "proj-tooling", Name: "Internal Tooling Cleanup"},
		},
		Tasks: []Task{
			{ID: "task-design", ProjectID: "proj-aurora", Name: "Redesign landing page", Complete: true, AssigneeID: "member-ines"},
			{ID: "task-copy", ProjectID: "proj-aurora", Name: "Rewrite marketing copy", AssigneeID: "member-dario"},
			{ID: "task-cdn", ProjectID: "proj-aurora", Name: "Move assets to CDN"},
			{ID: "task-login", ProjectID: "proj-mobile", Name: "Implement login flow", AssigneeID: "member-priya"},
			{ID: "task-push", ProjectID: "proj-mobile", Name: "Wire push notifications", AssigneeID: "member-priya"},
			{ID: "task-lint", ProjectID: "proj-tooling", Name: "Consolidate lint configs", AssigneeID: "member-dario"},
		},
		Members: []Member{
			{ID: "member-ines", Name: "Ines Duarte", MaxCapacity: 5},
			{ID: "member-dario", Name: "Dario Fulci", MaxCapacity: 5},
			{ID: "member-priya", Name: "Priya Nair", MaxCapacity: 4},
		},
	}
	state.Projects = Recalculate(state.Projects, state.Tasks)
	return state
}
