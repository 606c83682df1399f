package tracker

import (
	"math"

	"github.com/samber/lo"
)

// Recalculate derives every project's progress and status from the task
// set. It is pure: the input slices are not modified, and the returned
// slice is freshly allocated. Callers must invoke it with the
// post-mutation task set after any change to tasks; the manual override
// path deliberately skips it, so an override survives only until the next
// task-driven sweep.
func Recalculate(projects []Project, tasks []Task) []Project {
	out := make([]Project, len(projects))
	for i, project := range projects {
		owned := lo.Filter(tasks, func(t Task, _ int) bool {
			return t.ProjectID == project.ID
		})
		project.Progress = progressOf(owned)
		project.Status = statusFor(project.Progress)
		out[i] = project
	}
	return out
}

// progressOf returns the rounded completion percentage of a task set.
// A project with no tasks reports 0, not an undefined ratio.
func progressOf(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := lo.CountBy(tasks, func(t Task) bool { return t.Complete })
	return roundPct(completed, len(tasks))
}

// statusFor keeps the status/progress invariant: Completed iff 100.
func statusFor(progress int) Status {
	if progress == 100 {
		return StatusCompleted
	}
	return StatusInProgress
}

func roundPct(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}

func clampProgress(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
