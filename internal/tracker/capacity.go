package tracker

import "github.com/samber/lo"

// Analyze derives the workload view for every member from the current task
// set. It is pure and cheap at board scale, so callers recompute it on
// every read instead of caching.
func Analyze(members []Member, tasks []Task) []MemberView {
	return lo.Map(members, func(m Member, _ int) MemberView {
		open := lo.CountBy(tasks, func(t Task) bool {
			return t.AssigneeID == m.ID && !t.Complete
		})
		raw := roundPct(open, m.MaxCapacity)
		view := MemberView{
			Member:      m,
			OpenTasks:   open,
			CapacityPct: clampPct(raw),
			Risk:        riskFor(open, m.MaxCapacity, raw),
		}
		return view
	})
}

func clampPct(raw int) int {
	if raw > 100 {
		return 100
	}
	return raw
}

// riskFor classifies workload against the unclamped utilization ratio.
// Over-capacity is always Critical, whatever the percentage says.
func riskFor(open, capacity, rawPct int) RiskTier {
	switch {
	case open > capacity || rawPct > 90:
		return RiskCritical
	case rawPct > 50:
		return RiskElevated
	default:
		return RiskNormal
	}
}
