package tracker

import "testing"

func TestAnalyzeCountsOnlyOpenAssignedTasks(t *testing.T) {
	members := []Member{{ID: "m1", Name: "Ines", MaxCapacity: 5}}
	tasks := []Task{
		{ID: "t1", ProjectID: "p1", AssigneeID: "m1"},
		{ID: "t2", ProjectID: "p1", AssigneeID: "m1", Complete: true},
		{ID: "t3", ProjectID: "p2", AssigneeID: "m1"},
		{ID: "t4", ProjectID: "p1"},
	}
	views := Analyze(members, tasks)
	if len(views) != 1 {
		t.Fatalf("len(views) = %d, want 1", len(views))
	}
	if views[0].OpenTasks != 2 {
		t.Fatalf("open tasks = %d, want 2", views[0].OpenTasks)
	}
	if views[0].CapacityPct != 40 {
		t.Fatalf("capacity pct = %d, want 40", views[0].CapacityPct)
	}
	if views[0].Risk != RiskNormal {
		t.Fatalf("risk = %s, want %s", views[0].Risk, RiskNormal)
	}
}

func TestAnalyzeClampsPctAndFlagsOverCapacity(t *testing.T) {
	members := []Member{{ID: "m1", Name: "Priya", MaxCapacity: 4}}
	tasks := make([]Task, 0, 5)
	for i := 0; i < 5; i++ {
		tasks = append(tasks, Task{ID: string(rune('a' + i)), ProjectID: "p1", AssigneeID: "m1"})
	}
	views := Analyze(members, tasks)
	if views[0].CapacityPct != 100 {
		t.Fatalf("capacity pct = %d, want clamped 100", views[0].CapacityPct)
	}
	if views[0].Risk != RiskCritical {
		t.Fatalf("risk = %s, want %s", views[0].Risk, RiskCritical)
	}
	if views[0].OverCapacity() != 1 {
		t.Fatalf("over capacity = %d, want 1", views[0].OverCapacity())
	}
}

func TestAnalyzeRiskTiers(t *testing.T) {
	cases := []struct {
		name     string
		open     int
		capacity int
		want     RiskTier
	}{
		{name: "idle", open: 0, capacity: 5, want: RiskNormal},
		{name: "half", open: 2, capacity: 4, want: RiskNormal},
		{name: "elevated", open: 3, capacity: 5, want: RiskElevated},
		{name: "critical pct", open: 10, capacity: 11, want: RiskCritical},
		{name: "over capacity", open: 6, capacity: 5, want: RiskCritical},
	}
	for _, tc := range cases {
		members := []Member{{ID: "m1", MaxCapacity: tc.capacity}}
		tasks := make([]Task, 0, tc.open)
		for i := 0; i < tc.open; i++ {
			tasks = append(tasks, Task{ID: string(rune('a' + i)), AssigneeID: "m1"})
		}
		views := Analyze(members, tasks)
		if views[0].Risk != tc.want {
			t.Fatalf("%s: risk = %s, want %s", tc.name, views[0].Risk, tc.want)
		}
		if views[0].CapacityPct < 0 || views[0].CapacityPct > 100 {
			t.Fatalf("%s: capacity pct %d out of range", tc.name, views[0].CapacityPct)
		}
	}
}

func TestAnalyzeDoesNotMutateInputs(t *testing.T) {
	members := []Member{{ID: "m1", Name: "Dario", MaxCapacity: 5}}
	tasks := []Task{{ID: "t1", AssigneeID: "m1"}}
	_ = Analyze(members, tasks)
	if members[0].MaxCapacity != 5 || tasks[0].Complete {
		t.Fatalf("inputs mutated: %+v %+v", members[0], tasks[0])
	}
}
