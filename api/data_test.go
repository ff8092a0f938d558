package main

import (
	"testing"
)

func sampleTasks() []task {
	t1 := makeTask("t1", "Buy milk")
	t1.Description = "2 liters"
	t2 := makeTask("t2", "File taxes")
	t2.Status = statusCompleted
	t3 := makeTask("t3", "Walk the dog")
	t3.Description = "MILK bones for after"
	t4 := makeTask("t4", "Call accountant")
	t4.Status = statusCompleted
	return []task{t1, t2, t3, t4}
}

func idsOf(tasks []task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestFilterPartition(t *testing.T) {
	tasks := sampleTasks()
	active := filterTasks(tasks, filterActive, "")
	completed := filterTasks(tasks, filterCompleted, "")
	all := filterTasks(tasks, filterAll, "")

	if len(all) != len(tasks) {
		t.Fatalf("expected all view to have %d tasks, got %d", len(tasks), len(all))
	}
	if len(active)+len(completed) != len(tasks) {
		t.Errorf("views are not exhaustive: %d active + %d completed != %d",
			len(active), len(completed), len(tasks))
	}
	for _, a := range active {
		if a.Status != statusOpen {
			t.Errorf("active view contains %q with status %q", a.ID, a.Status)
		}
		for _, c := range completed {
			if a.ID == c.ID {
				t.Errorf("views are not disjoint: %q in both", a.ID)
			}
		}
	}
	for _, c := range completed {
		if c.Status != statusCompleted {
			t.Errorf("completed view contains %q with status %q", c.ID, c.Status)
		}
	}
}

func TestFilterSearchComposition(t *testing.T) {
	tasks := sampleTasks()

	t.Run("case-insensitive over title and description", func(t *testing.T) {
		got := idsOf(filterTasks(tasks, filterAll, "MiLk"))
		// t1 matches on title, t3 on description
		expected := []string{"t1", "t3"}
		if len(got) != len(expected) || got[0] != expected[0] || got[1] != expected[1] {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("composes with status view", func(t *testing.T) {
		got := idsOf(filterTasks(tasks, filterCompleted, "taxes"))
		if len(got) != 1 || got[0] != "t2" {
			t.Errorf("expected [t2], got %v", got)
		}
		if got := filterTasks(tasks, filterActive, "taxes"); len(got) != 0 {
			t.Errorf("expected no active match for taxes, got %v", idsOf(got))
		}
	})

	t.Run("empty query returns the view unchanged", func(t *testing.T) {
		if got := filterTasks(tasks, filterActive, ""); len(got) != 2 {
			t.Errorf("expected 2 active tasks, got %v", idsOf(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := filterTasks(tasks, filterAll, "zzz"); len(got) != 0 {
			t.Errorf("expected no match, got %v", idsOf(got))
		}
	})
}

func TestFilterValid(t *testing.T) {
	for _, f := range []taskFilter{filterAll, filterActive, filterCompleted} {
		if !f.valid() {
			t.Errorf("expected %q to be valid", f)
		}
	}
	if taskFilter("done").valid() {
		t.Error("expected done to be invalid")
	}
}

func TestPatchApply(t *testing.T) {
	base := makeTask("t1", "Buy milk")
	base.Description = "2 liters"

	t.Run("nil fields unchanged", func(t *testing.T) {
		got := taskPatch{}.apply(base, "2026-08-28T12:00:00Z")
		if got.Title != base.Title || got.Description != base.Description ||
			got.Status != base.Status || got.Priority != base.Priority || got.DueDate != base.DueDate {
			t.Errorf("empty patch changed fields: %+v", got)
		}
		if got.UpdatedAt != "2026-08-28T12:00:00Z" {
			t.Errorf("expected updatedAt stamp, got %q", got.UpdatedAt)
		}
		if got.CreatedAt != base.CreatedAt {
			t.Errorf("createdAt changed: %q", got.CreatedAt)
		}
	})

	t.Run("set fields applied", func(t *testing.T) {
		title := "Buy oat milk"
		status := statusCompleted
		got := taskPatch{Title: &title, Status: &status}.apply(base, "2026-08-28T12:00:00Z")
		if got.Title != title {
			t.Errorf("expected title %q, got %q", title, got.Title)
		}
		if got.Status != statusCompleted {
			t.Errorf("expected status completed, got %q", got.Status)
		}
		if got.Description != base.Description {
			t.Errorf("description changed: %q", got.Description)
		}
	})
}
