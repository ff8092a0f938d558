package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDueSoonTasks(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	overdue := makeTask("t1", "Overdue")
	overdue.DueDate = "2026-08-27T09:00:00Z"
	tonight := makeTask("t2", "Tonight")
	tonight.DueDate = "2026-08-28T20:00:00Z"
	nextWeek := makeTask("t3", "Next week")
	nextWeek.DueDate = "2026-09-04T09:00:00Z"
	done := makeTask("t4", "Done already")
	done.DueDate = "2026-08-28T13:00:00Z"
	done.Status = statusCompleted
	garbled := makeTask("t5", "Garbled date")
	garbled.DueDate = "someday"

	due := dueSoonTasks([]task{overdue, tonight, nextWeek, done, garbled}, now)
	if len(due) != 2 {
		t.Fatalf("expected 2 due-soon tasks, got %d: %v", len(due), idsOf(due))
	}
	if due[0].ID != "t1" || due[1].ID != "t2" {
		t.Errorf("expected [t1 t2], got %v", idsOf(due))
	}
}

func TestDigestTemplateRenders(t *testing.T) {
	data := struct {
		Name  string
		Tasks []task
	}{Name: "Demo User", Tasks: []task{makeTask("t1", "Buy milk")}}

	for _, section := range []string{"subject", "plainBody", "htmlBody"} {
		var out bytes.Buffer
		if err := digestTemplate.ExecuteTemplate(&out, section, data); err != nil {
			t.Errorf("template %s failed to render: %v", section, err)
			continue
		}
		if !strings.Contains(out.String(), "Buy milk") && section != "subject" {
			t.Errorf("template %s does not mention the task:\n%s", section, out.String())
		}
	}
}
