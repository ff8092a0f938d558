package main

import (
	"strings"
	"time"
)

type taskStatus string

const (
	statusOpen      taskStatus = "open"
	statusCompleted taskStatus = "completed"
)

type taskPriority string

const (
	priorityLow    taskPriority = "low"
	priorityMedium taskPriority = "medium"
	priorityHigh   taskPriority = "high"
)

type task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     string       `json:"dueDate"`
	Status      taskStatus   `json:"status"`
	Priority    taskPriority `json:"priority"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

type user struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL,omitempty"`
}

// timestamp renders t the way it is persisted: ISO-8601 in UTC.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// taskPatch is a partial task update. Nil fields are left unchanged.
type taskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Status      *taskStatus
	Priority    *taskPriority
}

func (p taskPatch) apply(t task, now string) task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	t.UpdatedAt = now
	return t
}

type taskFilter string

const (
	filterAll       taskFilter = "all"
	filterActive    taskFilter = "active"
	filterCompleted taskFilter = "completed"
)

func (f taskFilter) valid() bool {
	return f == filterAll || f == filterActive || f == filterCompleted
}

// filterTasks projects the collection onto a status view composed with a
// case-insensitive substring search over title and description. An empty
// query returns the status view unchanged. The result is a fresh slice and
// never aliases the input.
func filterTasks(tasks []task, filter taskFilter, query string) []task {
	q := strings.ToLower(query)
	result := make([]task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case filterActive:
			if t.Status != statusOpen {
				continue
			}
		case filterCompleted:
			if t.Status != statusCompleted {
				continue
			}
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		result = append(result, t)
	}
	return result
}
