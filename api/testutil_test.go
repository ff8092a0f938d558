package main

import (
	"testing"
	"time"
)

// memoryKV is an in-memory kvStore with injectable failures and an optional
// one-shot write hook, for exercising the fail-soft and interleaving paths
// without a database.
type memoryKV struct {
	data      map[string]string
	getErr    error
	setErr    error
	removeErr error
	// onSet runs once, before the next write is applied.
	onSet func(key string)
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryKV) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.onSet != nil {
		hook := m.onSet
		m.onSet = nil
		hook(key)
	}
	m.data[key] = value
	return nil
}

func (m *memoryKV) Remove(key string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	delete(m.data, key)
	return nil
}

// setupTestKV opens an in-memory SQLite database through the production
// path.
func setupTestKV(t *testing.T) *sqliteKV {
	t.Helper()
	kv, err := openKV(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return kv
}

func newTestRepository(t *testing.T) (*taskRepository, *memoryKV) {
	t.Helper()
	kv := newMemoryKV()
	repo := newTaskRepository(newStore(kv))
	repo.load()
	return repo, kv
}

func makeTask(id, title string) task {
	now := timestamp(time.Now())
	return task{
		ID:          id,
		Title:       title,
		Description: "",
		DueDate:     now,
		Status:      statusOpen,
		Priority:    priorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
