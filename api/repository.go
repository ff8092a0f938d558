package main

import (
	"sync"
	"time"
)

// taskRepository owns the canonical in-memory task collection for the
// session. Every mutation runs a read-whole/modify/write-whole sequence
// against the store and then mirrors the result into memory, so the UI
// always sees the mutation applied even when the durable write silently
// failed. Each mutation reports whether the write actually stuck; only a
// later load or refresh reconciles a divergence.
//
// Mutations are not serialized against the store key. Two read-modify-write
// sequences issued over the same stored snapshot overwrite each other: the
// second write wins and the first one's effect is lost. Accepted for a
// single-user, low-frequency workload.
type taskRepository struct {
	store *store

	mu         sync.RWMutex
	tasks      []task
	loading    bool
	refreshing bool

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

func newTaskRepository(s *store) *taskRepository {
	return &taskRepository{
		store:   s,
		loading: true,
		subs:    make(map[int]chan struct{}),
	}
}

// subscribe registers an observer of the in-memory collection. The channel
// receives a signal after every change; the returned func cancels the
// subscription. Signals are coalesced, never blocking the repository.
func (r *taskRepository) subscribe() (<-chan struct{}, func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	id := r.nextSub
	r.nextSub++
	ch := make(chan struct{}, 1)
	r.subs[id] = ch
	cancel := func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		delete(r.subs, id)
	}
	return ch, cancel
}

func (r *taskRepository) notify() {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// load replaces the in-memory collection wholesale with the stored one.
// The loading flag clears whether or not the read succeeded; a failed read
// surfaces as an empty list, never as an error.
func (r *taskRepository) load() {
	tasks := r.store.readTasks()
	r.mu.Lock()
	r.tasks = tasks
	r.loading = false
	r.mu.Unlock()
	r.notify()
}

// refresh is the user-triggered variant of load. It toggles the refreshing
// flag instead of loading so a pull-to-refresh surface can stay responsive.
func (r *taskRepository) refresh() {
	r.mu.Lock()
	r.refreshing = true
	r.mu.Unlock()
	tasks := r.store.readTasks()
	r.mu.Lock()
	r.tasks = tasks
	r.refreshing = false
	r.mu.Unlock()
	r.notify()
}

// add appends a fully formed task supplied by the caller, id and timestamps
// included. Uniqueness of the id is the caller's responsibility; the
// repository performs no duplicate check.
func (r *taskRepository) add(t task) bool {
	stored := r.store.readTasks()
	persisted := r.store.writeTasks(append(stored, t))
	r.mu.Lock()
	r.tasks = append(r.tasks, t)
	r.mu.Unlock()
	r.notify()
	return persisted
}

// update merges patch over the stored task with the given id and stamps
// updatedAt. A missing id leaves the store untouched (a no-op, not an
// error); the in-memory copy is patched regardless with the same stamp.
func (r *taskRepository) update(id string, patch taskPatch) bool {
	now := timestamp(time.Now())
	persisted := false
	stored := r.store.readTasks()
	for i := range stored {
		if stored[i].ID == id {
			stored[i] = patch.apply(stored[i], now)
			persisted = r.store.writeTasks(stored)
			break
		}
	}
	r.mu.Lock()
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i] = patch.apply(r.tasks[i], now)
		}
	}
	r.mu.Unlock()
	r.notify()
	return persisted
}

// delete filters the id out of the stored collection and writes it back.
// Deleting an id that does not exist rewrites the collection unchanged.
func (r *taskRepository) delete(id string) bool {
	stored := r.store.readTasks()
	kept := make([]task, 0, len(stored))
	for _, t := range stored {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	persisted := r.store.writeTasks(kept)
	r.mu.Lock()
	remaining := make([]task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	r.tasks = remaining
	r.mu.Unlock()
	r.notify()
	return persisted
}

// toggleStatus flips open<->completed based on the in-memory status and
// delegates to update. Unknown ids are a no-op.
func (r *taskRepository) toggleStatus(id string) bool {
	t, ok := r.get(id)
	if !ok {
		return false
	}
	next := statusOpen
	if t.Status == statusOpen {
		next = statusCompleted
	}
	return r.update(id, taskPatch{Status: &next})
}

func (r *taskRepository) get(id string) (task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task{}, false
}

// list returns a snapshot of the requested view. Views are recomputed from
// the canonical collection on every call and hold no state of their own.
func (r *taskRepository) list(filter taskFilter, query string) []task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filterTasks(r.tasks, filter, query)
}

func (r *taskRepository) all() []task {
	return r.list(filterAll, "")
}

func (r *taskRepository) isLoading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

func (r *taskRepository) isRefreshing() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshing
}
