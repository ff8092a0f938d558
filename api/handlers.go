package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	heathCheck := struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Version     string `json:"version"`
	}{
		Status:      "available",
		Environment: app.config.env,
		Version:     version,
	}
	writeJSON(w, http.StatusOK, heathCheck)
}

func (app *application) signInHandler(w http.ResponseWriter, r *http.Request) {
	u, token, err := app.auth.signIn()
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		User  user   `json:"user"`
		Token string `json:"token"`
	}{User: u, Token: token})
}

func (app *application) signOutHandler(w http.ResponseWriter, r *http.Request) {
	if u := getUserFromRequest(r); u != nil {
		log.Printf("signing out %s", u.Email)
	}
	app.auth.signOut()
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	filter := filterAll
	if f := r.URL.Query().Get("filter"); f != "" {
		filter = taskFilter(f)
	}
	if !filter.valid() {
		writeError(w, errors.New("filter must be one of all, active, completed"), http.StatusBadRequest)
		return
	}
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, struct {
		Tasks      []task `json:"tasks"`
		Loading    bool   `json:"loading"`
		Refreshing bool   `json:"refreshing"`
	}{
		Tasks:      app.repo.list(filter, query),
		Loading:    app.repo.isLoading(),
		Refreshing: app.repo.isRefreshing(),
	})
}

func (app *application) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string       `json:"title"`
		Description string       `json:"description"`
		DueDate     string       `json:"dueDate"`
		Priority    taskPriority `json:"priority"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Priority == "" {
		input.Priority = priorityMedium
	}
	v := newValidator()
	v.checkTitle(input.Title)
	v.checkDescription(input.Description)
	v.checkPriority(input.Priority)
	v.checkDueDate(input.DueDate)
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}
	now := timestamp(time.Now())
	if input.DueDate == "" {
		input.DueDate = now
	}
	t := task{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      statusOpen,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	persisted := app.repo.add(t)
	writeJSON(w, http.StatusCreated, taskResponse{Task: t, Persisted: persisted})
}

func (app *application) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := app.repo.get(r.PathValue("id"))
	if !ok {
		writeError(w, errors.New("task not found"), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Task task `json:"task"`
	}{Task: t})
}

func (app *application) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := app.repo.get(id); !ok {
		writeError(w, errors.New("task not found"), http.StatusNotFound)
		return
	}
	var input struct {
		Title       *string       `json:"title"`
		Description *string       `json:"description"`
		DueDate     *string       `json:"dueDate"`
		Status      *taskStatus   `json:"status"`
		Priority    *taskPriority `json:"priority"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	if input.Title != nil {
		*input.Title = strings.TrimSpace(*input.Title)
		v.checkTitle(*input.Title)
	}
	if input.Description != nil {
		*input.Description = strings.TrimSpace(*input.Description)
		v.checkDescription(*input.Description)
	}
	if input.Priority != nil {
		v.checkPriority(*input.Priority)
	}
	if input.DueDate != nil {
		v.checkDueDate(*input.DueDate)
	}
	if input.Status != nil {
		v.checkCond(*input.Status == statusOpen || *input.Status == statusCompleted, "status", "must be open or completed")
	}
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}
	persisted := app.repo.update(id, taskPatch{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Priority:    input.Priority,
	})
	t, _ := app.repo.get(id)
	writeJSON(w, http.StatusOK, taskResponse{Task: t, Persisted: persisted})
}

func (app *application) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	persisted := app.repo.delete(r.PathValue("id"))
	writeJSON(w, http.StatusOK, struct {
		Persisted bool `json:"persisted"`
	}{Persisted: persisted})
}

func (app *application) toggleTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := app.repo.get(id); !ok {
		writeError(w, errors.New("task not found"), http.StatusNotFound)
		return
	}
	persisted := app.repo.toggleStatus(id)
	t, _ := app.repo.get(id)
	writeJSON(w, http.StatusOK, taskResponse{Task: t, Persisted: persisted})
}

func (app *application) refreshTasksHandler(w http.ResponseWriter, r *http.Request) {
	app.repo.refresh()
	writeJSON(w, http.StatusOK, struct {
		Tasks []task `json:"tasks"`
	}{Tasks: app.repo.all()})
}

type taskResponse struct {
	Task      task `json:"task"`
	Persisted bool `json:"persisted"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func composeJSONError(err error) string {
	jsonError := map[string]string{
		"error": err.Error(),
	}
	result, err := json.Marshal(jsonError)
	if err != nil {
		log.Println(err)
		return ""
	}
	return string(result)
}

func writeError(w http.ResponseWriter, err error, statusCode int) {
	h := w.Header()
	h.Del("Content-Length")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	fmt.Fprintln(w, composeJSONError(err))
}
