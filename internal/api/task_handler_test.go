package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgoodman/taskdeck-api/internal/api/shared"
	"github.com/rgoodman/taskdeck-api/internal/domain"
	"github.com/rgoodman/taskdeck-api/internal/store"
)

// fakeTaskStore is an in-memory store.TaskStore for handler tests. It
// records the filter passed to List so scoping can be asserted.
type fakeTaskStore struct {
	tasks      map[uuid.UUID]*domain.Task
	lastFilter store.TaskFilter
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (f *fakeTaskStore) Create(_ context.Context, task *domain.Task) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTaskStore) List(_ context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	f.lastFilter = filter
	result := make([]*domain.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		if filter.AssignedTo != nil &&
			(task.AssignedTo == nil || *task.AssignedTo != *filter.AssignedTo) {
			continue
		}
		result = append(result, task)
	}
	return result, nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *domain.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.TaskStatus) error {
	task, ok := f.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.Status = status
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) FindDueOn(_ context.Context, _ string) ([]*domain.Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) Summary(_ context.Context) ([]store.TaskSummaryRow, error) {
	return nil, nil
}

func (f *fakeTaskStore) WithTx(_ *sql.Tx) store.TaskStore { return f }

// authedRequest builds a request carrying the user ID and role the
// authentication middleware would have attached.
func authedRequest(method, target string, body []byte, userID uuid.UUID, role domain.Role) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, shared.UserRoleContextKey, role)
	return req.WithContext(ctx)
}

// withPathID attaches a chi route parameter to the request.
func withPathID(req *http.Request, id uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func seedTask(t *testing.T, ts *fakeTaskStore, createdBy uuid.UUID, assignedTo *uuid.UUID) *domain.Task {
	t.Helper()
	task, err := domain.NewTask("Restock shelves", "", createdBy, assignedTo)
	require.NoError(t, err)
	require.NoError(t, ts.Create(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	employeeID := uuid.New()
	otherID := uuid.New()

	t.Run("employee defaults assignee to self", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)

		body, _ := json.Marshal(CreateTaskRequest{Title: "Inventory count"})
		req := authedRequest(http.MethodPost, "/api/tasks", body, employeeID, domain.RoleEmployee)
		w := httptest.NewRecorder()
		handler.Create(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var created domain.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		require.NotNil(t, created.AssignedTo)
		assert.Equal(t, employeeID, *created.AssignedTo)
		assert.Equal(t, domain.TaskStatusOpen, created.Status)
	})

	t.Run("employee cannot assign to another user", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)

		assignee := otherID.String()
		body, _ := json.Marshal(CreateTaskRequest{Title: "Inventory count", AssignedTo: &assignee})
		req := authedRequest(http.MethodPost, "/api/tasks", body, employeeID, domain.RoleEmployee)
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, ts.tasks)
	})

	t.Run("admin may assign to anyone", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)

		assignee := otherID.String()
		due := "2026-09-01"
		body, _ := json.Marshal(CreateTaskRequest{
			Title:      "Inventory count",
			DueDate:    &due,
			AssignedTo: &assignee,
		})
		req := authedRequest(http.MethodPost, "/api/tasks", body, employeeID, domain.RoleAdmin)
		w := httptest.NewRecorder()
		handler.Create(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var created domain.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		require.NotNil(t, created.AssignedTo)
		assert.Equal(t, otherID, *created.AssignedTo)
		require.NotNil(t, created.DueDate)
		assert.Equal(t, due, domain.Day(*created.DueDate))
	})

	t.Run("malformed due date is rejected", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)

		due := "09/01/2026"
		body, _ := json.Marshal(CreateTaskRequest{Title: "Inventory count", DueDate: &due})
		req := authedRequest(http.MethodPost, "/api/tasks", body, employeeID, domain.RoleAdmin)
		w := httptest.NewRecorder()
		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, ts.tasks)
	})
}

func TestListTasks(t *testing.T) {
	adminID := uuid.New()
	employeeID := uuid.New()

	t.Run("employee list is scoped to own tasks", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)
		seedTask(t, ts, adminID, &employeeID)
		seedTask(t, ts, adminID, &adminID)

		req := authedRequest(http.MethodGet, "/api/tasks", nil, employeeID, domain.RoleEmployee)
		w := httptest.NewRecorder()
		handler.List(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, ts.lastFilter.AssignedTo)
		assert.Equal(t, employeeID, *ts.lastFilter.AssignedTo)

		var tasks []*domain.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tasks))
		assert.Len(t, tasks, 1)
	})

	t.Run("admin sees all tasks by default", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)
		seedTask(t, ts, adminID, &employeeID)
		seedTask(t, ts, adminID, &adminID)

		req := authedRequest(http.MethodGet, "/api/tasks", nil, adminID, domain.RoleAdmin)
		w := httptest.NewRecorder()
		handler.List(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, ts.lastFilter.AssignedTo)
	})

	t.Run("admin can filter by assignee", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)

		target := fmt.Sprintf("/api/tasks?assignee=%s", employeeID)
		req := authedRequest(http.MethodGet, target, nil, adminID, domain.RoleAdmin)
		w := httptest.NewRecorder()
		handler.List(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, ts.lastFilter.AssignedTo)
		assert.Equal(t, employeeID, *ts.lastFilter.AssignedTo)
	})

	t.Run("malformed assignee filter is rejected", func(t *testing.T) {
		ts := newFakeTaskStore()
		handler := NewTaskHandler(ts)

		req := authedRequest(http.MethodGet, "/api/tasks?assignee=not-a-uuid", nil, adminID, domain.RoleAdmin)
		w := httptest.NewRecorder()
		handler.List(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTask(t *testing.T) {
	adminID := uuid.New()
	employeeID := uuid.New()
	strangerID := uuid.New()

	ts := newFakeTaskStore()
	handler := NewTaskHandler(ts)
	task := seedTask(t, ts, adminID, &employeeID)

	t.Run("assignee can read", func(t *testing.T) {
		req := withPathID(authedRequest(http.MethodGet, "/api/tasks/"+task.ID.String(), nil,
			employeeID, domain.RoleEmployee), task.ID)
		w := httptest.NewRecorder()
		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unrelated employee is forbidden", func(t *testing.T) {
		req := withPathID(authedRequest(http.MethodGet, "/api/tasks/"+task.ID.String(), nil,
			strangerID, domain.RoleEmployee), task.ID)
		w := httptest.NewRecorder()
		handler.Get(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown task returns 404", func(t *testing.T) {
		missing := uuid.New()
		req := withPathID(authedRequest(http.MethodGet, "/api/tasks/"+missing.String(), nil,
			adminID, domain.RoleAdmin), missing)
		w := httptest.NewRecorder()
		handler.Get(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateTaskStatus(t *testing.T) {
	employeeID := uuid.New()

	ts := newFakeTaskStore()
	handler := NewTaskHandler(ts)
	task := seedTask(t, ts, employeeID, &employeeID)

	t.Run("valid transition persists", func(t *testing.T) {
		body, _ := json.Marshal(UpdateTaskStatusRequest{Status: "COMPLETED"})
		req := withPathID(authedRequest(http.MethodPatch, "/api/tasks/"+task.ID.String()+"/status",
			body, employeeID, domain.RoleEmployee), task.ID)
		w := httptest.NewRecorder()
		handler.UpdateStatus(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.TaskStatusCompleted, ts.tasks[task.ID].Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		body, _ := json.Marshal(UpdateTaskStatusRequest{Status: "ARCHIVED"})
		req := withPathID(authedRequest(http.MethodPatch, "/api/tasks/"+task.ID.String()+"/status",
			body, employeeID, domain.RoleEmployee), task.ID)
		w := httptest.NewRecorder()
		handler.UpdateStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	adminID := uuid.New()

	ts := newFakeTaskStore()
	handler := NewTaskHandler(ts)
	task := seedTask(t, ts, adminID, nil)

	req := withPathID(authedRequest(http.MethodDelete, "/api/tasks/"+task.ID.String(), nil,
		adminID, domain.RoleAdmin), task.ID)
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ts.tasks)

	// Deleting again reports not found.
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
