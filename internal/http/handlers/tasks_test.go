package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/repository"
	"taskhub/internal/service"
	"taskhub/internal/storage"
	"taskhub/internal/view"

	"github.com/gin-gonic/gin"
)

// toggleableStore lets a test make writes fail.
type toggleableStore struct {
	*storage.Memory
	fail bool
}

func (s *toggleableStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("storage exception")
	}
	return s.Memory.Set(ctx, key, value)
}

type taskEnv struct {
	router *gin.Engine
	store  *toggleableStore
	ctrl   *service.TaskController
}

func newTaskEnv(t *testing.T) *taskEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &toggleableStore{Memory: storage.NewMemory()}
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	ctrl := service.NewTaskController(
		repository.NewTaskModel(store, "mvc_sim_tasks"),
		service.NewBoard(),
		service.ControllerOptions{Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}},
	)
	if _, err := ctrl.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	h := NewTaskHandler(ctrl, view.NewDeleteConfirmation(service.NewConfirmIssuer("test", time.Minute), ctrl))
	r := gin.New()
	r.GET("/tasks", h.ListTasks)
	r.POST("/tasks", h.CreateTask)
	r.POST("/tasks/delete-cancel", h.CancelDelete)
	r.GET("/tasks/:id", h.GetTask)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.PATCH("/tasks/:id/toggle", h.ToggleTask)
	r.POST("/tasks/:id/delete-request", h.RequestDelete)
	r.DELETE("/tasks/:id", h.DeleteTask)

	return &taskEnv{router: r, store: store, ctrl: ctrl}
}

func (e *taskEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) taskListResponse {
	t.Helper()
	var out taskListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode list: %v; body=%s", err, w.Body.String())
	}
	return out
}

func titlesOf(items []domain.Task) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.Title
	}
	return out
}

func TestTasks_ExampleFlow(t *testing.T) {
	e := newTaskEnv(t)

	w := e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "Write spec"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	w = e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "Review spec"})
	list := decodeList(t, w)
	if got := titlesOf(list.Items); got[0] != "Review spec" || got[1] != "Write spec" {
		t.Fatalf("order=%v", got)
	}

	var a domain.Task
	for _, it := range list.Items {
		if it.Title == "Write spec" {
			a = it
		}
	}

	w = e.do(t, http.MethodPatch, "/tasks/"+strconv.FormatInt(a.ID, 10)+"/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	list = decodeList(t, w)
	if got := titlesOf(list.Items); got[0] != "Review spec" || !list.Items[1].Completed {
		t.Fatalf("after toggle=%v", list.Items)
	}

	w = e.do(t, http.MethodGet, "/tasks", nil)
	if list := decodeList(t, w); list.Count != 2 || list.Loading {
		t.Fatalf("list=%#v", list)
	}
}

func TestTasks_CreateValidation(t *testing.T) {
	e := newTaskEnv(t)

	if w := e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "  "}); w.Code != http.StatusBadRequest {
		t.Fatalf("blank title status=%d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad json status=%d", w.Code)
	}
}

func TestTasks_UpdateAndGet(t *testing.T) {
	e := newTaskEnv(t)
	created := decodeList(t, e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "Draft"}))
	id := strconv.FormatInt(created.Items[0].ID, 10)

	w := e.do(t, http.MethodPut, "/tasks/"+id, map[string]string{"title": "Final", "description": "done soon"})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodGet, "/tasks/"+id, nil)
	var got domain.Task
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Title != "Final" || got.Description != "done soon" || got.CreatedAt != created.Items[0].CreatedAt {
		t.Fatalf("got %#v", got)
	}

	if w := e.do(t, http.MethodPut, "/tasks/999", map[string]string{"title": "x"}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status=%d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/tasks/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id status=%d", w.Code)
	}
}

func TestTasks_DeleteRequiresConfirmation(t *testing.T) {
	e := newTaskEnv(t)
	created := decodeList(t, e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "Doomed"}))
	id := strconv.FormatInt(created.Items[0].ID, 10)

	if w := e.do(t, http.MethodDelete, "/tasks/"+id, nil); w.Code != http.StatusForbidden {
		t.Fatalf("unconfirmed delete status=%d", w.Code)
	}
	if w := e.do(t, http.MethodDelete, "/tasks/"+id+"?confirm=bogus", nil); w.Code != http.StatusForbidden {
		t.Fatalf("bogus token status=%d", w.Code)
	}

	w := e.do(t, http.MethodPost, "/tasks/"+id+"/delete-request", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var pending view.PendingDelete
	_ = json.Unmarshal(w.Body.Bytes(), &pending)
	if pending.Title != "Doomed" || pending.Token == "" {
		t.Fatalf("pending=%#v", pending)
	}

	w = e.do(t, http.MethodDelete, "/tasks/"+id+"?confirm="+pending.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if list := decodeList(t, w); list.Count != 0 {
		t.Fatalf("task not deleted: %#v", list)
	}
}

func TestTasks_CancelDelete(t *testing.T) {
	e := newTaskEnv(t)
	created := decodeList(t, e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "Keep"}))
	id := strconv.FormatInt(created.Items[0].ID, 10)

	var pending view.PendingDelete
	_ = json.Unmarshal(e.do(t, http.MethodPost, "/tasks/"+id+"/delete-request", nil).Body.Bytes(), &pending)

	if w := e.do(t, http.MethodPost, "/tasks/delete-cancel", map[string]string{"token": pending.Token}); w.Code != http.StatusOK {
		t.Fatalf("cancel status=%d", w.Code)
	}
	if w := e.do(t, http.MethodDelete, "/tasks/"+id+"?confirm="+pending.Token, nil); w.Code != http.StatusForbidden {
		t.Fatalf("cancelled token accepted: %d", w.Code)
	}
	if w := e.do(t, http.MethodPost, "/tasks/999/delete-request", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown task status=%d", w.Code)
	}
}

func TestTasks_SaveFailureKeepsList(t *testing.T) {
	e := newTaskEnv(t)
	e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "Write spec"})

	e.store.fail = true
	w := e.do(t, http.MethodPost, "/tasks", map[string]string{"title": "Review spec"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != repository.WriteError {
		t.Fatalf("body=%v", body)
	}

	list := decodeList(t, e.do(t, http.MethodGet, "/tasks", nil))
	if list.Count != 1 || list.Items[0].Title != "Write spec" {
		t.Fatalf("list changed after failed save: %#v", list)
	}
}
