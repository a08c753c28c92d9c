package handlers

import (
	"context"
	"errors"
	"net/http"

	"taskhub/internal/domain"
	"taskhub/internal/repository"
	"taskhub/internal/service"
	"taskhub/internal/view"

	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type taskListResponse struct {
	Count   int           `json:"count"`
	Items   []domain.Task `json:"items"`
	Loading bool          `json:"loading"`
}

func (h *TaskHandler) respondList(c *gin.Context, status int, tasks []domain.Task) {
	sorted := view.Sorted(tasks)
	c.JSON(status, taskListResponse{
		Count:   len(sorted),
		Items:   sorted,
		Loading: h.Controller.Loading(),
	})
}

// respondError maps controller errors to status codes. Failed mutations
// leave the list untouched, so clients can keep rendering what they have.
func (h *TaskHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidConfirmation):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSaveFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": repository.WriteError})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ListTasks returns the board in display order
func (h *TaskHandler) ListTasks(c *gin.Context) {
	h.respondList(c, http.StatusOK, h.Controller.Board().Tasks())
}

// GetTask returns one task
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	for _, t := range h.Controller.Board().Tasks() {
		if t.ID == id {
			c.JSON(http.StatusOK, t)
			return
		}
	}
	h.respondError(c, service.ErrTaskNotFound)
}

// CreateTask expects {title, description}
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	form := view.NewCreateForm()
	form.Title, form.Description = req.Title, req.Description
	tasks, err := form.Submit(c.Request.Context(), h.Controller)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondList(c, http.StatusCreated, tasks)
}

// UpdateTask replaces title and description
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	form := view.NewEditForm(domain.Task{ID: id})
	form.Title, form.Description = req.Title, req.Description
	tasks, err := form.Submit(c.Request.Context(), h.Controller)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondList(c, http.StatusOK, tasks)
}

// ToggleTask flips the completed flag
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	tasks, err := h.Controller.Toggle(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondList(c, http.StatusOK, tasks)
}

// RequestDelete opens a delete confirmation and returns its token
func (h *TaskHandler) RequestDelete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var target *domain.Task
	for _, t := range h.Controller.Board().Tasks() {
		if t.ID == id {
			target = &t
			break
		}
	}
	if target == nil {
		h.respondError(c, service.ErrTaskNotFound)
		return
	}

	pending, err := h.Confirm.Request(*target)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// CancelDelete closes a confirmation. Expects {token}
func (h *TaskHandler) CancelDelete(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	h.Confirm.Cancel(req.Token)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteTask deletes after confirmation: DELETE /tasks/:id?confirm=<token>
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	token := c.Query("confirm")
	if token == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "confirmation required"})
		return
	}

	tasks, err := h.Confirm.Confirm(c.Request.Context(), id, token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondList(c, http.StatusOK, tasks)
}
