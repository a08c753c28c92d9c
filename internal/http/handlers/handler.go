package handlers

import (
	"context"
	"strconv"

	"taskhub/internal/domain"
	"taskhub/internal/service"
	"taskhub/internal/view"

	"github.com/gin-gonic/gin"
)

// TaskController is the part of the controller the HTTP layer drives.
type TaskController interface {
	Add(ctx context.Context, title, description string) ([]domain.Task, error)
	Update(ctx context.Context, id int64, title, description string) ([]domain.Task, error)
	Toggle(ctx context.Context, id int64) ([]domain.Task, error)
	Delete(ctx context.Context, id int64) ([]domain.Task, error)
	Loading() bool
	Board() *service.Board
}

// TaskHandler serves the task board API.
type TaskHandler struct {
	Controller TaskController
	Confirm    *view.DeleteConfirmation
}

func NewTaskHandler(ctrl TaskController, confirm *view.DeleteConfirmation) *TaskHandler {
	return &TaskHandler{Controller: ctrl, Confirm: confirm}
}

// taskID reads the :id path param.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
