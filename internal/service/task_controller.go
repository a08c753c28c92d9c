package service

import (
	"context"
	"sync/atomic"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/logger"
	"taskhub/internal/repository"

	"golang.org/x/sync/semaphore"
)

// TaskPersister is the model the controller round-trips through.
type TaskPersister interface {
	FetchAll(ctx context.Context) []domain.Task
	SaveAll(ctx context.Context, tasks []domain.Task) repository.SaveResult
}

type ControllerOptions struct {
	// RejectWhenBusy makes mutations fail with ErrBusy instead of waiting
	// for the outstanding round trip.
	RejectWhenBusy bool
	Now            func() time.Time
}

// TaskController runs one persistence round trip per user action: compute
// the new list, save it, and adopt the saved echo as the board's state.
// At most one round trip is in flight at a time.
type TaskController struct {
	model   TaskPersister
	board   *Board
	guard   *semaphore.Weighted
	loading atomic.Bool
	opts    ControllerOptions
}

func NewTaskController(model TaskPersister, board *Board, opts ControllerOptions) *TaskController {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &TaskController{
		model: model,
		board: board,
		guard: semaphore.NewWeighted(1),
		opts:  opts,
	}
}

func (c *TaskController) Board() *Board {
	return c.board
}

// Loading reports whether a round trip is outstanding.
func (c *TaskController) Loading() bool {
	return c.loading.Load()
}

// Load reads the stored list and publishes it.
func (c *TaskController) Load(ctx context.Context) ([]domain.Task, error) {
	if err := c.guard.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	c.loading.Store(true)
	defer c.release()

	tasks := c.model.FetchAll(ctx)
	c.board.Replace(tasks)
	logger.Info("tasks loaded", "count", len(tasks))
	return c.board.Tasks(), nil
}

func (c *TaskController) Add(ctx context.Context, title, description string) ([]domain.Task, error) {
	if _, err := CleanTitle(title); err != nil {
		return nil, err
	}
	return c.roundTrip(ctx, "add", func(tasks []domain.Task) ([]domain.Task, error) {
		return AppendTask(tasks, NewTask(tasks, c.opts.Now(), title, description)), nil
	})
}

func (c *TaskController) Update(ctx context.Context, id int64, title, description string) ([]domain.Task, error) {
	if _, err := CleanTitle(title); err != nil {
		return nil, err
	}
	return c.roundTrip(ctx, "update", func(tasks []domain.Task) ([]domain.Task, error) {
		out, found := UpdateTask(tasks, id, title, description)
		if !found {
			return nil, ErrTaskNotFound
		}
		return out, nil
	})
}

func (c *TaskController) Toggle(ctx context.Context, id int64) ([]domain.Task, error) {
	return c.roundTrip(ctx, "toggle", func(tasks []domain.Task) ([]domain.Task, error) {
		out, found := ToggleTask(tasks, id)
		if !found {
			return nil, ErrTaskNotFound
		}
		return out, nil
	})
}

func (c *TaskController) Delete(ctx context.Context, id int64) ([]domain.Task, error) {
	return c.roundTrip(ctx, "delete", func(tasks []domain.Task) ([]domain.Task, error) {
		out, found := RemoveTask(tasks, id)
		if !found {
			return nil, ErrTaskNotFound
		}
		return out, nil
	})
}

// roundTrip applies mutate to the current list and persists the result. On
// any failure the board keeps its previous list.
func (c *TaskController) roundTrip(ctx context.Context, op string, mutate func([]domain.Task) ([]domain.Task, error)) ([]domain.Task, error) {
	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	c.loading.Store(true)
	defer c.release()

	next, err := mutate(c.board.Tasks())
	if err != nil {
		return nil, err
	}

	res := c.model.SaveAll(ctx, next)
	if !res.Success {
		logger.Error("failed to save tasks", "op", op, "error", res.Error)
		return nil, ErrSaveFailed
	}

	c.board.Replace(res.Data)
	logger.Debug("tasks saved", "op", op, "count", len(res.Data))
	return c.board.Tasks(), nil
}

func (c *TaskController) acquire(ctx context.Context) error {
	if c.opts.RejectWhenBusy {
		if !c.guard.TryAcquire(1) {
			return ErrBusy
		}
		return nil
	}
	return c.guard.Acquire(ctx, 1)
}

func (c *TaskController) release() {
	c.loading.Store(false)
	c.guard.Release(1)
}
