package repository

import (
	"context"
	"encoding/json"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/logger"
	"taskhub/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WriteError is the caller-facing message for a failed save.
const WriteError = "Database write error"

var (
	storeOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_store_operations_total",
			Help: "Task list reads and writes by result",
		},
		[]string{"op", "result"},
	)
	storeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "task_store_operation_duration_seconds",
			Help:    "Duration of task list reads and writes",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"op"},
	)
)

// SaveResult mirrors what the caller needs after a write: either the data it
// should adopt, or an error message.
type SaveResult struct {
	Success bool
	Data    []domain.Task
	Error   string
}

// TaskModel persists the whole task list as one JSON blob under a single key.
type TaskModel struct {
	store storage.Store
	key   string
}

func NewTaskModel(store storage.Store, key string) *TaskModel {
	return &TaskModel{store: store, key: key}
}

// FetchAll returns the stored list. Missing, unreadable or corrupt data is
// treated as an empty list.
func (m *TaskModel) FetchAll(ctx context.Context) []domain.Task {
	start := time.Now()
	defer func() { storeDuration.WithLabelValues("fetch").Observe(time.Since(start).Seconds()) }()

	raw, found, err := m.store.Get(ctx, m.key)
	if err != nil {
		storeOps.WithLabelValues("fetch", "error").Inc()
		logger.Error("failed to read tasks", "key", m.key, "error", err)
		return []domain.Task{}
	}
	if !found || raw == "" {
		storeOps.WithLabelValues("fetch", "empty").Inc()
		return []domain.Task{}
	}

	var tasks []domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		storeOps.WithLabelValues("fetch", "error").Inc()
		logger.Error("failed to parse stored tasks", "key", m.key, "error", err)
		return []domain.Task{}
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	storeOps.WithLabelValues("fetch", "ok").Inc()
	return tasks
}

// SaveAll overwrites the stored list with tasks. It does not retry.
func (m *TaskModel) SaveAll(ctx context.Context, tasks []domain.Task) SaveResult {
	start := time.Now()
	defer func() { storeDuration.WithLabelValues("save").Observe(time.Since(start).Seconds()) }()

	if tasks == nil {
		tasks = []domain.Task{}
	}

	b, err := json.Marshal(tasks)
	if err == nil {
		err = m.store.Set(ctx, m.key, string(b))
	}
	if err != nil {
		storeOps.WithLabelValues("save", "error").Inc()
		logger.Error("failed to write tasks", "key", m.key, "error", err)
		return SaveResult{Success: false, Error: WriteError}
	}

	storeOps.WithLabelValues("save", "ok").Inc()
	return SaveResult{Success: true, Data: tasks}
}
