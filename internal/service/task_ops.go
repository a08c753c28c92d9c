package service

import (
	"strings"
	"time"

	"taskhub/internal/domain"
)

// The list transforms below never modify their input.

// NewTask builds a fresh incomplete task. Its id is the creation time in
// milliseconds, bumped past the largest existing id when the clock would
// otherwise collide.
func NewTask(existing []domain.Task, now time.Time, title, description string) domain.Task {
	id := now.UnixMilli()
	for _, t := range existing {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return domain.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   domain.FormatCreatedAt(now),
	}
}

func AppendTask(tasks []domain.Task, t domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

// UpdateTask replaces title and description of the task with id.
// found reports whether such a task exists.
func UpdateTask(tasks []domain.Task, id int64, title, description string) (out []domain.Task, found bool) {
	return mapTask(tasks, id, func(t domain.Task) domain.Task {
		t.Title = title
		t.Description = description
		return t
	})
}

func ToggleTask(tasks []domain.Task, id int64) (out []domain.Task, found bool) {
	return mapTask(tasks, id, func(t domain.Task) domain.Task {
		t.Completed = !t.Completed
		return t
	})
}

func RemoveTask(tasks []domain.Task, id int64) (out []domain.Task, found bool) {
	out = make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	return out, found
}

func mapTask(tasks []domain.Task, id int64, fn func(domain.Task) domain.Task) ([]domain.Task, bool) {
	out := make([]domain.Task, len(tasks))
	found := false
	for i, t := range tasks {
		if t.ID == id {
			t = fn(t)
			found = true
		}
		out[i] = t
	}
	return out, found
}

// CleanTitle trims title and rejects a blank one. Callers store the title
// as typed and use the result only for the check.
func CleanTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	return trimmed, nil
}
