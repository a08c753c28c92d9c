// Package view holds the presentation rules of the task board: display order,
// the create/edit form and the delete confirmation gate.
package view

import (
	"slices"

	"taskhub/internal/domain"
)

// Sorted returns a copy of tasks in display order: incomplete before
// completed, newest first within each group. Equal timestamps fall back to
// id descending so the order is deterministic.
func Sorted(tasks []domain.Task) []domain.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []domain.Task{}
	}
	slices.SortStableFunc(out, compareForDisplay)
	return out
}

func compareForDisplay(a, b domain.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := b.CreatedTime().Compare(a.CreatedTime()); c != 0 {
		return c
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}
