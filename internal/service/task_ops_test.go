package service

import (
	"errors"
	"testing"
	"time"

	"taskhub/internal/domain"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)

	task := NewTask(nil, now, "Write spec", "")
	if task.ID != now.UnixMilli() {
		t.Fatalf("id=%d", task.ID)
	}
	if task.Completed {
		t.Fatalf("new task must start incomplete")
	}
	if task.CreatedAt != "2025-05-04T12:00:00.000Z" {
		t.Fatalf("createdAt=%q", task.CreatedAt)
	}
}

func TestNewTask_IDNeverCollides(t *testing.T) {
	now := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
	existing := []domain.Task{{ID: now.UnixMilli()}, {ID: now.UnixMilli() + 5}}

	task := NewTask(existing, now, "again", "")
	if task.ID != now.UnixMilli()+6 {
		t.Fatalf("id=%d", task.ID)
	}
}

func TestListTransformsDoNotMutateInput(t *testing.T) {
	in := []domain.Task{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b"},
	}

	cases := []struct {
		name  string
		apply func() ([]domain.Task, bool)
		want  []domain.Task
		found bool
	}{
		{
			name:  "update",
			apply: func() ([]domain.Task, bool) { return UpdateTask(in, 2, "B", "desc") },
			want:  []domain.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "B", Description: "desc"}},
			found: true,
		},
		{
			name:  "toggle",
			apply: func() ([]domain.Task, bool) { return ToggleTask(in, 1) },
			want:  []domain.Task{{ID: 1, Title: "a", Completed: true}, {ID: 2, Title: "b"}},
			found: true,
		},
		{
			name:  "remove",
			apply: func() ([]domain.Task, bool) { return RemoveTask(in, 1) },
			want:  []domain.Task{{ID: 2, Title: "b"}},
			found: true,
		},
		{
			name:  "remove unknown",
			apply: func() ([]domain.Task, bool) { return RemoveTask(in, 99) },
			want:  in,
			found: false,
		},
		{
			name:  "toggle unknown",
			apply: func() ([]domain.Task, bool) { return ToggleTask(in, 99) },
			want:  in,
			found: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := tc.apply()
			if found != tc.found {
				t.Fatalf("found=%v want %v", found, tc.found)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("[%d] got %#v want %#v", i, got[i], tc.want[i])
				}
			}
			if in[0].Title != "a" || in[0].Completed || len(in) != 2 {
				t.Fatalf("input mutated: %#v", in)
			}
		})
	}
}

func TestAppendTaskCopies(t *testing.T) {
	in := make([]domain.Task, 1, 4)
	in[0] = domain.Task{ID: 1}

	a := AppendTask(in, domain.Task{ID: 2})
	b := AppendTask(in, domain.Task{ID: 3})
	if a[1].ID != 2 || b[1].ID != 3 {
		t.Fatalf("appends share backing array: a=%v b=%v", a, b)
	}
}

func TestCleanTitle(t *testing.T) {
	if _, err := CleanTitle("   "); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err=%v", err)
	}
	got, err := CleanTitle("  Review spec ")
	if err != nil || got != "Review spec" {
		t.Fatalf("got %q err=%v", got, err)
	}
}
