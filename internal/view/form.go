package view

import (
	"context"

	"taskhub/internal/domain"
	"taskhub/internal/service"
)

// TaskEditor is what a submitted form needs from the controller.
type TaskEditor interface {
	Add(ctx context.Context, title, description string) ([]domain.Task, error)
	Update(ctx context.Context, id int64, title, description string) ([]domain.Task, error)
}

// Form is the unsaved state of the task being created or edited.
type Form struct {
	EditingID   int64 // zero when creating
	Title       string
	Description string
}

func NewCreateForm() *Form {
	return &Form{}
}

func NewEditForm(t domain.Task) *Form {
	return &Form{EditingID: t.ID, Title: t.Title, Description: t.Description}
}

func (f *Form) Editing() bool {
	return f.EditingID != 0
}

// Submit dispatches Add or Update. A blank title is rejected before any
// round trip.
func (f *Form) Submit(ctx context.Context, editor TaskEditor) ([]domain.Task, error) {
	if _, err := service.CleanTitle(f.Title); err != nil {
		return nil, err
	}
	if f.Editing() {
		return editor.Update(ctx, f.EditingID, f.Title, f.Description)
	}
	return editor.Add(ctx, f.Title, f.Description)
}
