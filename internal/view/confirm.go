package view

import (
	"context"
	"sync"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/service"
)

// TaskDeleter is what a confirmed deletion needs from the controller.
type TaskDeleter interface {
	Delete(ctx context.Context, id int64) ([]domain.Task, error)
}

// PendingDelete is an open confirmation handed to the client.
type PendingDelete struct {
	Token     string    `json:"token"`
	TaskID    int64     `json:"taskId"`
	Title     string    `json:"title"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DeleteConfirmation gates deletion behind an explicit confirm step. Every
// request opens a single-use confirmation; Cancel or Confirm closes it.
type DeleteConfirmation struct {
	issuer  *service.ConfirmIssuer
	deleter TaskDeleter

	mu   sync.Mutex
	open map[string]time.Time // jti -> expiry
	now  func() time.Time
}

func NewDeleteConfirmation(issuer *service.ConfirmIssuer, deleter TaskDeleter) *DeleteConfirmation {
	return &DeleteConfirmation{
		issuer:  issuer,
		deleter: deleter,
		open:    make(map[string]time.Time),
		now:     time.Now,
	}
}

func (d *DeleteConfirmation) Request(t domain.Task) (PendingDelete, error) {
	token, claims, err := d.issuer.Issue(t.ID)
	if err != nil {
		return PendingDelete{}, err
	}
	exp := claims.ExpiresAt.Time

	d.mu.Lock()
	d.pruneLocked()
	d.open[claims.ID] = exp
	d.mu.Unlock()

	return PendingDelete{Token: token, TaskID: t.ID, Title: t.Title, ExpiresAt: exp}, nil
}

// Confirm deletes taskID if token is an open confirmation for it.
func (d *DeleteConfirmation) Confirm(ctx context.Context, taskID int64, token string) ([]domain.Task, error) {
	claims, err := d.issuer.Parse(token)
	if err != nil || claims.TaskID != taskID {
		return nil, service.ErrInvalidConfirmation
	}
	if !d.take(claims.ID) {
		return nil, service.ErrInvalidConfirmation
	}
	return d.deleter.Delete(ctx, taskID)
}

// Cancel closes the confirmation. Unknown or invalid tokens are ignored.
func (d *DeleteConfirmation) Cancel(token string) {
	claims, err := d.issuer.Parse(token)
	if err != nil {
		return
	}
	d.take(claims.ID)
}

// Open reports how many confirmations are pending.
func (d *DeleteConfirmation) Open() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pruneLocked()
	return len(d.open)
}

func (d *DeleteConfirmation) take(jti string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.open[jti]; !ok {
		return false
	}
	delete(d.open, jti)
	return true
}

func (d *DeleteConfirmation) pruneLocked() {
	now := d.now()
	for jti, exp := range d.open {
		if now.After(exp) {
			delete(d.open, jti)
		}
	}
}
