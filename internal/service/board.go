package service

import (
	"sync"

	"taskhub/internal/domain"
)

// Board holds the authoritative in-memory task list and fans snapshots out to
// subscribers. Each subscriber channel buffers one snapshot; a slow reader
// only ever sees the latest list.
type Board struct {
	mu      sync.RWMutex
	tasks   []domain.Task
	subs    map[int]chan []domain.Task
	nextSub int
}

func NewBoard() *Board {
	return &Board{
		tasks: []domain.Task{},
		subs:  make(map[int]chan []domain.Task),
	}
}

// Tasks returns a copy of the current list.
func (b *Board) Tasks() []domain.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneTasks(b.tasks)
}

// Replace adopts tasks wholesale and publishes them.
func (b *Board) Replace(tasks []domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tasks = cloneTasks(tasks)
	for _, ch := range b.subs {
		snap := cloneTasks(b.tasks)
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Subscribe returns a channel of list snapshots and a cancel func that
// closes it.
func (b *Board) Subscribe() (<-chan []domain.Task, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	ch := make(chan []domain.Task, 1)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(ch)
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
