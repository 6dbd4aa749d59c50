package bookings

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryRepository keeps bookings in insertion order. Writes are serialized;
// readers get copies so no partial record is ever observed.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []Booking
	index map[string]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{index: make(map[string]int)}
}

func (r *MemoryRepository) Insert(ctx context.Context, item Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[item.ID]; exists {
		return fmt.Errorf("duplicate booking id %q", item.ID)
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Booking, 0)
	var skipped int64
	for _, b := range r.items {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		items = append(items, b)
		if limit > 0 && int64(len(items)) == limit {
			break
		}
	}
	return items, nil
}

func (r *MemoryRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if filter.Status == "" {
		return int64(len(r.items)), nil
	}
	var n int64
	for _, b := range r.items {
		if b.Status == filter.Status {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (Booking, error) {
	if err := ctx.Err(); err != nil {
		return Booking{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Booking{}, ErrNotFound
	}
	return r.items[i], nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Booking, error) {
	if err := ctx.Err(); err != nil {
		return Booking{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok || r.items[i].Status != from {
		return Booking{}, ErrNotFound
	}
	r.items[i].Status = to
	r.items[i].UpdatedAt = at
	return r.items[i], nil
}

// Connected is always true; the memory store has no connection to lose.
func (r *MemoryRepository) Connected() bool {
	return true
}
