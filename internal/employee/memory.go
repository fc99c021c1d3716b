package employee

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory behind a lock. It
// backs dev setups and tests when Postgres is not around; everything it
// hands out is a copy, so callers can never mutate stored state.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Employee
}

// NewMemoryRepository creates an empty transient store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Employee)}
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Employee, 0, len(r.records))
	for _, e := range r.records {
		out = append(out, e.Clone())
	}
	return out, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.records[id]; ok {
		c := e.Clone()
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.records {
		if e.Email == email {
			c := e.Clone()
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) Create(_ context.Context, e Employee) (Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.Email == e.Email {
			return Employee{}, ErrEmailTaken
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	r.records[e.ID] = e.Clone()
	return e, nil
}

func (r *MemoryRepository) UpdateByID(_ context.Context, id string, upd Update) (*Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	if upd.Email != nil {
		for _, existing := range r.records {
			if existing.ID != id && existing.Email == *upd.Email {
				return nil, ErrEmailTaken
			}
		}
	}
	upd.ApplyTo(&e)
	r.records[id] = e
	c := e.Clone()
	return &c, nil
}

// DeleteByID removes a record; deleting an unknown id is a no-op.
func (r *MemoryRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

// InsertMany bulk-loads seed data. Rows with a taken email are skipped
// rather than failing the whole batch.
func (r *MemoryRepository) InsertMany(_ context.Context, items []Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	taken := make(map[string]bool, len(r.records))
	for _, e := range r.records {
		taken[e.Email] = true
	}
	for _, e := range items {
		if taken[e.Email] {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Date.IsZero() {
			e.Date = time.Now().UTC()
		}
		r.records[e.ID] = e.Clone()
		taken[e.Email] = true
	}
	return nil
}
