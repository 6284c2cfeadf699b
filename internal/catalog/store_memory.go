package catalog

import (
	"context"
	"sync"
)

// MemStore keeps products in insertion order behind a single RWMutex, so
// every mutation is serialised and id assignment cannot race.
type MemStore struct {
	mu    sync.RWMutex
	items []Product
}

func NewMemStore(seed []Product) *MemStore {
	items := make([]Product, len(seed))
	copy(items, seed)
	return &MemStore{items: items}
}

func NewStore() *MemStore {
	return NewMemStore(Seed())
}

func (s *MemStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	return s.filter(func(Product) bool { return true }), nil
}

func (s *MemStore) GetByID(ctx context.Context, id int) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.ID == id }), nil
}

func (s *MemStore) GetByBrand(ctx context.Context, brand int) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.Brand == brand }), nil
}

func (s *MemStore) GetByLine(ctx context.Context, line int) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.Line == line }), nil
}

// Create appends a product with id max(existing)+1.
func (s *MemStore) Create(ctx context.Context, f Fields) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return Product{}, ErrEmptyCatalog
	}

	maxID := s.items[0].ID
	for _, p := range s.items[1:] {
		maxID = max(maxID, p.ID)
	}

	p := Product{ID: maxID + 1}
	f.apply(&p)
	s.items = append(s.items, p)
	return p, nil
}

// Update overwrites every product with the given id and returns the last one.
func (s *MemStore) Update(ctx context.Context, id int, f Fields) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		out   Product
		found bool
	)
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		f.apply(&s.items[i])
		out, found = s.items[i], true
	}

	if !found {
		return Product{}, ErrNotFound
	}
	return out, nil
}

func (s *MemStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Product, 0, len(s.items))
	for _, p := range s.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if len(kept) == len(s.items) {
		return ErrNotFound
	}
	s.items = kept
	return nil
}

func (s *MemStore) filter(keep func(Product) bool) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.items))
	for _, p := range s.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
