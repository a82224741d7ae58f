package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/milsabores/storefront/internal/catalog"
)

// Memory is the in-memory reference implementation of Store. It backs tests
// across the repo and carries the same semantics as Repo.
type Memory struct {
	mu    sync.Mutex
	lines map[string]map[int64]*Line
}

func NewMemory() *Memory {
	return &Memory{lines: make(map[string]map[int64]*Line)}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Add(_ context.Context, userEmail string, p catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := m.lines[userEmail]
	if user == nil {
		user = make(map[int64]*Line)
		m.lines[userEmail] = user
	}
	if l, ok := user[p.ID]; ok {
		l.Quantity++
		return nil
	}
	user[p.ID] = &Line{Product: p, Quantity: 1}
	return nil
}

func (m *Memory) Increase(_ context.Context, userEmail string, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lines[userEmail][productID]; ok {
		l.Quantity++
	}
	return nil
}

func (m *Memory) Decrease(_ context.Context, userEmail string, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lines[userEmail][productID]
	if !ok {
		return nil
	}
	if l.Quantity > 1 {
		l.Quantity--
		return nil
	}
	delete(m.lines[userEmail], productID)
	return nil
}

func (m *Memory) Remove(_ context.Context, userEmail string, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines[userEmail], productID)
	return nil
}

func (m *Memory) Clear(_ context.Context, userEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, userEmail)
	return nil
}

func (m *Memory) Lines(_ context.Context, userEmail string) ([]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := m.lines[userEmail]
	out := make([]Line, 0, len(user))
	for _, l := range user {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.ID < out[j].Product.ID })
	return out, nil
}
