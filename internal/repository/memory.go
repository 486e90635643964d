package repository

import (
	"context"
	"slices"
	"sync"

	"productapi/internal/domain"
)

// MemoryStore in-memory хранилище товаров и простой генератор ID
type MemoryStore struct {
	mu           sync.RWMutex
	nextID       int64
	productsByID map[int64]domain.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:       1,
		productsByID: make(map[int64]domain.Product),
	}
}

var _ domain.ProductRepository = (*MemoryStore)(nil)

func (m *MemoryStore) Save(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.nextID
	}
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	m.productsByID[p.ID] = p
	return p, nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.productsByID[id]
	if !ok {
		return domain.Product{}, domain.ErrRecordNotFound
	}
	return p, nil
}

// FindAll возвращает товары, упорядоченные по ID
func (m *MemoryStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0, len(m.productsByID))
	for _, p := range m.productsByID {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// DeleteByID ничего не делает для неизвестного ID
func (m *MemoryStore) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.productsByID, id)
	return nil
}
