package repository

import (
	"context"
	"sort"
	"sync"

	"storefront/models"
)

// NewMemoryStore returns mutex-guarded in-process repositories, used by
// tests and STORE_DRIVER=memory. State is lost on restart.
func NewMemoryStore() *Store {
	return &Store{
		Products: &memoryProducts{},
		Orders:   &memoryOrders{},
		Settings: &memorySettings{},
		Users:    &memoryUsers{users: map[string]models.User{}},
	}
}

type memoryProducts struct {
	mu       sync.RWMutex
	products []models.Product
	seq      int
}

func cloneProduct(p models.Product) models.Product {
	p.Gallery = append([]string(nil), p.Gallery...)
	return p
}

func (m *memoryProducts) FindAll(_ context.Context, category string) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		if category == "" || p.Category == category {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (m *memoryProducts) FindByID(_ context.Context, id int) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			c := cloneProduct(p)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryProducts) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(product)
	return nil
}

func (m *memoryProducts) insert(product *models.Product) {
	m.seq++
	product.ID = m.seq
	m.products = append(m.products, cloneProduct(*product))
}

func (m *memoryProducts) CreateMany(_ context.Context, products []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range products {
		m.insert(&products[i])
	}
	return nil
}

func (m *memoryProducts) Update(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == product.ID {
			m.products[i] = cloneProduct(*product)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryProducts) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryProducts) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

type memoryOrders struct {
	mu     sync.RWMutex
	orders []models.Order
	seq    int
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	if o.Customer != nil {
		c := *o.Customer
		o.Customer = &c
	}
	return o
}

func (m *memoryOrders) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.OrderID == order.OrderID || (order.TrackingToken != "" && o.TrackingToken == order.TrackingToken) {
			return ErrDuplicate
		}
	}
	m.seq++
	order.ID = m.seq
	m.orders = append(m.orders, cloneOrder(*order))
	return nil
}

func (m *memoryOrders) FindAll(_ context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, cloneOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memoryOrders) find(match func(models.Order) bool) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, o := range m.orders {
		if match(o) {
			c := cloneOrder(o)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryOrders) FindByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	return m.find(func(o models.Order) bool { return o.OrderID == orderID })
}

func (m *memoryOrders) FindByTrackingToken(_ context.Context, token string) (*models.Order, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return m.find(func(o models.Order) bool { return o.TrackingToken == token })
}

func (m *memoryOrders) UpdateStatus(_ context.Context, orderID, status string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].OrderID == orderID {
			m.orders[i].Status = status
			m.orders[i].UpdatedAt = now()
			c := cloneOrder(m.orders[i])
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryOrders) Delete(_ context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, o := range m.orders {
		if o.OrderID == orderID {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

type memorySettings struct {
	mu       sync.RWMutex
	settings *models.Settings
}

func (m *memorySettings) Get(_ context.Context) (*models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return nil, ErrNotFound
	}
	s := *m.settings
	return &s, nil
}

func (m *memorySettings) Save(_ context.Context, settings *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := *settings
	m.settings = &s
	return nil
}

type memoryUsers struct {
	mu    sync.RWMutex
	users map[string]models.User
	seq   int
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) Upsert(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.users[user.Email]; ok {
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	} else {
		m.seq++
		user.ID = m.seq
	}
	m.users[user.Email] = *user
	return nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[email]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = now()
	m.users[email] = u
	return nil
}
