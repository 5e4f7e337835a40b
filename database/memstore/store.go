package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

// Store keeps every collection in memory. It is used for local runs
// (DB_DRIVER=memory) and as the backend of the handler tests. Collections
// are slices so listing keeps insertion order.
type Store struct {
	mu sync.RWMutex

	users    []models.User
	menus    []models.MenuItem
	reviews  []models.Review
	carts    []models.CartItem
	payments []models.Payment
}

var _ database.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func newID() string {
	return uuid.NewString()
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return database.ErrInvalidID
	}
	return nil
}

func inserted(id string) models.InsertResult {
	return models.InsertResult{Acknowledged: true, InsertedID: id}
}

func updated(n int64) models.UpdateResult {
	return models.UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}
}

func deleted(n int64) models.DeleteResult {
	return models.DeleteResult{Acknowledged: true, DeletedCount: n}
}

// Users

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]models.User, 0, len(s.users)), s.users...), nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Store) CreateUserIfAbsent(ctx context.Context, user *models.User) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return models.InsertResult{}, database.ErrUserExists
		}
	}
	u := *user
	u.ID = newID()
	s.users = append(s.users, u)
	return inserted(u.ID), nil
}

func (s *Store) UpdateUserByEmail(ctx context.Context, email string, update models.UserUpdate) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for i := range s.users {
		if s.users[i].Email != email {
			continue
		}
		if update.Name != nil {
			s.users[i].Name = *update.Name
		}
		if update.PhotoURL != nil {
			s.users[i].PhotoURL = *update.PhotoURL
		}
		if update.Role != nil {
			s.users[i].Role = *update.Role
		}
		n++
	}
	return updated(n), nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (models.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return models.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return deleted(1), nil
		}
	}
	return deleted(0), nil
}

// Menus

func (s *Store) ListMenus(ctx context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]models.MenuItem, 0, len(s.menus)), s.menus...), nil
}

func (s *Store) GetMenu(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m, ok := s.findMenu(id); ok {
		return &m, nil
	}
	return nil, database.ErrNotFound
}

func (s *Store) findMenu(id string) (models.MenuItem, bool) {
	for _, m := range s.menus {
		if m.ID == id {
			return m, true
		}
	}
	return models.MenuItem{}, false
}

func (s *Store) CountMenus(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.menus)), nil
}

func (s *Store) CreateMenu(ctx context.Context, item *models.MenuItem) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := *item
	m.ID = newID()
	s.menus = append(s.menus, m)
	return inserted(m.ID), nil
}

func (s *Store) UpdateMenu(ctx context.Context, id string, update models.MenuUpdate) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.menus {
		if s.menus[i].ID != id {
			continue
		}
		m := &s.menus[i]
		if update.Name != nil {
			m.Name = *update.Name
		}
		if update.Recipe != nil {
			m.Recipe = *update.Recipe
		}
		if update.Image != nil {
			m.Image = *update.Image
		}
		if update.Category != nil {
			m.Category = *update.Category
		}
		if update.Price != nil {
			m.Price = *update.Price
		}
		return updated(1), nil
	}
	return updated(0), nil
}

func (s *Store) DeleteMenu(ctx context.Context, id string) (models.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return models.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.menus {
		if m.ID == id {
			s.menus = append(s.menus[:i], s.menus[i+1:]...)
			return deleted(1), nil
		}
	}
	return deleted(0), nil
}

// Reviews

func (s *Store) ListReviews(ctx context.Context) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := append(make([]models.Review, 0, len(s.reviews)), s.reviews...)
	sort.SliceStable(res, func(i, j int) bool { return res[i].Rating > res[j].Rating })
	return res, nil
}

func (s *Store) ListReviewsByEmail(ctx context.Context, email string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.Email == email {
			res = append(res, r)
		}
	}
	return res, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *review
	r.ID = newID()
	s.reviews = append(s.reviews, r)
	return inserted(r.ID), nil
}

// Carts

func (s *Store) ListCartsByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]models.CartItem, 0)
	for _, c := range s.carts {
		if c.Email == email {
			res = append(res, c)
		}
	}
	return res, nil
}

func (s *Store) GetCart(ctx context.Context, id string) (*models.CartItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.carts {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Store) CreateCart(ctx context.Context, item *models.CartItem) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *item
	c.ID = newID()
	s.carts = append(s.carts, c)
	return inserted(c.ID), nil
}

func (s *Store) DeleteCart(ctx context.Context, id string) (models.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return models.DeleteResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.carts {
		if c.ID == id {
			s.carts = append(s.carts[:i], s.carts[i+1:]...)
			return deleted(1), nil
		}
	}
	return deleted(0), nil
}

// Payments

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return newestFirst(s.payments, func(models.Payment) bool { return true }), nil
}

func (s *Store) ListPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return newestFirst(s.payments, func(p models.Payment) bool { return p.Email == email }), nil
}

func newestFirst(payments []models.Payment, keep func(models.Payment) bool) []models.Payment {
	res := make([]models.Payment, 0)
	for _, p := range payments {
		if keep(p) {
			res = append(res, p)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Date.After(res[j].Date) })
	return res
}

// Checkout holds the write lock for both steps, so no reader sees the carts
// gone without the payment.
func (s *Store) Checkout(ctx context.Context, payment *models.Payment) (models.CheckoutResult, error) {
	wanted := make(map[string]bool, len(payment.CartIDs))
	for _, id := range payment.CartIDs {
		if err := checkID(id); err != nil {
			return models.CheckoutResult{}, err
		}
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.carts[:0:0]
	var n int64
	for _, c := range s.carts {
		if wanted[c.ID] && c.Email == payment.Email {
			n++
			continue
		}
		kept = append(kept, c)
	}
	s.carts = kept

	p := *payment
	p.ID = newID()
	p.CartIDs = append([]string{}, payment.CartIDs...)
	p.MenuIDs = append([]string{}, payment.MenuIDs...)
	s.payments = append(s.payments, p)

	return models.CheckoutResult{Result: inserted(p.ID), DeleteCartInfo: deleted(n)}, nil
}

func (s *Store) UpdatePayment(ctx context.Context, id string, update models.PaymentUpdate) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.payments {
		if s.payments[i].ID != id {
			continue
		}
		if update.Status != nil {
			s.payments[i].Status = *update.Status
		}
		if update.TransactionID != nil {
			s.payments[i].TransactionID = *update.TransactionID
		}
		return updated(1), nil
	}
	return updated(0), nil
}

// Aggregates

func (s *Store) CategorySales(ctx context.Context) ([]models.CategorySales, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := make(map[string]*models.CategorySales)
	for _, p := range s.payments {
		for _, menuID := range p.MenuIDs {
			m, ok := s.findMenu(menuID)
			if !ok {
				continue
			}
			cs, ok := byCategory[m.Category]
			if !ok {
				cs = &models.CategorySales{Category: m.Category}
				byCategory[m.Category] = cs
			}
			cs.TotalSales++
			cs.TotalRevenue += m.Price
		}
	}

	res := make([]models.CategorySales, 0, len(byCategory))
	for _, cs := range byCategory {
		res = append(res, *cs)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Category < res[j].Category })
	return res, nil
}

func (s *Store) AdminStats(ctx context.Context) (models.AdminStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := models.AdminStats{
		Customers: int64(len(s.users)),
		Products:  int64(len(s.menus)),
		Orders:    int64(len(s.payments)),
	}
	for _, p := range s.payments {
		st.Total += p.Amount
	}
	return st, nil
}
