package database

import (
	"context"
	"errors"

	"github.com/ray-remotestate/bistro/models"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrInvalidID  = errors.New("invalid id")
	ErrUserExists = errors.New("user already exists")
)

type UserStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUserIfAbsent inserts the user unless one with the same email
	// exists, in which case it returns ErrUserExists. Check and insert are a
	// single operation.
	CreateUserIfAbsent(ctx context.Context, user *models.User) (models.InsertResult, error)
	UpdateUserByEmail(ctx context.Context, email string, update models.UserUpdate) (models.UpdateResult, error)
	DeleteUser(ctx context.Context, id string) (models.DeleteResult, error)
}

type MenuStore interface {
	ListMenus(ctx context.Context) ([]models.MenuItem, error)
	GetMenu(ctx context.Context, id string) (*models.MenuItem, error)
	CountMenus(ctx context.Context) (int64, error)
	CreateMenu(ctx context.Context, item *models.MenuItem) (models.InsertResult, error)
	UpdateMenu(ctx context.Context, id string, update models.MenuUpdate) (models.UpdateResult, error)
	DeleteMenu(ctx context.Context, id string) (models.DeleteResult, error)
}

type ReviewStore interface {
	// ListReviews returns every review, highest rating first.
	ListReviews(ctx context.Context) ([]models.Review, error)
	ListReviewsByEmail(ctx context.Context, email string) ([]models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) (models.InsertResult, error)
}

type CartStore interface {
	ListCartsByEmail(ctx context.Context, email string) ([]models.CartItem, error)
	GetCart(ctx context.Context, id string) (*models.CartItem, error)
	CreateCart(ctx context.Context, item *models.CartItem) (models.InsertResult, error)
	DeleteCart(ctx context.Context, id string) (models.DeleteResult, error)
}

type PaymentStore interface {
	// ListPayments and ListPaymentsByEmail return the newest payment first.
	ListPayments(ctx context.Context) ([]models.Payment, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error)
	// Checkout removes the payer's cart items named in payment.CartIDs and
	// records the payment. Either both happen or neither does.
	Checkout(ctx context.Context, payment *models.Payment) (models.CheckoutResult, error)
	UpdatePayment(ctx context.Context, id string, update models.PaymentUpdate) (models.UpdateResult, error)
}

type StatsStore interface {
	CategorySales(ctx context.Context) ([]models.CategorySales, error)
	AdminStats(ctx context.Context) (models.AdminStats, error)
}

// Store is everything the handlers need from a backend. Postgres, MongoDB
// and in-memory implementations live in the sub packages.
type Store interface {
	UserStore
	MenuStore
	ReviewStore
	CartStore
	PaymentStore
	StatsStore

	Ping(ctx context.Context) error
	Close() error
}
