package dbhelper

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

// newTestStore connects to TEST_DATABASE_URL, migrates it and empties every
// table. Tests are skipped when it is not set.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.ConnectAndMigrate(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE users, menus, reviews, carts, payments`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	s := New(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPostgresUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res, err := s.CreateUserIfAbsent(ctx, &models.User{Name: "A", Email: "a@x.com", CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("CreateUserIfAbsent: %v", err)
	}
	if _, err := s.CreateUserIfAbsent(ctx, &models.User{Email: "a@x.com"}); !errors.Is(err, database.ErrUserExists) {
		t.Fatalf("duplicate: err = %v, want ErrUserExists", err)
	}

	u, err := s.GetUserByID(ctx, res.InsertedID)
	if err != nil || u.Email != "a@x.com" {
		t.Fatalf("GetUserByID = %+v, %v", u, err)
	}

	role := models.RoleAdmin
	if _, err := s.UpdateUserByEmail(ctx, "a@x.com", models.UserUpdate{Role: &role}); err != nil {
		t.Fatalf("UpdateUserByEmail: %v", err)
	}
	u, _ = s.GetUserByEmail(ctx, "a@x.com")
	if !u.Role.IsAdmin() || u.Name != "A" {
		t.Errorf("user = %+v", u)
	}

	if _, err := s.GetUserByID(ctx, "nope"); !errors.Is(err, database.ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}

func TestPostgresCheckout(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	menu, _ := s.CreateMenu(ctx, &models.MenuItem{Name: "Soup", Category: "soup", Price: 5})
	mine, _ := s.CreateCart(ctx, &models.CartItem{Email: "a@x.com", MenuID: menu.InsertedID})
	other, _ := s.CreateCart(ctx, &models.CartItem{Email: "b@x.com", MenuID: menu.InsertedID})

	res, err := s.Checkout(ctx, &models.Payment{
		Email:   "a@x.com",
		Amount:  5,
		Date:    time.Now(),
		Status:  models.PaymentStatusPending,
		CartIDs: []string{mine.InsertedID, other.InsertedID},
		MenuIDs: []string{menu.InsertedID},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if res.DeleteCartInfo.DeletedCount != 1 {
		t.Errorf("deletedCount = %d, want 1", res.DeleteCartInfo.DeletedCount)
	}
	if _, err := s.GetCart(ctx, other.InsertedID); err != nil {
		t.Errorf("other user's cart: %v", err)
	}

	payments, err := s.ListPaymentsByEmail(ctx, "a@x.com")
	if err != nil || len(payments) != 1 || len(payments[0].MenuIDs) != 1 {
		t.Fatalf("payments = %+v, %v", payments, err)
	}

	sales, err := s.CategorySales(ctx)
	if err != nil {
		t.Fatalf("CategorySales: %v", err)
	}
	if len(sales) != 1 || sales[0].TotalSales != 1 || sales[0].TotalRevenue != 5 {
		t.Errorf("sales = %+v", sales)
	}

	stats, err := s.AdminStats(ctx)
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}
	if stats.Products != 1 || stats.Orders != 1 || stats.Total != 5 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestPostgresCategorySalesEmpty(t *testing.T) {
	s := newTestStore(t)

	sales, err := s.CategorySales(context.Background())
	if err != nil {
		t.Fatalf("CategorySales: %v", err)
	}
	if sales == nil || len(sales) != 0 {
		t.Errorf("sales = %#v, want empty non-nil slice", sales)
	}
}
