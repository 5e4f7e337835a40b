package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

func TestCreateUserIfAbsentConcurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateUserIfAbsent(ctx, &models.User{Email: "a@x.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, database.ErrUserExists):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("created %d users, want 1", created)
	}
}

func TestGetByIDErrors(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetMenu(ctx, "nope"); !errors.Is(err, database.ErrInvalidID) {
		t.Errorf("malformed id: err = %v, want ErrInvalidID", err)
	}
	if _, err := s.GetMenu(ctx, "6f1c2b1e-8f5a-4b9e-9b1a-3c2d4e5f6a7b"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestCheckoutOnlyRemovesPayerCarts(t *testing.T) {
	s := New()
	ctx := context.Background()

	mine, _ := s.CreateCart(ctx, &models.CartItem{Email: "a@x.com", MenuID: "m1"})
	other, _ := s.CreateCart(ctx, &models.CartItem{Email: "b@x.com", MenuID: "m1"})
	kept, _ := s.CreateCart(ctx, &models.CartItem{Email: "a@x.com", MenuID: "m2"})

	res, err := s.Checkout(ctx, &models.Payment{
		Email:   "a@x.com",
		CartIDs: []string{mine.InsertedID, other.InsertedID},
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
	if _, err := s.GetCart(ctx, kept.InsertedID); err != nil {
		t.Errorf("unreferenced cart: %v", err)
	}
	if _, err := s.GetCart(ctx, mine.InsertedID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("paid cart still present: %v", err)
	}
}

func TestCheckoutInvalidIDLeavesState(t *testing.T) {
	s := New()
	ctx := context.Background()
	cart, _ := s.CreateCart(ctx, &models.CartItem{Email: "a@x.com"})

	_, err := s.Checkout(ctx, &models.Payment{Email: "a@x.com", CartIDs: []string{cart.InsertedID, "bad"}})
	if !errors.Is(err, database.ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
	if _, err := s.GetCart(ctx, cart.InsertedID); err != nil {
		t.Errorf("cart removed by a failed checkout: %v", err)
	}
	if payments, _ := s.ListPayments(ctx); len(payments) != 0 {
		t.Errorf("payment recorded by a failed checkout")
	}
}

func TestPaymentsNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, email := range []string{"a@x.com", "b@x.com", "a@x.com"} {
		p := &models.Payment{Email: email, Amount: float64(i + 1), Date: base.Add(time.Duration(i) * time.Hour)}
		if _, err := s.Checkout(ctx, p); err != nil {
			t.Fatalf("Checkout: %v", err)
		}
	}

	all, _ := s.ListPayments(ctx)
	if len(all) != 3 || all[0].Amount != 3 || all[2].Amount != 1 {
		t.Errorf("all payments = %+v", all)
	}
	mine, _ := s.ListPaymentsByEmail(ctx, "a@x.com")
	if len(mine) != 2 || mine[0].Amount != 3 {
		t.Errorf("a's payments = %+v", mine)
	}
}

func TestCategorySalesSkipsUnknownMenus(t *testing.T) {
	s := New()
	ctx := context.Background()

	menu, _ := s.CreateMenu(ctx, &models.MenuItem{Name: "Soup", Category: "soup", Price: 4})
	_, _ = s.Checkout(ctx, &models.Payment{Email: "a@x.com", MenuIDs: []string{menu.InsertedID, "gone"}})

	sales, err := s.CategorySales(ctx)
	if err != nil {
		t.Fatalf("CategorySales: %v", err)
	}
	if len(sales) != 1 || sales[0] != (models.CategorySales{Category: "soup", TotalSales: 1, TotalRevenue: 4}) {
		t.Errorf("sales = %+v", sales)
	}
}

func TestUpdateUserByEmailPartial(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.CreateUserIfAbsent(ctx, &models.User{Name: "A", Email: "a@x.com", PhotoURL: "p"})

	name := "Alice"
	res, err := s.UpdateUserByEmail(ctx, "a@x.com", models.UserUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateUserByEmail: %v", err)
	}
	if res.MatchedCount != 1 {
		t.Errorf("matchedCount = %d", res.MatchedCount)
	}

	u, _ := s.GetUserByEmail(ctx, "a@x.com")
	if u.Name != "Alice" || u.PhotoURL != "p" {
		t.Errorf("user = %+v", u)
	}
}
