package payment

import (
	"context"
	"errors"
	"math"
	"testing"
)

type mockCreator struct {
	CreateIntentFunc func(ctx context.Context, amount int64, currency string) (string, error)
	calls            int
}

func (m *mockCreator) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	m.calls++
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, amount, currency)
	}
	return "secret", nil
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{0, 0},
		{0.001, 0},
		{0.009, 0},
		{0.5, 50},
		{1, 100},
		{12.5, 1250},
		{99.999, 9999},
		{-3, -300},
	}
	for _, tt := range tests {
		if got := ToMinorUnits(tt.price); got != tt.want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestService_CreateIntent(t *testing.T) {
	var gotAmount int64
	var gotCurrency string
	creator := &mockCreator{
		CreateIntentFunc: func(ctx context.Context, amount int64, currency string) (string, error) {
			gotAmount, gotCurrency = amount, currency
			return "pi_123_secret_456", nil
		},
	}
	svc := NewService(creator, "")

	secret, err := svc.CreateIntent(context.Background(), 25.5)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if secret != "pi_123_secret_456" {
		t.Errorf("Expected client secret pi_123_secret_456, got %q", secret)
	}
	if gotAmount != 2550 {
		t.Errorf("Expected amount 2550, got %d", gotAmount)
	}
	if gotCurrency != DefaultCurrency {
		t.Errorf("Expected currency %s, got %s", DefaultCurrency, gotCurrency)
	}
}

func TestService_CreateIntent_NonPositive(t *testing.T) {
	for _, price := range []float64{0, -1, 0.004} {
		creator := &mockCreator{}
		svc := NewService(creator, "usd")

		_, err := svc.CreateIntent(context.Background(), price)
		if !errors.Is(err, ErrNonPositiveAmount) {
			t.Errorf("price %v: expected ErrNonPositiveAmount, got %v", price, err)
		}
		if creator.calls != 0 {
			t.Errorf("price %v: provider should not be called, got %d calls", price, creator.calls)
		}
	}
}

func TestService_CreateIntent_TooLarge(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  error
	}{
		{"largest accepted", 9e16, nil},
		{"just above the int64 cent range", 9.3e16, ErrAmountTooLarge},
		{"overflows int64 cents", 1e19, ErrAmountTooLarge},
		{"infinity", math.Inf(1), ErrAmountTooLarge},
		{"not a number", math.NaN(), ErrAmountTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &mockCreator{}
			_, err := NewService(creator, "usd").CreateIntent(context.Background(), tt.price)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want != nil && creator.calls != 0 {
				t.Errorf("provider should not be called, got %d calls", creator.calls)
			}
		})
	}
}

func TestService_CreateIntent_NotConfigured(t *testing.T) {
	svc := NewService(nil, "usd")

	_, err := svc.CreateIntent(context.Background(), 10)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestService_CreateIntent_ProviderError(t *testing.T) {
	upstream := errors.New("card declined")
	svc := NewService(&mockCreator{
		CreateIntentFunc: func(ctx context.Context, amount int64, currency string) (string, error) {
			return "", upstream
		},
	}, "usd")

	_, err := svc.CreateIntent(context.Background(), 10)
	if !errors.Is(err, upstream) {
		t.Errorf("Expected wrapped provider error, got %v", err)
	}
}
