package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonPositiveAmount = errors.New("price must be greater than zero")
	ErrNotConfigured     = errors.New("payment provider is not configured")
	ErrAmountTooLarge    = errors.New("price is too large")
)

const DefaultCurrency = "usd"

// IntentCreator creates a provider side payment intent for an amount in
// minor units and returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type Service struct {
	creator  IntentCreator
	currency string
}

// NewService wires the adapter. A nil creator leaves payments disabled and
// every call fails with ErrNotConfigured.
func NewService(creator IntentCreator, currency string) *Service {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Service{creator: creator, currency: currency}
}

// ToMinorUnits converts a price in currency units to cents, truncating any
// fraction of a cent. Cent amounts at or above math.MaxInt64 must be rejected first.
func ToMinorUnits(price float64) int64 {
	return int64(price * 100)
}

// CreateIntent is not idempotent: calling it twice creates two intents upstream.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	if math.IsNaN(price) || price*100 >= math.MaxInt64 {
		return "", ErrAmountTooLarge
	}
	amount := ToMinorUnits(price)
	if amount <= 0 {
		return "", ErrNonPositiveAmount
	}
	if s.creator == nil {
		return "", ErrNotConfigured
	}

	secret, err := s.creator.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return secret, nil
}
