package models

import (
	"time"
)

const PaymentStatusPending = "pending"

type Payment struct {
	ID            string    `db:"id" bson:"_id,omitempty" json:"_id"`
	Email         string    `db:"email" bson:"email" json:"email"`
	Amount        float64   `db:"amount" bson:"amount" json:"amount"`
	TransactionID string    `db:"transaction_id" bson:"transactionId" json:"transactionId"`
	Date          time.Time `db:"date" bson:"date" json:"date"`
	CartIDs       []string  `db:"cart_ids" bson:"cartIds" json:"cartIds"`
	MenuIDs       []string  `db:"menu_ids" bson:"menuIds" json:"menuIds"`
	Status        string    `db:"status" bson:"status" json:"status"`
}

type PaymentUpdate struct {
	Status        *string `json:"status,omitempty"`
	TransactionID *string `json:"transactionId,omitempty"`
}

func (p PaymentUpdate) IsEmpty() bool {
	return p.Status == nil && p.TransactionID == nil
}

// AdminStats counts each collection and sums the paid amounts.
type AdminStats struct {
	Customers int64   `json:"customers"`
	Products  int64   `json:"products"`
	Orders    int64   `json:"orders"`
	Total     float64 `json:"total"`
}
