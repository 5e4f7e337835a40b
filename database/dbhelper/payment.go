package dbhelper

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

const paymentColumns = `id, email, amount, transaction_id, date, cart_ids, menu_ids, status`

func (s *PostgresStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.listPayments(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY date DESC`)
}

func (s *PostgresStore) ListPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return s.listPayments(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE email = $1
		ORDER BY date DESC`, email)
}

func (s *PostgresStore) listPayments(ctx context.Context, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		var id uuid.UUID
		if err := rows.Scan(&id, &p.Email, &p.Amount, &p.TransactionID, &p.Date,
			pq.Array(&p.CartIDs), pq.Array(&p.MenuIDs), &p.Status); err != nil {
			return nil, err
		}
		p.ID = id.String()
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *PostgresStore) Checkout(ctx context.Context, payment *models.Payment) (models.CheckoutResult, error) {
	cartIDs := make([]string, 0, len(payment.CartIDs))
	for _, id := range payment.CartIDs {
		parsed, err := parseID(id)
		if err != nil {
			return models.CheckoutResult{}, err
		}
		cartIDs = append(cartIDs, parsed.String())
	}

	var out models.CheckoutResult
	err := database.Tx(ctx, s.db, func(tx *sql.Tx) error {
		deleted, err := deleteCarts(ctx, tx, payment.Email, cartIDs)
		if err != nil {
			return err
		}
		id, err := insertPayment(ctx, tx, payment)
		if err != nil {
			return err
		}
		out = models.CheckoutResult{Result: insertResult(id), DeleteCartInfo: deleted}
		return nil
	})
	return out, err
}

func deleteCarts(ctx context.Context, exec SQLExecutor, email string, ids []string) (models.DeleteResult, error) {
	if len(ids) == 0 {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	res, err := exec.ExecContext(ctx, `
		DELETE FROM carts
		WHERE email = $1 AND id = ANY($2::uuid[])`, email, pq.Array(ids))
	if err != nil {
		return models.DeleteResult{}, err
	}
	return deleteResult(res)
}

func insertPayment(ctx context.Context, exec SQLExecutor, p *models.Payment) (uuid.UUID, error) {
	var id uuid.UUID
	err := exec.QueryRowContext(ctx, `
		INSERT INTO payments (email, amount, transaction_id, date, cart_ids, menu_ids, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Email, p.Amount, p.TransactionID, p.Date,
		pq.Array(nonNil(p.CartIDs)), pq.Array(nonNil(p.MenuIDs)), p.Status).Scan(&id)
	return id, err
}

func (s *PostgresStore) UpdatePayment(ctx context.Context, id string, update models.PaymentUpdate) (models.UpdateResult, error) {
	paymentID, err := parseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE payments SET
			status = COALESCE($2, status),
			transaction_id = COALESCE($3, transaction_id)
		WHERE id = $1`,
		paymentID, update.Status, update.TransactionID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
