package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

const cartColumns = `id, menu_id, email, name, image, price`

func scanCart(row scanner) (models.CartItem, error) {
	var c models.CartItem
	var id uuid.UUID
	err := row.Scan(&id, &c.MenuID, &c.Email, &c.Name, &c.Image, &c.Price)
	c.ID = id.String()
	return c, err
}

func (s *PostgresStore) ListCartsByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+cartColumns+` FROM carts
		WHERE email = $1
		ORDER BY created_at`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.CartItem, 0)
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (s *PostgresStore) GetCart(ctx context.Context, id string) (*models.CartItem, error) {
	cartID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, err := scanCart(s.db.QueryRowContext(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, cartID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) CreateCart(ctx context.Context, item *models.CartItem) (models.InsertResult, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO carts (menu_id, email, name, image, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.MenuID, item.Email, item.Name, item.Image, item.Price).Scan(&id)
	if err != nil {
		return models.InsertResult{}, err
	}
	return insertResult(id), nil
}

func (s *PostgresStore) DeleteCart(ctx context.Context, id string) (models.DeleteResult, error) {
	cartID, err := parseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return deleteResult(res)
}
