package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

const menuColumns = `id, name, recipe, image, category, price`

func scanMenu(row scanner) (models.MenuItem, error) {
	var m models.MenuItem
	var id uuid.UUID
	err := row.Scan(&id, &m.Name, &m.Recipe, &m.Image, &m.Category, &m.Price)
	m.ID = id.String()
	return m, err
}

func (s *PostgresStore) ListMenus(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (s *PostgresStore) GetMenu(ctx context.Context, id string) (*models.MenuItem, error) {
	menuID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m, err := scanMenu(s.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, menuID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) CountMenus(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menus`).Scan(&count)
	return count, err
}

func (s *PostgresStore) CreateMenu(ctx context.Context, item *models.MenuItem) (models.InsertResult, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO menus (name, recipe, image, category, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.Name, item.Recipe, item.Image, item.Category, item.Price).Scan(&id)
	if err != nil {
		return models.InsertResult{}, err
	}
	return insertResult(id), nil
}

func (s *PostgresStore) UpdateMenu(ctx context.Context, id string, update models.MenuUpdate) (models.UpdateResult, error) {
	menuID, err := parseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE menus SET
			name = COALESCE($2, name),
			recipe = COALESCE($3, recipe),
			image = COALESCE($4, image),
			category = COALESCE($5, category),
			price = COALESCE($6, price)
		WHERE id = $1`,
		menuID, update.Name, update.Recipe, update.Image, update.Category, update.Price)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res)
}

func (s *PostgresStore) DeleteMenu(ctx context.Context, id string) (models.DeleteResult, error) {
	menuID, err := parseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM menus WHERE id = $1`, menuID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return deleteResult(res)
}
