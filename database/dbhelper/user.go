package dbhelper

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
)

const userColumns = `id, name, email, photo_url, role, created_at`

func scanUser(row scanner) (models.User, error) {
	var u models.User
	var id uuid.UUID
	var role string
	err := row.Scan(&id, &u.Name, &u.Email, &u.PhotoURL, &role, &u.CreatedAt)
	u.ID = id.String()
	u.Role = models.Role(role)
	return u, err
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *PostgresStore) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) CreateUserIfAbsent(ctx context.Context, user *models.User) (models.InsertResult, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, photo_url, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`,
		user.Name, user.Email, user.PhotoURL, string(user.Role)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InsertResult{}, database.ErrUserExists
	}
	if err != nil {
		return models.InsertResult{}, err
	}
	return insertResult(id), nil
}

func (s *PostgresStore) UpdateUserByEmail(ctx context.Context, email string, update models.UserUpdate) (models.UpdateResult, error) {
	var role *string
	if update.Role != nil {
		r := string(*update.Role)
		role = &r
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			photo_url = COALESCE($3, photo_url),
			role = COALESCE($4, role)
		WHERE email = $1`,
		email, update.Name, update.PhotoURL, role)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateResult(res)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) (models.DeleteResult, error) {
	userID, err := parseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return deleteResult(res)
}
