package dbhelper

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray-remotestate/bistro/models"
)

func (s *PostgresStore) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.listReviews(ctx, `
		SELECT id, name, email, details, rating FROM reviews
		ORDER BY rating DESC, created_at`)
}

func (s *PostgresStore) ListReviewsByEmail(ctx context.Context, email string) ([]models.Review, error) {
	return s.listReviews(ctx, `
		SELECT id, name, email, details, rating FROM reviews
		WHERE email = $1
		ORDER BY created_at`, email)
}

func (s *PostgresStore) listReviews(ctx context.Context, query string, args ...interface{}) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var r models.Review
		var id uuid.UUID
		if err := rows.Scan(&id, &r.Name, &r.Email, &r.Details, &r.Rating); err != nil {
			return nil, err
		}
		r.ID = id.String()
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *PostgresStore) CreateReview(ctx context.Context, review *models.Review) (models.InsertResult, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (name, email, details, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		review.Name, review.Email, review.Details, review.Rating).Scan(&id)
	if err != nil {
		return models.InsertResult{}, err
	}
	return insertResult(id), nil
}
