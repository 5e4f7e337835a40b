package mongostore

import (
	"context"

	"github.com/ray-remotestate/bistro/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) ListReviews(ctx context.Context) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})
	return findAll[models.Review](ctx, s.reviews, bson.M{}, opts)
}

func (s *Store) ListReviewsByEmail(ctx context.Context, email string) ([]models.Review, error) {
	return findAll[models.Review](ctx, s.reviews, bson.M{"email": email})
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) (models.InsertResult, error) {
	doc := *review
	doc.ID = ""
	return insertOne(ctx, s.reviews, doc)
}
