package mongostore

import (
	"context"

	"github.com/ray-remotestate/bistro/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (s *Store) ListCartsByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	return findAll[models.CartItem](ctx, s.carts, bson.M{"email": email})
}

func (s *Store) GetCart(ctx context.Context, id string) (*models.CartItem, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.CartItem](ctx, s.carts, filter)
}

func (s *Store) CreateCart(ctx context.Context, item *models.CartItem) (models.InsertResult, error) {
	doc := *item
	doc.ID = ""
	return insertOne(ctx, s.carts, doc)
}

func (s *Store) DeleteCart(ctx context.Context, id string) (models.DeleteResult, error) {
	return deleteByID(ctx, s.carts, id)
}
