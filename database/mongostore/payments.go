package mongostore

import (
	"context"
	"fmt"

	"github.com/ray-remotestate/bistro/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return findAll[models.Payment](ctx, s.payments, bson.M{}, newestFirst())
}

func (s *Store) ListPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return findAll[models.Payment](ctx, s.payments, bson.M{"email": email}, newestFirst())
}

// Checkout runs the cart deletion and the payment insert in one
// transaction, which needs a replica set (Atlas clusters are).
func (s *Store) Checkout(ctx context.Context, payment *models.Payment) (models.CheckoutResult, error) {
	ids := make([]interface{}, 0, len(payment.CartIDs))
	for _, id := range payment.CartIDs {
		v, err := idValue(id)
		if err != nil {
			return models.CheckoutResult{}, err
		}
		ids = append(ids, v)
	}

	doc := *payment
	doc.ID = ""

	sess, err := s.client.StartSession()
	if err != nil {
		return models.CheckoutResult{}, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		del, err := s.carts.DeleteMany(sc, bson.M{
			"_id":   bson.M{"$in": ids},
			"email": payment.Email,
		})
		if err != nil {
			return nil, err
		}
		ins, err := s.payments.InsertOne(sc, doc)
		if err != nil {
			return nil, err
		}
		return models.CheckoutResult{
			Result:         models.InsertResult{Acknowledged: true, InsertedID: idString(ins.InsertedID)},
			DeleteCartInfo: models.DeleteResult{Acknowledged: true, DeletedCount: del.DeletedCount},
		}, nil
	})
	if err != nil {
		return models.CheckoutResult{}, err
	}
	return out.(models.CheckoutResult), nil
}

func (s *Store) UpdatePayment(ctx context.Context, id string, update models.PaymentUpdate) (models.UpdateResult, error) {
	set := bson.M{}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.TransactionID != nil {
		set["transactionId"] = *update.TransactionID
	}
	if len(set) == 0 {
		filter, err := byID(id)
		if err != nil {
			return models.UpdateResult{}, err
		}
		return matchOnly(ctx, s.payments, filter)
	}
	return updateByID(ctx, s.payments, id, set)
}
