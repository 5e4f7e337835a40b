package mongostore

import (
	"context"

	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, s.users, bson.M{})
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.User](ctx, s.users, filter)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"email": email})
}

// CreateUserIfAbsent upserts with $setOnInsert, so an existing document is
// never touched. The unique email index catches two upserts racing.
func (s *Store) CreateUserIfAbsent(ctx context.Context, user *models.User) (models.InsertResult, error) {
	doc := *user
	doc.ID = ""
	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return models.InsertResult{}, database.ErrUserExists
	}
	if err != nil {
		return models.InsertResult{}, err
	}
	if res.UpsertedCount == 0 {
		return models.InsertResult{}, database.ErrUserExists
	}
	return models.InsertResult{Acknowledged: true, InsertedID: idString(res.UpsertedID)}, nil
}

func (s *Store) UpdateUserByEmail(ctx context.Context, email string, update models.UserUpdate) (models.UpdateResult, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.PhotoURL != nil {
		set["photoURL"] = *update.PhotoURL
	}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	filter := bson.M{"email": email}
	if len(set) == 0 {
		return matchOnly(ctx, s.users, filter)
	}
	return updateOne(ctx, s.users, filter, set)
}

func (s *Store) DeleteUser(ctx context.Context, id string) (models.DeleteResult, error) {
	return deleteByID(ctx, s.users, id)
}

// matchOnly reports how many documents an empty $set would have matched.
func matchOnly(ctx context.Context, coll *mongo.Collection, filter interface{}) (models.UpdateResult, error) {
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
}
