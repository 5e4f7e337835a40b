package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ray-remotestate/bistro/database"
	"github.com/ray-remotestate/bistro/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	menusCollection    = "menus"
	reviewsCollection  = "reviews"
	cartsCollection    = "carts"
	paymentsCollection = "payments"
)

// Store implements database.Store on a MongoDB database. Documents created
// here get ObjectIDs; lookups also accept plain string ids for documents
// written by other tools.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	users    *mongo.Collection
	menus    *mongo.Collection
	reviews  *mongo.Collection
	carts    *mongo.Collection
	payments *mongo.Collection
}

var _ database.Store = (*Store)(nil)

// Connect dials the cluster, pings the primary and makes sure the users
// collection has a unique email index.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	// ObjectID _id values decode into the string ID fields as hex, which is
	// the driver's default for string targets.
	bsonOpts := &options.BSONOptions{
		NilSliceAsEmpty: true,
	}
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(bsonOpts))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := New(client, dbName)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		db:       db,
		users:    db.Collection(usersCollection),
		menus:    db.Collection(menusCollection),
		reviews:  db.Collection(reviewsCollection),
		carts:    db.Collection(cartsCollection),
		payments: db.Collection(paymentsCollection),
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	logrus.Debug("mongo indexes ready")
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// idValue turns a wire id into the value stored in _id.
func idValue(id string) (interface{}, error) {
	if id == "" {
		return nil, database.ErrInvalidID
	}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid, nil
	}
	return id, nil
}

func byID(id string) (bson.M, error) {
	v, err := idValue(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": v}, nil
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (models.InsertResult, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return models.InsertResult{}, err
	}
	return models.InsertResult{Acknowledged: true, InsertedID: idString(res.InsertedID)}, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	docs := make([]T, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func updateByID(ctx context.Context, coll *mongo.Collection, id string, set bson.M) (models.UpdateResult, error) {
	filter, err := byID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return updateOne(ctx, coll, filter, set)
}

func updateOne(ctx context.Context, coll *mongo.Collection, filter interface{}, set bson.M) (models.UpdateResult, error) {
	res, err := coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) (models.DeleteResult, error) {
	filter, err := byID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
