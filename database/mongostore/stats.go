package mongostore

import (
	"context"

	"github.com/ray-remotestate/bistro/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// categorySalesPipeline joins each purchased menu id to its menu document.
// Ids are compared as strings so ObjectID and string keyed menus both match.
var categorySalesPipeline = mongo.Pipeline{
	{{Key: "$unwind", Value: "$menuIds"}},
	{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: menusCollection},
		{Key: "let", Value: bson.D{{Key: "mid", Value: "$menuIds"}}},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
				{Key: "$eq", Value: bson.A{
					bson.D{{Key: "$toString", Value: "$_id"}},
					bson.D{{Key: "$toString", Value: "$$mid"}},
				}},
			}}}}},
		}},
		{Key: "as", Value: "menu"},
	}}},
	{{Key: "$unwind", Value: "$menu"}},
	{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$menu.category"},
		{Key: "totalSales", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$menu.price"}}},
	}}},
	{{Key: "$project", Value: bson.D{
		{Key: "_id", Value: 0},
		{Key: "category", Value: "$_id"},
		{Key: "totalSales", Value: 1},
		{Key: "totalRevenue", Value: 1},
	}}},
	{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
}

func (s *Store) CategorySales(ctx context.Context) ([]models.CategorySales, error) {
	cur, err := s.payments.Aggregate(ctx, categorySalesPipeline)
	if err != nil {
		return nil, err
	}
	sales := make([]models.CategorySales, 0)
	if err := cur.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *Store) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var st models.AdminStats
	var err error
	if st.Customers, err = s.users.EstimatedDocumentCount(ctx); err != nil {
		return st, err
	}
	if st.Products, err = s.menus.EstimatedDocumentCount(ctx); err != nil {
		return st, err
	}
	if st.Orders, err = s.payments.EstimatedDocumentCount(ctx); err != nil {
		return st, err
	}

	cur, err := s.payments.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	})
	if err != nil {
		return st, err
	}
	var revenue []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &revenue); err != nil {
		return st, err
	}
	if len(revenue) > 0 {
		st.Total = revenue[0].Total
	}
	return st, nil
}
