package mongostore

import (
	"context"

	"github.com/ray-remotestate/bistro/models"
	"go.mongodb.org/mongo-driver/bson"
)

func (s *Store) ListMenus(ctx context.Context) ([]models.MenuItem, error) {
	return findAll[models.MenuItem](ctx, s.menus, bson.M{})
}

func (s *Store) GetMenu(ctx context.Context, id string) (*models.MenuItem, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	return findOne[models.MenuItem](ctx, s.menus, filter)
}

func (s *Store) CountMenus(ctx context.Context) (int64, error) {
	return s.menus.EstimatedDocumentCount(ctx)
}

func (s *Store) CreateMenu(ctx context.Context, item *models.MenuItem) (models.InsertResult, error) {
	doc := *item
	doc.ID = ""
	return insertOne(ctx, s.menus, doc)
}

func (s *Store) UpdateMenu(ctx context.Context, id string, update models.MenuUpdate) (models.UpdateResult, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Recipe != nil {
		set["recipe"] = *update.Recipe
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if len(set) == 0 {
		filter, err := byID(id)
		if err != nil {
			return models.UpdateResult{}, err
		}
		return matchOnly(ctx, s.menus, filter)
	}
	return updateByID(ctx, s.menus, id, set)
}

func (s *Store) DeleteMenu(ctx context.Context, id string) (models.DeleteResult, error) {
	return deleteByID(ctx, s.menus, id)
}
