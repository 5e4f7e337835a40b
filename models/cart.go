package models

type CartItem struct {
	ID     string  `db:"id" bson:"_id,omitempty" json:"_id"`
	MenuID string  `db:"menu_id" bson:"menuId" json:"menuId"`
	Email  string  `db:"email" bson:"email" json:"email"`
	Name   string  `db:"name" bson:"name" json:"name"`
	Image  string  `db:"image" bson:"image" json:"image"`
	Price  float64 `db:"price" bson:"price" json:"price"`
}
