package models

type MenuItem struct {
	ID       string  `db:"id" bson:"_id,omitempty" json:"_id"`
	Name     string  `db:"name" bson:"name" json:"name"`
	Recipe   string  `db:"recipe" bson:"recipe" json:"recipe"`
	Image    string  `db:"image" bson:"image" json:"image"`
	Category string  `db:"category" bson:"category" json:"category"`
	Price    float64 `db:"price" bson:"price" json:"price"`
}

type MenuUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Recipe   *string  `json:"recipe,omitempty"`
	Image    *string  `json:"image,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

func (m MenuUpdate) IsEmpty() bool {
	return m.Name == nil && m.Recipe == nil && m.Image == nil && m.Category == nil && m.Price == nil
}

// CategorySales is one row of the sales-by-category report.
type CategorySales struct {
	Category     string  `bson:"category" json:"category"`
	TotalSales   int64   `bson:"totalSales" json:"totalSales"`
	TotalRevenue float64 `bson:"totalRevenue" json:"totalRevenue"`
}
