package models

type Review struct {
	ID      string  `db:"id" bson:"_id,omitempty" json:"_id"`
	Name    string  `db:"name" bson:"name" json:"name"`
	Email   string  `db:"email" bson:"email" json:"email"`
	Details string  `db:"details" bson:"details" json:"details"`
	Rating  float64 `db:"rating" bson:"rating" json:"rating"`
}
