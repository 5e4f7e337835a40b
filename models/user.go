package models

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "Admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID        string    `db:"id" bson:"_id,omitempty" json:"_id"`
	Name      string    `db:"name" bson:"name" json:"name"`
	Email     string    `db:"email" bson:"email" json:"email"`
	PhotoURL  string    `db:"photo_url" bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      Role      `db:"role" bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photoURL,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.PhotoURL == nil && u.Role == nil
}
