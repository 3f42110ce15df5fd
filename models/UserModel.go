package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID   `json:"_id" bson:"_id"`
	Name       string               `json:"name" bson:"name" validate:"required"`
	Email      string               `json:"email" bson:"email" validate:"required,email"`
	Password   string               `json:"-" bson:"password"`
	Following  []primitive.ObjectID `json:"following" bson:"following"`
	FollowedBy []primitive.ObjectID `json:"followedBy" bson:"followedBy"`
	CreatedAt  time.Time            `json:"created_at" bson:"created_at"`
}

// Follows reports whether the user's following set contains id.
func (u User) Follows(id primitive.ObjectID) bool {
	return ContainsID(u.Following, id)
}

// IsFollowedBy reports whether the user's followedBy set contains id.
func (u User) IsFollowedBy(id primitive.ObjectID) bool {
	return ContainsID(u.FollowedBy, id)
}

func ContainsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
