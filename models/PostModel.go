package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image references a blob stored in GridFS. Immutable after creation.
type Image struct {
	FileName string `json:"fileName" bson:"fileName"`
	URL      string `json:"url" bson:"url"`
}

type Post struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id"`
	Text      string               `json:"text" bson:"text"`
	Image     Image                `json:"image" bson:"image"`
	CreatedBy primitive.ObjectID   `json:"createdBy" bson:"createdBy"`
	LikedBy   []primitive.ObjectID `json:"likedBy" bson:"likedBy"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
}

// LikedByUser reports whether the post's likedBy set contains id.
func (p Post) LikedByUser(id primitive.ObjectID) bool {
	return ContainsID(p.LikedBy, id)
}
