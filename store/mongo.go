package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abdullah-Baher/social-app-back/models"
)

const (
	userCollectionName = "user-collection"
	postCollectionName = "posts-collection"
)

// MongoUserStore implements UserStore on a MongoDB collection. Set mutations
// use $addToSet/$pull so re-application is safe and unrelated fields are
// never overwritten.
type MongoUserStore struct {
	col *mongo.Collection
}

// NewMongoUserStore returns a MongoUserStore and ensures the unique email index.
func NewMongoUserStore(ctx context.Context, db *mongo.Database) (*MongoUserStore, error) {
	col := db.Collection(userCollectionName)
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create email index: %w", err)
	}
	return &MongoUserStore{col: col}, nil
}

func (s *MongoUserStore) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user models.User) error {
	_, err := s.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) All(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) SearchByName(ctx context.Context, fragment string, limit int64) ([]models.User, error) {
	filter := bson.M{"name": bson.M{"$regex": fragment, "$options": "i"}}
	cursor, err := s.col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) error {
	fields := bson.M{}
	if name != "" {
		fields["name"] = name
	}
	if email != "" {
		fields["email"] = email
	}
	if len(fields) == 0 {
		return nil
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) AddFollowing(ctx context.Context, id, target primitive.ObjectID) error {
	return s.updateSet(ctx, id, bson.M{"$addToSet": bson.M{"following": target}})
}

func (s *MongoUserStore) RemoveFollowing(ctx context.Context, id, target primitive.ObjectID) error {
	return s.updateSet(ctx, id, bson.M{"$pull": bson.M{"following": target}})
}

func (s *MongoUserStore) AddFollower(ctx context.Context, id, follower primitive.ObjectID) error {
	return s.updateSet(ctx, id, bson.M{"$addToSet": bson.M{"followedBy": follower}})
}

func (s *MongoUserStore) RemoveFollower(ctx context.Context, id, follower primitive.ObjectID) error {
	return s.updateSet(ctx, id, bson.M{"$pull": bson.M{"followedBy": follower}})
}

func (s *MongoUserStore) updateSet(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoPostStore implements PostStore on a MongoDB collection.
type MongoPostStore struct {
	col *mongo.Collection
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{col: db.Collection(postCollectionName)}
}

func (s *MongoPostStore) Get(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var post models.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *MongoPostStore) Insert(ctx context.Context, post models.Post) error {
	_, err := s.col.InsertOne(ctx, post)
	return err
}

func (s *MongoPostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) UpdateText(ctx context.Context, id primitive.ObjectID, text string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"text": text}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) All(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoPostStore) ByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"createdBy": creator})
}

func (s *MongoPostStore) ByCreators(ctx context.Context, creators []primitive.ObjectID) ([]models.Post, error) {
	if len(creators) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"createdBy": bson.M{"$in": creators}})
}

func (s *MongoPostStore) DeleteByCreator(ctx context.Context, creator primitive.ObjectID) ([]models.Post, error) {
	posts, err := s.ByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}
	if _, err := s.col.DeleteMany(ctx, bson.M{"createdBy": creator}); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.updateSet(ctx, postID, bson.M{"$addToSet": bson.M{"likedBy": userID}})
}

func (s *MongoPostStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.updateSet(ctx, postID, bson.M{"$pull": bson.M{"likedBy": userID}})
}

func (s *MongoPostStore) updateSet(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
