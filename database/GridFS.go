package database

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const uploadsBucketName = "uploads"

// Blobs stores post images in a GridFS bucket, addressed by file name.
type Blobs struct {
	bucket *gridfs.Bucket
}

func NewBlobs(db *mongo.Database) (*Blobs, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(uploadsBucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &Blobs{bucket: bucket}, nil
}

// Upload streams src into the bucket under fileName.
func (b *Blobs) Upload(ctx context.Context, fileName string, src io.Reader) error {
	b.applyDeadline(ctx)
	if _, err := b.bucket.UploadFromStream(fileName, src); err != nil {
		return fmt.Errorf("gridfs upload: %w", err)
	}
	return nil
}

// Download streams the named file into dst.
func (b *Blobs) Download(ctx context.Context, fileName string, dst io.Writer) error {
	b.applyDeadline(ctx)
	if _, err := b.bucket.DownloadToStreamByName(fileName, dst); err != nil {
		return fmt.Errorf("gridfs download: %w", err)
	}
	return nil
}

// Remove deletes every revision stored under fileName. Missing files are not
// an error; the cascade treats blob removal as best-effort.
func (b *Blobs) Remove(ctx context.Context, fileName string) error {
	b.applyDeadline(ctx)
	cursor, err := b.bucket.Find(bson.M{"filename": fileName})
	if err != nil {
		return fmt.Errorf("gridfs find: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var file struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&file); err != nil {
			return fmt.Errorf("gridfs decode: %w", err)
		}
		if err := b.bucket.Delete(file.ID); err != nil {
			return fmt.Errorf("gridfs delete: %w", err)
		}
	}
	return cursor.Err()
}

func (b *Blobs) applyDeadline(ctx context.Context) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = b.bucket.SetWriteDeadline(deadline)
		_ = b.bucket.SetReadDeadline(deadline)
	}
}
