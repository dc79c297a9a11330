package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/staynest/mono-repo/backend/services/marketplace-service/internal/constants"
	internal_utils "github.com/staynest/mono-repo/backend/services/marketplace-service/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSPhotoStore keeps photos in a MongoDB GridFS bucket keyed by file
// name. Re-uploading a name adds a revision; reads return the newest.
type GridFSPhotoStore struct {
	db *mongo.Database
}

func NewGridFSPhotoStore(db *mongo.Database) *GridFSPhotoStore {
	return &GridFSPhotoStore{db: db}
}

// bucket is opened per call since deadlines are bucket state.
func (s *GridFSPhotoStore) bucket() (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(constants.GridFSBucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return bucket, nil
}

func (s *GridFSPhotoStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	name, err := cleanPhotoName(filename)
	if err != nil {
		return "", err
	}
	bucket, err := s.bucket()
	if err != nil {
		return "", err
	}
	if err := bucket.SetWriteDeadline(deadlineOf(ctx)); err != nil {
		return "", err
	}
	if _, err := bucket.UploadFromStream(name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("upload photo %s: %w", name, err)
	}
	return PhotoURL(name), nil
}

func (s *GridFSPhotoStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	clean, err := cleanPhotoName(name)
	if err != nil {
		return nil, err
	}
	bucket, err := s.bucket()
	if err != nil {
		return nil, err
	}
	if err := bucket.SetReadDeadline(deadlineOf(ctx)); err != nil {
		return nil, err
	}
	stream, err := bucket.OpenDownloadStreamByName(clean)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, internal_utils.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// deadlineOf returns the zero time, meaning no deadline, when ctx has none.
func deadlineOf(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Time{}
}
