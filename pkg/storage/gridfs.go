package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStorage stores media in a MongoDB GridFS bucket. References
// are serving paths of the form /media/<file-id>, resolved by the
// media handler.
type GridFSStorage struct {
	bucket *gridfs.Bucket
}

// NewGridFSStorage creates a GridFS-backed MediaStorage on the given
// database.
func NewGridFSStorage(db *mongo.Database) (*GridFSStorage, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create gridfs bucket: %w", err)
	}
	return &GridFSStorage{bucket: bucket}, nil
}

func (s *GridFSStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	opts := options.GridFSUpload().SetMetadata(map[string]interface{}{"folder": folder})
	fileID, err := s.bucket.UploadFromStream(fileName, r, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload to gridfs: %w", err)
	}
	return "/media/" + fileID.Hex(), nil
}

func (s *GridFSStorage) Delete(ctx context.Context, ref string) error {
	fileID, err := parseMediaRef(ref)
	if err != nil {
		return err
	}
	return s.bucket.Delete(fileID)
}

// Open streams a stored file by the id segment of its reference; the
// media handler uses this to serve /media/:id.
func (s *GridFSStorage) Open(id string) (io.ReadCloser, string, error) {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", fmt.Errorf("invalid media id: %w", err)
	}
	stream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, "", err
	}
	return stream, stream.GetFile().Name, nil
}

func parseMediaRef(ref string) (primitive.ObjectID, error) {
	id := strings.TrimPrefix(ref, "/media/")
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid media reference %q: %w", ref, err)
	}
	return fileID, nil
}
