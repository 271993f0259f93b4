package repository

import (
	"bytes"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Jeevagan-dev/attendance/config"
)

// PhotoRepository stores the proof photos as opaque blobs. Nothing in the
// tracker decodes or inspects image content; records only carry the returned
// handles.
type PhotoRepository interface {
	Save(filename string, data []byte) (primitive.ObjectID, error)
	Load(id primitive.ObjectID) (data []byte, filename string, err error)
}

type photoRepository struct{}

func NewPhotoRepository() PhotoRepository {
	return &photoRepository{}
}

func (r *photoRepository) Save(filename string, data []byte) (primitive.ObjectID, error) {
	bucket, err := config.GetGridFSBucket()
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to get GridFS bucket: %w", err)
	}

	fileID, err := bucket.UploadFromStream(filename, bytes.NewReader(data))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to store photo: %w", err)
	}
	return fileID, nil
}

func (r *photoRepository) Load(id primitive.ObjectID) ([]byte, string, error) {
	bucket, err := config.GetGridFSBucket()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get GridFS bucket: %w", err)
	}

	stream, err := bucket.OpenDownloadStream(id)
	if err != nil {
		return nil, "", fmt.Errorf("photo not found: %w", err)
	}
	defer stream.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stream); err != nil {
		return nil, "", fmt.Errorf("failed to read photo: %w", err)
	}

	return buf.Bytes(), stream.GetFile().Name, nil
}
