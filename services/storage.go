package services

import (
	"context"
	"fmt"
	"io"

	storage "github.com/supabase-community/storage-go"
)

// ObjectStorage durably stores audio bytes under a key and returns a public
// retrieval URL for that key.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// SupabaseStorage implements ObjectStorage against a Supabase Storage bucket.
type SupabaseStorage struct {
	ProjectURL string
	APIKey     string
	Bucket     string
}

func NewSupabaseStorage(projectURL, apiKey, bucket string) *SupabaseStorage {
	if bucket == "" {
		bucket = "uploads"
	}
	return &SupabaseStorage{ProjectURL: projectURL, APIKey: apiKey, Bucket: bucket}
}

// Upload stores the body under <bucket>/<key> and returns the public URL.
func (s *SupabaseStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	client := storage.NewClient(s.ProjectURL+"/storage/v1", s.APIKey, nil)

	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := client.UploadFile(s.Bucket, key, body, options); err != nil {
		return "", fmt.Errorf("storage upload failed: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.ProjectURL, s.Bucket, key)
	return publicURL, nil
}
