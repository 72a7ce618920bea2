package supabase

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// StorageClient uploads order photos to a public bucket.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, key, bucket string) *StorageClient {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	return &StorageClient{
		client:  storage.NewClient(baseURL+"/storage/v1", key, nil),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// OrderImagePath places every upload under orders/{order_id}/ with a fresh
// name so repeated uploads of the same file never collide.
func OrderImagePath(orderID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("orders/%s/%s%s", orderID, uuid.NewString(), ext)
}

// UploadOrderImage stores data and returns the object's public URL.
func (s *StorageClient) UploadOrderImage(ctx context.Context, orderID, filename, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	storagePath := OrderImagePath(orderID, filename)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	upsert := false
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s.PublicURL(storagePath), nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, storagePath)
}

// DeleteOrderImages removes everything stored for an order.
func (s *StorageClient) DeleteOrderImages(ctx context.Context, orderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prefix := fmt.Sprintf("orders/%s/", orderID)
	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{Limit: 1000})
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = prefix + file.Name
	}
	if _, err := s.client.RemoveFile(s.bucket, paths); err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	return nil
}
