package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const imageContentType = "image/png"

// MinioOptions configures the object-store connection.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the URL prefix for stored objects. When empty the
	// endpoint and bucket are used directly.
	PublicURL string
}

// MinioStore persists images in an S3-compatible bucket via minio-go.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore connects to the object store and ensures the bucket exists.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: create bucket: %w", err)
		}
	}

	baseURL := strings.TrimRight(opts.PublicURL, "/")
	if baseURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.Bucket)
	}

	return &MinioStore{client: client, bucket: opts.Bucket, baseURL: baseURL}, nil
}

// Store uploads image bytes under folder/idHint.png and returns the public
// reference.
func (s *MinioStore) Store(ctx context.Context, data []byte, folder, idHint string) (StoredObject, error) {
	key, err := objectKey(folder, idHint)
	if err != nil {
		return StoredObject{}, err
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: imageContentType,
	})
	if err != nil {
		return StoredObject{}, fmt.Errorf("storage: put object: %w", err)
	}
	return StoredObject{
		URL:      s.baseURL + "/" + key,
		PublicID: key,
		Bytes:    int64(len(data)),
	}, nil
}

// StoreEncoded decodes a base64 payload and stores the result.
func (s *MinioStore) StoreEncoded(ctx context.Context, encoded, folder, idHint string) (StoredObject, error) {
	data, err := DecodeEncoded(encoded)
	if err != nil {
		return StoredObject{}, err
	}
	return s.Store(ctx, data, folder, idHint)
}

// Fetch downloads a stored object by its public identifier.
func (s *MinioStore) Fetch(ctx context.Context, publicID string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, publicID, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: get object: %w", err)
	}
	defer func() {
		_ = obj.Close()
	}()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("storage: read object: %w", err)
	}
	return data, nil
}

// Delete removes a stored object by its public identifier.
func (s *MinioStore) Delete(ctx context.Context, publicID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: remove object: %w", err)
	}
	return nil
}

func objectKey(folder, idHint string) (string, error) {
	key := strings.Trim(strings.TrimSpace(folder), "/") + "/" + strings.TrimSpace(idHint)
	cleaned, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(cleaned, ".png") {
		cleaned += ".png"
	}
	return cleaned, nil
}

var _ ObjectStore = (*MinioStore)(nil)
