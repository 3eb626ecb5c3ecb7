package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// StoredObject describes a durably stored image: its public URL and the
// identifier used for later fetch/delete.
type StoredObject struct {
	URL      string
	PublicID string
	Bytes    int64
}

// ObjectStore is the contract for durable, publicly fetchable image storage.
// Implementations surface upstream errors untouched; the caller decides
// whether a failed store means a placeholder or a hard error.
type ObjectStore interface {
	Store(ctx context.Context, data []byte, folder, idHint string) (StoredObject, error)
	StoreEncoded(ctx context.Context, encoded, folder, idHint string) (StoredObject, error)
	Fetch(ctx context.Context, publicID string) ([]byte, error)
	Delete(ctx context.Context, publicID string) error
}

// DecodeEncoded strips an optional data-URL prefix and decodes base64 image
// bytes. Shared by store implementations.
func DecodeEncoded(encoded string) ([]byte, error) {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return nil, errors.New("storage: empty encoded payload")
	}
	if strings.HasPrefix(trimmed, "data:") {
		if idx := strings.Index(trimmed, ","); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("storage: decode payload: %w", err)
	}
	return data, nil
}
