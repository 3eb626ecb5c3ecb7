package placeholder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/storage"
)

// Stock placeholder images served when generation fails for a category.
var stockURLs = map[domain.AssetType]string{
	domain.AssetTypeInstagramPost:  "https://images.unsplash.com/photo-1563986768494-4dee2763ff3f",
	domain.AssetTypeInstagramStory: "https://images.unsplash.com/photo-1611162616305-c69b3fa7fbe0",
	domain.AssetTypeFacebookPost:   "https://images.unsplash.com/photo-1611605698335-8b1569810432",
	domain.AssetTypeLinkedInPost:   "https://images.unsplash.com/photo-1560472355-536de3962603",
	domain.AssetTypeWebsiteBanner:  "https://images.unsplash.com/photo-1557804506-669a67965ba0",
	domain.AssetTypeOther:          "https://images.unsplash.com/photo-1611162618071-b39a2ec055fb",
}

// StockURL returns the stock image URL for a category.
func StockURL(t domain.AssetType) string {
	if url, ok := stockURLs[t]; ok {
		return url
	}
	return stockURLs[domain.AssetTypeOther]
}

// Resolver produces a stand-in creative for an asset type when synthesis
// fails. It prefers re-hosting the category's stock image in the object
// store, falls back to a locally rendered deterministic image, and as a last
// resort hands back the external stock URL directly so the slot is never
// empty.
type Resolver struct {
	store      storage.ObjectStore
	httpClient *http.Client
	logger     zerolog.Logger
	folder     string
}

// NewResolver builds a Resolver that uploads into folder.
func NewResolver(store storage.ObjectStore, folder string, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store:      store,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		folder:     folder,
		logger:     logger,
	}
}

// WithHTTPClient overrides the download client, mainly for tests.
func (r *Resolver) WithHTTPClient(client *http.Client) *Resolver {
	if client != nil {
		r.httpClient = client
	}
	return r
}

// Resolve returns a stored placeholder for the given asset type.
func (r *Resolver) Resolve(ctx context.Context, t domain.AssetType) storage.StoredObject {
	spec := domain.SpecFor(t)
	idHint := fmt.Sprintf("%s-%s", spec.Type, uuid.NewString())

	data, err := r.download(ctx, StockURL(t))
	if err != nil {
		r.logger.Warn().Err(err).Str("asset_type", string(t)).Msg("placeholder: stock download failed, rendering local image")
		data = Render(spec.Width, spec.Height, string(spec.Type))
	}

	stored, err := r.store.Store(ctx, data, r.folder, idHint)
	if err != nil {
		r.logger.Warn().Err(err).Str("asset_type", string(t)).Msg("placeholder: store failed, using external stock url")
		return storage.StoredObject{URL: StockURL(t)}
	}
	return stored
}

func (r *Resolver) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("placeholder: create request: %w", err)
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("placeholder: download: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("placeholder: download status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("placeholder: read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("placeholder: empty body")
	}
	return data, nil
}
