package creative

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"server/internal/domain"
	"server/internal/storage"
)

// ImageClient is the image-model surface the synthesizer consumes. Satisfied
// by providers/openai.Client.
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	EditImage(ctx context.Context, prompt string, source []byte) (string, error)
}

// PlaceholderResolver supplies a stand-in creative when synthesis of one slot
// fails. Satisfied by placeholder.Resolver.
type PlaceholderResolver interface {
	Resolve(ctx context.Context, t domain.AssetType) storage.StoredObject
}

// GeneratedFolder is the object-store prefix for finished creatives.
const GeneratedFolder = "ai-creatives/generated"

const maxConcurrentSyntheses = 5

// Synthesizer renders one creative per styling descriptor, fanning the
// upstream calls out in parallel. A failed slot gets a placeholder instead of
// failing the batch: the result always has exactly one entry per descriptor,
// in the same order, each with a non-empty image URL.
type Synthesizer struct {
	images       ImageClient
	store        storage.ObjectStore
	placeholders PlaceholderResolver
	logger       zerolog.Logger
}

// NewSynthesizer builds a Synthesizer.
func NewSynthesizer(images ImageClient, store storage.ObjectStore, placeholders PlaceholderResolver, logger zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		images:       images,
		store:        store,
		placeholders: placeholders,
		logger:       logger,
	}
}

// Synthesize renders every descriptor concurrently and returns the finished
// creatives. It never returns an error; degradation is per slot.
func (s *Synthesizer) Synthesize(ctx context.Context, req domain.SubmissionRequest, stylings []domain.StylingAsset) []domain.GeneratedImage {
	results := make([]domain.GeneratedImage, len(stylings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSyntheses)
	for i, styling := range stylings {
		i, styling := i, styling
		g.Go(func() error {
			results[i] = s.synthesizeOne(gctx, req, styling)
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	return results
}

func (s *Synthesizer) synthesizeOne(ctx context.Context, req domain.SubmissionRequest, styling domain.StylingAsset) domain.GeneratedImage {
	spec := domain.SpecFor(styling.Type())
	out := domain.GeneratedImage{
		AssetType:  spec.Type,
		Title:      spec.Title,
		Dimensions: spec.Dimensions(),
		Styling:    styling,
	}

	prompt := BuildPrompt(spec.Type, styling, req)

	var (
		encoded string
		err     error
	)
	if req.HasSourceImage() {
		encoded, err = s.images.EditImage(ctx, prompt, req.SourceImage)
	} else {
		encoded, err = s.images.GenerateImage(ctx, prompt)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("asset_type", string(spec.Type)).Msg("synthesize: image model failed, using placeholder")
		return s.withPlaceholder(ctx, out)
	}

	idHint := fmt.Sprintf("%s-%s", spec.Type, uuid.NewString())
	stored, err := s.store.StoreEncoded(ctx, encoded, GeneratedFolder, idHint)
	if err != nil {
		s.logger.Warn().Err(err).Str("asset_type", string(spec.Type)).Msg("synthesize: store failed, using placeholder")
		return s.withPlaceholder(ctx, out)
	}

	out.ImageURL = stored.URL
	out.PublicID = stored.PublicID
	return out
}

func (s *Synthesizer) withPlaceholder(ctx context.Context, out domain.GeneratedImage) domain.GeneratedImage {
	stored := s.placeholders.Resolve(ctx, out.AssetType)
	out.ImageURL = stored.URL
	out.PublicID = stored.PublicID
	return out
}
