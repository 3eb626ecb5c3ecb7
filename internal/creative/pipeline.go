package creative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/storage"
)

// ProductsFolder is the object-store prefix for uploaded product photos.
const ProductsFolder = "ai-creatives/products"

// StylingSource produces the per-category styling descriptors for a run.
type StylingSource interface {
	Generate(ctx context.Context, req domain.SubmissionRequest) []domain.StylingAsset
}

// ImageSynthesizer renders the finished creatives for a run.
type ImageSynthesizer interface {
	Synthesize(ctx context.Context, req domain.SubmissionRequest, stylings []domain.StylingAsset) []domain.GeneratedImage
}

// Result is the outcome of one completed generation run.
type Result struct {
	Submission *domain.Submission
	Creatives  []domain.GeneratedImage
}

// Pipeline drives a submission end to end: validate, check quota, stage the
// uploaded photo, generate stylings, synthesize creatives, persist. Once the
// request clears validation and the quota gate the run always completes; the
// generation stages degrade internally instead of failing.
type Pipeline struct {
	validate    *validator.Validate
	users       domain.UserRepository
	submissions domain.SubmissionRepository
	styler      StylingSource
	synthesizer ImageSynthesizer
	store       storage.ObjectStore
	logger      zerolog.Logger
	quota       int
}

// NewPipeline wires a Pipeline. quota is the per-user generation ceiling and
// must be at least 1.
func NewPipeline(
	users domain.UserRepository,
	submissions domain.SubmissionRepository,
	styler StylingSource,
	synthesizer ImageSynthesizer,
	store storage.ObjectStore,
	quota int,
	logger zerolog.Logger,
) *Pipeline {
	if quota < 1 {
		quota = 1
	}
	return &Pipeline{
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		users:       users,
		submissions: submissions,
		styler:      styler,
		synthesizer: synthesizer,
		store:       store,
		logger:      logger,
		quota:       quota,
	}
}

// Run executes one generation run for the request.
func (p *Pipeline) Run(ctx context.Context, req domain.SubmissionRequest) (*Result, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}

	user, err := p.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, req.UserID)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.CanGenerate(p.quota) {
		return nil, domain.ErrQuotaExceeded
	}

	log := p.logger.With().Str("user_id", user.ID).Str("product", req.ProductName).Logger()

	var original domain.ImageRef
	if req.HasSourceImage() {
		original = p.stageOriginal(ctx, &req, log)
	}

	log.Info().Msg("pipeline: generating styling descriptors")
	stylings := p.styler.Generate(ctx, req)

	log.Info().Int("count", len(stylings)).Msg("pipeline: synthesizing creatives")
	creatives := p.synthesizer.Synthesize(ctx, req, stylings)

	sub := p.buildSubmission(req, original, creatives)
	if err := p.submissions.Create(ctx, sub, p.quota); err != nil {
		p.cleanup(ctx, sub, log)
		if errors.Is(err, domain.ErrQuotaExceeded) {
			return nil, domain.ErrQuotaExceeded
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	log.Info().Str("submission_id", sub.ID).Msg("pipeline: run complete")
	return &Result{Submission: sub, Creatives: creatives}, nil
}

func (p *Pipeline) validateRequest(req domain.SubmissionRequest) error {
	err := p.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", domain.ErrMissingField, err)
}

// stageOriginal uploads the product photo so generated creatives can link
// back to it. On failure the run continues without a source image and the
// synthesizer falls back to pure generation.
func (p *Pipeline) stageOriginal(ctx context.Context, req *domain.SubmissionRequest, log zerolog.Logger) domain.ImageRef {
	idHint := "original-" + uuid.NewString()
	stored, err := p.store.Store(ctx, req.SourceImage, ProductsFolder, idHint)
	if err != nil {
		log.Warn().Err(err).Msg("pipeline: original upload failed, continuing without source image")
		req.SourceImage = nil
		return domain.ImageRef{}
	}
	return domain.ImageRef{URL: stored.URL, PublicID: stored.PublicID}
}

func (p *Pipeline) buildSubmission(req domain.SubmissionRequest, original domain.ImageRef, creatives []domain.GeneratedImage) *domain.Submission {
	sub := &domain.Submission{
		ID:     uuid.NewString(),
		UserID: req.UserID,

		ProductName:           req.ProductName,
		ProductTagline:        req.ProductTagline,
		ProductCategory:       req.ProductCategory,
		HighlightedBenefit:    req.HighlightedBenefit,
		ProductDescription:    req.ProductDescription,
		BrandName:             req.BrandName,
		BrandTone:             req.BrandTone,
		ColorTheme:            req.ColorTheme,
		BackgroundStyle:       req.BackgroundStyle,
		LightingStyle:         req.LightingStyle,
		ProductPlacement:      req.ProductPlacement,
		TypographyStyle:       req.TypographyStyle,
		CompositionGuidelines: req.CompositionGuidelines,

		OriginalImage: original,
		CreatedAt:     time.Now().UTC(),
	}
	for _, c := range creatives {
		sub.SetCreative(c.AssetType, domain.ImageRef{URL: c.ImageURL, PublicID: c.PublicID})
	}
	return sub
}

// cleanup removes already-uploaded objects after a failed persist. Best
// effort: a delete failure is logged and skipped, never surfaced.
func (p *Pipeline) cleanup(ctx context.Context, sub *domain.Submission, log zerolog.Logger) {
	for _, id := range sub.PublicIDs() {
		if err := p.store.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("public_id", id).Msg("pipeline: cleanup delete failed")
		}
	}
}
