package domain

import (
	"strings"
	"time"
)

// SubmissionRequest is the validated form payload for one generation run.
// It is treated as immutable once handed to the pipeline.
type SubmissionRequest struct {
	UserID             string `json:"userId" validate:"required"`
	ProductName        string `json:"productName" validate:"required"`
	ProductTagline     string `json:"productTagline" validate:"required"`
	ProductCategory    string `json:"productCategory" validate:"required"`
	HighlightedBenefit string `json:"highlightedBenefit" validate:"required"`
	ProductDescription string `json:"productDescription" validate:"required"`

	BrandName             string `json:"brandName"`
	BrandTone             string `json:"brandTone"`
	ColorTheme            string `json:"colorTheme"`
	BackgroundStyle       string `json:"backgroundStyle"`
	LightingStyle         string `json:"lightingStyle"`
	ProductPlacement      string `json:"productPlacement"`
	TypographyStyle       string `json:"typographyStyle"`
	CompositionGuidelines string `json:"compositionGuidelines"`

	// SourceImage holds the uploaded product photo, if any. When present the
	// pipeline composites around it instead of generating from scratch.
	SourceImage []byte `json:"-"`
}

// HasSourceImage reports whether a product photo was uploaded with the request.
func (r SubmissionRequest) HasSourceImage() bool {
	return len(r.SourceImage) > 0
}

// StylingAsset is one styling descriptor produced by the text model, one per
// asset type per run. All fields are free text.
type StylingAsset struct {
	AssetType      string `json:"assetType"`
	BackgroundTone string `json:"backgroundTone"`
	SurfaceType    string `json:"surfaceType"`
	AccentProp     string `json:"accentProp"`
	Lighting       string `json:"lighting"`
	CameraAngle    string `json:"cameraAngle"`
	OverlayText    string `json:"overlayText"`
}

// Type resolves the canonical category for this descriptor.
func (s StylingAsset) Type() AssetType {
	return AssetTypeFromStylingName(s.AssetType)
}

// GeneratedImage is one finished creative: a stored image plus its display
// metadata and the styling descriptor it was rendered from.
type GeneratedImage struct {
	AssetType  AssetType    `json:"type"`
	Title      string       `json:"title"`
	ImageURL   string       `json:"imageUrl"`
	PublicID   string       `json:"publicId"`
	Dimensions string       `json:"dimensions"`
	Styling    StylingAsset `json:"styling"`
}

// ImageRef is a stored image reference as persisted on a submission.
type ImageRef struct {
	URL      string
	PublicID string
}

// Submission is the aggregate persisted per generation run: the request
// fields, the uploaded original, and one creative per canonical asset type.
// It belongs to exactly one user and is never mutated after creation.
type Submission struct {
	ID     string
	UserID string

	ProductName           string
	ProductTagline        string
	ProductCategory       string
	HighlightedBenefit    string
	ProductDescription    string
	BrandName             string
	BrandTone             string
	ColorTheme            string
	BackgroundStyle       string
	LightingStyle         string
	ProductPlacement      string
	TypographyStyle       string
	CompositionGuidelines string

	OriginalImage ImageRef
	Creatives     map[AssetType]ImageRef

	CreatedAt time.Time
}

// CreativeFor returns the stored reference for a category. Missing entries
// come back zero-valued, so serialization always writes empty strings rather
// than propagating nils.
func (s *Submission) CreativeFor(t AssetType) ImageRef {
	if s.Creatives == nil {
		return ImageRef{}
	}
	return s.Creatives[t]
}

// SetCreative records the stored reference for a category.
func (s *Submission) SetCreative(t AssetType, ref ImageRef) {
	if s.Creatives == nil {
		s.Creatives = make(map[AssetType]ImageRef, 5)
	}
	s.Creatives[t] = ref
}

// PublicIDs collects every non-empty object-store identifier owned by the
// submission, original included. Used for cascading cleanup.
func (s *Submission) PublicIDs() []string {
	var ids []string
	if strings.TrimSpace(s.OriginalImage.PublicID) != "" {
		ids = append(ids, s.OriginalImage.PublicID)
	}
	for _, t := range AllAssetTypes() {
		if ref := s.CreativeFor(t); strings.TrimSpace(ref.PublicID) != "" {
			ids = append(ids, ref.PublicID)
		}
	}
	return ids
}
