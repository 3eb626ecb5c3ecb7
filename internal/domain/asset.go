package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AssetType enumerates the canonical creative categories produced per submission.
type AssetType string

const (
	AssetTypeInstagramPost  AssetType = "instagram_post"
	AssetTypeInstagramStory AssetType = "instagram_story"
	AssetTypeFacebookPost   AssetType = "facebook_post"
	AssetTypeLinkedInPost   AssetType = "linkedin_post"
	AssetTypeWebsiteBanner  AssetType = "website_banner"
	AssetTypeOther          AssetType = "other"
)

// AssetSpec carries the fixed attributes of one creative category: the name
// the styling model uses for it, the title shown in the gallery, and the
// persisted pixel dimensions.
type AssetSpec struct {
	Type        AssetType
	StylingName string
	Title       string
	Width       int
	Height      int
}

var assetSpecs = map[AssetType]AssetSpec{
	AssetTypeInstagramPost:  {Type: AssetTypeInstagramPost, StylingName: "Instagram Post", Title: "Instagram Post", Width: 1080, Height: 1080},
	AssetTypeInstagramStory: {Type: AssetTypeInstagramStory, StylingName: "Instagram Story", Title: "Instagram Story", Width: 1080, Height: 1920},
	AssetTypeFacebookPost:   {Type: AssetTypeFacebookPost, StylingName: "Ad Creative", Title: "Facebook Post", Width: 1200, Height: 630},
	AssetTypeLinkedInPost:   {Type: AssetTypeLinkedInPost, StylingName: "Testimonial Graphic", Title: "LinkedIn Post", Width: 1200, Height: 627},
	AssetTypeWebsiteBanner:  {Type: AssetTypeWebsiteBanner, StylingName: "Website Banner", Title: "Website Banner", Width: 1200, Height: 400},
}

// AllAssetTypes returns the five canonical categories in stable order.
func AllAssetTypes() []AssetType {
	return []AssetType{
		AssetTypeInstagramPost,
		AssetTypeInstagramStory,
		AssetTypeFacebookPost,
		AssetTypeLinkedInPost,
		AssetTypeWebsiteBanner,
	}
}

// SpecFor resolves the fixed attributes for a category. Unknown types map to
// a generic square spec so callers never deal with a missing entry.
func SpecFor(t AssetType) AssetSpec {
	if spec, ok := assetSpecs[t]; ok {
		return spec
	}
	title := cases.Title(language.English).String(strings.ReplaceAll(strings.TrimSpace(string(t)), "_", " "))
	if title == "" {
		title = "Creative"
	}
	return AssetSpec{Type: AssetTypeOther, StylingName: string(t), Title: title, Width: 1000, Height: 1000}
}

// AssetTypeFromStylingName maps the free-text asset name returned by the
// styling model onto a canonical category.
func AssetTypeFromStylingName(name string) AssetType {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for t, spec := range assetSpecs {
		if strings.ToLower(spec.StylingName) == normalized || string(t) == normalized {
			return t
		}
	}
	return AssetTypeOther
}

// Dimensions renders the persisted display dimensions, e.g. "1080 × 1080".
func (s AssetSpec) Dimensions() string {
	return fmt.Sprintf("%d × %d", s.Width, s.Height)
}
