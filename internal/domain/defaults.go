package domain

// BrandDefaults holds the documented fallback phrases substituted for blank
// optional request fields. They are process-wide constants kept in one place
// rather than scattered across prompt call sites.
type BrandDefaults struct {
	BrandName             string `json:"brandName"`
	BrandTone             string `json:"brandTone"`
	ColorTheme            string `json:"colorTheme"`
	BackgroundStyle       string `json:"backgroundStyle"`
	LightingStyle         string `json:"lightingStyle"`
	ProductPlacement      string `json:"productPlacement"`
	TypographyStyle       string `json:"typographyStyle"`
	CompositionGuidelines string `json:"compositionGuidelines"`
}

// DefaultBrand is the stock styling profile applied when the submitter gives
// no brand guidance of their own.
var DefaultBrand = BrandDefaults{
	BrandName:             "PREMIUM",
	BrandTone:             "Luxury and sophisticated — clean, calm, and elegant.",
	ColorTheme:            "Elegant, premium tones",
	BackgroundStyle:       "Soft gradients or realistic textures.",
	LightingStyle:         "Soft, diffused lighting with gentle reflections.",
	ProductPlacement:      "Centered, elevated placement",
	TypographyStyle:       "Clean, modern fonts",
	CompositionGuidelines: "Clean, minimal composition",
}

// WithBrandDefaults returns a copy of the request with every blank optional
// field replaced by its documented default.
func (r SubmissionRequest) WithBrandDefaults(d BrandDefaults) SubmissionRequest {
	out := r
	if out.BrandName == "" {
		out.BrandName = d.BrandName
	}
	if out.BrandTone == "" {
		out.BrandTone = d.BrandTone
	}
	if out.ColorTheme == "" {
		out.ColorTheme = d.ColorTheme
	}
	if out.BackgroundStyle == "" {
		out.BackgroundStyle = d.BackgroundStyle
	}
	if out.LightingStyle == "" {
		out.LightingStyle = d.LightingStyle
	}
	if out.ProductPlacement == "" {
		out.ProductPlacement = d.ProductPlacement
	}
	if out.TypographyStyle == "" {
		out.TypographyStyle = d.TypographyStyle
	}
	if out.CompositionGuidelines == "" {
		out.CompositionGuidelines = d.CompositionGuidelines
	}
	return out
}
