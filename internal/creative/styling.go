package creative

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// ChatClient is the JSON-constrained completion surface the styling generator
// consumes. Satisfied by providers/openai.Client.
type ChatClient interface {
	ChatJSON(ctx context.Context, system, user string, temperature float64) (string, error)
}

// DefaultStylingAssets returns the fixed descriptor set used whenever the
// styling model is unavailable or returns something unusable. One entry per
// canonical category, always a fresh copy.
func DefaultStylingAssets() []domain.StylingAsset {
	return []domain.StylingAsset{
		{
			AssetType:      "Instagram Post",
			BackgroundTone: "soft blush gradient",
			SurfaceType:    "satin draped cloth",
			AccentProp:     "gold-trimmed ribbon",
			Lighting:       "warm spotlight from the side",
			CameraAngle:    "45-degree angle",
			OverlayText:    "Glow deeper. Shine brighter.",
		},
		{
			AssetType:      "Instagram Story",
			BackgroundTone: "pale lavender with light streaks",
			SurfaceType:    "textured ceramic tray",
			AccentProp:     "scattered rose petals",
			Lighting:       "top-down diffused glow",
			CameraAngle:    "zoomed-in overhead view",
			OverlayText:    "Hydration you can feel. Right now.",
		},
		{
			AssetType:      "Website Banner",
			BackgroundTone: "muted green stone texture",
			SurfaceType:    "brushed concrete slab",
			AccentProp:     "eucalyptus branch",
			Lighting:       "soft angled morning light",
			CameraAngle:    "side-profile landscape",
			OverlayText:    "Glow like never before!",
		},
		{
			AssetType:      "Ad Creative",
			BackgroundTone: "deep emerald with gradient fade",
			SurfaceType:    "reflective glass base",
			AccentProp:     "frosted crystal orb",
			Lighting:       "dramatic backlight",
			CameraAngle:    "elevated 3/4 angle",
			OverlayText:    "10% Off Today Only",
		},
		{
			AssetType:      "Testimonial Graphic",
			BackgroundTone: "cream linen with subtle shadows",
			SurfaceType:    "polished marble",
			AccentProp:     "single white tulip",
			Lighting:       "natural side lighting",
			CameraAngle:    "clean straight-on view",
			OverlayText:    "My skin has never felt this good.",
		},
	}
}

const stylingTemperature = 0.7

// StylingGenerator asks the text model for one styling descriptor per asset
// category. It never returns an error: any failure along the way, from an
// unconfigured client to unparseable output, degrades to the default set so a
// run always has exactly five descriptors to work with.
type StylingGenerator struct {
	chat   ChatClient
	logger zerolog.Logger
}

// NewStylingGenerator builds a StylingGenerator around a chat client.
func NewStylingGenerator(chat ChatClient, logger zerolog.Logger) *StylingGenerator {
	return &StylingGenerator{chat: chat, logger: logger}
}

type stylingResponse struct {
	Assets []domain.StylingAsset `json:"assets"`
}

// Generate produces exactly five styling descriptors for the request, one per
// canonical category in stable order.
func (g *StylingGenerator) Generate(ctx context.Context, req domain.SubmissionRequest) []domain.StylingAsset {
	req = req.WithBrandDefaults(domain.DefaultBrand)

	raw, err := g.chat.ChatJSON(ctx, stylingSystemPrompt(req), stylingUserPrompt(req), stylingTemperature)
	if err != nil {
		g.logger.Warn().Err(err).Msg("styling: completion failed, using default descriptors")
		return DefaultStylingAssets()
	}

	var parsed stylingResponse
	if err := json.Unmarshal([]byte(extractJSONFragment(raw)), &parsed); err != nil {
		g.logger.Warn().Err(err).Msg("styling: unparseable completion, using default descriptors")
		return DefaultStylingAssets()
	}
	return normalizeStylings(parsed.Assets)
}

// normalizeStylings reduces model output to exactly one descriptor per
// canonical category, in stable order, filling any category the model skipped
// from the default set. Duplicates and unknown asset names are dropped.
func normalizeStylings(assets []domain.StylingAsset) []domain.StylingAsset {
	byType := make(map[domain.AssetType]domain.StylingAsset, len(assets))
	for _, a := range assets {
		t := a.Type()
		if t == domain.AssetTypeOther {
			continue
		}
		if _, seen := byType[t]; seen {
			continue
		}
		byType[t] = a
	}

	defaults := make(map[domain.AssetType]domain.StylingAsset, 5)
	for _, a := range DefaultStylingAssets() {
		defaults[a.Type()] = a
	}

	out := make([]domain.StylingAsset, 0, 5)
	for _, t := range domain.AllAssetTypes() {
		if a, ok := byType[t]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, defaults[t])
	}
	return out
}

func stylingSystemPrompt(req domain.SubmissionRequest) string {
	return fmt.Sprintf(`You are a luxury product photographer and stylist.

Your task is to suggest creative visual styling elements for 5 product launch assets — each for a different channel. The product is from a premium %s brand with a clean, minimal, elegant tone — but it's okay to be bold and attention-grabbing where suitable.

Each asset must:

Feel part of the same brand campaign
Use varied styling (not repetitive)
Be visually differentiated based on its platform and purpose
Return a JSON object with the following structure:

For each asset, vary the:

backgroundTone → must be visually attractive and brand-aligned
surfaceType → creative but not distracting
accentProp → feminine, luxurious, and elegant (avoid droplets or overused props)
lighting → varies by mood or asset format
cameraAngle → changes perspective and storytelling
Overlay Text - a short yet attractive copy. (It could be a CTA, a launch offer, a normal text etc.) Avoid using the tagline. Make it sound as if it is coming from a very luxurious setting.
Use tasteful elements like marble, linen, satin, ribbon, flowers, sculptural trays, and glass — but ensure each scene feels premium and styled intentionally.

Do not repeat the same exact prop, background, or layout across assets.

Only respond with the structured JSON output.

Instagram Post
Purpose: Feed-worthy hero image for social media
Visual Style: Polished, balanced composition. Clear product focus. Elegant props. Can be bold or eye-catching.
Instagram Story
Purpose: Vertical (9:16) mobile-first visual
Visual Style: Cropped, zoomed-in. Close-up textures. Feels intimate and lightweight.
Website Banner
Purpose: Wide header for homepage or hero section
Visual Style: Spacious layout with clean negative space. Product is usually off-center. Calm, minimal, premium.
Ad Creative
Purpose: High-impact visual for paid ads or carousels
Visual Style: Bold, contrasty, visually striking but still refined. May use dramatic lighting or color.
Testimonial Graphic
Purpose: Visual support for a customer quote or review
Visual Style: Soft, nurturing, and gentle. Product is present but secondary. Clean and emotionally warm.`, req.ProductCategory)
}

func stylingUserPrompt(req domain.SubmissionRequest) string {
	example, err := json.MarshalIndent(stylingResponse{Assets: DefaultStylingAssets()}, "", "  ")
	if err != nil {
		example = []byte(`{"assets": []}`)
	}
	return fmt.Sprintf(`Product Name: %s
Tagline: %s
Brand: %s
Tone: %s
Category: %s
Benefit: %s

Please provide creative styling suggestions for 5 different product assets in this exact JSON format. Change the values according to the product data but keep the format same:

%s`,
		req.ProductName,
		req.ProductTagline,
		req.BrandName,
		req.BrandTone,
		req.ProductCategory,
		req.HighlightedBenefit,
		example,
	)
}
