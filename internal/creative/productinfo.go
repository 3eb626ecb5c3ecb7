package creative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

// VisionClient is the image-understanding surface the product-info generator
// consumes. Satisfied by providers/openai.Client.
type VisionClient interface {
	ChatVision(ctx context.Context, prompt string, image []byte) (string, error)
}

// ProductInfoRequest carries the inputs for a brand-profile generation: the
// product basics plus up to two reference photos to analyze.
type ProductInfoRequest struct {
	ProductName     string
	ProductCategory string
	Description     string
	Images          [][]byte
}

const productInfoTemperature = 0.7

// productInfoFallback is returned whenever the text model is unavailable or
// its output cannot be parsed.
var productInfoFallback = domain.BrandDefaults{
	BrandName:             "PREMIUM",
	BrandTone:             "Luxury and sophisticated — clean, calm, and elegant.",
	ColorTheme:            "Neutral tones with elegant accents.",
	BackgroundStyle:       "Soft gradients or realistic textures.",
	LightingStyle:         "Soft, diffused lighting with gentle reflections.",
	ProductPlacement:      "Product centered with minimal, elegant props.",
	TypographyStyle:       "Clean, modern typography with elegant fonts.",
	CompositionGuidelines: "Balanced composition with intentional negative space.",
}

// ProductInfoGenerator derives a brand profile for a product from its basics
// and optional reference photos. Photos are first described by the vision
// model; the descriptions then feed the brand-profile completion. Like the
// styling generator it never errors: a failed vision call drops that photo's
// analysis, and a failed or unparseable completion yields the fixed fallback
// profile.
type ProductInfoGenerator struct {
	chat   ChatClient
	vision VisionClient
	logger zerolog.Logger
}

// NewProductInfoGenerator builds a ProductInfoGenerator.
func NewProductInfoGenerator(chat ChatClient, vision VisionClient, logger zerolog.Logger) *ProductInfoGenerator {
	return &ProductInfoGenerator{chat: chat, vision: vision, logger: logger}
}

// Generate produces the brand profile for the request.
func (g *ProductInfoGenerator) Generate(ctx context.Context, req ProductInfoRequest) domain.BrandDefaults {
	var analyses []string
	for i, image := range req.Images {
		if len(image) == 0 {
			continue
		}
		analysis, err := g.vision.ChatVision(ctx, visionAnalysisPrompt, image)
		if err != nil {
			g.logger.Warn().Err(err).Int("image", i).Msg("product info: vision analysis failed, skipping photo")
			continue
		}
		analyses = append(analyses, analysis)
	}

	raw, err := g.chat.ChatJSON(ctx, productInfoSystemPrompt, productInfoUserPrompt(req, strings.Join(analyses, "\n\n")), productInfoTemperature)
	if err != nil {
		g.logger.Warn().Err(err).Msg("product info: completion failed, using fallback profile")
		return productInfoFallback
	}

	var profile domain.BrandDefaults
	if err := json.Unmarshal([]byte(extractJSONFragment(raw)), &profile); err != nil {
		g.logger.Warn().Err(err).Msg("product info: unparseable completion, using fallback profile")
		return productInfoFallback
	}
	return fillProfile(profile, productInfoFallback)
}

// fillProfile substitutes fallback phrases for any field the model left blank
// so callers always see a complete profile.
func fillProfile(p, d domain.BrandDefaults) domain.BrandDefaults {
	if strings.TrimSpace(p.BrandName) == "" {
		p.BrandName = d.BrandName
	}
	if strings.TrimSpace(p.BrandTone) == "" {
		p.BrandTone = d.BrandTone
	}
	if strings.TrimSpace(p.ColorTheme) == "" {
		p.ColorTheme = d.ColorTheme
	}
	if strings.TrimSpace(p.BackgroundStyle) == "" {
		p.BackgroundStyle = d.BackgroundStyle
	}
	if strings.TrimSpace(p.LightingStyle) == "" {
		p.LightingStyle = d.LightingStyle
	}
	if strings.TrimSpace(p.ProductPlacement) == "" {
		p.ProductPlacement = d.ProductPlacement
	}
	if strings.TrimSpace(p.TypographyStyle) == "" {
		p.TypographyStyle = d.TypographyStyle
	}
	if strings.TrimSpace(p.CompositionGuidelines) == "" {
		p.CompositionGuidelines = d.CompositionGuidelines
	}
	return p
}

const visionAnalysisPrompt = `Analyze this ad creative in detail. Describe:
- overall layout of the ad (what is present in top, left, right, center of the ad)
- typography: The typography of the ad creative (what kind of font, size, color, where its placed, etc.)
- productPlacement (the exact location, is it grounded, floating, its angle, etc.)
- sideProps (what are the items complementing the product, what are the colors, materials, etc.)
- colors (what are the colors used in the ad to highlight the product. what types are used)
- The visual characteristics of the ad creative
- Overall theme (is it luxury, modern, cool, etc.)
- Background - what kind of environment is it in etc (is it outdoor or on a beach etc).`

const productInfoSystemPrompt = `You are a luxury brand and visual design expert. Your task is to generate sophisticated brand and visual styling guidelines for a product.

Based on the product information provided, create comprehensive styling guidelines that would be suitable for premium marketing materials.

Return your response as a JSON object with exactly these fields:
- brandName: A sophisticated brand name (if not provided, suggest one that fits the product)
- brandTone: Brand personality and voice description
- colorTheme: Detailed color palette description
- backgroundStyle: Background styling recommendations
- lightingStyle: Lighting recommendations for photography
- productPlacement: Product positioning and placement guidelines
- typographyStyle: Typography and text styling guidelines
- compositionGuidelines: Overall composition and layout guidelines

Make everything sound premium, sophisticated, and luxury-oriented.`

func productInfoUserPrompt(req ProductInfoRequest, imageAnalysis string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product Name: %s\n", req.ProductName)
	fmt.Fprintf(&b, "Product Category: %s\n", req.ProductCategory)
	if req.Description != "" {
		fmt.Fprintf(&b, "User Description: %s\n", req.Description)
	}
	if imageAnalysis != "" {
		fmt.Fprintf(&b, "Image Analysis: %s\n", imageAnalysis)
	}
	b.WriteString(`
Please generate comprehensive brand and visual styling guidelines for this product. Here's an example of the expected format:

{
  "brandName": "LUMISÉRA",
  "brandTone": "Luxury skincare — clean, calm, and elegant.",
  "colorTheme": "Deep sea blues, emerald greens, warm golds, and beige.",
  "backgroundStyle": "Soft gradients or realistic textures like water, marble, or satin.",
  "lightingStyle": "Always soft, diffused lighting with a subtle spotlight effect and gentle reflections.",
  "productPlacement": "The product should feel grounded, not floating — placed on surfaces like trays, marble slabs, or fabric. Props like flower petals, ribbons, or boxes can be used sparingly.",
  "typographyStyle": "Use serif fonts in uppercase for titles. For secondary text, use thin script or modern sans-serif. Font color should be white, soft gold, or dark green — never harsh.",
  "compositionGuidelines": "Maintain clean symmetry or elegant off-center balance. Always leave intentional space around the product. Keep supporting elements minimal and refined."
}`)
	return b.String()
}
