package creative

import (
	"fmt"
	"strings"

	"server/internal/domain"
)

// BuildPrompt renders the image-generation prompt for one asset type from
// its styling descriptor and the product context. It is pure and total: any
// of the five known categories gets its dedicated template with blank
// optional fields replaced by the documented brand defaults, and unknown
// categories get a fixed generic prompt.
func BuildPrompt(t domain.AssetType, styling domain.StylingAsset, product domain.SubmissionRequest) string {
	product = product.WithBrandDefaults(domain.DefaultBrand)
	switch t {
	case domain.AssetTypeInstagramPost:
		return instagramPostPrompt(styling, product)
	case domain.AssetTypeInstagramStory:
		return instagramStoryPrompt(styling, product)
	case domain.AssetTypeWebsiteBanner:
		return websiteBannerPrompt(styling, product)
	case domain.AssetTypeFacebookPost:
		return adCreativePrompt(styling, product)
	case domain.AssetTypeLinkedInPost:
		return testimonialPrompt(styling, product)
	default:
		return genericPrompt
	}
}

const genericPrompt = `Create a premium, elegant product image for a luxury product.
Style: Clean, minimal composition with soft lighting and premium props like marble or satin.
Make it look high-end and sophisticated.`

func instagramPostPrompt(a domain.StylingAsset, p domain.SubmissionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a square (1:1) photorealistic Instagram Post visual for the %s product %s from %s.\n", p.ProductCategory, p.ProductName, p.BrandName)
	b.WriteString("This is the hero asset in the product launch. It should feel bold, polished, and visually iconic, with a clean, centered, brand-first composition.\n")
	b.WriteString("The product image is provided. Do not alter it; integrate it into a stylized visual scene.\n\n")
	fmt.Fprintf(&b, "Use a %s background that reflects natural elegance. Place the product on a %s.\n", a.BackgroundTone, a.SurfaceType)
	fmt.Fprintf(&b, "Introduce a complementary accent prop like a %s to enrich the visual story. Ensure props enhance, not clutter.\n", a.AccentProp)
	fmt.Fprintf(&b, "Apply %s to add dimension, and capture the image from a %s.\n\n", a.Lighting, a.CameraAngle)
	b.WriteString(brandRules(p))
	fmt.Fprintf(&b, "\nFeel free to include overlay text - %q. Ensure it is clearly legible, elegantly styled, and placed harmoniously within the composition.\n", a.OverlayText)
	b.WriteString("\nThis should be a clean, emotionally resonant product visual worthy of a high-end Instagram or print campaign.")
	return b.String()
}

func instagramStoryPrompt(a domain.StylingAsset, p domain.SubmissionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a vertical 9:16 photorealistic Instagram Story visual for the %s product %s from %s.\n", p.ProductCategory, p.ProductName, p.BrandName)
	b.WriteString("This is a mobile-first asset. It should feel closer, more intimate, and optimized for scrolling, with vertical flow and tactile textures.\n")
	b.WriteString("The product image is provided. Do not alter it; integrate it into a vertical, immersive, mobile-first visual scene.\n\n")
	fmt.Fprintf(&b, "Use a %s background with vertical flow. Place the product on a %s appropriate for an elegant vertical composition.\n", a.BackgroundTone, a.SurfaceType)
	fmt.Fprintf(&b, "Introduce a complementary vertical-friendly accent prop like a %s to frame the product visually. Keep it minimal and scroll-worthy.\n", a.AccentProp)
	fmt.Fprintf(&b, "Apply %s to enhance clarity on mobile screens, and capture the image from a %s that fits the tall format naturally.\n\n", a.Lighting, a.CameraAngle)
	b.WriteString(brandRules(p))
	fmt.Fprintf(&b, "\nFeel free to include overlay text - %q. Ensure it is clearly legible, elegantly styled, and placed harmoniously within the composition.\n", a.OverlayText)
	fmt.Fprintf(&b, "\nThis should feel refined, light, and scroll-stopping on a premium %s brand's Instagram Story.", p.ProductCategory)
	return b.String()
}

func websiteBannerPrompt(a domain.StylingAsset, p domain.SubmissionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a horizontal 16:9 photorealistic Website Banner visual for the %s product %s from %s.\n", p.ProductCategory, p.ProductName, p.BrandName)
	b.WriteString("This asset is for a homepage hero section. It must feel spacious, minimal, and refined, with a clean off-center layout and breathing room.\n")
	b.WriteString("The product image is provided. Do not alter it; integrate it into a clean, web-friendly layout with ample negative space.\n\n")
	fmt.Fprintf(&b, "Use a %s background that works well on large desktop screens. Place the product on a %s with a clear left or right alignment.\n", a.BackgroundTone, a.SurfaceType)
	fmt.Fprintf(&b, "Include a single complementary accent prop such as a %s: soft, grounded, and not distracting. Keep the overall layout breathable.\n", a.AccentProp)
	fmt.Fprintf(&b, "Apply %s for subtle depth, and shoot from a %s that supports side placement.\n\n", a.Lighting, a.CameraAngle)
	b.WriteString(brandRules(p))
	fmt.Fprintf(&b, "\nFeel free to include overlay text - %q. Ensure it is clearly legible, elegantly styled, and placed harmoniously within the composition.\n", a.OverlayText)
	fmt.Fprintf(&b, "\nThis should feel modern, clean, and aligned with a premium %s homepage aesthetic.", p.ProductCategory)
	return b.String()
}

func adCreativePrompt(a domain.StylingAsset, p domain.SubmissionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a square 1:1 photorealistic Ad Creative visual for the %s product %s from %s.\n", p.ProductCategory, p.ProductName, p.BrandName)
	b.WriteString("This is a scroll-stopping ad meant for paid social. It should feel high-impact, dramatic, and visually punchy, with bold lighting and a strong visual hierarchy.\n")
	b.WriteString("The product image is provided. Do not alter it; integrate it into a bold and visually striking layout designed for advertising.\n\n")
	fmt.Fprintf(&b, "Use a %s background that immediately catches the eye. Place the product on a %s that adds visual punch without distraction.\n", a.BackgroundTone, a.SurfaceType)
	fmt.Fprintf(&b, "Introduce a dynamic accent prop like a %s to elevate the scene. The layout should feel purposeful and energetic.\n", a.AccentProp)
	fmt.Fprintf(&b, "Apply %s for contrast and bold shadows, and shoot from a %s that adds visual drama and structure.\n\n", a.Lighting, a.CameraAngle)
	b.WriteString(brandRules(p))
	fmt.Fprintf(&b, "\nFeel free to include overlay text - %q. Ensure it is clearly legible, elegantly styled, and placed harmoniously within the composition.\n", a.OverlayText)
	b.WriteString("\nThis should stop the scroll and feel luxurious, modern, and ad-ready while staying true to the brand.")
	return b.String()
}

func testimonialPrompt(a domain.StylingAsset, p domain.SubmissionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a square 1:1 photorealistic Testimonial Graphic visual for the %s product %s from %s.\n", p.ProductCategory, p.ProductName, p.BrandName)
	b.WriteString("This asset supports a customer review or quote. It should feel soft, nurturing, and emotionally warm: quiet, minimal, and sincere, drawing attention subtly to the product.\n")
	b.WriteString("The product image is provided. Do not alter it; integrate it into a soft, calming visual meant to support a customer testimonial.\n\n")
	fmt.Fprintf(&b, "Use a %s background with muted tones. Place the product gently on a %s that feels warm and nurturing.\n", a.BackgroundTone, a.SurfaceType)
	fmt.Fprintf(&b, "Add a gentle, emotional prop like a %s. Keep all elements minimal, sincere, and comforting.\n", a.AccentProp)
	fmt.Fprintf(&b, "Apply %s to soften the scene, and shoot from a %s that conveys trust and simplicity.\n\n", a.Lighting, a.CameraAngle)
	b.WriteString(brandRules(p))
	fmt.Fprintf(&b, "\nFeel free to include overlay text - %q. Ensure it is clearly legible, elegantly styled, and placed harmoniously within the composition.\n", a.OverlayText)
	b.WriteString("\nThis image should quietly support a testimonial or review without overshadowing it: calm, minimal, and emotionally resonant.")
	return b.String()
}

func brandRules(p domain.SubmissionRequest) string {
	var b strings.Builder
	b.WriteString("Follow the brand's identity and styling rules:\n")
	fmt.Fprintf(&b, "- Tone: %s\n", p.BrandTone)
	fmt.Fprintf(&b, "- Color palette: %s\n", p.ColorTheme)
	fmt.Fprintf(&b, "- Typography style (for brand reference only): %s\n", p.TypographyStyle)
	fmt.Fprintf(&b, "- Product placement rules: %s\n", p.ProductPlacement)
	fmt.Fprintf(&b, "- Composition: %s\n", p.CompositionGuidelines)
	return b.String()
}
