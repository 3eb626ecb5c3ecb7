package creative

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type stubVision struct {
	mu       sync.Mutex
	analysis string
	err      error
	calls    int
}

func (s *stubVision) ChatVision(ctx context.Context, prompt string, image []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.analysis, nil
}

func productInfoRequest(images ...[]byte) ProductInfoRequest {
	return ProductInfoRequest{
		ProductName:     "Velvet Serum",
		ProductCategory: "skincare",
		Description:     "Overnight repair serum.",
		Images:          images,
	}
}

func TestProductInfoParsesCompletion(t *testing.T) {
	chat := &stubChat{response: `{
		"brandName": "LUMISÉRA",
		"brandTone": "Luxury skincare — clean, calm, and elegant.",
		"colorTheme": "Deep sea blues and warm golds.",
		"backgroundStyle": "Satin textures.",
		"lightingStyle": "Soft spotlight.",
		"productPlacement": "Grounded on a marble slab.",
		"typographyStyle": "Uppercase serif titles.",
		"compositionGuidelines": "Elegant off-center balance."
	}`}
	vision := &stubVision{analysis: "Centered bottle on marble, gold accents."}
	gen := NewProductInfoGenerator(chat, vision, zerolog.Nop())

	profile := gen.Generate(context.Background(), productInfoRequest([]byte("photo")))

	if profile.BrandName != "LUMISÉRA" {
		t.Fatalf("brandName = %q", profile.BrandName)
	}
	if profile.CompositionGuidelines != "Elegant off-center balance." {
		t.Fatalf("compositionGuidelines = %q", profile.CompositionGuidelines)
	}
	if vision.calls != 1 {
		t.Fatalf("vision calls = %d, want 1", vision.calls)
	}
}

func TestProductInfoEmbedsAnalysisInPrompt(t *testing.T) {
	chat := &stubChat{response: `{"brandName": "AURUM"}`}
	vision := &stubVision{analysis: "Gold bottle floating over silk."}
	gen := NewProductInfoGenerator(chat, vision, zerolog.Nop())

	gen.Generate(context.Background(), productInfoRequest([]byte("a"), []byte("b")))

	if vision.calls != 2 {
		t.Fatalf("vision calls = %d, want one per photo", vision.calls)
	}
	if !strings.Contains(chat.lastUser, "Gold bottle floating over silk.") {
		t.Fatalf("analysis missing from prompt:\n%s", chat.lastUser)
	}
	if !strings.Contains(chat.lastUser, "Velvet Serum") || !strings.Contains(chat.lastUser, "Overnight repair serum.") {
		t.Fatalf("product details missing from prompt:\n%s", chat.lastUser)
	}
}

func TestProductInfoSurvivesVisionFailure(t *testing.T) {
	chat := &stubChat{response: `{"brandName": "AURUM"}`}
	vision := &stubVision{err: errors.New("vision unavailable")}
	gen := NewProductInfoGenerator(chat, vision, zerolog.Nop())

	profile := gen.Generate(context.Background(), productInfoRequest([]byte("photo")))

	if profile.BrandName != "AURUM" {
		t.Fatalf("brandName = %q, want completion to proceed without analysis", profile.BrandName)
	}
	if strings.Contains(chat.lastUser, "Image Analysis") {
		t.Fatalf("failed analysis leaked into prompt:\n%s", chat.lastUser)
	}
}

func TestProductInfoFallsBackOnChatFailure(t *testing.T) {
	chat := &stubChat{err: errors.New("chat unavailable")}
	gen := NewProductInfoGenerator(chat, &stubVision{}, zerolog.Nop())

	profile := gen.Generate(context.Background(), productInfoRequest())

	if profile != productInfoFallback {
		t.Fatalf("profile = %+v, want fallback", profile)
	}
	if profile.BrandName != "PREMIUM" {
		t.Fatalf("fallback brandName = %q", profile.BrandName)
	}
}

func TestProductInfoFallsBackOnUnparseableCompletion(t *testing.T) {
	chat := &stubChat{response: "not json at all"}
	gen := NewProductInfoGenerator(chat, &stubVision{}, zerolog.Nop())

	profile := gen.Generate(context.Background(), productInfoRequest())

	if profile != productInfoFallback {
		t.Fatalf("profile = %+v, want fallback", profile)
	}
}

func TestProductInfoFillsBlankFields(t *testing.T) {
	chat := &stubChat{response: `{"brandName": "AURUM", "brandTone": ""}`}
	gen := NewProductInfoGenerator(chat, &stubVision{}, zerolog.Nop())

	profile := gen.Generate(context.Background(), productInfoRequest())

	if profile.BrandName != "AURUM" {
		t.Fatalf("brandName = %q", profile.BrandName)
	}
	if profile.BrandTone != productInfoFallback.BrandTone {
		t.Fatalf("blank brandTone not filled: %q", profile.BrandTone)
	}
	if profile.ColorTheme != productInfoFallback.ColorTheme {
		t.Fatalf("missing colorTheme not filled: %q", profile.ColorTheme)
	}
}

func TestProductInfoSkipsEmptyImages(t *testing.T) {
	chat := &stubChat{response: `{"brandName": "AURUM"}`}
	vision := &stubVision{analysis: "analysis"}
	gen := NewProductInfoGenerator(chat, vision, zerolog.Nop())

	gen.Generate(context.Background(), productInfoRequest(nil, []byte("photo")))

	if vision.calls != 1 {
		t.Fatalf("vision calls = %d, want empty image skipped", vision.calls)
	}
}
