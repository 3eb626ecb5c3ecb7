package creative

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

func testRequest() domain.SubmissionRequest {
	return domain.SubmissionRequest{
		UserID:             "user-123",
		ProductName:        "Velvet Serum",
		ProductTagline:     "Silk for your skin",
		ProductCategory:    "skincare",
		HighlightedBenefit: "Deep hydration",
		ProductDescription: "A lightweight overnight serum.",
	}
}

func TestGenerateFallsBackWhenChatFails(t *testing.T) {
	chat := &stubChat{err: errors.New("upstream unreachable")}
	gen := NewStylingGenerator(chat, zerolog.Nop())

	got := gen.Generate(context.Background(), testRequest())

	want := DefaultStylingAssets()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("asset[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGenerateParsesFencedResponse(t *testing.T) {
	payload, err := json.Marshal(stylingResponse{Assets: DefaultStylingAssets()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	chat := &stubChat{response: "```json\n" + string(payload) + "\n```"}
	gen := NewStylingGenerator(chat, zerolog.Nop())

	got := gen.Generate(context.Background(), testRequest())

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].AssetType != "Instagram Post" {
		t.Fatalf("first asset type = %q, want %q", got[0].AssetType, "Instagram Post")
	}
}

func TestGenerateFillsMissingCategoriesFromDefaults(t *testing.T) {
	partial := stylingResponse{Assets: []domain.StylingAsset{
		{
			AssetType:      "Instagram Post",
			BackgroundTone: "midnight blue",
			SurfaceType:    "obsidian slab",
			AccentProp:     "silver chain",
			Lighting:       "hard rim light",
			CameraAngle:    "low angle",
			OverlayText:    "Own the night.",
		},
		{AssetType: "Billboard"}, // unknown, dropped
	}}
	payload, err := json.Marshal(partial)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	chat := &stubChat{response: string(payload)}
	gen := NewStylingGenerator(chat, zerolog.Nop())

	got := gen.Generate(context.Background(), testRequest())

	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[0].BackgroundTone != "midnight blue" {
		t.Fatalf("model-provided descriptor not kept: %+v", got[0])
	}
	defaults := DefaultStylingAssets()
	if got[1] != defaults[1] {
		t.Fatalf("missing category not filled from defaults: %+v", got[1])
	}
	seen := make(map[domain.AssetType]bool)
	for _, a := range got {
		if seen[a.Type()] {
			t.Fatalf("duplicate category %s", a.Type())
		}
		seen[a.Type()] = true
	}
}

func TestGenerateDropsDuplicateCategories(t *testing.T) {
	first := DefaultStylingAssets()[0]
	dup := first
	dup.BackgroundTone = "second copy"
	payload, err := json.Marshal(stylingResponse{Assets: []domain.StylingAsset{first, dup}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	chat := &stubChat{response: string(payload)}
	gen := NewStylingGenerator(chat, zerolog.Nop())

	got := gen.Generate(context.Background(), testRequest())

	if got[0].BackgroundTone != first.BackgroundTone {
		t.Fatalf("first descriptor should win, got %q", got[0].BackgroundTone)
	}
}

func TestGenerateUserPromptCarriesProductData(t *testing.T) {
	chat := &stubChat{err: errors.New("short-circuit")}
	gen := NewStylingGenerator(chat, zerolog.Nop())
	req := testRequest()

	gen.Generate(context.Background(), req)

	if !strings.Contains(chat.lastUser, req.ProductName) {
		t.Fatalf("user prompt missing product name: %s", chat.lastUser)
	}
	if !strings.Contains(chat.lastUser, domain.DefaultBrand.BrandName) {
		t.Fatalf("user prompt missing default brand name")
	}
}

func TestExtractJSONFragment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain object", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fenced upper", in: "```JSON\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "chatter around", in: "Here you go:\n{\"a\":1}\nEnjoy!", want: `{"a":1}`},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSONFragment(tc.in); got != tc.want {
				t.Fatalf("extractJSONFragment() = %q, want %q", got, tc.want)
			}
		})
	}
}
