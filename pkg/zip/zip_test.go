package zip

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestArchiveAssets(t *testing.T) {
	archive := ArchiveAssets([]Asset{
		{Filename: "instagram_post", MIME: "image/png", Data: []byte("a")},
		{Filename: "banner.jpg", MIME: "image/jpeg", Data: []byte("b")},
		{Filename: "photo", MIME: "image/jpeg", Data: []byte("c")},
		{Filename: "empty", MIME: "image/png", Data: nil},
	})

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 3 {
		t.Fatalf("entries = %d, want empty asset skipped", len(zr.File))
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"instagram_post.png", "banner.jpg", "photo.jpg"} {
		if !names[want] {
			t.Fatalf("missing entry %q in %v", want, names)
		}
	}
}

// The archive must stay well formed no matter what individual assets do: a
// bad entry drops out, it never voids the entries already written.
func TestArchiveAssetsNeverReturnsInvalidArchive(t *testing.T) {
	tests := []struct {
		name        string
		assets      []Asset
		wantEntries int
	}{
		{name: "no assets", assets: nil, wantEntries: 0},
		{name: "only empty assets", assets: []Asset{{Filename: "a", MIME: "image/png"}}, wantEntries: 0},
		{
			name: "good entries survive odd neighbors",
			assets: []Asset{
				{Filename: "first", MIME: "image/png", Data: []byte("x")},
				{Filename: "", MIME: "image/png", Data: []byte("y")},
				{Filename: "last", MIME: "image/png", Data: []byte("z")},
			},
			wantEntries: 3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			archive := ArchiveAssets(tc.assets)
			if archive == nil {
				t.Fatalf("archive = nil, want a well-formed buffer")
			}
			zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
			if err != nil {
				t.Fatalf("open archive: %v", err)
			}
			if len(zr.File) != tc.wantEntries {
				t.Fatalf("entries = %d, want %d", len(zr.File), tc.wantEntries)
			}
		})
	}
}
