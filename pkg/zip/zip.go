package zip

import (
	"archive/zip"
	"bytes"
	"strings"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets bundles assets into a zip archive in memory. Filenames get an
// extension derived from the MIME type when they carry none. Assets that fail
// to archive are skipped; the result always holds every asset that did make it
// in, never a truncated or empty archive because a later entry failed.
func ArchiveAssets(assets []Asset) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, asset := range assets {
		if len(asset.Data) == 0 {
			continue
		}
		w, err := zw.Create(filenameFor(asset))
		if err != nil {
			continue
		}
		_, _ = w.Write(asset.Data)
	}
	_ = zw.Close()
	return buf.Bytes()
}

func filenameFor(asset Asset) string {
	name := asset.Filename
	if strings.Contains(name, ".") {
		return name
	}
	switch asset.MIME {
	case "image/jpeg":
		return name + ".jpg"
	case "image/webp":
		return name + ".webp"
	default:
		return name + ".png"
	}
}
