package handlers

import (
	"io"
	"net/http"
	"strings"

	"server/internal/creative"
)

// GenerateProductInfo derives brand and styling guidelines for a product from
// its basics plus up to two reference photos. The body is multipart form data
// with optional "image1"/"image2" files. The profiler never fails outright, so
// a well-formed request always yields a profile.
func (a *App) GenerateProductInfo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form data")
		return
	}

	req := creative.ProductInfoRequest{
		ProductName:     strings.TrimSpace(r.FormValue("productName")),
		ProductCategory: strings.TrimSpace(r.FormValue("productCategory")),
		Description:     strings.TrimSpace(r.FormValue("description")),
	}
	if req.ProductName == "" || req.ProductCategory == "" {
		a.error(w, http.StatusBadRequest, "validation_failed", "productName and productCategory are required")
		return
	}

	for _, field := range []string{"image1", "image2"} {
		file, _, err := r.FormFile(field)
		if err != nil {
			continue
		}
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		_ = file.Close()
		if readErr != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unreadable image upload")
			return
		}
		req.Images = append(req.Images, data)
	}

	profile := a.Profiler.Generate(r.Context(), req)
	a.json(w, http.StatusOK, profile)
}
