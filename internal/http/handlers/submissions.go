package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/pkg/zip"
)

// maxUploadBytes caps the uploaded product photo at 10 MiB.
const maxUploadBytes = 10 << 20

type submissionPayload struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"userId"`
	ProductName        string            `json:"productName"`
	ProductTagline     string            `json:"productTagline"`
	ProductCategory    string            `json:"productCategory"`
	HighlightedBenefit string            `json:"highlightedBenefit"`
	ProductDescription string            `json:"productDescription"`
	BrandName          string            `json:"brandName,omitempty"`
	BrandTone          string            `json:"brandTone,omitempty"`
	OriginalImageURL   string            `json:"originalImageUrl,omitempty"`
	Creatives          []creativePayload `json:"creatives"`
	CreatedAt          time.Time         `json:"createdAt"`
}

type creativePayload struct {
	Type       domain.AssetType `json:"type"`
	Title      string           `json:"title"`
	ImageURL   string           `json:"imageUrl"`
	PublicID   string           `json:"publicId,omitempty"`
	Dimensions string           `json:"dimensions"`
}

func toPayload(sub *domain.Submission) submissionPayload {
	out := submissionPayload{
		ID:                 sub.ID,
		UserID:             sub.UserID,
		ProductName:        sub.ProductName,
		ProductTagline:     sub.ProductTagline,
		ProductCategory:    sub.ProductCategory,
		HighlightedBenefit: sub.HighlightedBenefit,
		ProductDescription: sub.ProductDescription,
		BrandName:          sub.BrandName,
		BrandTone:          sub.BrandTone,
		OriginalImageURL:   sub.OriginalImage.URL,
		CreatedAt:          sub.CreatedAt,
	}
	for _, t := range domain.AllAssetTypes() {
		ref := sub.CreativeFor(t)
		spec := domain.SpecFor(t)
		out.Creatives = append(out.Creatives, creativePayload{
			Type:       t,
			Title:      spec.Title,
			ImageURL:   ref.URL,
			PublicID:   ref.PublicID,
			Dimensions: spec.Dimensions(),
		})
	}
	return out
}

// CreateSubmission accepts the product form, runs the generation pipeline,
// and returns the persisted submission plus the finished creatives. The body
// is multipart form data with an optional "image" file, or plain JSON when no
// photo is attached.
func (a *App) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	req, err := a.decodeSubmissionRequest(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := a.Runner.Run(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			a.error(w, http.StatusBadRequest, "validation_failed", err.Error())
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "user not found")
		case errors.Is(err, domain.ErrQuotaExceeded):
			a.error(w, http.StatusForbidden, "quota_exceeded", "generation quota exceeded")
		default:
			a.Logger.Error().Err(err).Msg("submission run failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to process submission")
		}
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"submission":      toPayload(result.Submission),
		"generatedImages": result.Creatives,
	})
}

func (a *App) decodeSubmissionRequest(r *http.Request) (domain.SubmissionRequest, error) {
	var req domain.SubmissionRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid payload")
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, fmt.Errorf("invalid form data")
	}
	req.UserID = r.FormValue("userId")
	req.ProductName = r.FormValue("productName")
	req.ProductTagline = r.FormValue("productTagline")
	req.ProductCategory = r.FormValue("productCategory")
	req.HighlightedBenefit = r.FormValue("highlightedBenefit")
	req.ProductDescription = r.FormValue("productDescription")
	req.BrandName = r.FormValue("brandName")
	req.BrandTone = r.FormValue("brandTone")
	req.ColorTheme = r.FormValue("colorTheme")
	req.BackgroundStyle = r.FormValue("backgroundStyle")
	req.LightingStyle = r.FormValue("lightingStyle")
	req.ProductPlacement = r.FormValue("productPlacement")
	req.TypographyStyle = r.FormValue("typographyStyle")
	req.CompositionGuidelines = r.FormValue("compositionGuidelines")

	file, _, err := r.FormFile("image")
	if err == nil {
		defer func() {
			_ = file.Close()
		}()
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if readErr != nil {
			return req, fmt.Errorf("unreadable image upload")
		}
		req.SourceImage = data
	}
	return req, nil
}

// ListSubmissions returns a user's submissions, newest first.
func (a *App) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "user_id query parameter required")
		return
	}
	subs, err := a.Submissions.ListByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("list submissions failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load submissions")
		return
	}
	items := make([]submissionPayload, 0, len(subs))
	for i := range subs {
		items = append(items, toPayload(&subs[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// GetSubmission returns one submission by id.
func (a *App) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := a.Submissions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "submission not found")
			return
		}
		a.Logger.Error().Err(err).Str("submission_id", id).Msg("get submission failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load submission")
		return
	}
	a.json(w, http.StatusOK, toPayload(sub))
}

// DeleteSubmission removes a submission row and its stored objects. Object
// deletes are best effort; the row is the source of truth.
func (a *App) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := a.Submissions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "submission not found")
			return
		}
		a.Logger.Error().Err(err).Str("submission_id", id).Msg("load submission for delete failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete submission")
		return
	}
	if err := a.Submissions.Delete(r.Context(), id); err != nil {
		a.Logger.Error().Err(err).Str("submission_id", id).Msg("delete submission failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete submission")
		return
	}
	for _, publicID := range sub.PublicIDs() {
		if err := a.Store.Delete(r.Context(), publicID); err != nil {
			a.Logger.Warn().Err(err).Str("public_id", publicID).Msg("delete stored object failed")
		}
	}
	a.json(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DownloadSubmission streams the submission's creatives as a zip archive.
func (a *App) DownloadSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := a.Submissions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "submission not found")
			return
		}
		a.Logger.Error().Err(err).Str("submission_id", id).Msg("load submission for download failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load submission")
		return
	}

	var assets []zip.Asset
	for _, t := range domain.AllAssetTypes() {
		ref := sub.CreativeFor(t)
		if strings.TrimSpace(ref.PublicID) == "" {
			continue
		}
		data, err := a.Store.Fetch(r.Context(), ref.PublicID)
		if err != nil {
			a.Logger.Warn().Err(err).Str("public_id", ref.PublicID).Msg("fetch stored object failed")
			continue
		}
		assets = append(assets, zip.Asset{Filename: string(t), MIME: "image/png", Data: data})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no downloadable creatives")
		return
	}

	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=submission-%s.zip", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
