package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/creative"
	"server/internal/domain"
	"server/internal/storage"
)

// Runner executes one generation run. Satisfied by creative.Pipeline.
type Runner interface {
	Run(ctx context.Context, req domain.SubmissionRequest) (*creative.Result, error)
}

// Profiler derives a brand profile from product basics and reference photos.
// Satisfied by creative.ProductInfoGenerator.
type Profiler interface {
	Generate(ctx context.Context, req creative.ProductInfoRequest) domain.BrandDefaults
}

type App struct {
	Runner      Runner
	Profiler    Profiler
	Users       domain.UserRepository
	Submissions domain.SubmissionRepository
	Store       storage.ObjectStore
	Quota       int
	Logger      zerolog.Logger
}

func NewApp(runner Runner, profiler Profiler, users domain.UserRepository, submissions domain.SubmissionRepository, store storage.ObjectStore, quota int, logger zerolog.Logger) *App {
	return &App{
		Runner:      runner,
		Profiler:    profiler,
		Users:       users,
		Submissions: submissions,
		Store:       store,
		Quota:       quota,
		Logger:      logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}
