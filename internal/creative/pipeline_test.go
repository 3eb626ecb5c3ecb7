package creative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"server/internal/domain"
)

func newTestPipeline(users *stubUserRepo, subs *stubSubmissionRepo, images *stubImages, store *memStore, quota int) *Pipeline {
	styler := NewStylingGenerator(&stubChat{err: errors.New("offline")}, zerolog.Nop())
	syn := NewSynthesizer(images, store, &stubResolver{}, zerolog.Nop())
	return NewPipeline(users, subs, styler, syn, store, quota, zerolog.Nop())
}

func TestRunRejectsMissingFields(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "user-123"})
	subs := &stubSubmissionRepo{users: users}
	images := &stubImages{}
	p := newTestPipeline(users, subs, images, newMemStore(), 1)

	req := testRequest()
	req.ProductName = ""
	_, err := p.Run(context.Background(), req)

	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
	if !strings.Contains(err.Error(), "ProductName") {
		t.Fatalf("err should name the missing field: %v", err)
	}
	if images.totalCalls() != 0 {
		t.Fatalf("upstream called on invalid request")
	}
}

func TestRunRejectsUnknownUser(t *testing.T) {
	users := newStubUserRepo()
	subs := &stubSubmissionRepo{users: users}
	p := newTestPipeline(users, subs, &stubImages{}, newMemStore(), 1)

	_, err := p.Run(context.Background(), testRequest())

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRunQuotaGateSkipsUpstream(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "user-123", GeneratedImages: 1})
	subs := &stubSubmissionRepo{users: users}
	images := &stubImages{}
	p := newTestPipeline(users, subs, images, newMemStore(), 1)

	_, err := p.Run(context.Background(), testRequest())

	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	if images.totalCalls() != 0 {
		t.Fatalf("upstream called despite exhausted quota: %d calls", images.totalCalls())
	}
	if len(subs.created) != 0 {
		t.Fatalf("submission persisted despite exhausted quota")
	}
}

func TestRunPersistsSubmissionWithAllCreatives(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "user-123"})
	subs := &stubSubmissionRepo{users: users}
	store := newMemStore()
	p := newTestPipeline(users, subs, &stubImages{}, store, 1)

	result, err := p.Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Creatives) != 5 {
		t.Fatalf("creatives = %d, want 5", len(result.Creatives))
	}
	if len(subs.created) != 1 {
		t.Fatalf("persisted submissions = %d, want 1", len(subs.created))
	}
	sub := subs.created[0]
	for _, at := range domain.AllAssetTypes() {
		ref := sub.CreativeFor(at)
		if ref.URL == "" {
			t.Fatalf("submission missing creative for %s", at)
		}
	}
	if users.users["user-123"].GeneratedImages != 1 {
		t.Fatalf("counter = %d, want 1", users.users["user-123"].GeneratedImages)
	}

	// Second run trips the quota.
	_, err = p.Run(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("second run err = %v, want ErrQuotaExceeded", err)
	}
}

func TestRunStagesOriginalImage(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "user-123"})
	subs := &stubSubmissionRepo{users: users}
	store := newMemStore()
	images := &stubImages{}
	p := newTestPipeline(users, subs, images, store, 1)

	req := testRequest()
	req.SourceImage = []byte("product-photo")
	result, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Submission.OriginalImage.URL == "" {
		t.Fatalf("original image not staged")
	}
	if !strings.HasPrefix(result.Submission.OriginalImage.PublicID, ProductsFolder+"/") {
		t.Fatalf("original public id = %q, want %s prefix", result.Submission.OriginalImage.PublicID, ProductsFolder)
	}
	if images.editCalls != 5 {
		t.Fatalf("edit calls = %d, want 5", images.editCalls)
	}
}

func TestRunCleansUpOnPersistFailure(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "user-123"})
	subs := &stubSubmissionRepo{users: users, createErr: errors.New("db down")}
	store := newMemStore()
	p := newTestPipeline(users, subs, &stubImages{}, store, 1)

	req := testRequest()
	req.SourceImage = []byte("product-photo")
	_, err := p.Run(context.Background(), req)

	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	// Original plus five creatives were uploaded before the failed insert.
	if len(store.deleted) != 6 {
		t.Fatalf("deleted objects = %d, want 6", len(store.deleted))
	}
	if len(store.objects) != 0 {
		t.Fatalf("objects left behind after cleanup: %d", len(store.objects))
	}
}

func TestRunQuotaRaceSurfacesQuotaError(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "user-123"})
	subs := &stubSubmissionRepo{users: users, createErr: domain.ErrQuotaExceeded}
	p := newTestPipeline(users, subs, &stubImages{}, newMemStore(), 1)

	_, err := p.Run(context.Background(), testRequest())

	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
}
