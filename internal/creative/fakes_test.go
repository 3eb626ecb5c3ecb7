package creative

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	"server/internal/domain"
	"server/internal/storage"
)

var testPayload = base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))

type stubChat struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	lastUser string
}

func (s *stubChat) ChatJSON(ctx context.Context, system, user string, temperature float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubImages struct {
	mu            sync.Mutex
	generateCalls int
	editCalls     int
	failOn        func(prompt string) bool
	err           error
}

func (s *stubImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generateCalls++
	if s.err != nil {
		return "", s.err
	}
	if s.failOn != nil && s.failOn(prompt) {
		return "", errors.New("generation failed")
	}
	return testPayload, nil
}

func (s *stubImages) EditImage(ctx context.Context, prompt string, source []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editCalls++
	if s.err != nil {
		return "", s.err
	}
	if s.failOn != nil && s.failOn(prompt) {
		return "", errors.New("edit failed")
	}
	return testPayload, nil
}

func (s *stubImages) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateCalls + s.editCalls
}

type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	failStore bool
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Store(ctx context.Context, data []byte, folder, idHint string) (storage.StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStore {
		return storage.StoredObject{}, errors.New("store unavailable")
	}
	key := strings.Trim(folder, "/") + "/" + idHint + ".png"
	m.objects[key] = data
	return storage.StoredObject{
		URL:      "https://cdn.test/" + key,
		PublicID: key,
		Bytes:    int64(len(data)),
	}, nil
}

func (m *memStore) StoreEncoded(ctx context.Context, encoded, folder, idHint string) (storage.StoredObject, error) {
	data, err := storage.DecodeEncoded(encoded)
	if err != nil {
		return storage.StoredObject{}, err
	}
	return m.Store(ctx, data, folder, idHint)
}

func (m *memStore) Fetch(ctx context.Context, publicID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[publicID]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (m *memStore) Delete(ctx context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, publicID)
	delete(m.objects, publicID)
	return nil
}

type stubResolver struct {
	mu    sync.Mutex
	calls []domain.AssetType
}

func (s *stubResolver) Resolve(ctx context.Context, t domain.AssetType) storage.StoredObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, t)
	return storage.StoredObject{
		URL:      "https://cdn.test/placeholders/" + string(t) + ".png",
		PublicID: "placeholders/" + string(t) + ".png",
	}
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type stubSubmissionRepo struct {
	mu        sync.Mutex
	users     *stubUserRepo
	created   []*domain.Submission
	createErr error
}

func (r *stubSubmissionRepo) Create(ctx context.Context, sub *domain.Submission, quota int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.users != nil {
		user, ok := r.users.users[sub.UserID]
		if !ok || user.GeneratedImages >= quota {
			return domain.ErrQuotaExceeded
		}
		user.GeneratedImages++
	}
	r.created = append(r.created, sub)
	return nil
}

func (r *stubSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.created {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubSubmissionRepo) ListByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Submission
	for _, sub := range r.created {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *stubSubmissionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.created {
		if sub.ID == id {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
