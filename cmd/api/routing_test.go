package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"researchpub/internal/config"
	"researchpub/internal/fields"
	"researchpub/internal/platform/crypto"
	"researchpub/internal/plugin"
	"researchpub/internal/publication"
	"researchpub/internal/testutil"
)

// memoryRepo is an in-memory publication.Repository for routing tests.
type memoryRepo struct {
	mu      sync.Mutex
	store   map[string]publication.Publication
	deleted []string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{store: make(map[string]publication.Publication)}
}

func (m *memoryRepo) List(_ context.Context, q publication.Query) ([]publication.Publication, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]publication.Publication, 0, len(m.store))
	for _, p := range m.store {
		if q.Variant == "" || p.Variant == q.Variant {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *memoryRepo) Get(_ context.Context, id string) (publication.Publication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return publication.Publication{}, publication.ErrNotFound
	}
	return p, nil
}

func (m *memoryRepo) Save(_ context.Context, p *publication.Publication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = "pub-new"
	}
	m.store[p.ID] = *p
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return publication.ErrNotFound
	}
	delete(m.store, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memoryRepo) Revisions(_ context.Context, id string) ([]publication.Revision, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, ready error) (http.Handler, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()

	host := plugin.NewRegistry()
	p := plugin.New(nil)
	require.NoError(t, p.Init(host))
	require.NoError(t, p.Activate(host))

	group := p.FieldGroup()
	service := publication.NewService(repo, publication.NewRenderer(publication.NewMemoryFields(group), nil), group)

	cfg := config.Defaults()
	cfg.JWT.Secret = testutil.TestSecret
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return newRouter(ctx, cfg, zap.NewNop(), routes{
		publications: publication.NewHTTPHandler(service, host),
		registry:     plugin.NewHTTPHandler(host),
		ready:        func(context.Context) error { return ready },
	}), repo
}

func serve(h http.Handler, r *http.Request) testutil.RecordResponse {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return testutil.RecordHTTPResponse(w)
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	assert.Equal(t, http.StatusOK, serve(router, testutil.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(router, testutil.NewRequest(http.MethodGet, "/readyz", nil)).Code)

	router, _ = newTestRouter(t, errors.New("down"))
	assert.Equal(t, http.StatusServiceUnavailable, serve(router, testutil.NewRequest(http.MethodGet, "/readyz", nil)).Code)
}

func TestV1Routing(t *testing.T) {
	router, repo := newTestRouter(t, nil)

	t.Run("content type", func(t *testing.T) {
		res := serve(router, testutil.NewRequest(http.MethodGet, "/v1/types/research_publication", nil))
		assert.Equal(t, http.StatusOK, res.Code)
		assert.NotEmpty(t, res.Header.Get("X-Request-Id"))
	})

	t.Run("field group", func(t *testing.T) {
		res := serve(router, testutil.NewRequest(http.MethodGet, "/v1/field-groups/"+fields.GroupKey, nil))
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("list through rest base", func(t *testing.T) {
		res := serve(router, testutil.NewRequest(http.MethodGet, "/v1/research-publications", nil))
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("unknown rest base", func(t *testing.T) {
		res := serve(router, testutil.NewRequest(http.MethodGet, "/v1/posts", nil))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("markup", func(t *testing.T) {
		repo.store["pub-1"] = publication.Publication{
			ID: "pub-1", Title: "Paper", Variant: publication.Journal,
		}

		res := serve(router, testutil.NewRequest(http.MethodGet, "/v1/research-publications/pub-1/markup", nil))
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Raw, `<div class="publication journal">`)
	})
}

func TestV1Routing_WritesNeedEditor(t *testing.T) {
	router, repo := newTestRouter(t, nil)
	body := publication.Publication{Title: "Paper"}

	res := serve(router, testutil.NewRequest(http.MethodPost, "/v1/research-publications", body))
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	expired := testutil.GenerateExpiredToken(testutil.TestSecret, "u1", crypto.RoleEditor)
	res = serve(router, testutil.NewRequestWithAuth(http.MethodPost, "/v1/research-publications", body, expired))
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	reader := testutil.GenerateTestToken(testutil.TestSecret, "u1", "READER")
	res = serve(router, testutil.NewRequestWithAuth(http.MethodDelete, "/v1/research-publications/pub-1", nil, reader))
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "FORBIDDEN", res.ErrorCode())

	editor := testutil.GenerateTestToken(testutil.TestSecret, "u1", crypto.RoleEditor)
	repo.store["pub-1"] = publication.Publication{ID: "pub-1", Title: "Paper", Variant: publication.Journal}
	res = serve(router, testutil.NewRequestWithAuth(http.MethodDelete, "/v1/research-publications/pub-1", nil, editor))
	assert.Equal(t, http.StatusNoContent, res.Code)
	assert.Equal(t, []string{"pub-1"}, repo.deleted)
}
