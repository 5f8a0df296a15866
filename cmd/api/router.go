package main

import (
	"context"
	"net/http"
	"time"

	"researchpub/internal/config"
	"researchpub/internal/httpx"
	"researchpub/internal/platform/crypto"
	"researchpub/internal/plugin"
	"researchpub/internal/publication"

	"go.uber.org/zap"
)

type routes struct {
	publications *publication.HTTPHandler
	registry     *plugin.HTTPHandler
	ready        func(context.Context) error
}

func newRouter(ctx context.Context, cfg config.Config, logger *zap.Logger, rt routes) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := rt.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/types/{name}", rt.registry.ContentType)
	router.HandleFunc("GET /v1/field-groups/{key}", rt.registry.FieldGroup)

	pubs := rt.publications
	router.HandleFunc("GET /v1/{base}", pubs.List)
	router.HandleFunc("GET /v1/{base}/{id}", pubs.Get)
	router.HandleFunc("GET /v1/{base}/{id}/markup", pubs.Markup)

	editors := httpx.AuthMiddleware(cfg.JWT.Secret, crypto.RoleEditor, crypto.RoleAdmin)
	router.Handle("POST /v1/{base}", editors(http.HandlerFunc(pubs.Create)))
	router.Handle("PUT /v1/{base}/{id}", editors(http.HandlerFunc(pubs.Update)))
	router.Handle("DELETE /v1/{base}/{id}", editors(http.HandlerFunc(pubs.Delete)))
	router.Handle("GET /v1/{base}/{id}/revisions", editors(http.HandlerFunc(pubs.Revisions)))

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(false),
		httpx.CORSMiddleware(cfg.CORS.AllowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.Request.MaxBytes),
		rateLimiter.Middleware,
	)
}
