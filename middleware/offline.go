// Package middleware carries the HTTP middleware for the staff chat PWA.
package middleware

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CacheName matches the client service worker's cache version. Bump it
// together with the worker when the cached asset set changes.
const CacheName = "hd-chat-v1"

// APIPrefix is never cached; failures surface as JSON.
const APIPrefix = "/staff/api/"

// DefaultPrecachePaths are warmed into the cache on first success.
var DefaultPrecachePaths = []string{
	"/staff/chat/",
	"/static/js/chat.js",
	"/static/js/chat-notifications.js",
}

const offlineHTML = `<!DOCTYPE html>
<html><head><title>Offline</title></head>
<body><h1>You are offline</h1><p>Reconnect to use staff chat.</p></body></html>`

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

// OfflineCache is a network-first cache layer for the staff chat page and
// its static assets: upstream wins, the cache is the fallback, and a fixed
// offline response is the last resort.
type OfflineCache struct {
	store    *gocache.Cache
	precache map[string]bool
}

// NewOfflineCache builds the cache with a 24h TTL on entries.
func NewOfflineCache(precachePaths []string) *OfflineCache {
	if precachePaths == nil {
		precachePaths = DefaultPrecachePaths
	}
	precache := make(map[string]bool, len(precachePaths))
	for _, p := range precachePaths {
		precache[p] = true
	}
	return &OfflineCache{
		store:    gocache.New(24*time.Hour, time.Hour),
		precache: precache,
	}
}

// Middleware wraps next with the cache-then-network policy. Only the
// precached shell pages and the staff API prefix are buffered; every
// other path keeps the original ResponseWriter so connection upgrades
// and streaming responses still work.
func (oc *OfflineCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, APIPrefix) {
			oc.serveAPI(w, r, next)
			return
		}

		if !oc.precache[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		oc.servePage(w, r, next)
	})
}

// serveAPI passes API requests straight through; an upstream failure is
// rewritten to a JSON offline error and never cached.
func (oc *OfflineCache) serveAPI(w http.ResponseWriter, r *http.Request, next http.Handler) {
	rec := newRecorder()
	next.ServeHTTP(rec, r)

	if rec.status >= http.StatusInternalServerError {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "offline"}`))
		return
	}

	rec.copyTo(w)
}

// servePage tries upstream first, refreshes the cache on success, and
// falls back to the cached copy then the offline page. Only precached
// paths ever reach here.
func (oc *OfflineCache) servePage(w http.ResponseWriter, r *http.Request, next http.Handler) {
	rec := newRecorder()
	next.ServeHTTP(rec, r)

	key := CacheName + ":" + r.URL.Path

	if rec.status < http.StatusInternalServerError {
		if rec.status == http.StatusOK {
			oc.store.Set(key, cachedResponse{
				status:      rec.status,
				contentType: rec.Header().Get("Content-Type"),
				body:        append([]byte(nil), rec.body.Bytes()...),
			}, gocache.DefaultExpiration)
		}
		rec.copyTo(w)
		return
	}

	if entry, found := oc.store.Get(key); found {
		cached := entry.(cachedResponse)
		log.Printf("📦 Serving %s from %s", r.URL.Path, CacheName)
		if cached.contentType != "" {
			w.Header().Set("Content-Type", cached.contentType)
		}
		w.WriteHeader(cached.status)
		w.Write(cached.body)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(offlineHTML))
}

// recorder buffers a downstream response so it can be inspected before
// anything reaches the client.
type recorder struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{status: http.StatusOK, header: make(http.Header)}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) { r.status = status }

func (r *recorder) Write(b []byte) (int, error) { return r.body.Write(b) }

func (r *recorder) copyTo(w http.ResponseWriter) {
	for k, values := range r.header {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(r.status)
	w.Write(r.body.Bytes())
}
