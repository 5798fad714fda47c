package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawURL(t *testing.T) {
	assert.Equal(t,
		"https://github.com/acme/catalog/raw/main/registry.json",
		RawURL("https://github.com/acme/catalog/blob/main/registry.json"))
	assert.Equal(t, "https://example.com/blob/x.json", RawURL("https://example.com/blob/x.json"))
}

func TestResolve(t *testing.T) {
	got, err := Resolve("https://example.com/acme/registry.json", "feeds/index.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/acme/feeds/index.json", got)

	got, err = Resolve("https://example.com/acme/registry.json", "https://cdn.example.com/index.json")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/index.json", got)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.Error(w, "no such feed", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)

	body, err := f.Fetch(context.Background(), srv.URL+"/feed.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(body))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 404")
	assert.Contains(t, err.Error(), "no such feed")
}
