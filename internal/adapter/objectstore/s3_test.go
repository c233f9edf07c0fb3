package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"church-cms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method      string
	path        string
	contentType string
	body        string
	auth        string
}

func newFakeS3(t *testing.T, status int) (*httptest.Server, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
			auth:        r.Header.Get("Authorization"),
		})
		mu.Unlock()
		if status >= 300 {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func storageConfig(endpoint, publicURL string) config.StorageConfig {
	return config.StorageConfig{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     "AKIDTEST",
		SecretAccessKey: "secret",
		PublicURL:       publicURL,
		Timeout:         5 * time.Second,
	}
}

func TestStore_Put(t *testing.T) {
	srv, reqs := newFakeS3(t, http.StatusOK)
	store, err := New(context.Background(), storageConfig(srv.URL, "https://cdn.example.org/storage/v1/object/public"))
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "images", "gallery/photo_1_abc.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/storage/v1/object/public/images/gallery/photo_1_abc.png", url)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/images/gallery/photo_1_abc.png", got.path)
	assert.Equal(t, "image/png", got.contentType)
	assert.Equal(t, "png-bytes", got.body)
	assert.True(t, strings.HasPrefix(got.auth, "AWS4-HMAC-SHA256 Credential=AKIDTEST/"))
}

func TestStore_PutRejected(t *testing.T) {
	srv, _ := newFakeS3(t, http.StatusForbidden)
	store, err := New(context.Background(), storageConfig(srv.URL, ""))
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "images", "a.png", "image/png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put images/a.png")
}

func TestStore_Delete(t *testing.T) {
	srv, reqs := newFakeS3(t, http.StatusNoContent)
	store, err := New(context.Background(), storageConfig(srv.URL, ""))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "sermons-audio", "2024/sunday.mp3"))
	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].method)
	assert.Equal(t, "/sermons-audio/2024/sunday.mp3", (*reqs)[0].path)
}

func TestStore_URLFallsBackToEndpoint(t *testing.T) {
	store, err := New(context.Background(), storageConfig("http://minio:9000/", ""))
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/images/my%20file.png", store.URL("images", "my file.png"))
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Endpoint: "http://minio:9000"})
	assert.Error(t, err)
}
