package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogo_EmptyLocation(t *testing.T) {
	data, ok, err := NewLogoProvider("  ", nil).Logo(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestLogo_HTTP_CachesSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	p := NewLogoProvider(srv.URL+"/logo.png", srv.Client())

	for i := 0; i < 3; i++ {
		data, ok, err := p.Logo(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("png-bytes"), data)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestLogo_HTTP_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, ok, err := NewLogoProvider(srv.URL, srv.Client()).Logo(context.Background())

	assert.False(t, ok)
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestLogo_HTTP_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 50 * time.Millisecond}
	_, ok, err := NewLogoProvider(srv.URL, client).Logo(context.Background())

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestLogo_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0600))

	data, ok, err := NewLogoProvider(path, nil).Logo(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("local"), data)

	data, ok, err = NewLogoProvider("file://"+path, nil).Logo(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("local"), data)
}

func TestLogo_MissingFile(t *testing.T) {
	_, ok, err := NewLogoProvider(filepath.Join(t.TempDir(), "nope.png"), nil).Logo(context.Background())

	assert.False(t, ok)
	assert.Error(t, err)
}

func TestLogo_UnsupportedScheme(t *testing.T) {
	_, _, err := NewLogoProvider("ftp://example.com/logo.png", nil).Logo(context.Background())

	assert.ErrorContains(t, err, "unsupported logo scheme")
}
