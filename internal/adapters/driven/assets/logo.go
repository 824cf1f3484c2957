// Package assets provides report branding assets.
//
// LogoProvider implements driven.HeaderAssetProvider from a configured
// location: an http(s) URL, a file:// URL, or a local path. Fetched bytes
// are cached for the life of the provider.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/logger"
)

// maxLogoBytes bounds how much of a logo response is read.
const maxLogoBytes = 5 << 20

// DefaultTimeout is the logo fetch timeout.
const DefaultTimeout = 10 * time.Second

// Ensure LogoProvider implements the interface.
var _ driven.HeaderAssetProvider = (*LogoProvider)(nil)

// LogoProvider fetches the company logo once and caches the result.
type LogoProvider struct {
	location string
	client   *http.Client

	mu     sync.Mutex
	cached []byte
	loaded bool
}

// NewLogoProvider creates a provider for location. An empty location
// yields a provider that never has a logo.
func NewLogoProvider(location string, client *http.Client) *LogoProvider {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &LogoProvider{
		location: strings.TrimSpace(location),
		client:   client,
	}
}

// Logo implements driven.HeaderAssetProvider.
// Successful fetches are cached; failures are retried on the next call.
func (p *LogoProvider) Logo(ctx context.Context) ([]byte, bool, error) {
	if p.location == "" {
		return nil, false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return p.cached, true, nil
	}

	data, err := p.fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	p.cached = data
	p.loaded = true
	logger.Debug("logo loaded from %s (%d bytes)", p.location, len(data))
	return data, true, nil
}

func (p *LogoProvider) fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(p.location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path, including Windows drive letters.
		return readFile(p.location)
	}

	switch u.Scheme {
	case "file":
		return readFile(u.Path)
	case "http", "https":
		return p.fetchHTTP(ctx)
	default:
		return nil, fmt.Errorf("unsupported logo scheme %q", u.Scheme)
	}
}

func (p *LogoProvider) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.location, nil)
	if err != nil {
		return nil, fmt.Errorf("building logo request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching logo: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading logo: %w", err)
	}
	if len(data) > maxLogoBytes {
		return nil, errors.New("logo exceeds 5 MiB")
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading logo file: %w", err)
	}
	return data, nil
}
