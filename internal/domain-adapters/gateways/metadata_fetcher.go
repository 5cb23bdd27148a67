// Package gateways implements the pipeline's external collaborators: metadata
// fetching, file downloads, archive access, and the processor runner.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/anvil-mc/anvil/internal/domain/interfaces"
)

// MetadataFetcher fetches the loader build lists from the legacy and modern
// metadata APIs. Documents are fetched fresh per call, never cached.
type MetadataFetcher struct {
	httpClient *http.Client
	legacyURL  string
	modernURL  string
	logger     interfaces.Logger
}

// NewMetadataFetcher creates a new metadata fetcher
func NewMetadataFetcher(legacyURL, modernURL string, logger interfaces.Logger) *MetadataFetcher {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &MetadataFetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // Reasonable timeout for metadata documents
		},
		legacyURL: legacyURL,
		modernURL: modernURL,
		logger:    logger,
	}
}

// versionDocument is the shape both APIs share: an ordered list of build ids.
type versionDocument struct {
	Versions []string `json:"versions"`
}

// LegacyVersions returns the legacy API's build list, ordered as served.
func (f *MetadataFetcher) LegacyVersions(ctx context.Context) ([]string, error) {
	return f.fetch(ctx, f.legacyURL)
}

// ModernVersions returns the modern API's build list, ordered as served.
func (f *MetadataFetcher) ModernVersions(ctx context.Context) ([]string, error) {
	return f.fetch(ctx, f.modernURL)
}

func (f *MetadataFetcher) fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var doc versionDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse version document: %w", err)
	}

	f.logger.Debug("fetched version metadata",
		interfaces.F("url", url),
		interfaces.F("count", len(doc.Versions)))

	return doc.Versions, nil
}
