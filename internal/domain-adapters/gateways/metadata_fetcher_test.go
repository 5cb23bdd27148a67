package gateways

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestMetadataFetcher_LegacyVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q, want application/json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // Test server write
		w.Write([]byte(`{"versions":["1.20.3-20.3.8","1.20.4-20.4.237"]}`))
	}))
	defer server.Close()

	fetcher := NewMetadataFetcher(server.URL, "", nil)

	got, err := fetcher.LegacyVersions(context.Background())
	if err != nil {
		t.Fatalf("LegacyVersions() error = %v", err)
	}
	want := []string{"1.20.3-20.3.8", "1.20.4-20.4.237"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LegacyVersions() = %v, want %v (served order preserved)", got, want)
	}
}

func TestMetadataFetcher_ModernVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck // Test server write
		w.Write([]byte(`{"versions":["20.4.100","20.4.237"]}`))
	}))
	defer server.Close()

	fetcher := NewMetadataFetcher("", server.URL, nil)

	got, err := fetcher.ModernVersions(context.Background())
	if err != nil {
		t.Fatalf("ModernVersions() error = %v", err)
	}
	if len(got) != 2 || got[1] != "20.4.237" {
		t.Errorf("ModernVersions() = %v, want both builds", got)
	}
}

func TestMetadataFetcher_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewMetadataFetcher(server.URL, server.URL, nil)

	if _, err := fetcher.LegacyVersions(context.Background()); err == nil {
		t.Error("LegacyVersions() error = nil, want error for HTTP 503")
	}
}

func TestMetadataFetcher_MalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//nolint:errcheck // Test server write
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	fetcher := NewMetadataFetcher(server.URL, server.URL, nil)

	if _, err := fetcher.ModernVersions(context.Background()); err == nil {
		t.Error("ModernVersions() error = nil, want parse error")
	}
}
