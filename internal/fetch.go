package internal

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SourceClient interface {
	Fetch(url string) (io.ReadCloser, error)
}

type SourceManager struct {
	userAgent string
	client    HTTPClient
}

func NewSourceClient(userAgent string) SourceClient {
	return &SourceManager{
		userAgent: userAgent,
		client:    &http.Client{},
	}
}

// IsRemote reports whether source should be fetched over HTTP rather than
// opened from disk.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// OpenSource opens a local file or fetches a remote one.
func OpenSource(client SourceClient, source string) (io.ReadCloser, error) {
	if IsRemote(source) {
		return client.Fetch(source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	return f, nil
}

func (mgr *SourceManager) Fetch(url string) (io.ReadCloser, error) {
	log.Printf("Retrieving: %s", url)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", mgr.userAgent)
	req.Header.Set("Accept", "image/*")

	res, err := mgr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("http status response from %s: %s", url, res.Status)
	}

	return res.Body, nil
}
