package cms

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

// Client provides read-only access to site content, consulting a remote CMS
// when a base URL is configured and local markdown otherwise.
type Client struct {
	baseURL    string
	http       *http.Client
	contentDir string
}

// NewClient constructs a Client with the provided base URL.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}
