package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/youlearn/youlearn/internal/domain"
	"github.com/youlearn/youlearn/internal/logger"
	"github.com/youlearn/youlearn/internal/utils"
)

const (
	// DefaultBaseURL is the upstream metadata search endpoint.
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3/search"

	// maxResponseBytes caps how much of the upstream body is read.
	maxResponseBytes = 1 << 20
)

// Suggestion is the normalized best-match result used to pre-fill a
// draft entry.
type Suggestion struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Thumbnails  *domain.Thumbnails `json:"thumbnails"`
}

// Lookuper is the raw query surface consumed by the metadata proxy
// endpoint.
type Lookuper interface {
	Lookup(ctx context.Context, query string) (json.RawMessage, error)
}

type apiError struct {
	Message string `json:"message"`
}

type searchResponse struct {
	Error *apiError         `json:"error"`
	Items []json.RawMessage `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title       string             `json:"title"`
		Description string             `json:"description"`
		Thumbnails  *domain.Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
}

// Client queries the external metadata service and normalizes the best
// match into a Suggestion. Results are cached per query for a short TTL
// to spare the upstream quota on repeated text.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	cache   *gocache.Cache
	logger  logger.Logger
}

// NewClient creates a metadata search client.
func NewClient(baseURL, apiKey string, timeout, cacheTTL time.Duration, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		logger:  log,
	}
}

// Lookup issues one upstream query and returns the raw first result
// item, or nil when the service found no match.
func (c *Client) Lookup(ctx context.Context, query string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s?part=snippet&type=video&maxResults=5&q=%s&key=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed search response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("metadata service error: %s", parsed.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}
	if len(parsed.Items) == 0 {
		return nil, nil
	}

	return parsed.Items[0], nil
}

// Search returns a normalized suggestion for the given free text, or
// nil when the text is empty, nothing matched, or the best match is
// malformed. The caller treats any error as a silent-degrade path: the
// draft is left unchanged and the user fills the form manually.
func (c *Client) Search(ctx context.Context, query string) (*Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if cached, ok := c.cache.Get(query); ok {
		s := cached.(Suggestion)
		return &s, nil
	}

	raw, err := c.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		c.logger.Debug("no match for search query",
			logger.String("query", query))
		return nil, nil
	}

	var item searchItem
	if err := json.Unmarshal(raw, &item); err != nil || item.ID.VideoID == "" {
		c.logger.Debug("discarding malformed search result",
			logger.String("query", query))
		return nil, nil
	}

	s := Suggestion{
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		URL:         EmbedURL(item.ID.VideoID),
		Thumbnails:  item.Snippet.Thumbnails,
	}
	c.cache.Set(query, s, gocache.DefaultExpiration)

	return &s, nil
}

// EmbedURL synthesizes the embeddable playback URL for a video id.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}
