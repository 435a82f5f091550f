// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// googleAPIBase is the Custom Search JSON API endpoint. Declared as a var so
// tests can substitute an httptest server.
var googleAPIBase = "https://www.googleapis.com/customsearch/v1"

// googleMaxNum is the largest page size the Custom Search API accepts.
const googleMaxNum = 10

// GoogleProvider queries Google Custom Search.
type GoogleProvider struct {
	Client *http.Client
	Config types.SearchConfig
	Log    zerolog.Logger
}

// NewGoogleProvider returns a provider for cfg. It fails when the key or
// engine ID is missing.
func NewGoogleProvider(cfg types.SearchConfig, log zerolog.Logger) (*GoogleProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.EngineID == "" {
		return nil, ErrMissingEngineID
	}
	return &GoogleProvider{
		Client: httputil.NewClient(cfg.HTTP.Timeout),
		Config: cfg,
		Log:    log,
	}, nil
}

type googleResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Search returns the titles of the top results for query. A response
// without items is an empty result, not an error.
func (g *GoogleProvider) Search(ctx context.Context, query string) ([]string, error) {
	num := g.Config.MaxResults
	if num <= 0 {
		num = 5
	}
	if num > googleMaxNum {
		num = googleMaxNum
	}

	params := url.Values{}
	params.Set("key", g.Config.APIKey)
	params.Set("cx", g.Config.EngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	if g.Config.Country != "" {
		params.Set("gl", g.Config.Country)
	}
	if g.Config.Language != "" {
		params.Set("hl", g.Config.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if g.Config.HTTP.UserAgent != "" {
		req.Header.Set("User-Agent", g.Config.HTTP.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, g.Client, req, g.Config.MaxRetries, g.Log)
	if err != nil {
		// The request URL carries the API key; report only the cause.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("Google Custom Search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Custom Search returned HTTP %d", resp.StatusCode)
	}

	var gr googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("parsing Google Custom Search response: %w", err)
	}
	if gr.Error != nil && gr.Error.Code != 0 {
		return nil, fmt.Errorf("Google Custom Search error %d: %s", gr.Error.Code, gr.Error.Message)
	}

	titles := make([]string, 0, len(gr.Items))
	for _, item := range gr.Items {
		titles = append(titles, item.Title)
	}
	titles = Dedupe(titles)
	if len(titles) > num {
		titles = titles[:num]
	}

	g.Log.Debug().Str("query", query).Int("results", len(titles)).Msg("search completed")
	return titles, nil
}
