// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

func TestMain(m *testing.M) {
	httputil.RetryBaseDelay = time.Millisecond
	os.Exit(m.Run())
}

func testSearchConfig() types.SearchConfig {
	cfg := types.DefaultConfig().Search
	cfg.APIKey = "gk"
	cfg.EngineID = "cx1"
	cfg.HTTP.UserAgent = "test-agent"
	return cfg
}

func withGoogleServer(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	old := googleAPIBase
	googleAPIBase = ts.URL
	t.Cleanup(func() { googleAPIBase = old })
}

func TestNewGoogleProviderRequiresCredentials(t *testing.T) {
	cfg := testSearchConfig()
	cfg.APIKey = ""
	_, err := NewGoogleProvider(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	cfg = testSearchConfig()
	cfg.EngineID = ""
	_, err = NewGoogleProvider(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, ErrMissingEngineID)
}

func TestGoogleSearchRequest(t *testing.T) {
	var got url.Values
	var ua string
	withGoogleServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"items":[{"title":"قهوه چیست؟","link":"https://a"},{"title":"راهنمای قهوه","link":"https://b"}]}`)
	})

	p, err := NewGoogleProvider(testSearchConfig(), zerolog.Nop())
	require.NoError(t, err)

	titles, err := p.Search(context.Background(), "قهوه")
	require.NoError(t, err)
	assert.Equal(t, []string{"قهوه چیست؟", "راهنمای قهوه"}, titles)

	assert.Equal(t, "gk", got.Get("key"))
	assert.Equal(t, "cx1", got.Get("cx"))
	assert.Equal(t, "قهوه", got.Get("q"))
	assert.Equal(t, "5", got.Get("num"))
	assert.Equal(t, "ir", got.Get("gl"))
	assert.Equal(t, "fa", got.Get("hl"))
	assert.Equal(t, "test-agent", ua)
}

func TestGoogleSearchCapsResults(t *testing.T) {
	withGoogleServer(t, func(w http.ResponseWriter, _ *http.Request) {
		var items []string
		for i := 1; i <= 8; i++ {
			items = append(items, fmt.Sprintf(`{"title":"title %d"}`, i))
		}
		fmt.Fprintf(w, `{"items":[%s]}`, strings.Join(items, ","))
	})

	p, err := NewGoogleProvider(testSearchConfig(), zerolog.Nop())
	require.NoError(t, err)
	titles, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, titles, 5)
	assert.Equal(t, "title 1", titles[0])
}

func TestGoogleSearchNoItems(t *testing.T) {
	withGoogleServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"searchInformation":{"totalResults":"0"}}`)
	})

	p, err := NewGoogleProvider(testSearchConfig(), zerolog.Nop())
	require.NoError(t, err)
	titles, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestGoogleSearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"forbidden", http.StatusForbidden, `{"error":{"code":403,"message":"quota"}}`},
		{"bad json", http.StatusOK, `{"items":`},
		{"api error in body", http.StatusOK, `{"error":{"code":400,"message":"bad cx"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withGoogleServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			p, err := NewGoogleProvider(testSearchConfig(), zerolog.Nop())
			require.NoError(t, err)
			_, err = p.Search(context.Background(), "q")
			assert.Error(t, err)
		})
	}
}

func TestGoogleSearchRetriesRateLimit(t *testing.T) {
	var calls int32
	withGoogleServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"items":[{"title":"ok"}]}`)
	})

	p, err := NewGoogleProvider(testSearchConfig(), zerolog.Nop())
	require.NoError(t, err)
	titles, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, titles)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGoogleSearchErrorHidesKey(t *testing.T) {
	p, err := NewGoogleProvider(testSearchConfig(), zerolog.Nop())
	require.NoError(t, err)

	old := googleAPIBase
	googleAPIBase = "http://127.0.0.1:1/customsearch"
	defer func() { googleAPIBase = old }()

	_, err = p.Search(context.Background(), "q")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "gk")
}
