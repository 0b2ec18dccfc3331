package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/maamar/ai/mock"
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArticles() []*core.Article {
	return []*core.Article{
		{
			Id:       1,
			Name:     "באתי לגני תשי\"א",
			Filename: "basi_legani_5711.json",
			Year:     "תשי\"א",
			Text:     "ענין אהבת ישראל הוא יסוד גדול בעבודה.",
			Keywords: []string{"אהבת ישראל"},
		},
		{
			Id:       2,
			Name:     "מים רבים תשי\"ז",
			Filename: "mayim_rabim_5717.json",
			Year:     "תשי\"ז",
			Text:     "מים רבים לא יוכלו לכבות את האהבה.",
			Keywords: []string{"אהבה"},
		},
	}
}

type injectCall struct {
	clientID       string
	conversationID string
	values         map[string]string
}

type fakeInjector struct {
	mu    sync.Mutex
	calls []injectCall
	err   error
}

func (f *fakeInjector) Inject(_ context.Context, clientID, conversationID string, values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, injectCall{clientID, conversationID, values})
	return f.err
}

func (f *fakeInjector) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeInjector) lastCall() injectCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	index := search.NewIndex(testArticles(), nil)
	searcher, err := search.NewSearcher(index, mock.NewMockProvider())
	require.NoError(t, err)
	srv, err := NewServer(searcher, opts...)
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeSearch(t *testing.T, rec *httptest.ResponseRecorder) searchResponse {
	t.Helper()
	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNewServer(t *testing.T) {
	t.Run("nil searcher", func(t *testing.T) {
		srv, err := NewServer(nil)
		assert.ErrorIs(t, err, ErrSearcherRequired)
		assert.Nil(t, srv)
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Maamar Search API is running", body["message"])
}

func TestSearchGET(t *testing.T) {
	srv := newTestServer(t)

	t.Run("by name", func(t *testing.T) {
		target := "/search?name=" + url.QueryEscape("באתי לגני")
		rec := doRequest(srv, httptest.NewRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSearch(t, rec)
		require.Equal(t, 1, resp.Count)
		r := resp.Results[0]
		assert.Equal(t, "באתי לגני תשי\"א", r.Name)
		assert.Equal(t, 100, r.Score)
		assert.Equal(t, "basi_legani_5711.json", r.Filename)
		assert.Equal(t, "תשי\"א", r.Year)
		assert.True(t, strings.HasSuffix(r.TextPreview, "..."))
		assert.NotEmpty(t, r.FullText)
	})

	t.Run("article and quastion aliases", func(t *testing.T) {
		target := "/search?article=" + url.QueryEscape("מים רבים") +
			"&quastion=" + url.QueryEscape("מהי אהבה")
		rec := doRequest(srv, httptest.NewRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSearch(t, rec)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "מים רבים תשי\"ז", resp.Results[0].Name)
	})

	t.Run("top_n limits results", func(t *testing.T) {
		target := "/search?question=" + url.QueryEscape("שאלה כלשהי") + "&top_n=1"
		rec := doRequest(srv, httptest.NewRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decodeSearch(t, rec).Count)
	})

	t.Run("invalid top_n", func(t *testing.T) {
		rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/search?name=x&top_n=abc", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing both terms", func(t *testing.T) {
		rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/search", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, errMissingQuery, body["error"])
	})
}

func TestSearchPOST(t *testing.T) {
	srv := newTestServer(t)

	post := func(body string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return doRequest(srv, req)
	}

	t.Run("direct JSON", func(t *testing.T) {
		rec := post(`{"name": "באתי לגני", "top_n": 3}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSearch(t, rec)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "באתי לגני תשי\"א", resp.Results[0].Name)
	})

	t.Run("direct JSON with aliases", func(t *testing.T) {
		rec := post(`{"article": "מים רבים", "quastion": "אהבה"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSearch(t, rec)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "מים רבים תשי\"ז", resp.Results[0].Name)
	})

	t.Run("enveloped form", func(t *testing.T) {
		value := `{\"article\": \"באתי לגני\", \"quastion\": \"\", \"top_n\": 2}`
		rec := post(`[{"value": "`+value+`"}]`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeSearch(t, rec)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "באתי לגני תשי\"א", resp.Results[0].Name)
	})

	t.Run("string top_n is accepted", func(t *testing.T) {
		rec := post(`{"name": "באתי לגני", "top_n": "2"}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		rec := post(`{"name":`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := post(``, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSearchInjection(t *testing.T) {
	envelope := func(article string) string {
		return `[{"value": "{\"article\": \"` + article + `\"}"}]`
	}
	headers := map[string]string{"client-id": "client-1", "conversation-id": "conv-1"}

	post := func(srv *Server, body string, hdrs map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		for k, v := range hdrs {
			req.Header.Set(k, v)
		}
		return doRequest(srv, req)
	}

	t.Run("enveloped request with headers injects first answer", func(t *testing.T) {
		injector := &fakeInjector{}
		srv := newTestServer(t, WithInjector(injector))

		rec := post(srv, envelope("באתי לגני"), headers)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Equal(t, 1, injector.callCount())
		call := injector.lastCall()
		assert.Equal(t, "client-1", call.clientID)
		assert.Equal(t, "conv-1", call.conversationID)
		assert.Equal(t, decodeSearch(t, rec).Results[0].FullText, call.values["server_search"])
	})

	t.Run("no results injects the notice", func(t *testing.T) {
		injector := &fakeInjector{}
		srv := newTestServer(t, WithInjector(injector))

		rec := post(srv, envelope("שם שאינו קיים כלל"), headers)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, decodeSearch(t, rec).Count)

		require.Equal(t, 1, injector.callCount())
		assert.Equal(t, noResultsAnswer, injector.lastCall().values["server_search"])
	})

	t.Run("validation failure injects the error message", func(t *testing.T) {
		injector := &fakeInjector{}
		srv := newTestServer(t, WithInjector(injector))

		rec := post(srv, `[{"value": "{\"article\": \"\", \"quastion\": \"\"}"}]`, headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		require.Equal(t, 1, injector.callCount())
		assert.Equal(t, errMissingQuery, injector.lastCall().values["server_search"])
	})

	t.Run("direct request with headers does not inject", func(t *testing.T) {
		injector := &fakeInjector{}
		srv := newTestServer(t, WithInjector(injector))

		rec := post(srv, `{"name": "באתי לגני"}`, headers)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, injector.callCount())
	})

	t.Run("enveloped request without headers does not inject", func(t *testing.T) {
		injector := &fakeInjector{}
		srv := newTestServer(t, WithInjector(injector))

		rec := post(srv, envelope("באתי לגני"), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, injector.callCount())
	})

	t.Run("injection failure leaves the response intact", func(t *testing.T) {
		injector := &fakeInjector{err: assert.AnError}
		srv := newTestServer(t, WithInjector(injector))

		rec := post(srv, envelope("באתי לגני"), headers)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, decodeSearch(t, rec).Count)
		assert.Equal(t, 1, injector.callCount())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doRequest(srv, httptest.NewRequest(http.MethodGet, "/search?name="+url.QueryEscape("באתי לגני"), nil))
	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maamar_search_requests_total")
}

func TestMakePreview(t *testing.T) {
	long := strings.Repeat("א", previewRunes+50)
	preview := makePreview(long)
	assert.Len(t, []rune(preview), previewRunes+3)

	short := makePreview("קצר")
	assert.Equal(t, "קצר...", short)
}
