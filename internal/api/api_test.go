package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/andresuchdata/streamtape-gateway/internal/config"
	"github.com/andresuchdata/streamtape-gateway/internal/metrics"
	"github.com/andresuchdata/streamtape-gateway/internal/service"
	"github.com/andresuchdata/streamtape-gateway/internal/streamtape"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUpstream answers every call with body and remembers the requests.
// A non-zero status is written as a plain HTTP error instead.
type fakeUpstream struct {
	mu       sync.Mutex
	requests []*url.URL
	body     string
	status   int
	delay    time.Duration
	server   *httptest.Server
}

func newFakeUpstream(t *testing.T, body string) *fakeUpstream {
	return startUpstream(t, &fakeUpstream{body: body})
}

func startUpstream(t *testing.T, f *fakeUpstream) *fakeUpstream {
	t.Helper()
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		u := *r.URL
		f.requests = append(f.requests, &u)
		f.mu.Unlock()

		if f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
				return
			}
		}
		if f.status != 0 {
			http.Error(w, f.body, f.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) calls() []*url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*url.URL(nil), f.requests...)
}

func newTestRouter(t *testing.T, upstream *fakeUpstream, timeout time.Duration) *gin.Engine {
	t.Helper()
	client, err := streamtape.NewClient(config.StreamtapeConfig{
		Login:   "login-id",
		Key:     "secret-key",
		BaseURL: upstream.server.URL,
		Timeout: timeout,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return NewRouter(service.New(client), metrics.New(), []string{"*"})
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	router := NewRouter(nil, nil, nil)

	rec := do(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome")

	rec = do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFolderRootScenario(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":{"folders":[],"files":[]}}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodGet, "/fs/list", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"folders":[],"files":[]}`, rec.Body.String())

	calls := upstream.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/file/listfolder", calls[0].Path)
	assert.Equal(t, url.Values{"login": {"login-id"}, "key": {"secret-key"}}, calls[0].Query())
}

func TestCallerCannotSpoofCredentials(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":{"folders":[],"files":[]}}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodGet, "/fs/list?folder=f1&login=evil&key=evil", "")
	require.Equal(t, http.StatusOK, rec.Code)

	q := upstream.calls()[0].Query()
	assert.Equal(t, "login-id", q.Get("login"))
	assert.Equal(t, "secret-key", q.Get("key"))
	assert.Equal(t, "f1", q.Get("folder"))
}

func TestRenameFolderUpstreamRejected(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":400,"msg":"missing parameter"}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodPatch, "/fs/folders/rename/f1?name=new", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"missing parameter"}`, rec.Body.String())

	q := upstream.calls()[0].Query()
	assert.Equal(t, "f1", q.Get("folder"))
	assert.Equal(t, "new", q.Get("name"))
}

func TestBandwidthExceededMapsTo503(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":509,"msg":"bandwidth limit exceeded"}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodGet, "/stream/ticket/x1", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"detail":"bandwidth limit exceeded"}`, rec.Body.String())
}

func TestRenameRequiresName(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":true}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodPatch, "/fs/files/rename/x1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
	assert.Empty(t, upstream.calls())
}

func TestDeleteFileSuccess(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":true}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodDelete, "/fs/files/delete/x1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "/file/delete", upstream.calls()[0].Path)
}

func TestRemoteAddRejectsNonHTTPURL(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":{"id":"r1","folderid":"f"}}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodPost, "/remote/add", `{"url":"ftp://example.com/a.mp4"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "url must be an absolute http or https URL")
	assert.Empty(t, upstream.calls())
}

func TestRemoteAddAccepted(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":{"id":"r1","folderid":"f1"}}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodPost, "/remote/add", `{"url":"https://example.com/a.mp4","folder_id":"f1","name":"a.mp4"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"id":"r1","folderid":"f1"}`, rec.Body.String())

	q := upstream.calls()[0].Query()
	assert.Equal(t, "https://example.com/a.mp4", q.Get("url"))
	assert.Equal(t, "f1", q.Get("folder"))
	assert.Equal(t, "a.mp4", q.Get("name"))
	assert.False(t, q.Has("headers"))
}

func TestRemoteAddEmptyBody(t *testing.T) {
	upstream := newFakeUpstream(t, `{}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	req := httptest.NewRequest(http.MethodPost, "/remote/add", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, upstream.calls())
}

func TestStreamInfoBoundary(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":{}}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	ids := make([]string, service.MaxInfoIDs)
	for i := range ids {
		ids[i] = "id"
	}

	rec := do(router, http.MethodGet, "/stream/info?file_ids="+strings.Join(ids, ","), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, upstream.calls(), 1)

	rec = do(router, http.MethodGet, "/stream/info?file_ids="+strings.Join(append(ids, "one-more"), ","), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "maximum of 100 files")
	assert.Len(t, upstream.calls(), 1)
}

func TestUpstreamTimeout(t *testing.T) {
	upstream := startUpstream(t, &fakeUpstream{
		body:  `{"status":200,"msg":"OK","result":{"folders":[],"files":[]}}`,
		delay: time.Second,
	})
	router := newTestRouter(t, upstream, 50*time.Millisecond)

	rec := do(router, http.MethodGet, "/fs/list", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not connect to Streamtape API")
}

func TestUpstreamHTTPFailure(t *testing.T) {
	upstream := startUpstream(t, &fakeUpstream{body: "gateway down", status: http.StatusBadGateway})
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodGet, "/upload/url", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP error occurred: gateway down")
}

func TestUploadURLForwardsFlags(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":{"url":"https://up.example/ul/abc","valid_until":"2026-10-18 12:00:00"}}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodGet, "/upload/url?folder=f1&httponly=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://up.example/ul/abc","valid_until":"2026-10-18 12:00:00"}`, rec.Body.String())

	q := upstream.calls()[0].Query()
	assert.Equal(t, "f1", q.Get("folder"))
	assert.Equal(t, "true", q.Get("httponly"))
	assert.False(t, q.Has("sha256"))
}

func TestStreamLinkRequiresTicket(t *testing.T) {
	upstream := newFakeUpstream(t, `{}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	rec := do(router, http.MethodGet, "/stream/link?file_id=x1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ticket is required")
	assert.Empty(t, upstream.calls())
}

func TestMetricsEndpoint(t *testing.T) {
	upstream := newFakeUpstream(t, `{"status":200,"msg":"OK","result":{"folders":[],"files":[]}}`)
	router := newTestRouter(t, upstream, 2*time.Second)

	do(router, http.MethodGet, "/fs/list", "")
	rec := do(router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `streamtape_gateway_http_requests_total{method="GET",route="/fs/list",status="200"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	router := NewRouter(nil, nil, nil)

	rec := do(router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"https://a.example, https://b.example", " "})
	assert.False(t, allowAll)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)

	_, allowAll = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, allowAll)
}

func TestCORSNeverAllowsCredentials(t *testing.T) {
	for _, origins := range [][]string{{"*"}, {"https://app.example"}} {
		router := NewRouter(nil, nil, origins)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://app.example")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"), origins)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"), origins)
	}
}

func TestCORSAllowAllUsesWildcard(t *testing.T) {
	cfg := corsConfig([]string{"https://a.example", "*"})
	assert.True(t, cfg.AllowAllOrigins)
	assert.Nil(t, cfg.AllowOrigins)
	assert.Nil(t, cfg.AllowOriginFunc)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig(nil)
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.AllowOrigins)
}
