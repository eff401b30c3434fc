package proxy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/nba-dashboard-service/internal/providers"
	"github.com/preston-bernstein/nba-dashboard-service/internal/testutil"
)

type stubFetcher struct {
	body     []byte
	err      error
	state    string
	calls    int
	endpoint string
}

func (s *stubFetcher) Fetch(ctx context.Context, endpoint string) ([]byte, error) {
	_ = ctx
	s.calls++
	s.endpoint = endpoint
	return s.body, s.err
}

func (s *stubFetcher) State() string {
	return s.state
}

func proxyPath(endpoint string) string {
	return Path + "?" + QueryEndpoint + "=" + url.QueryEscape(endpoint)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	return body["error"]
}

func TestHandlerRelaysBody(t *testing.T) {
	f := &stubFetcher{body: []byte(`[{"TeamID":2}]`)}
	router := NewRouter(NewHandler(f, "", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodGet, proxyPath("PlayerSeasonStats/2025"), nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != `[{"TeamID":2}]` {
		t.Fatalf("expected raw body, got %s", rr.Body.String())
	}
	if f.endpoint != "PlayerSeasonStats/2025" {
		t.Fatalf("unexpected endpoint %q", f.endpoint)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected permissive CORS header")
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type")
	}
}

func TestHandlerServesRootPathAndPost(t *testing.T) {
	f := &stubFetcher{body: []byte(`{}`)}
	router := NewRouter(NewHandler(f, "", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodPost, "/?endpoint=AllTeams", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if f.endpoint != "AllTeams" {
		t.Fatalf("unexpected endpoint %q", f.endpoint)
	}
}

func TestHandlerPreflight(t *testing.T) {
	f := &stubFetcher{}
	router := NewRouter(NewHandler(f, "token", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodOptions, Path, nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", rr.Body.String())
	}
	h := rr.Header()
	if h.Get("Access-Control-Allow-Methods") != "GET, POST, OPTIONS" {
		t.Fatalf("unexpected methods %q", h.Get("Access-Control-Allow-Methods"))
	}
	if h.Get("Access-Control-Allow-Headers") != "Content-Type, Authorization, X-Client-Info, Apikey" {
		t.Fatalf("unexpected headers %q", h.Get("Access-Control-Allow-Headers"))
	}
	if f.calls != 0 {
		t.Fatalf("preflight must not reach upstream")
	}
}

func TestHandlerMissingEndpoint(t *testing.T) {
	f := &stubFetcher{}
	router := NewRouter(NewHandler(f, "", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodGet, Path, nil)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if msg := decodeError(t, rr); msg != "Missing endpoint parameter" {
		t.Fatalf("unexpected error %q", msg)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header on error")
	}
}

func TestHandlerRejectsUnsafeEndpoints(t *testing.T) {
	f := &stubFetcher{body: []byte(`{}`)}
	router := NewRouter(NewHandler(f, "", nil), nil, nil)

	for _, ep := range []string{"https://evil.example/x", "../secrets", "AllTeams?key=mine", "AllTeams#frag", "All Teams"} {
		rr := testutil.Serve(router, http.MethodGet, proxyPath(ep), nil)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		if msg := decodeError(t, rr); msg != "Invalid endpoint parameter" {
			t.Fatalf("endpoint %q: unexpected error %q", ep, msg)
		}
	}
	if f.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", f.calls)
	}
}

func TestHandlerTrimsLeadingSlash(t *testing.T) {
	f := &stubFetcher{body: []byte(`{}`)}
	router := NewRouter(NewHandler(f, "", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodGet, proxyPath("/AllTeams"), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if f.endpoint != "AllTeams" {
		t.Fatalf("unexpected endpoint %q", f.endpoint)
	}
}

func TestHandlerRequiresClientToken(t *testing.T) {
	f := &stubFetcher{body: []byte(`{}`)}
	router := NewRouter(NewHandler(f, "token", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodGet, proxyPath("AllTeams"), nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	if msg := decodeError(t, rr); msg != "Unauthorized" {
		t.Fatalf("unexpected error %q", msg)
	}

	req := httptest.NewRequest(http.MethodGet, proxyPath("AllTeams"), nil)
	req.Header.Set("Authorization", "Bearer token")
	rr = testutil.ServeRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestHandlerUpstreamFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"status", &providers.FetchError{Endpoint: "AllTeams", StatusCode: http.StatusServiceUnavailable, Message: "down"}, "NBA API error: 503"},
		{"rate limited", &providers.RateLimitError{StatusCode: http.StatusTooManyRequests}, "NBA API error: 429"},
		{"breaker open", gobreaker.ErrOpenState, "NBA API temporarily unavailable"},
		{"network", &providers.NetworkError{Endpoint: "AllTeams", Err: errors.New("dial tcp: refused")}, "network error fetching AllTeams: dial tcp: refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := NewRouter(NewHandler(&stubFetcher{err: tc.err}, "", nil), nil, nil)
			rr := testutil.Serve(router, http.MethodGet, proxyPath("AllTeams"), nil)
			testutil.AssertStatus(t, rr, http.StatusInternalServerError)
			if msg := decodeError(t, rr); msg != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, msg)
			}
		})
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	router := NewRouter(NewHandler(&stubFetcher{}, "", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodDelete, proxyPath("AllTeams"), nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestHealthReportsBreakerState(t *testing.T) {
	router := NewRouter(NewHandler(&stubFetcher{state: "open"}, "token", nil), nil, nil)

	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["status"] != "ok" || body["upstream"] != "open" {
		t.Fatalf("unexpected health body %+v", body)
	}
}

func TestProxyEndToEndWithUpstream(t *testing.T) {
	var gotURL string
	up := newTestUpstream(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return jsonResponse(http.StatusOK, `[{"GameID":1}]`), nil
	}, 1, nil)
	logger, buf := testutil.NewBufferLogger()
	router := NewRouter(NewHandler(up, "", logger), logger, nil)

	rr := testutil.Serve(router, http.MethodGet, proxyPath("SchedulesBasic/2025REG"), nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != `[{"GameID":1}]` {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
	if gotURL != "https://scores.example/json/SchedulesBasic/2025REG?key="+testKey {
		t.Fatalf("unexpected upstream url %s", gotURL)
	}
	if strings.Contains(buf.String(), testKey) {
		t.Fatalf("logs leaked key: %s", buf.String())
	}
}
