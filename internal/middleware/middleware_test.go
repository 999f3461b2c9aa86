package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// okHandler answers like a portal endpoint would
func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

// ============================================================================
// Chain Tests
// ============================================================================

func TestChain_AppliesInDeclarationOrder(t *testing.T) {
	t.Parallel()

	tag := func(label string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(label))
				next.ServeHTTP(w, r)
			})
		}
	}

	// The first middleware in the chain is the outermost wrapper, matching
	// the top-to-bottom order they are listed in cmd/server.
	chained := Chain(okHandler("H"), tag("1"), tag("2"), tag("3"))

	req := httptest.NewRequest(http.MethodGet, "/v1/shelters", nil)
	rr := httptest.NewRecorder()
	chained.ServeHTTP(rr, req)

	if rr.Body.String() != "123H" {
		t.Errorf("expected execution order 123H, got %q", rr.Body.String())
	}
}

func TestChain_Empty_ReturnsHandlerUnchanged(t *testing.T) {
	t.Parallel()

	chained := Chain(okHandler("directory"))

	req := httptest.NewRequest(http.MethodGet, "/v1/shelters", nil)
	rr := httptest.NewRecorder()
	chained.ServeHTTP(rr, req)

	if rr.Body.String() != "directory" {
		t.Errorf("expected body 'directory', got %q", rr.Body.String())
	}
}

// ============================================================================
// RequestID Tests
// ============================================================================

func TestRequestID_GeneratesAndExposesID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/applicants", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen == "" {
		t.Fatal("expected a request ID in the handler context")
	}
	if got := rr.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("response header %q does not match context ID %q", got, seen)
	}
}

func TestRequestID_HonorsCallerSuppliedID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/applicants/applicant:abc/matches", nil)
	req.Header.Set("X-Request-ID", "portal-trace-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if seen != "portal-trace-42" {
		t.Errorf("expected caller's ID to be kept, got %q", seen)
	}
	if got := rr.Header().Get("X-Request-ID"); got != "portal-trace-42" {
		t.Errorf("expected echoed header, got %q", got)
	}
}

// ============================================================================
// Logger Tests
// ============================================================================

func TestLogger_CapturesHandlerStatus(t *testing.T) {
	t.Parallel()

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/applicants", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	// The wrapped writer must pass the real status through to the client
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422 to pass through, got %d", rr.Code)
	}
}

// ============================================================================
// Recovery Tests
// ============================================================================

func TestRecovery_PanicBecomesProblemDetails(t *testing.T) {
	t.Parallel()

	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("shelter repository gone")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/shelters", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "https://api.safehaven.org.uk/errors/internal") {
		t.Errorf("expected problem details body, got %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	t.Parallel()

	handler := Recovery(okHandler("ok"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Errorf("expected untouched 200/ok, got %d/%q", rr.Code, rr.Body.String())
	}
}

// ============================================================================
// CORS Tests
// ============================================================================

func TestCORS_AllowedPortalOrigin(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://portal.safehaven.org.uk"})(okHandler("ok"))

	req := httptest.NewRequest(http.MethodGet, "/v1/shelters", nil)
	req.Header.Set("Origin", "https://portal.safehaven.org.uk")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://portal.safehaven.org.uk" {
		t.Errorf("expected portal origin allowed, got %q", got)
	}
}

func TestCORS_UnknownOriginGetsNoAllowHeader(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://portal.safehaven.org.uk"})(okHandler("ok"))

	req := httptest.NewRequest(http.MethodGet, "/v1/shelters", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
	// The request itself still reaches the handler; CORS is a browser control
	if rr.Body.String() != "ok" {
		t.Errorf("expected handler to run, got body %q", rr.Body.String())
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	t.Parallel()

	called := false
	handler := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/applications", nil)
	req.Header.Set("Origin", "https://portal.safehaven.org.uk")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rr.Code)
	}
	if called {
		t.Error("preflight must not reach the handler")
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PATCH") {
		t.Errorf("expected PATCH in allowed methods for status updates, got %q", got)
	}
}

// ============================================================================
// Compress Tests
// ============================================================================

func TestCompress_GzipsWhenAccepted(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("shelter directory entry ", 50)
	handler := Compress(okHandler(body))

	req := httptest.NewRequest(http.MethodGet, "/v1/shelters", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("expected gzip encoding, got %q", got)
	}

	gz, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("failed to open gzip body: %v", err)
	}
	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("failed to read gzip body: %v", err)
	}
	if string(decoded) != body {
		t.Error("decompressed body does not match original")
	}
}

func TestCompress_PassThroughWithoutAcceptEncoding(t *testing.T) {
	t.Parallel()

	handler := Compress(okHandler("plain"))

	req := httptest.NewRequest(http.MethodGet, "/v1/shelters", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Content-Encoding"); got != "" {
		t.Errorf("expected no encoding, got %q", got)
	}
	if rr.Body.String() != "plain" {
		t.Errorf("expected untouched body, got %q", rr.Body.String())
	}
}
