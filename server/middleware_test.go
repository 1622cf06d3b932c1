package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/medreview-api/config"
)

func TestRealIPMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.2 "}, "198.51.100.2"},
		{"forwarded wins", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"}, "203.0.113.7"},
		{"no headers", nil, "192.0.2.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := RealIPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	cfg := &config.Config{MaxRequestBody: 64, MaxHeaderSize: 256}
	handler := RequestSizeMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("small body passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/reports/parse", strings.NewReader("1. FTP's")))
		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
	})

	t.Run("declared length too large", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/reports/parse", strings.NewReader(strings.Repeat("x", 100))))
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Maximum allowed size is 64 bytes") {
			t.Errorf("body = %s", rr.Body.String())
		}
	})

	t.Run("undeclared length capped while reading", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/reports/parse", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", rr.Code)
		}
	})

	t.Run("headers too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Padding", strings.Repeat("p", 300))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusRequestHeaderFieldsTooLarge {
			t.Errorf("status = %d, want 431", rr.Code)
		}
	})
}

func TestGetTokenCost(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   int64
	}{
		{http.MethodGet, "/health", 0},
		{http.MethodGet, "/metrics", 0},
		{http.MethodGet, "/v1/intake/options", 5},
		{http.MethodPost, "/v1/reports/parse", 20},
		{http.MethodPost, "/v1/assessments/public", 300},
		{http.MethodGet, "/v1/assessments/latest", 10},
		{http.MethodGet, "/v1/assessments/0b7e7dbe-4c0e-4f3e-9a59-5d1a3f1f0c11/report.html", 10},
		{http.MethodGet, "/unknown", 20},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if got := getTokenCost(httptest.NewRequest(tt.method, tt.path, nil)); got != tt.want {
				t.Errorf("getTokenCost() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRateLimiterRejectsWhenBucketEmpty(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	submit := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/public", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	// 1000 tokens cover three submissions at 300 each
	for i := 0; i < 3; i++ {
		if rr := submit("203.0.113.9:5000"); rr.Code != http.StatusCreated {
			t.Fatalf("submission %d status = %d", i+1, rr.Code)
		}
	}

	rr := submit("203.0.113.9:5001")
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("fourth submission status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Error("Retry-After header missing")
	}

	if rr := submit("198.51.100.1:80"); rr.Code != http.StatusCreated {
		t.Errorf("other client status = %d, buckets must be per IP", rr.Code)
	}
}

func TestRateLimiterFreeRoutesBypassBuckets(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if len(rl.clients) != 0 {
		t.Errorf("free route created %d buckets", len(rl.clients))
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(time.Hour)
	defer rl.Stop()

	rl.getBucket("192.0.2.1")
	rl.getBucket("192.0.2.2").TakeAvailable(500)

	if removed := rl.cleanup(); removed != 1 {
		t.Errorf("cleanup() removed %d, want 1", removed)
	}
	rl.mu.RLock()
	_, kept := rl.clients["192.0.2.2"]
	rl.mu.RUnlock()
	if !kept {
		t.Error("client with a partially used bucket should be kept")
	}

	rl.Stop()
	rl.Stop()
}
