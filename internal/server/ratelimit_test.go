package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := newRateLimiter(5, time.Second)

	for i := 0; i < 5; i++ {
		if !rl.allow("10.0.0.7") {
			t.Errorf("request %d denied inside the budget", i+1)
		}
	}
	if rl.allow("10.0.0.7") {
		t.Error("request over the budget was allowed")
	}

	// Each client IP has its own bucket.
	if !rl.allow("10.0.0.8") {
		t.Error("request from a fresh IP was denied")
	}
}

func TestRateLimiterWindow(t *testing.T) {
	rl := newRateLimiter(2, 100*time.Millisecond)

	if !rl.allow("10.0.0.7") || !rl.allow("10.0.0.7") {
		t.Fatal("requests inside the budget were denied")
	}
	if rl.allow("10.0.0.7") {
		t.Error("request over the budget was allowed")
	}

	time.Sleep(110 * time.Millisecond)

	if !rl.allow("10.0.0.7") {
		t.Error("request after the window rolled over was denied")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	handler := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.7:40100"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.7:40100"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	// Rejections use the same msg envelope as every other failure.
	if msg := bodyMsg(t, w); msg == "" {
		t.Error("429 body carries no msg")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "10.0.0.7:40100",
			want:       "10.0.0.7",
		},
		{
			name:       "forwarded single hop",
			remoteAddr: "127.0.0.1:40100",
			xff:        "203.0.113.9",
			want:       "203.0.113.9",
		},
		{
			name:       "forwarded chain keeps the client",
			remoteAddr: "127.0.0.1:40100",
			xff:        "203.0.113.9, 198.51.100.2, 192.0.2.4",
			want:       "203.0.113.9",
		},
		{
			name:       "real ip header",
			remoteAddr: "127.0.0.1:40100",
			xri:        "203.0.113.30",
			want:       "203.0.113.30",
		},
		{
			name:       "forwarded wins over real ip",
			remoteAddr: "127.0.0.1:40100",
			xff:        "203.0.113.9",
			xri:        "203.0.113.30",
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
