package server

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"jobscout/internal/config"
)

func TestNewServerAPIKeySet(t *testing.T) {
	cfg := ServerConfig{
		Host:    "localhost",
		Port:    "8080",
		APIKeys: []string{"key-one", "", "key-two"},
	}

	s := NewServer(&config.Config{}, cfg, nil)

	if len(s.APIKeys) != 2 {
		t.Fatalf("APIKeys size = %d, want 2", len(s.APIKeys))
	}
	if !s.APIKeys["key-one"] || !s.APIKeys["key-two"] {
		t.Error("configured keys missing from the set")
	}
	if s.APIKeys[""] {
		t.Error("empty key should be dropped")
	}
	if s.RateLimiter != nil {
		t.Error("rate limiter should stay nil when rate limiting is disabled")
	}
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 2, nil)
	defer rl.Close()

	if !rl.Allow("ip:10.0.0.1") {
		t.Error("first request within burst should be allowed")
	}
	if !rl.Allow("ip:10.0.0.1") {
		t.Error("second request within burst should be allowed")
	}
	if rl.Allow("ip:10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}

	// Other keys have their own bucket.
	if !rl.Allow("ip:10.0.0.2") {
		t.Error("fresh key should be allowed")
	}

	stats := rl.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
}

func TestRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{"api key preferred", "secret", true, true, "api:secret"},
		{"falls back to ip", "", true, true, "ip:192.0.2.1"},
		{"ip only", "secret", false, true, "ip:192.0.2.1"},
		{"nothing enabled", "secret", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/parse", nil)
			r.RemoteAddr = "192.0.2.1:4711"
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}

			if got := rateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("rateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientIPHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "x-forwarded-for first valid ip",
			headers: map[string]string{"X-Forwarded-For": "garbage, 203.0.113.9"},
			remote:  "192.0.2.1:4711",
			want:    "203.0.113.9",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "198.51.100.4"},
			remote:  "192.0.2.1:4711",
			want:    "198.51.100.4",
		},
		{
			name:   "remote addr fallback",
			remote: "192.0.2.1:4711",
			want:   "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := clientIP(r); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestAPIKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/research", nil)
	r.Header.Set("Authorization", "Bearer token-from-bearer")
	if got := requestAPIKey(r); got != "token-from-bearer" {
		t.Errorf("requestAPIKey() = %q, want bearer token", got)
	}

	r.Header.Set("X-API-Key", "token-from-header")
	if got := requestAPIKey(r); got != "token-from-header" {
		t.Errorf("requestAPIKey() = %q, want X-API-Key value", got)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q, want ****", got)
	}
	if got := maskAPIKey("abcdefgh12345678"); got != "abcdefgh****" {
		t.Errorf("maskAPIKey(long) = %q, want abcdefgh****", got)
	}
}

func TestSplitCompanies(t *testing.T) {
	got := splitCompanies([]string{"Acme, Globex", " Initech ", ""})
	want := []string{"Acme", "Globex", "Initech"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitCompanies() = %v, want %v", got, want)
	}

	if got := splitCompanies(nil); got != nil {
		t.Errorf("splitCompanies(nil) = %v, want nil", got)
	}
}
