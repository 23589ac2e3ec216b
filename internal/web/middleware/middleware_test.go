package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/logging"
)

func echoRemoteAddr(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.RemoteAddr))
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		header  http.Header
		want    string
	}{
		{"trusted cidr real ip", []string{"10.0.0.0/8"}, "10.1.2.3:4000", http.Header{"X-Real-Ip": {"203.0.113.7"}}, "203.0.113.7"},
		{"trusted forwarded for", []string{"10.0.0.0/8"}, "10.1.2.3:4000", http.Header{"X-Forwarded-For": {"203.0.113.7, 10.1.2.3"}}, "203.0.113.7"},
		{"trusted single address", []string{"192.168.1.1"}, "192.168.1.1:4000", http.Header{"X-Real-Ip": {"203.0.113.7"}}, "203.0.113.7"},
		{"mapped ipv4", []string{"10.0.0.0/8"}, "[::ffff:10.1.2.3]:4000", http.Header{"X-Real-Ip": {"203.0.113.7"}}, "203.0.113.7"},
		{"untrusted", []string{"10.0.0.0/8"}, "198.51.100.1:4000", http.Header{"X-Real-Ip": {"203.0.113.7"}}, "198.51.100.1:4000"},
		{"garbage header", []string{"10.0.0.0/8"}, "10.1.2.3:4000", http.Header{"X-Real-Ip": {"not-an-ip"}}, "10.1.2.3:4000"},
		{"nothing trusted", nil, "10.1.2.3:4000", http.Header{"X-Real-Ip": {"203.0.113.7"}}, "10.1.2.3:4000"},
		{"invalid entries ignored", []string{"bogus", " "}, "10.1.2.3:4000", http.Header{"X-Real-Ip": {"203.0.113.7"}}, "10.1.2.3:4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(echoRemoteAddr))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			req.Header = tt.header
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		cfg      config.SecurityConfig
		key      string
		want     int
		wantCode string
	}{
		{"disabled", config.SecurityConfig{}, "", http.StatusNoContent, ""},
		{"missing", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"a", "b"}}, "", http.StatusUnauthorized, "AUTH001"},
		{"wrong", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"a", "b"}}, "c", http.StatusForbidden, "AUTH002"},
		{"prefix", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"abc"}}, "ab", http.StatusForbidden, "AUTH002"},
		{"second key", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"a", "b"}}, "b", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/ingest", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()

			APIKeyAuth(tt.cfg)(ok).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.wantCode == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["code"] != tt.wantCode {
				t.Errorf("code = %q, want %q", body["code"], tt.wantCode)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logging.New(&buf, "debug", "json"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{"implicit ok", 0, "hello", "INFO"},
		{"client error", http.StatusNotFound, "nope", "WARN"},
		{"server error", http.StatusBadGateway, "", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					w.WriteHeader(http.StatusTeapot)
				}
				w.Write([]byte(tt.body))
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/vessel-items", nil))

			var entry struct {
				Level  string `json:"level"`
				Msg    string `json:"msg"`
				Status int    `json:"status"`
				Bytes  int    `json:"bytes"`
				Path   string `json:"path"`
			}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line %q: %v", buf.String(), err)
			}

			wantStatus := tt.status
			if wantStatus == 0 {
				wantStatus = http.StatusOK
			}
			if entry.Msg != "request" || entry.Level != tt.wantLevel || entry.Status != wantStatus ||
				entry.Bytes != len(tt.body) || entry.Path != "/api/vessel-items" {
				t.Errorf("entry = %+v", entry)
			}
		})
	}
}
