// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rank-choicer/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, map[string]string{"hello": "world"})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Poll not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != "Not Found" {
		t.Errorf("expected error 'Not Found', got %q", body.Error)
	}
	if body.Message != "Poll not found" {
		t.Errorf("expected message 'Poll not found', got %q", body.Message)
	}
}

func TestParseJSONBody(t *testing.T) {
	payload := models.SubmitBallotRequest{Ranking: []string{"opt-a", "opt-b"}}
	raw, _ := json.Marshal(payload)
	r := httptest.NewRequest("POST", "/polls/x/ballots", bytes.NewReader(raw))

	var parsed models.SubmitBallotRequest
	if err := ParseJSONBody(r, &parsed); err != nil {
		t.Fatalf("ParseJSONBody() error = %v", err)
	}
	if len(parsed.Ranking) != 2 || parsed.Ranking[0] != "opt-a" {
		t.Errorf("unexpected parsed ranking: %v", parsed.Ranking)
	}
}

func TestParseJSONBody_Invalid(t *testing.T) {
	r := httptest.NewRequest("POST", "/polls", bytes.NewReader([]byte("{not json")))

	var parsed models.CreatePollRequest
	if err := ParseJSONBody(r, &parsed); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"x-forwarded-for single", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.1:1234", "203.0.113.7"},
		{"x-forwarded-for chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "10.0.0.1:1234", "203.0.113.7"},
		{"x-real-ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.1:1234", "198.51.100.4"},
		{"remote addr with port", nil, "192.0.2.9:5678", "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the wrapped handler")
	}))

	r := httptest.NewRequest("OPTIONS", "/polls", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
}
