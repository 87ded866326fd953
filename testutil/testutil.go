// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/rank-choicer/auth"
	"github.com/danielhkuo/rank-choicer/cliparse"
	"github.com/danielhkuo/rank-choicer/db"
)

// TestDBURL is the connection string for the test database.
// In-memory SQLite; foreign keys must be enabled per connection.
const TestDBURL = "file::memory:?_pragma=foreign_keys(1)"

// SetupTestDB creates a fresh in-memory test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A second connection would see a different empty in-memory database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3419,
		DatabaseURL:  TestDBURL,
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
		PollSlugSalt: "test-slug-salt",
	}
}

// CreateTestPoll creates a poll in the database and returns its ID and admin key
// status should be "draft", "open", or "closed"
func CreateTestPoll(t *testing.T, db *sql.DB, cfg cliparse.Config, status, elimination string) (pollID, adminKey, shareSlug string) {
	t.Helper()

	pollID = uuid.NewString()
	adminKey = auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)

	var slug *string
	if status == "open" || status == "closed" {
		s := auth.GenerateShareSlug(pollID, cfg.PollSlugSalt)
		slug = &s
		shareSlug = s
	}

	var closedAt *time.Time
	if status == "closed" {
		now := time.Now()
		closedAt = &now
	}

	_, err := db.Exec(`
		INSERT INTO poll (id, title, description, creator_name, elimination, status, share_slug, closed_at, created_at)
		VALUES ($1, 'Test Poll', 'A test poll', 'TestUser', $2, $3, $4, $5, $6)
	`, pollID, elimination, status, slug, closedAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, adminKey, shareSlug
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, db *sql.DB, pollID, label string) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO option (id, poll_id, label)
		VALUES ($1, $2, $3)
	`, optionID, pollID, label)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CreateTestVoter claims a username for a poll and returns the voter token
func CreateTestVoter(t *testing.T, db *sql.DB, pollID, username string) string {
	t.Helper()

	voterToken, _ := auth.GenerateVoterToken()
	_, err := db.Exec(`
		INSERT INTO username_claim (poll_id, username, voter_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, username, voterToken, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterToken
}

// SubmitTestRanking creates a ballot with a ranked list of option IDs,
// first choice first
func SubmitTestRanking(t *testing.T, db *sql.DB, pollID, voterToken string, ranking []string) string {
	t.Helper()

	ballotID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO ballot (id, poll_id, voter_token, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, ballotID, pollID, voterToken, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	for i, optionID := range ranking {
		_, err := db.Exec(`
			INSERT INTO ranking (ballot_id, option_id, position)
			VALUES ($1, $2, $3)
		`, ballotID, optionID, i+1)
		if err != nil {
			t.Fatalf("Failed to create test ranking: %v", err)
		}
	}

	return ballotID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
