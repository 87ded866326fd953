// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rank-choicer/models"
	"github.com/danielhkuo/rank-choicer/testutil"
)

func TestGetPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	pollID, _, shareSlug := testutil.CreateTestPoll(t, db, cfg, "open", "random")
	testutil.AddTestOption(t, db, pollID, "A")
	testutil.AddTestOption(t, db, pollID, "B")

	req := httptest.NewRequest("GET", "/polls/"+shareSlug, nil)
	req.SetPathValue("slug", shareSlug)
	w := httptest.NewRecorder()

	handler.GetPoll(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PollWithOptions
	testutil.AssertJSON(t, w, &resp)

	if resp.Poll.ID != pollID {
		t.Errorf("Expected poll %s, got %s", pollID, resp.Poll.ID)
	}
	if len(resp.Options) != 2 {
		t.Errorf("Expected 2 options, got %d", len(resp.Options))
	}

	// Unknown slug
	req = httptest.NewRequest("GET", "/polls/unknown", nil)
	req.SetPathValue("slug", "unknown")
	w = httptest.NewRecorder()

	handler.GetPoll(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestResultsSealedWhileOpen(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	pollID, _, shareSlug := testutil.CreateTestPoll(t, db, cfg, "open", "random")
	optA := testutil.AddTestOption(t, db, pollID, "A")
	testutil.AddTestOption(t, db, pollID, "B")

	voterToken := testutil.CreateTestVoter(t, db, pollID, "Voter1")
	testutil.SubmitTestRanking(t, db, pollID, voterToken, []string{optA})

	req := httptest.NewRequest("GET", "/polls/"+shareSlug+"/results", nil)
	req.SetPathValue("slug", shareSlug)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestGetResultsAfterClose(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	pollHandler := NewPollHandler(db, cfg)
	resultsHandler := NewResultsHandler(db, cfg)

	pollID, adminKey, _ := seedRankedPoll(t, db, cfg)

	// Close via the handler so a real snapshot is written
	req := httptest.NewRequest("POST", "/polls/"+pollID+"/close", nil)
	req.SetPathValue("id", pollID)
	req.Header.Set("X-Admin-Key", adminKey)
	w := httptest.NewRecorder()
	pollHandler.ClosePoll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Close failed: %d - %s", w.Code, w.Body.String())
	}

	var shareSlug string
	if err := db.QueryRow("SELECT share_slug FROM poll WHERE id = $1", pollID).Scan(&shareSlug); err != nil {
		t.Fatalf("Failed to query slug: %v", err)
	}

	req = httptest.NewRequest("GET", "/polls/"+shareSlug+"/results", nil)
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Poll        models.Poll         `json:"poll"`
		Options     []models.Option     `json:"options"`
		WinnerID    string              `json:"winner_id"`
		WinnerLabel string              `json:"winner_label"`
		Resolved    bool                `json:"resolved"`
		Rounds      []models.RoundTally `json:"rounds"`
		BallotCount int                 `json:"ballot_count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode results: %v", err)
	}

	if !resp.Resolved {
		t.Error("Expected a resolved result")
	}
	if resp.WinnerLabel != "A" {
		t.Errorf("Expected winner 'A', got '%s'", resp.WinnerLabel)
	}
	if resp.WinnerID == "" {
		t.Error("Expected non-empty winner_id")
	}
	if resp.BallotCount != 5 {
		t.Errorf("Expected ballot count 5, got %d", resp.BallotCount)
	}
	if len(resp.Rounds) != 2 {
		t.Errorf("Expected 2 rounds, got %d", len(resp.Rounds))
	}
	if len(resp.Options) != 3 {
		t.Errorf("Expected 3 options, got %d", len(resp.Options))
	}
	if resp.Poll.Status != models.StatusClosed {
		t.Errorf("Expected closed poll, got '%s'", resp.Poll.Status)
	}
}

func TestGetBallotCount(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	pollID, _, shareSlug := testutil.CreateTestPoll(t, db, cfg, "open", "random")
	optA := testutil.AddTestOption(t, db, pollID, "A")
	testutil.AddTestOption(t, db, pollID, "B")

	var countResp struct {
		Count int `json:"ballot_count"`
	}

	// Initially 0 ballots
	req := httptest.NewRequest("GET", "/polls/"+shareSlug+"/ballot-count", nil)
	req.SetPathValue("slug", shareSlug)
	w := httptest.NewRecorder()
	handler.GetBallotCount(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &countResp)
	if countResp.Count != 0 {
		t.Errorf("Expected 0 ballots initially, got %d", countResp.Count)
	}

	// Counts climb as ballots arrive, even while the poll is open
	for i := 1; i <= 3; i++ {
		voterToken := testutil.CreateTestVoter(t, db, pollID, "Voter"+string(rune('0'+i)))
		testutil.SubmitTestRanking(t, db, pollID, voterToken, []string{optA})

		req := httptest.NewRequest("GET", "/polls/"+shareSlug+"/ballot-count", nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		handler.GetBallotCount(w, req)

		testutil.AssertJSON(t, w, &countResp)
		if countResp.Count != i {
			t.Errorf("After %d ballots, count was %d", i, countResp.Count)
		}
	}
}

func TestGetPreview(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	t.Run("open poll", func(t *testing.T) {
		pollID, _, shareSlug := testutil.CreateTestPoll(t, db, cfg, "open", "random")
		optA := testutil.AddTestOption(t, db, pollID, "A")
		testutil.AddTestOption(t, db, pollID, "B")

		voterToken := testutil.CreateTestVoter(t, db, pollID, "Voter1")
		testutil.SubmitTestRanking(t, db, pollID, voterToken, []string{optA})

		req := httptest.NewRequest("GET", "/polls/"+shareSlug+"/preview", nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		handler.GetPreview(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var preview models.PollPreviewResponse
		testutil.AssertJSON(t, w, &preview)

		if preview.Status != models.StatusOpen {
			t.Errorf("Expected status 'open', got '%s'", preview.Status)
		}
		if preview.OptionCount != 2 {
			t.Errorf("Expected 2 options, got %d", preview.OptionCount)
		}
		if preview.BallotCount != 1 {
			t.Errorf("Expected 1 ballot, got %d", preview.BallotCount)
		}
		if preview.ClosedAgo != "" {
			t.Errorf("Open poll should have no closed_ago, got '%s'", preview.ClosedAgo)
		}
	})

	t.Run("closed poll", func(t *testing.T) {
		pollID, _, shareSlug := testutil.CreateTestPoll(t, db, cfg, "closed", "random")
		testutil.AddTestOption(t, db, pollID, "A")

		req := httptest.NewRequest("GET", "/polls/"+shareSlug+"/preview", nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()
		handler.GetPreview(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var preview models.PollPreviewResponse
		testutil.AssertJSON(t, w, &preview)

		if preview.Status != models.StatusClosed {
			t.Errorf("Expected status 'closed', got '%s'", preview.Status)
		}
		if preview.ClosedAgo == "" {
			t.Error("Closed poll should report how long ago it closed")
		}
	})
}
