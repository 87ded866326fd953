// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rank-choicer/models"
	"github.com/danielhkuo/rank-choicer/testutil"
)

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Create poll
// 2. Add options
// 3. Publish poll
// 4. Voters claim usernames
// 5. Voters submit ranked ballots
// 6. Update a ballot
// 7. Close poll
// 8. Verify results
func TestFullVotingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	pollHandler := NewPollHandler(db, cfg)
	votingHandler := NewVotingHandler(db, cfg)
	resultsHandler := NewResultsHandler(db, cfg)

	// Step 1: Create a poll with batch elimination so the count is deterministic
	createReq := models.CreatePollRequest{
		Title:       "Integration Test Poll",
		Description: "Testing the full voting workflow",
		CreatorName: "IntegrationTester",
		Elimination: "batch",
	}
	body, _ := json.Marshal(createReq)
	req := httptest.NewRequest("POST", "/polls", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	pollHandler.CreatePoll(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create poll failed: %d - %s", w.Code, w.Body.String())
	}

	var createResp models.CreatePollResponse
	json.NewDecoder(w.Body).Decode(&createResp)
	pollID := createResp.PollID
	adminKey := createResp.AdminKey

	if pollID == "" || adminKey == "" {
		t.Fatal("Step 1 - Missing poll_id or admin_key")
	}
	t.Logf("Step 1 - Created poll: %s", pollID)

	// Step 2: Add 3 options
	options := []string{"Pizza", "Sushi", "Tacos"}
	optionIDs := make([]string, 0, len(options))

	for _, label := range options {
		optionReq := models.AddOptionRequest{Label: label}
		body, _ := json.Marshal(optionReq)
		req := httptest.NewRequest("POST", "/polls/"+pollID+"/options", bytes.NewReader(body))
		req.SetPathValue("id", pollID)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Admin-Key", adminKey)
		w := httptest.NewRecorder()
		pollHandler.AddOption(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Add option '%s' failed: %d - %s", label, w.Code, w.Body.String())
		}

		var optionResp models.AddOptionResponse
		json.NewDecoder(w.Body).Decode(&optionResp)
		optionIDs = append(optionIDs, optionResp.OptionID)
	}
	t.Logf("Step 2 - Added %d options", len(optionIDs))

	// Step 3: Publish poll
	req = httptest.NewRequest("POST", "/polls/"+pollID+"/publish", nil)
	req.SetPathValue("id", pollID)
	req.Header.Set("X-Admin-Key", adminKey)
	w = httptest.NewRecorder()
	pollHandler.PublishPoll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Publish failed: %d - %s", w.Code, w.Body.String())
	}

	var publishResp models.PublishPollResponse
	json.NewDecoder(w.Body).Decode(&publishResp)
	shareSlug := publishResp.ShareSlug

	if shareSlug == "" {
		t.Fatal("Step 3 - Missing share_slug")
	}
	t.Logf("Step 3 - Published poll with slug: %s", shareSlug)

	// Step 4: 5 voters claim usernames
	voters := []string{"Alice", "Bob", "Charlie", "Dana", "Evan"}
	voterTokens := make([]string, 0, len(voters))

	for _, username := range voters {
		claimReq := models.ClaimUsernameRequest{Username: username}
		body, _ := json.Marshal(claimReq)
		req := httptest.NewRequest("POST", "/polls/"+shareSlug+"/claim-username", bytes.NewReader(body))
		req.SetPathValue("slug", shareSlug)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		votingHandler.ClaimUsername(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Claim username '%s' failed: %d - %s", username, w.Code, w.Body.String())
		}

		var claimResp models.ClaimUsernameResponse
		json.NewDecoder(w.Body).Decode(&claimResp)
		voterTokens = append(voterTokens, claimResp.VoterToken)
	}
	t.Logf("Step 4 - %d voters claimed usernames", len(voterTokens))

	// Step 5: 5 voters submit ranked ballots
	// Alice and Bob put Pizza first, Charlie and Dana put Sushi first, and
	// Evan ranks Tacos then Pizza. Tacos goes out in round one and Pizza
	// wins round two 3-2.
	rankings := [][]string{
		{optionIDs[0], optionIDs[1]},               // Alice
		{optionIDs[0], optionIDs[2]},               // Bob
		{optionIDs[1], optionIDs[0]},               // Charlie
		{optionIDs[1]},                             // Dana
		{optionIDs[2], optionIDs[0], optionIDs[1]}, // Evan
	}

	ballotIDs := make([]string, 0, len(voters))
	for i, ranking := range rankings {
		ballotReq := models.SubmitBallotRequest{Ranking: ranking}
		body, _ := json.Marshal(ballotReq)
		req := httptest.NewRequest("POST", "/polls/"+shareSlug+"/ballots", bytes.NewReader(body))
		req.SetPathValue("slug", shareSlug)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Voter-Token", voterTokens[i])
		w := httptest.NewRecorder()
		votingHandler.SubmitBallot(w, req)

		if w.Code != http.StatusCreated && w.Code != http.StatusOK {
			t.Fatalf("Step 5 - Submit ballot for voter %d failed: %d - %s", i, w.Code, w.Body.String())
		}

		var ballotResp models.SubmitBallotResponse
		json.NewDecoder(w.Body).Decode(&ballotResp)
		ballotIDs = append(ballotIDs, ballotResp.BallotID)
	}
	t.Logf("Step 5 - %d ballots submitted", len(ballotIDs))

	// Step 6: Alice flips her ranking, then flips it back
	ballotReq := models.SubmitBallotRequest{Ranking: []string{optionIDs[1], optionIDs[0]}}
	body, _ = json.Marshal(ballotReq)
	req = httptest.NewRequest("POST", "/polls/"+shareSlug+"/ballots", bytes.NewReader(body))
	req.SetPathValue("slug", shareSlug)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Voter-Token", voterTokens[0])
	w = httptest.NewRecorder()
	votingHandler.SubmitBallot(w, req)

	if w.Code != http.StatusOK && w.Code != http.StatusCreated {
		t.Fatalf("Step 6 - Update ballot failed: %d - %s", w.Code, w.Body.String())
	}

	var updateResp models.SubmitBallotResponse
	json.NewDecoder(w.Body).Decode(&updateResp)
	if updateResp.BallotID != ballotIDs[0] {
		t.Error("Step 6 - Update should reuse Alice's ballot")
	}
	t.Logf("Step 6 - Ballot updated: %s", updateResp.Message)

	ballotReq = models.SubmitBallotRequest{Ranking: []string{optionIDs[0], optionIDs[1]}}
	body, _ = json.Marshal(ballotReq)
	req = httptest.NewRequest("POST", "/polls/"+shareSlug+"/ballots", bytes.NewReader(body))
	req.SetPathValue("slug", shareSlug)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Voter-Token", voterTokens[0])
	w = httptest.NewRecorder()
	votingHandler.SubmitBallot(w, req)

	if w.Code != http.StatusOK && w.Code != http.StatusCreated {
		t.Fatalf("Step 6 - Restore ballot failed: %d - %s", w.Code, w.Body.String())
	}

	// Verify ballot count: resubmissions must not inflate it
	req = httptest.NewRequest("GET", "/polls/"+shareSlug+"/ballot-count", nil)
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	resultsHandler.GetBallotCount(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Ballot count check failed: %d - %s", w.Code, w.Body.String())
	}

	var countResp struct {
		Count int `json:"ballot_count"`
	}
	json.NewDecoder(w.Body).Decode(&countResp)
	if countResp.Count != 5 {
		t.Errorf("Expected 5 ballots, got %d", countResp.Count)
	}

	// Results must stay sealed while the poll is open
	req = httptest.NewRequest("GET", "/polls/"+shareSlug+"/results", nil)
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected sealed results (403) while open, got %d", w.Code)
	}

	// Step 7: Close the poll
	req = httptest.NewRequest("POST", "/polls/"+pollID+"/close", nil)
	req.SetPathValue("id", pollID)
	req.Header.Set("X-Admin-Key", adminKey)
	w = httptest.NewRecorder()
	pollHandler.ClosePoll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Close poll failed: %d - %s", w.Code, w.Body.String())
	}

	var closeResp models.ClosePollResponse
	json.NewDecoder(w.Body).Decode(&closeResp)

	if closeResp.ClosedAt.IsZero() {
		t.Error("Step 7 - Expected non-zero closed_at")
	}
	if closeResp.Snapshot.ID == "" {
		t.Error("Step 7 - Expected snapshot ID")
	}
	t.Logf("Step 7 - Poll closed at %v", closeResp.ClosedAt)

	// Step 8: Verify results
	req = httptest.NewRequest("GET", "/polls/"+shareSlug+"/results", nil)
	req.SetPathValue("slug", shareSlug)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 8 - Get results failed: %d - %s", w.Code, w.Body.String())
	}

	var resultsResp struct {
		WinnerID    string              `json:"winner_id"`
		WinnerLabel string              `json:"winner_label"`
		Resolved    bool                `json:"resolved"`
		Rounds      []models.RoundTally `json:"rounds"`
		BallotCount int                 `json:"ballot_count"`
	}
	json.NewDecoder(w.Body).Decode(&resultsResp)

	if !resultsResp.Resolved {
		t.Error("Step 8 - Expected a resolved result")
	}
	if resultsResp.WinnerID != optionIDs[0] {
		t.Errorf("Step 8 - Expected Pizza (%s) to win, got %s", optionIDs[0], resultsResp.WinnerID)
	}
	if resultsResp.WinnerLabel != "Pizza" {
		t.Errorf("Step 8 - Expected winner label 'Pizza', got '%s'", resultsResp.WinnerLabel)
	}
	if resultsResp.BallotCount != 5 {
		t.Errorf("Step 8 - Expected 5 counted ballots, got %d", resultsResp.BallotCount)
	}
	if len(resultsResp.Rounds) != 2 {
		t.Fatalf("Step 8 - Expected 2 rounds, got %d", len(resultsResp.Rounds))
	}

	round1 := resultsResp.Rounds[0]
	if round1.VoteCounts[optionIDs[0]] != 2 || round1.VoteCounts[optionIDs[1]] != 2 || round1.VoteCounts[optionIDs[2]] != 1 {
		t.Errorf("Step 8 - Unexpected round 1 tallies: %v", round1.VoteCounts)
	}
	if len(round1.Eliminated) != 1 || round1.Eliminated[0] != optionIDs[2] {
		t.Errorf("Step 8 - Expected Tacos eliminated in round 1, got %v", round1.Eliminated)
	}

	round2 := resultsResp.Rounds[1]
	if round2.VoteCounts[optionIDs[0]] != 3 || round2.VoteCounts[optionIDs[1]] != 2 {
		t.Errorf("Step 8 - Unexpected round 2 tallies: %v", round2.VoteCounts)
	}
	if round2.WinnerID != optionIDs[0] {
		t.Errorf("Step 8 - Expected round 2 winner %s, got %s", optionIDs[0], round2.WinnerID)
	}

	t.Log("Integration test completed successfully!")
}
