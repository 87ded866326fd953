// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/rank-choicer/auth"
	"github.com/danielhkuo/rank-choicer/cliparse"
	"github.com/danielhkuo/rank-choicer/middleware"
	"github.com/danielhkuo/rank-choicer/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// ClaimUsername handles POST /polls/:slug/claim-username
func (h *VotingHandler) ClaimUsername(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req models.ClaimUsernameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}

	// Find poll by share slug
	var pollID string
	var status string
	err := h.db.QueryRow(`
		SELECT id, status FROM poll WHERE share_slug = $1
	`, shareSlug).Scan(&pollID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Can only claim username for open polls
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not open for voting")
		return
	}

	// The (poll_id, username) unique constraint rejects duplicates, so check
	// first for a friendly error.
	var taken int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM username_claim WHERE poll_id = $1 AND username = $2
	`, pollID, req.Username).Scan(&taken)
	if err != nil {
		slog.Error("failed to check username", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}

	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO username_claim (poll_id, username, voter_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, req.Username, voterToken, time.Now())

	if err != nil {
		slog.Error("failed to insert username claim", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	// Link device to poll as voter (if X-Device-UUID header present)
	deviceID, err := GetOrCreateDevice(h.db, r)
	if err != nil {
		slog.Warn("failed to get/create device", "error", err)
		// Non-fatal: username was claimed, just no device linking
	} else if deviceID != "" {
		if err := LinkDeviceToPoll(h.db, deviceID, pollID, models.RoleVoter, &voterToken); err != nil {
			slog.Warn("failed to link device to poll", "error", err)
		}
	}

	slog.Info("username claimed", "poll_id", pollID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimUsernameResponse{
		VoterToken: voterToken,
	})
}

// SubmitBallot handles POST /polls/:slug/ballots
// The body carries the voter's ranking: option IDs in preference order, best
// first. Partial rankings are allowed; resubmitting replaces the old ballot.
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Ranking) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ranking cannot be empty")
		return
	}

	// A ballot may not rank the same option twice
	seen := make(map[string]bool, len(req.Ranking))
	for _, optionID := range req.Ranking {
		if seen[optionID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "ranking repeats option "+optionID)
			return
		}
		seen[optionID] = true
	}

	// Find poll by share slug
	var pollID string
	var status string
	err := h.db.QueryRow(`
		SELECT id, status FROM poll WHERE share_slug = $1
	`, shareSlug).Scan(&pollID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Can only vote on open polls
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not open for voting")
		return
	}

	// Verify voter token is valid for this poll
	var claims int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM username_claim
		WHERE poll_id = $1 AND voter_token = $2
	`, pollID, voterToken).Scan(&claims)

	if err != nil {
		slog.Error("failed to verify voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if claims == 0 {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token for this poll")
		return
	}

	// Every ranked option must belong to this poll
	rows, err := h.db.Query(`
		SELECT id FROM option WHERE poll_id = $1
	`, pollID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	validOptions := make(map[string]bool)
	for rows.Next() {
		var optionID string
		if err := rows.Scan(&optionID); err != nil {
			slog.Error("failed to scan option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		validOptions[optionID] = true
	}

	for _, optionID := range req.Ranking {
		if !validOptions[optionID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option_id: "+optionID)
			return
		}
	}

	// Get IP hash for tracking
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt) // Reuse admin salt for IP hashing
	userAgent := r.UserAgent()

	// Begin transaction for UPSERT
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Check if ballot already exists
	var existingBallotID string
	err = tx.QueryRow(`
		SELECT id FROM ballot WHERE poll_id = $1 AND voter_token = $2
	`, pollID, voterToken).Scan(&existingBallotID)

	isUpdate := err != sql.ErrNoRows
	var ballotID string

	if isUpdate {
		// Update existing ballot
		ballotID = existingBallotID
		_, err = tx.Exec(`
			UPDATE ballot
			SET submitted_at = $1, ip_hash = $2, user_agent = $3
			WHERE id = $4
		`, time.Now(), ipHash, userAgent, ballotID)

		if err != nil {
			slog.Error("failed to update ballot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update ballot")
			return
		}

		// Delete old ranking
		_, err = tx.Exec(`DELETE FROM ranking WHERE ballot_id = $1`, ballotID)
		if err != nil {
			slog.Error("failed to delete old ranking", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update ballot")
			return
		}
	} else {
		// Create new ballot
		ballotID = uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO ballot (id, poll_id, voter_token, submitted_at, ip_hash, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ballotID, pollID, voterToken, time.Now(), ipHash, userAgent)

		if err != nil {
			slog.Error("failed to insert ballot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
			return
		}
	}

	// Insert ranking rows, position 1 = first choice
	for i, optionID := range req.Ranking {
		_, err = tx.Exec(`
			INSERT INTO ranking (ballot_id, option_id, position)
			VALUES ($1, $2, $3)
		`, ballotID, optionID, i+1)

		if err != nil {
			slog.Error("failed to insert ranking", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save ranking")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	message := "Ballot submitted successfully"
	if isUpdate {
		message = "Ballot updated successfully"
	}

	slog.Info("ballot submitted", "poll_id", pollID, "ballot_id", ballotID, "is_update", isUpdate)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		BallotID: ballotID,
		Message:  message,
	})
}

// GetMyBallot handles GET /polls/:slug/my-ballot
// Returns the voter's current ranking so clients can show or edit it.
func (h *VotingHandler) GetMyBallot(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var pollID string
	err := h.db.QueryRow(`
		SELECT id FROM poll WHERE share_slug = $1
	`, shareSlug).Scan(&pollID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var ballotID string
	var submittedAt time.Time
	err = h.db.QueryRow(`
		SELECT id, submitted_at FROM ballot WHERE poll_id = $1 AND voter_token = $2
	`, pollID, voterToken).Scan(&ballotID, &submittedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No ballot submitted")
		return
	}
	if err != nil {
		slog.Error("failed to query ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT option_id FROM ranking WHERE ballot_id = $1 ORDER BY position
	`, ballotID)
	if err != nil {
		slog.Error("failed to query ranking", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ranking := []string{}
	for rows.Next() {
		var optionID string
		if err := rows.Scan(&optionID); err != nil {
			slog.Error("failed to scan ranking", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ranking = append(ranking, optionID)
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyBallotResponse{
		BallotID:    ballotID,
		Ranking:     ranking,
		SubmittedAt: submittedAt,
	})
}
