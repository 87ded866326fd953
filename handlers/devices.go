// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/rank-choicer/cliparse"
	"github.com/danielhkuo/rank-choicer/middleware"
	"github.com/danielhkuo/rank-choicer/models"
)

type DeviceHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDeviceHandler(db *sql.DB, cfg cliparse.Config) *DeviceHandler {
	return &DeviceHandler{db: db, cfg: cfg}
}

// Register handles POST /devices/register
// Registers a device and returns its device_id (or finds existing)
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	deviceUUID := r.Header.Get("X-Device-UUID")
	if deviceUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Device-UUID header required")
		return
	}

	var req models.RegisterDeviceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !isValidPlatform(req.Platform) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "platform must be one of: ios, macos, android, web")
		return
	}

	// Check if device already exists
	var existingID string
	err := h.db.QueryRow(`
		SELECT id FROM device WHERE device_uuid = $1
	`, deviceUUID).Scan(&existingID)

	if err == nil {
		// Device exists, update last_seen_at
		_, err = h.db.Exec(`
			UPDATE device SET last_seen_at = $1 WHERE id = $2
		`, time.Now(), existingID)
		if err != nil {
			slog.Error("failed to update device last_seen_at", "error", err)
		}

		slog.Info("device registered (existing)", "device_id", existingID)
		middleware.JSONResponse(w, http.StatusOK, models.RegisterDeviceResponse{
			DeviceID: existingID,
			IsNew:    false,
		})
		return
	}

	if err != sql.ErrNoRows {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Create new device
	deviceID := uuid.NewString()
	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO device (id, device_uuid, platform, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`, deviceID, deviceUUID, req.Platform, now, now)

	if err != nil {
		slog.Error("failed to insert device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	slog.Info("device registered (new)", "device_id", deviceID, "platform", req.Platform)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterDeviceResponse{
		DeviceID: deviceID,
		IsNew:    true,
	})
}

// GetMe handles GET /devices/me
// Returns current device info
func (h *DeviceHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	deviceUUID := r.Header.Get("X-Device-UUID")
	if deviceUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Device-UUID header required")
		return
	}

	var device models.DeviceInfo
	err := h.db.QueryRow(`
		SELECT id, platform, created_at, last_seen_at
		FROM device
		WHERE device_uuid = $1
	`, deviceUUID).Scan(&device.ID, &device.Platform, &device.CreatedAt, &device.LastSeenAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Update last_seen_at
	_, err = h.db.Exec(`
		UPDATE device SET last_seen_at = $1 WHERE id = $2
	`, time.Now(), device.ID)
	if err != nil {
		slog.Error("failed to update device last_seen_at", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, device)
}

// GetMyPolls handles GET /devices/my-polls
// Lists the polls this device is linked to, with winner labels for closed
// polls and humanized activity times.
func (h *DeviceHandler) GetMyPolls(w http.ResponseWriter, r *http.Request) {
	deviceUUID := r.Header.Get("X-Device-UUID")
	if deviceUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Device-UUID header required")
		return
	}

	var deviceID string
	err := h.db.QueryRow(`
		SELECT id FROM device WHERE device_uuid = $1
	`, deviceUUID).Scan(&deviceID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query device", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT
			p.id, p.title, p.status, p.share_slug, p.closed_at, p.created_at,
			dp.role, dp.linked_at,
			(SELECT COUNT(*) FROM ballot b WHERE b.poll_id = p.id) as ballot_count
		FROM device_poll dp
		JOIN poll p ON dp.poll_id = p.id
		WHERE dp.device_id = $1
		ORDER BY dp.linked_at DESC
	`, deviceID)
	if err != nil {
		slog.Error("failed to query device polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	type pollEntry struct {
		PollID      string  `json:"poll_id"`
		Title       string  `json:"title"`
		Status      string  `json:"status"`
		ShareSlug   *string `json:"share_slug,omitempty"`
		Role        string  `json:"role"`
		BallotCount int     `json:"ballot_count"`
		WinnerLabel string  `json:"winner_label,omitempty"`
		LastActive  string  `json:"last_active"`
	}

	polls := []pollEntry{}
	for rows.Next() {
		var entry pollEntry
		var closedAt *time.Time
		var createdAt, linkedAt time.Time
		if err := rows.Scan(&entry.PollID, &entry.Title, &entry.Status, &entry.ShareSlug,
			&closedAt, &createdAt, &entry.Role, &linkedAt, &entry.BallotCount); err != nil {
			slog.Error("failed to scan device poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		lastActive := linkedAt
		if closedAt != nil && closedAt.After(lastActive) {
			lastActive = *closedAt
		}
		entry.LastActive = humanize.Time(lastActive)

		polls = append(polls, entry)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate device polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Attach winner labels for closed polls
	for i := range polls {
		if polls[i].Status != models.StatusClosed {
			continue
		}
		label, err := getWinnerLabel(h.db, polls[i].PollID)
		if err != nil {
			slog.Warn("failed to look up winner label", "error", err, "poll_id", polls[i].PollID)
			continue
		}
		polls[i].WinnerLabel = label
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"polls": polls,
	})
}

// getWinnerLabel returns the winning option's label for a closed poll, or
// empty if the count did not resolve.
func getWinnerLabel(db *sql.DB, pollID string) (string, error) {
	var payload []byte
	err := db.QueryRow(`
		SELECT rs.payload
		FROM poll p
		JOIN result_snapshot rs ON p.final_snapshot_id = rs.id
		WHERE p.id = $1
	`, pollID).Scan(&payload)
	if err != nil {
		return "", err
	}

	var result models.IRVResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", err
	}
	return result.WinnerLabel, nil
}

// GetOrCreateDevice registers the requesting device if the X-Device-UUID
// header is present, returning its ID. Returns empty without error when the
// header is absent.
func GetOrCreateDevice(db *sql.DB, r *http.Request) (string, error) {
	deviceUUID := r.Header.Get("X-Device-UUID")
	if deviceUUID == "" {
		return "", nil
	}

	var deviceID string
	err := db.QueryRow(`
		SELECT id FROM device WHERE device_uuid = $1
	`, deviceUUID).Scan(&deviceID)

	if err == nil {
		return deviceID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	// Unknown device: register it with a generic platform
	deviceID = uuid.NewString()
	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO device (id, device_uuid, platform, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`, deviceID, deviceUUID, models.PlatformWeb, now, now)
	if err != nil {
		return "", err
	}

	return deviceID, nil
}

// LinkDeviceToPoll records that a device participates in a poll. Re-linking
// the same pair is a no-op.
func LinkDeviceToPoll(db *sql.DB, deviceID, pollID, role string, voterToken *string) error {
	var existing int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM device_poll WHERE device_id = $1 AND poll_id = $2
	`, deviceID, pollID).Scan(&existing)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	_, err = db.Exec(`
		INSERT INTO device_poll (device_id, poll_id, voter_token, role, linked_at)
		VALUES ($1, $2, $3, $4, $5)
	`, deviceID, pollID, voterToken, role, time.Now())
	return err
}

func isValidPlatform(platform string) bool {
	switch platform {
	case models.PlatformIOS, models.PlatformMacOS, models.PlatformAndroid, models.PlatformWeb:
		return true
	}
	return false
}
