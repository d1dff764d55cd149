package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"streamscout/models"
	"streamscout/services/analytics"
	"streamscout/services/launch"
)

const maxAnalyticsBody = 16 << 10

var openMethods = map[string]bool{"app": true, "fallback": true, "web": true}

// AnalyticsHandler accepts terminal launch events reported by browser clients.
type AnalyticsHandler struct {
	Recorder analytics.Recorder
	now      func() time.Time
}

func NewAnalyticsHandler(r analytics.Recorder) *AnalyticsHandler {
	return &AnalyticsHandler{Recorder: analytics.Guard(r), now: time.Now}
}

// RecordLaunch serves POST /api/analytics/launch.
func (h *AnalyticsHandler) RecordLaunch(w http.ResponseWriter, r *http.Request) {
	var event models.LaunchEvent
	dec := json.NewDecoder(io.LimitReader(r.Body, maxAnalyticsBody))
	if err := dec.Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event body")
		return
	}

	event.Platform = strings.TrimSpace(event.Platform)
	if event.Platform == "" {
		writeError(w, http.StatusBadRequest, "missing platform")
		return
	}
	if !openMethods[event.OpenMethod] {
		writeError(w, http.StatusBadRequest, "openMethod must be one of app, fallback, web")
		return
	}
	if event.AttemptID == "" {
		event.AttemptID = uuid.NewString()
	}
	if event.ContentTitle == "" {
		event.ContentTitle = "Unknown"
	}
	if event.ContentID == "" {
		event.ContentID = "Unknown"
	}
	if event.ActionType == "" {
		event.ActionType = models.OfferKindStream
	}
	if event.DeviceType == "" {
		event.DeviceType = launch.DetectPlatform(r.UserAgent()).DeviceClass()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = h.now().UTC()
	}

	h.Recorder.Record(event)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "attemptId": event.AttemptID})
}
