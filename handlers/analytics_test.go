package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"streamscout/models"
	"streamscout/services/analytics"
)

type captureRecorder struct {
	mu     sync.Mutex
	events []models.LaunchEvent
}

func (c *captureRecorder) Record(e models.LaunchEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func postLaunchEvent(h *AnalyticsHandler, body, ua string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/launch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ua)
	rec := httptest.NewRecorder()
	h.RecordLaunch(rec, req)
	return rec
}

func TestRecordLaunchAcceptsAndFillsDefaults(t *testing.T) {
	capture := &captureRecorder{}
	h := NewAnalyticsHandler(capture)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	rec := postLaunchEvent(h, `{"platform":"Netflix","openMethod":"fallback","deviceOs":"ios"}`, iPhoneUA)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(capture.events) != 1 {
		t.Fatalf("expected one event, got %d", len(capture.events))
	}
	e := capture.events[0]
	if e.AttemptID == "" || e.ContentTitle != "Unknown" || e.ContentID != "Unknown" {
		t.Fatalf("defaults not applied: %+v", e)
	}
	if e.ActionType != models.OfferKindStream || e.DeviceType != "mobile" || !e.OccurredAt.Equal(fixed) {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestRecordLaunchRejectsInvalidEvents(t *testing.T) {
	capture := &captureRecorder{}
	h := NewAnalyticsHandler(capture)
	for _, body := range []string{
		`not json`,
		`{"openMethod":"app"}`,
		`{"platform":"Netflix","openMethod":"teleport"}`,
	} {
		rec := postLaunchEvent(h, body, desktopUA)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
	if len(capture.events) != 0 {
		t.Fatalf("invalid events must not be recorded")
	}
}

func TestRecordLaunchSurvivesPanickingRecorder(t *testing.T) {
	h := NewAnalyticsHandler(analytics.RecorderFunc(func(models.LaunchEvent) { panic("sink down") }))
	rec := postLaunchEvent(h, `{"platform":"Hulu","openMethod":"web"}`, desktopUA)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}
