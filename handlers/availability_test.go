package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"streamscout/models"
	"streamscout/services/availability"
)

type fakeAvailabilityService struct {
	result    models.AvailabilityResult
	err       error
	lastQuery models.AvailabilityQuery
	calls     int
}

func (f *fakeAvailabilityService) Lookup(_ context.Context, q models.AvailabilityQuery) (models.AvailabilityResult, error) {
	f.calls++
	f.lastQuery = q
	return f.result, f.err
}

func serveAvailability(h *AvailabilityHandler, id, rawQuery string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/availability/"+id+"?"+rawQuery, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	return rec
}

func TestAvailabilityGetReturnsResult(t *testing.T) {
	svc := &fakeAvailabilityService{result: models.NewAvailabilityResult([]models.Offer{
		{ProviderKey: "nfx", ProviderDisplayName: "Netflix", Kind: models.OfferKindStream},
		{ProviderKey: "itu", ProviderDisplayName: "Apple TV", Kind: models.OfferKindRent, Price: "$3.99"},
	}, "")}
	h := NewAvailabilityHandler(svc)

	rec := serveAvailability(h, "550", "type=movie&region=us")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(AvailabilityStatusHeader); got != "ok" {
		t.Fatalf("expected status header ok, got %q", got)
	}
	if svc.lastQuery.Region != "US" || svc.lastQuery.ContentType != models.ContentTypeMovie || svc.lastQuery.TitleID != "550" {
		t.Fatalf("unexpected query %+v", svc.lastQuery)
	}

	var body struct {
		Offers       []models.Offer `json:"offers"`
		HasStreaming bool           `json:"hasStreaming"`
		HasRent      bool           `json:"hasRent"`
		HasBuy       bool           `json:"hasBuy"`
		HasFree      bool           `json:"hasFree"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Offers) != 2 || !body.HasStreaming || !body.HasRent || body.HasBuy || body.HasFree {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestAvailabilityGetUpstreamFailureStillOK(t *testing.T) {
	svc := &fakeAvailabilityService{
		result: models.EmptyAvailability(),
		err:    fmt.Errorf("%w: boom", availability.ErrUpstreamUnavailable),
	}
	rec := serveAvailability(NewAvailabilityHandler(svc), "1399", "type=tv&region=GB")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(AvailabilityStatusHeader); got != "upstream-unavailable" {
		t.Fatalf("expected upstream-unavailable, got %q", got)
	}
	want := `{"offers":[],"hasStreaming":false,"hasRent":false,"hasBuy":false,"hasFree":false}` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAvailabilityGetRejectsBadParams(t *testing.T) {
	cases := []struct {
		name  string
		id    string
		query string
	}{
		{"missing type", "550", "region=US"},
		{"bad type", "550", "type=podcast&region=US"},
		{"missing region", "550", "type=movie"},
		{"unknown region", "550", "type=movie&region=ZZZ"},
		{"blank id", "", "type=movie&region=US"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAvailabilityService{}
			rec := serveAvailability(NewAvailabilityHandler(svc), tc.id, tc.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if svc.calls != 0 {
				t.Fatalf("service should not be called for invalid input")
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Fatalf("expected error body, got %q", rec.Body.String())
			}
		})
	}
}
