package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"streamscout/models"
	"streamscout/services/availability"
)

// AvailabilityStatusHeader tells clients whether the body came from upstream
// or from the fallback policy.
const AvailabilityStatusHeader = "X-Availability-Status"

type availabilityService interface {
	Lookup(context.Context, models.AvailabilityQuery) (models.AvailabilityResult, error)
}

var _ availabilityService = (*availability.Service)(nil)

type AvailabilityHandler struct {
	Service availabilityService
}

func NewAvailabilityHandler(s availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: s}
}

// Get serves GET /availability/{id}?type=&region=. Upstream failures still
// answer 200 with the fallback result.
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := availability.ParseQuery(mux.Vars(r)["id"], q.Get("region"), q.Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.Lookup(r.Context(), query)
	status := "ok"
	if err != nil {
		if !errors.Is(err, availability.ErrUpstreamUnavailable) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		status = "upstream-unavailable"
	}

	w.Header().Set(AvailabilityStatusHeader, status)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
