package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"streamscout/models"
	metadatapkg "streamscout/services/metadata"
)

type metadataService interface {
	Autocomplete(ctx context.Context, query, region string) ([]models.SearchResult, error)
	Details(ctx context.Context, id string, contentType models.ContentType) (json.RawMessage, error)
}

var _ metadataService = (*metadatapkg.Service)(nil)

type MetadataHandler struct {
	Service metadataService
}

func NewMetadataHandler(s metadataService) *MetadataHandler {
	return &MetadataHandler{Service: s}
}

// Autocomplete serves GET /api/autocomplete?q=&region=.
func (h *MetadataHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	region := strings.TrimSpace(r.URL.Query().Get("region"))

	results, err := h.Service.Autocomplete(r.Context(), query, region)
	if err != nil {
		if errors.Is(err, metadatapkg.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// Details serves GET /api/movie/{id}?type=movie|tv. The type defaults to movie.
func (h *MetadataHandler) Details(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing title id")
		return
	}

	contentType := models.ContentTypeMovie
	if raw := r.URL.Query().Get("type"); raw != "" {
		ct, err := models.ParseContentType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		contentType = ct
	}

	details, err := h.Service.Details(r.Context(), id, contentType)
	if err != nil {
		if metadatapkg.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "title not found")
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(details)
}
