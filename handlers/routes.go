package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes bundles the handlers mounted by Register. Nil entries are skipped.
type Routes struct {
	Availability *AvailabilityHandler
	Metadata     *MetadataHandler
	Launch       *LaunchHandler
	Analytics    *AnalyticsHandler
	Version      *VersionHandler
	Metrics      http.Handler
}

// Register mounts every configured handler on r.
func Register(r *mux.Router, h Routes) {
	if h.Availability != nil {
		r.HandleFunc("/availability/{id}", h.Availability.Get).Methods(http.MethodGet)
		r.HandleFunc("/api/streaming/{id}", h.Availability.Get).Methods(http.MethodGet)
	}
	if h.Metadata != nil {
		r.HandleFunc("/api/autocomplete", h.Metadata.Autocomplete).Methods(http.MethodGet)
		r.HandleFunc("/api/movie/{id}", h.Metadata.Details).Methods(http.MethodGet)
	}
	if h.Launch != nil {
		r.HandleFunc("/api/launch/plan", h.Launch.Plan).Methods(http.MethodGet)
		r.HandleFunc("/api/platforms", h.Launch.Platforms).Methods(http.MethodGet)
	}
	if h.Analytics != nil {
		r.HandleFunc("/api/analytics/launch", h.Analytics.RecordLaunch).Methods(http.MethodPost)
	}
	if h.Version != nil {
		r.HandleFunc("/version", h.Version.GetVersion).Methods(http.MethodGet)
	}
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics).Methods(http.MethodGet)
	}
}
