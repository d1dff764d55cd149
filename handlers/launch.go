package handlers

import (
	"net/http"
	"strings"

	"streamscout/models"
	"streamscout/services/launch"
	"streamscout/services/platforms"
)

type launchPlanner interface {
	Plan(platform models.DevicePlatform, req models.LaunchRequest) models.LaunchPlan
}

type platformLister interface {
	List() []models.PlatformInfo
}

var (
	_ launchPlanner  = (*launch.Resolver)(nil)
	_ platformLister = (*platforms.Registry)(nil)
)

// LaunchHandler exposes launch plans to browser clients, which run the app
// attempt themselves.
type LaunchHandler struct {
	Planner  launchPlanner
	Registry platformLister
}

func NewLaunchHandler(planner launchPlanner, registry platformLister) *LaunchHandler {
	return &LaunchHandler{Planner: planner, Registry: registry}
}

// Plan serves GET /api/launch/plan?provider=&contentUrl=&contentId=[&platform=].
func (h *LaunchHandler) Plan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	provider := strings.TrimSpace(q.Get("provider"))
	if provider == "" {
		writeError(w, http.StatusBadRequest, "missing provider")
		return
	}

	platform := launch.DetectPlatform(r.UserAgent())
	if raw := q.Get("platform"); raw != "" {
		parsed, err := models.ParseDevicePlatform(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		platform = parsed
	}

	plan := h.Planner.Plan(platform, models.LaunchRequest{
		Provider:   provider,
		ContentURL: strings.TrimSpace(q.Get("contentUrl")),
		ContentID:  strings.TrimSpace(q.Get("contentId")),
	})
	writeJSON(w, http.StatusOK, plan)
}

// Platforms serves GET /api/platforms ordered by priority.
func (h *LaunchHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	list := h.Registry.List()
	if list == nil {
		list = []models.PlatformInfo{}
	}
	writeJSON(w, http.StatusOK, list)
}
