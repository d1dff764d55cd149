package handlers

import (
	"net/http"
	"os"
	"strings"
	"sync"
)

// BuildVersion is set at link time with -ldflags "-X streamscout/handlers.BuildVersion=...".
var BuildVersion string

var (
	version     string
	versionOnce sync.Once
)

type VersionHandler struct{}

type VersionResponse struct {
	Version string `json:"version"`
}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// Version returns the link-time version, else the contents of version.txt,
// else "unknown". The result is cached after the first call.
func Version() string {
	versionOnce.Do(func() {
		if v := strings.TrimSpace(BuildVersion); v != "" {
			version = v
			return
		}
		for _, path := range []string{"version.txt", "/app/version.txt"} {
			data, err := os.ReadFile(path)
			if err == nil {
				if v := strings.TrimSpace(string(data)); v != "" {
					version = v
					return
				}
			}
		}
		version = "unknown"
	})
	return version
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: Version()})
}
