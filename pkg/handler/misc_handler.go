// Handler for miscellaneous endpoints such as health check

package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/yumyai/protview/pkg/source"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Mode      string    `json:"mode,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Health:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports the viewer's data mode along with liveness.
func (app *AppContext) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Health:    "ok",
		Mode:      app.mode(),
		Timestamp: time.Now(),
	})
}

// FixtureFile serves one mock fixture from the fixture directory.
func (app *AppContext) FixtureFile(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.Source.Mode() != source.ModeMock {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, filepath.Join(app.FixtureDir, name))
	}
}
