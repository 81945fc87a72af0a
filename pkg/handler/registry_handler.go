package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/model"
)

const maxImportBytes = 64 << 20

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// decodeBody reads a JSON body into v, answering the client itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit)).Decode(v)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, StatusResponse{Status: "error", Detail: "request body too large"})
		return false
	}
	writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "error", Detail: err.Error()})
	return false
}

// GET /protein/?identifier=&name=&description=
func (reg *RegistryContext) FindProteins(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.ProteinFilter{
		Identifier:  q.Get("identifier"),
		Name:        q.Get("name"),
		Description: q.Get("description"),
	}

	proteins, err := reg.Repo.FindProteins(filter)
	if err != nil {
		logger.Error("Error finding proteins", zap.Any("filter", filter), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Detail: "failed to query proteins"})
		return
	}
	writeJSON(w, http.StatusOK, proteins)
}

// GET /protein/{entry}
func (reg *RegistryContext) GetProtein(w http.ResponseWriter, r *http.Request) {
	entry := r.PathValue("entry")
	p, err := reg.Repo.GetProtein(entry)
	if errors.Is(err, db.ErrProteinNotFound) {
		writeJSON(w, http.StatusNotFound, StatusResponse{Status: "error", Detail: "protein not found: " + entry})
		return
	}
	if err != nil {
		logger.Error("Error getting protein", zap.String("entry", entry), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Detail: "failed to get protein"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// POST /protein/
func (reg *RegistryContext) InsertProtein(w http.ResponseWriter, r *http.Request) {
	var p model.Protein
	if !decodeBody(w, r, maxBodyBytes, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "error", Detail: err.Error()})
		return
	}

	if err := reg.Repo.InsertProtein(p); err != nil {
		logger.Error("Error inserting protein", zap.String("entry", p.Entry), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Detail: "failed to insert protein"})
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Protein inserted: " + p.Entry})
}

// GET /protein/stats
func (reg *RegistryContext) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := reg.Repo.Statistics()
	if err != nil {
		logger.Error("Error computing statistics", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Detail: "failed to compute statistics"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/proteins?entry=
func (reg *RegistryContext) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	entry := r.URL.Query().Get("entry")
	correlations, err := reg.Repo.Correlations(entry)
	if err != nil {
		logger.Error("Error reading correlations", zap.String("entry", entry), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Detail: "failed to read correlations"})
		return
	}
	writeJSON(w, http.StatusOK, correlations)
}

// POST /api/proteins stores posted correlations, keeping pairs at or above the threshold.
func (reg *RegistryContext) SaveCorrelations(w http.ResponseWriter, r *http.Request) {
	var correlations []model.Correlation
	if !decodeBody(w, r, maxImportBytes, &correlations) {
		return
	}
	for _, c := range correlations {
		if err := c.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, StatusResponse{Status: "error", Detail: err.Error()})
			return
		}
	}

	if err := reg.Repo.ReplaceCorrelations(correlations, reg.MinJaccard); err != nil {
		logger.Error("Error saving correlations", zap.Int("count", len(correlations)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StatusResponse{Status: "error", Detail: "failed to save correlations"})
		return
	}

	logger.Info("Saved correlations", zap.Int("sources", len(correlations)), zap.Float64("min_jaccard", reg.MinJaccard))
	writeJSON(w, http.StatusOK, StatusResponse{Status: "success"})
}

// GET /health
func (reg *RegistryContext) Health(w http.ResponseWriter, r *http.Request) {
	if err := reg.Repo.Ping(); err != nil {
		logger.Error("Registry database unavailable", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Health: "unavailable", Timestamp: time.Now()})
		return
	}
	HealthCheck(w, r)
}
