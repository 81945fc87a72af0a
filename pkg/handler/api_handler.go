package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/handler/request"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/related"
)

const (
	maxBodyBytes = 1 << 20
	maxWait      = 30 * time.Second
)

// Response struct to hold the payload and page number
type ProteinsPayload struct {
	Proteins  []model.Protein `json:"proteins"`
	Total     int             `json:"total"`
	Page      int             `json:"page"`
	TotalPage int             `json:"pageNumber"`
}

type RelatedMatch struct {
	Protein model.Protein `json:"protein"`
	Jaccard float64       `json:"jaccard"`
}

type RelatedPayload struct {
	Entry   string         `json:"entry"`
	Related []RelatedMatch `json:"related"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// GET /api/v1/proteins
func (app *AppContext) ListProteinsAPI(w http.ResponseWriter, r *http.Request) {
	req := parseListRequest(r)
	proteins := app.listProteins(r.Context(), req)
	rows, totalPage := model.Page(proteins, req.Page, req.Page_Size)

	writeJSON(w, http.StatusOK, ProteinsPayload{
		Proteins:  rows,
		Total:     len(proteins),
		Page:      req.Page,
		TotalPage: totalPage,
	})
}

// GET /api/v1/proteins/{entry}
func (app *AppContext) GetProteinAPI(w http.ResponseWriter, r *http.Request) {
	entry := r.PathValue("entry")
	p, ok := app.Source.FetchByIdentifier(r.Context(), entry)
	if !ok {
		writeError(w, http.StatusNotFound, "protein not found: "+entry)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GET /api/v1/proteins/{entry}/related
func (app *AppContext) RelatedProteinsAPI(w http.ResponseWriter, r *http.Request) {
	entry := r.PathValue("entry")
	proteins, scores := app.relatedOf(r.Context(), entry)

	matches := make([]RelatedMatch, 0, len(proteins))
	for _, p := range proteins {
		matches = append(matches, RelatedMatch{Protein: p, Jaccard: scores[p.Entry]})
	}
	writeJSON(w, http.StatusOK, RelatedPayload{Entry: entry, Related: matches})
}

// GET /api/v1/proteins/{entry}/graph
func (app *AppContext) GraphAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.graphOf(r.Context(), parseGraphRequest(r)))
}

func wantsWait(r *http.Request) bool {
	switch strings.ToLower(r.URL.Query().Get("wait")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// waitSnapshot returns the tracker's snapshot, first waiting for it to settle when asked to.
func waitSnapshot(r *http.Request, t *related.Tracker) related.Snapshot {
	if !wantsWait(r) {
		return t.Snapshot()
	}
	ctx, cancel := context.WithTimeout(r.Context(), maxWait)
	defer cancel()

	snap, err := t.Wait(ctx)
	if err != nil {
		logger.Warn("Stopped waiting for selection", zap.Error(err))
	}
	return snap
}

func snapshotStatus(snap related.Snapshot) int {
	if snap.State == related.StateResolving {
		return http.StatusAccepted
	}
	return http.StatusOK
}

// POST /api/v1/selection selects a protein for the session. Resolution continues after the
// response unless ?wait=true.
func (app *AppContext) SelectAPI(w http.ResponseWriter, r *http.Request) {
	var req request.SelectionRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid selection: "+err.Error())
		return
	}

	tracker := app.Sessions.GetOrCreate(w, r)
	gen := tracker.Select(context.WithoutCancel(r.Context()), strings.TrimSpace(req.Entry))
	logger.Debug("Selection made", zap.String("entry", req.Entry), zap.Uint64("generation", gen))

	snap := waitSnapshot(r, tracker)
	writeJSON(w, snapshotStatus(snap), snap)
}

// GET /api/v1/selection
func (app *AppContext) SelectionAPI(w http.ResponseWriter, r *http.Request) {
	tracker, ok := app.Sessions.Get(r)
	if !ok {
		writeJSON(w, http.StatusOK, related.Snapshot{State: related.StateIdle, Related: []model.Protein{}})
		return
	}
	snap := waitSnapshot(r, tracker)
	writeJSON(w, snapshotStatus(snap), snap)
}
