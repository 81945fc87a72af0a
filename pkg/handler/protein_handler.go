package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/handler/request"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/render"
	"github.com/yumyai/protview/pkg/source"
)

const (
	defaultPageSize   = 25
	maxPageSize       = 500
	defaultPageNumber = 1
	defaultMinJaccard = 0.0
)

func parsePositiveIntFallback(v string, fallback int) int {
	num, err := strconv.Atoi(v)
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

// parseScoreFallback reads a Jaccard threshold, clamped to [0, 1].
func parseScoreFallback(v string, fallback float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return min(max(f, 0), 1)
}

func parseListRequest(r *http.Request) request.ProteinListRequest {
	q := r.URL.Query()
	return request.ProteinListRequest{
		Query:     strings.TrimSpace(q.Get("q")),
		Search_By: request.NewSearchField(q.Get("search_by")),
		Page:      parsePositiveIntFallback(q.Get("page"), defaultPageNumber),
		Page_Size: min(parsePositiveIntFallback(q.Get("page_size"), defaultPageSize), maxPageSize),
		Selected:  strings.TrimSpace(q.Get("selected")),
	}
}

// listProteins applies the list request's query. Entry queries that name a protein exactly
// start from that single protein; every other entry query filters the full list.
func (app *AppContext) listProteins(ctx context.Context, req request.ProteinListRequest) []model.Protein {
	switch req.Search_By {
	case request.SearchFieldName:
		if req.IsBlank() {
			return app.Source.FetchAll(ctx)
		}
		return app.Source.Search(ctx, source.Filter{Name: req.Query})
	case request.SearchFieldDescription:
		if req.IsBlank() {
			return app.Source.FetchAll(ctx)
		}
		return app.Source.Search(ctx, source.Filter{Description: req.Query})
	}

	var base []model.Protein
	if !req.IsBlank() {
		if p, ok := app.Source.FetchByIdentifier(ctx, req.Query); ok {
			base = []model.Protein{p}
		}
	}
	if base == nil {
		base = app.Source.FetchAll(ctx)
	}
	return model.FilterByEntry(req.Query, base)
}

// Main page: the protein list.
func (app *AppContext) ProteinListPage(w http.ResponseWriter, r *http.Request) {
	req := parseListRequest(r)

	logger.Info("Running list page",
		zap.String("q", req.Query),
		zap.String("search_by", req.Search_By.String()),
		zap.Int("page", req.Page),
		zap.Int("page_size", req.Page_Size),
		zap.String("selected", req.Selected),
	)

	proteins := app.listProteins(r.Context(), req)
	rows, totalPage := model.Page(proteins, req.Page, req.Page_Size)

	data := render.ListPageData{
		Mode:      app.mode(),
		Request:   req,
		Rows:      rows,
		Total:     len(proteins),
		TotalPage: totalPage,
	}

	if req.Selected != "" {
		if p, ok := app.Source.FetchByIdentifier(r.Context(), req.Selected); ok {
			data.Preview = &p
			data.Related, _ = app.relatedOf(r.Context(), p.Entry)
		}
	}

	if err := render.RenderProteinListPage(w, data); err != nil {
		logger.Error("Failed to render list page", zap.Error(err))
		http.Error(w, "Failed to render list", http.StatusInternalServerError)
	}
}

// Protein page: details, sequence and related proteins.
func (app *AppContext) ProteinPage(w http.ResponseWriter, r *http.Request) {
	entry := r.PathValue("entry")

	p, ok := app.Source.FetchByIdentifier(r.Context(), entry)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		if err := render.RenderNotFoundPage(w, app.mode(), entry); err != nil {
			logger.Error("Failed to render not-found page", zap.Error(err))
		}
		return
	}

	proteins, scores := app.relatedOf(r.Context(), p.Entry)
	rows := make([]render.RelatedRow, 0, len(proteins))
	for _, rp := range proteins {
		rows = append(rows, render.RelatedRow{Protein: rp, Jaccard: scores[rp.Entry]})
	}

	err := render.RenderProteinPage(w, render.ProteinPageData{
		Mode:    app.mode(),
		Protein: p,
		Related: rows,
	})
	if err != nil {
		logger.Error("Failed to render protein page", zap.String("entry", entry), zap.Error(err))
		http.Error(w, "Failed to render protein", http.StatusInternalServerError)
	}
}

// graphOf builds the similarity graph of entry, labelling the nodes the source can resolve.
func (app *AppContext) graphOf(ctx context.Context, req request.GraphRequest) model.Graph {
	correlations := app.Source.FetchCorrelations(ctx, req.Entry)
	ids := append([]string{req.Entry}, model.RelatedEntries(req.Entry, correlations)...)

	labels := make(map[string]string, len(ids))
	for _, p := range app.lookup(ctx, ids) {
		labels[p.Entry] = p.DisplayName()
	}
	return model.BuildGraph(req.Entry, correlations, req.Min_Jaccard, labels)
}

func parseGraphRequest(r *http.Request) request.GraphRequest {
	return request.GraphRequest{
		Entry:       r.PathValue("entry"),
		Min_Jaccard: parseScoreFallback(r.URL.Query().Get("min_jaccard"), defaultMinJaccard),
	}
}

// Graph page: placeholder for the similarity network.
func (app *AppContext) GraphPage(w http.ResponseWriter, r *http.Request) {
	req := parseGraphRequest(r)

	err := render.RenderGraphPage(w, render.GraphPageData{
		Mode:       app.mode(),
		Entry:      req.Entry,
		MinJaccard: req.Min_Jaccard,
		Graph:      app.graphOf(r.Context(), req),
	})
	if err != nil {
		logger.Error("Failed to render graph page", zap.String("entry", req.Entry), zap.Error(err))
		http.Error(w, "Failed to render graph", http.StatusInternalServerError)
	}
}
