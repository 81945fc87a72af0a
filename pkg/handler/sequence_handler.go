package handler

import (
	"fmt"
	"net/http"

	"github.com/yumyai/protview/pkg/handler/request"
	"github.com/yumyai/protview/pkg/model"
)

// GET /sequence/by-entry?entry=...&width=...
func (app *AppContext) GetSequenceByEntryHandler(w http.ResponseWriter, r *http.Request) {
	req := request.SequenceGetRequest{
		Entry: r.URL.Query().Get("entry"),
		Width: parsePositiveIntFallback(r.URL.Query().Get("width"), model.DefaultFastaWidth),
	}
	if req.Entry == "" {
		http.Error(w, "entry is required", http.StatusBadRequest)
		return
	}

	p, ok := app.Source.FetchByIdentifier(r.Context(), req.Entry)
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/x-fasta; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", p.Entry+".fasta"))
	fmt.Fprint(w, model.FormatFasta(p, req.Width))
}
