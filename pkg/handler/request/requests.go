package request

import "strings"

// Structure for the protein list page and API
type ProteinListRequest struct {
	Query     string      `json:"q"`         // Text to match
	Search_By SearchField `json:"search_by"` // Field the text is matched against
	Page      int         `json:"page"`      // Page number for pagination (starting at 1)
	Page_Size int         `json:"page_size"` // Number of results per page
	Selected  string      `json:"selected"`  // Entry previewed next to the list
}

// IsBlank reports whether the query filters nothing.
func (r ProteinListRequest) IsBlank() bool {
	return strings.TrimSpace(r.Query) == ""
}

// Body of POST /api/v1/selection. An empty entry clears the selection.
type SelectionRequest struct {
	Entry string `json:"entry"`
}

// Graph of one entry, dropping edges below Min_Jaccard
type GraphRequest struct {
	Entry       string  `json:"entry"`
	Min_Jaccard float64 `json:"min_jaccard"`
}

// Get the FASTA record of one entry
type SequenceGetRequest struct {
	Entry string `json:"entry"`
	Width int    `json:"width"`
}
