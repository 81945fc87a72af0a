package model

import "strings"

// FilterByEntry keeps the proteins whose entry contains query, ignoring case.
// A blank query returns proteins unchanged.
func FilterByEntry(query string, proteins []Protein) []Protein {
	if strings.TrimSpace(query) == "" {
		return proteins
	}

	needle := strings.ToLower(query)
	out := make([]Protein, 0, len(proteins))
	for _, p := range proteins {
		if strings.Contains(strings.ToLower(p.Entry), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Page returns the 1-based page of items and the total page count.
func Page(proteins []Protein, page, pageSize int) ([]Protein, int) {
	if pageSize <= 0 {
		return proteins, 1
	}
	totalPages := len(proteins) / pageSize
	if len(proteins)%pageSize != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	// Checked before multiplying so huge page numbers cannot overflow.
	if page > totalPages {
		return []Protein{}, totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(proteins))
	return proteins[start:end], totalPages
}
