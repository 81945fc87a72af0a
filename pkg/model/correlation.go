package model

import (
	"fmt"
	"strings"
)

// JaccardScore is one precomputed similarity to another protein.
type JaccardScore struct {
	Entry   string  `json:"entry" db:"target_entry"`
	Jaccard float64 `json:"jaccard" db:"jaccard"`
}

// Correlation lists the scores of Entry against other proteins.
// Decoding is case-insensitive, so {"Entry", "JaccardCorrelations", "Jaccard"} payloads
// from the correlation tooling decode into the same struct.
type Correlation struct {
	Entry               string         `json:"entry"`
	JaccardCorrelations []JaccardScore `json:"jaccardCorrelations"`
}

func (c Correlation) Validate() error {
	if strings.TrimSpace(c.Entry) == "" {
		return fmt.Errorf("correlation entry is empty")
	}
	for i, s := range c.JaccardCorrelations {
		if strings.TrimSpace(s.Entry) == "" {
			return fmt.Errorf("correlation %s: pair %d has no entry", c.Entry, i)
		}
		if s.Jaccard < 0 || s.Jaccard > 1 {
			return fmt.Errorf("correlation %s -> %s: jaccard %v outside [0, 1]", c.Entry, s.Entry, s.Jaccard)
		}
	}
	return nil
}

// RelatedEntries flattens the pairs of every correlation whose Entry is source, in order.
// Self references, blank entries and repeats are skipped.
func RelatedEntries(source string, correlations []Correlation) []string {
	seen := map[string]struct{}{source: {}}
	entries := make([]string, 0)

	for _, c := range correlations {
		if c.Entry != source {
			continue
		}
		for _, s := range c.JaccardCorrelations {
			if s.Entry == "" {
				continue
			}
			if _, dup := seen[s.Entry]; dup {
				continue
			}
			seen[s.Entry] = struct{}{}
			entries = append(entries, s.Entry)
		}
	}
	return entries
}
