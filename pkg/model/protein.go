// Protein records as served by the registry and the mock fixture.

package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

type ReviewStatus string

const (
	ReviewStatusReviewed   ReviewStatus = "reviewed"
	ReviewStatusUnreviewed ReviewStatus = "unreviewed"
)

func (s ReviewStatus) String() string {
	return string(s)
}

func (s ReviewStatus) IsReviewed() bool {
	return s == ReviewStatusReviewed
}

// ParseReviewStatus accepts the two curation states in any letter case.
func ParseReviewStatus(raw string) (ReviewStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "reviewed":
		return ReviewStatusReviewed, nil
	case "unreviewed":
		return ReviewStatusUnreviewed, nil
	default:
		return "", fmt.Errorf("unknown review status %q", raw)
	}
}

type Protein struct {
	Entry           string            `json:"entry" db:"entry"`
	EntryName       string            `json:"entry_name" db:"entry_name"`
	ProteinName     string            `json:"protein_name" db:"protein_name"`
	Organism        string            `json:"organism" db:"organism"`
	GeneName        string            `json:"gene_name,omitempty" db:"gene_name"`
	ECNumber        string            `json:"ec_number,omitempty" db:"ec_number"`
	InterPro        string            `json:"interpro,omitempty" db:"interpro"`
	Reviewed        ReviewStatus      `json:"reviewed" db:"reviewed"`
	Sequence        string            `json:"sequence" db:"sequence"`
	SimilarProteins []json.RawMessage `json:"similar_proteins,omitempty" db:"-"`
}

// DisplayName is the protein name without its parenthesised alternate names.
func (p Protein) DisplayName() string {
	name, _, _ := strings.Cut(p.ProteinName, "(")
	return strings.TrimSpace(name)
}

func (p Protein) HasAlternateNames() bool {
	return strings.Contains(p.ProteinName, "(")
}

// Domains splits the InterPro field on ';' and drops blanks.
func (p Protein) Domains() []string {
	var domains []string
	for _, d := range strings.Split(p.InterPro, ";") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

func (p Protein) DomainCount() int {
	return len(p.Domains())
}

// Length is the number of residues; the sequence is the only trusted length source.
func (p Protein) Length() int {
	return utf8.RuneCountInString(p.Sequence)
}

// SequencePreview returns the first n residues, with "..." appended when cut.
func (p Protein) SequencePreview(n int) string {
	if n < 0 {
		n = 0
	}
	if p.Length() <= n {
		return p.Sequence
	}
	runes := []rune(p.Sequence)
	return string(runes[:n]) + "..."
}

func (p Protein) GeneNameOrNA() string {
	if strings.TrimSpace(p.GeneName) == "" {
		return "N/A"
	}
	return p.GeneName
}

func (p Protein) SimilarCount() int {
	return len(p.SimilarProteins)
}

// Validate checks the fields the registry refuses to store without.
func (p Protein) Validate() error {
	if strings.TrimSpace(p.Entry) == "" {
		return fmt.Errorf("protein entry is empty")
	}
	if _, err := ParseReviewStatus(string(p.Reviewed)); err != nil {
		return fmt.Errorf("protein %s: %w", p.Entry, err)
	}
	return nil
}
