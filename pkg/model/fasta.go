package model

import (
	"bytes"
	"fmt"
	"strings"
)

const DefaultFastaWidth = 60

// FormatFasta writes a UniProt style record:
// >sp|P69905|HBA_HUMAN Hemoglobin subunit alpha OS=Homo sapiens GN=HBA1
func FormatFasta(p Protein, width int) string {
	if width <= 0 {
		width = DefaultFastaWidth
	}

	db := "tr"
	if p.Reviewed.IsReviewed() {
		db = "sp"
	}

	var out bytes.Buffer
	header := fmt.Sprintf(">%s|%s|%s", db, p.Entry, p.EntryName)
	if name := p.DisplayName(); name != "" {
		header += " " + name
	}
	if p.Organism != "" {
		header += " OS=" + p.Organism
	}
	if gene := strings.Fields(p.GeneName); len(gene) > 0 {
		header += " GN=" + gene[0]
	}
	out.WriteString(header)
	out.WriteByte('\n')

	seq := []rune(p.Sequence)
	for start := 0; start < len(seq); start += width {
		end := min(start+width, len(seq))
		out.WriteString(string(seq[start:end]))
		out.WriteByte('\n')
	}
	return out.String()
}
