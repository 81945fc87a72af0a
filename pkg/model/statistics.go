package model

// AnnotationCoverage counts annotated fields for one review status.
type AnnotationCoverage struct {
	Reviewed     ReviewStatus `json:"reviewed" db:"reviewed"`
	Total        int          `json:"total" db:"total"`
	WithInterPro int          `json:"with_interpro" db:"with_interpro"`
	WithEC       int          `json:"with_ec" db:"with_ec"`
	WithGene     int          `json:"with_gene" db:"with_gene"`
}

// GroupCount is the number of proteins sharing one key (an InterPro id or EC number).
type GroupCount struct {
	Key   string `json:"key" db:"key"`
	Count int    `json:"count" db:"count"`
}

type SequenceLengthStats struct {
	Reviewed ReviewStatus `json:"reviewed" db:"reviewed"`
	Min      int          `json:"min_len" db:"min_len"`
	Max      int          `json:"max_len" db:"max_len"`
	Avg      float64      `json:"avg_len" db:"avg_len"`
}

type Statistics struct {
	Coverage       []AnnotationCoverage  `json:"annotation_coverage"`
	InterProGroups []GroupCount          `json:"interpro_groups"`
	ECGroups       []GroupCount          `json:"ec_groups"`
	SequenceLength []SequenceLengthStats `json:"sequence_length"`
}
