package db

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yumyai/protview/pkg/model"
)

const topGroups = 20

func (repo *Repository) AnnotationCoverage() ([]model.AnnotationCoverage, error) {
	coverage := []model.AnnotationCoverage{}
	query := `
		SELECT reviewed,
		       COUNT(*)                                   AS total,
		       SUM(CASE WHEN interpro  != '' THEN 1 ELSE 0 END) AS with_interpro,
		       SUM(CASE WHEN ec_number != '' THEN 1 ELSE 0 END) AS with_ec,
		       SUM(CASE WHEN gene_name != '' THEN 1 ELSE 0 END) AS with_gene
		FROM proteins
		GROUP BY reviewed
		ORDER BY reviewed`

	if err := repo.dbConn.Select(&coverage, query); err != nil {
		return nil, fmt.Errorf("getting annotation coverage: %w", err)
	}
	return coverage, nil
}

// InterProGroups counts proteins per InterPro domain id, largest groups first. The column
// holds a ';' separated list, so the split happens here rather than in SQL.
func (repo *Repository) InterProGroups() ([]model.GroupCount, error) {
	var annotations []string
	query := `SELECT interpro FROM proteins WHERE interpro != ''`
	if err := repo.dbConn.Select(&annotations, query); err != nil {
		return nil, fmt.Errorf("getting interpro groups: %w", err)
	}

	counts := make(map[string]int)
	for _, annotation := range annotations {
		seen := make(map[string]struct{})
		for _, domain := range (model.Protein{InterPro: annotation}).Domains() {
			if _, ok := seen[domain]; ok {
				continue
			}
			seen[domain] = struct{}{}
			counts[domain]++
		}
	}

	groups := make([]model.GroupCount, 0, len(counts))
	for domain, n := range counts {
		groups = append(groups, model.GroupCount{Key: domain, Count: n})
	}
	slices.SortFunc(groups, func(a, b model.GroupCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if len(groups) > topGroups {
		groups = groups[:topGroups]
	}
	return groups, nil
}

func (repo *Repository) ECGroups() ([]model.GroupCount, error) {
	return repo.groupCounts("ec_number")
}

// groupCounts is only called with fixed column names.
func (repo *Repository) groupCounts(column string) ([]model.GroupCount, error) {
	groups := []model.GroupCount{}
	query := fmt.Sprintf(`
		SELECT %[1]s AS "key", COUNT(*) AS "count"
		FROM proteins
		WHERE %[1]s != ''
		GROUP BY %[1]s
		ORDER BY "count" DESC, "key"
		LIMIT ?`, column)

	if err := repo.dbConn.Select(&groups, query, topGroups); err != nil {
		return nil, fmt.Errorf("getting %s groups: %w", column, err)
	}
	return groups, nil
}

func (repo *Repository) SequenceLengths() ([]model.SequenceLengthStats, error) {
	stats := []model.SequenceLengthStats{}
	query := `
		SELECT reviewed,
		       MIN(LENGTH(sequence)) AS min_len,
		       MAX(LENGTH(sequence)) AS max_len,
		       AVG(LENGTH(sequence)) AS avg_len
		FROM proteins
		GROUP BY reviewed
		ORDER BY reviewed`

	if err := repo.dbConn.Select(&stats, query); err != nil {
		return nil, fmt.Errorf("getting sequence lengths: %w", err)
	}
	return stats, nil
}

func (repo *Repository) Statistics() (model.Statistics, error) {
	var (
		stats model.Statistics
		err   error
	)
	if stats.Coverage, err = repo.AnnotationCoverage(); err != nil {
		return model.Statistics{}, err
	}
	if stats.InterProGroups, err = repo.InterProGroups(); err != nil {
		return model.Statistics{}, err
	}
	if stats.ECGroups, err = repo.ECGroups(); err != nil {
		return model.Statistics{}, err
	}
	if stats.SequenceLength, err = repo.SequenceLengths(); err != nil {
		return model.Statistics{}, err
	}
	return stats, nil
}
