package db

import (
	"fmt"

	"github.com/yumyai/protview/pkg/model"
)

// ReplaceCorrelations stores the pairs of every posted source entry, replacing what was stored
// for it before. Pairs scoring below minJaccard are dropped. All sources are written in one
// transaction.
func (repo *Repository) ReplaceCorrelations(correlations []model.Correlation, minJaccard float64) (err error) {
	for _, c := range correlations {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, c := range correlations {
		if _, err = tx.Exec(`DELETE FROM correlations WHERE source_entry = ?`, c.Entry); err != nil {
			return fmt.Errorf("clearing correlations of %s: %w", c.Entry, err)
		}

		for i, score := range c.JaccardCorrelations {
			if score.Jaccard < minJaccard {
				continue
			}
			_, err = tx.Exec(`
				INSERT INTO correlations (source_entry, target_entry, jaccard, ordinal)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (source_entry, target_entry) DO UPDATE SET jaccard = excluded.jaccard`,
				c.Entry, score.Entry, score.Jaccard, i)
			if err != nil {
				return fmt.Errorf("inserting correlation %s-%s: %w", c.Entry, score.Entry, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing correlations: %w", err)
	}
	return nil
}

type correlationRow struct {
	Source string `db:"source_entry"`
	model.JaccardScore
}

// Correlations returns the stored pairs of entry in insertion order, or every source's pairs
// when entry is "". Sources without stored pairs are absent from the result.
func (repo *Repository) Correlations(entry string) ([]model.Correlation, error) {
	query := `SELECT source_entry, target_entry, jaccard FROM correlations`
	var args []any
	if entry != "" {
		query += ` WHERE source_entry = ?`
		args = append(args, entry)
	}
	query += ` ORDER BY source_entry, ordinal`

	var rows []correlationRow
	if err := repo.dbConn.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("selecting correlations: %w", err)
	}

	out := []model.Correlation{}
	for _, row := range rows {
		if n := len(out); n == 0 || out[n-1].Entry != row.Source {
			out = append(out, model.Correlation{Entry: row.Source, JaccardCorrelations: []model.JaccardScore{}})
		}
		last := &out[len(out)-1]
		last.JaccardCorrelations = append(last.JaccardCorrelations, row.JaccardScore)
	}
	return out, nil
}
