package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yumyai/protview/pkg/model"
)

// ProteinFilter narrows FindProteins. Identifier matches exactly; Name and Description are
// case-insensitive substring matches. Empty fields do not filter.
type ProteinFilter struct {
	Identifier  string
	Name        string
	Description string
}

const proteinColumns = `entry, entry_name, protein_name, organism, gene_name, ec_number, interpro, reviewed, sequence`

const upsertProtein = `
INSERT INTO proteins (` + proteinColumns + `)
VALUES (:entry, :entry_name, :protein_name, :organism, :gene_name, :ec_number, :interpro, :reviewed, :sequence)
ON CONFLICT (entry) DO UPDATE SET
    entry_name   = excluded.entry_name,
    protein_name = excluded.protein_name,
    organism     = excluded.organism,
    gene_name    = excluded.gene_name,
    ec_number    = excluded.ec_number,
    interpro     = excluded.interpro,
    reviewed     = excluded.reviewed,
    sequence     = excluded.sequence`

// InsertProteins upserts proteins by entry in a single transaction. Nothing is written if
// any protein is invalid.
func (repo *Repository) InsertProteins(proteins []model.Protein) (err error) {
	for _, p := range proteins {
		if err := p.Validate(); err != nil {
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

	stmt, err := tx.PrepareNamed(upsertProtein)
	if err != nil {
		return fmt.Errorf("preparing protein upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range proteins {
		if _, err = stmt.Exec(p); err != nil {
			return fmt.Errorf("inserting protein %s: %w", p.Entry, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing proteins: %w", err)
	}
	return nil
}

func (repo *Repository) InsertProtein(p model.Protein) error {
	return repo.InsertProteins([]model.Protein{p})
}

// FindProteins returns the proteins matching filter, ordered by entry.
func (repo *Repository) FindProteins(filter ProteinFilter) ([]model.Protein, error) {
	var (
		where []string
		args  []any
	)
	if filter.Identifier != "" {
		where = append(where, "entry = ?")
		args = append(args, filter.Identifier)
	}
	if filter.Name != "" {
		like := "%" + filter.Name + "%"
		where = append(where, "(protein_name LIKE ? OR entry_name LIKE ?)")
		args = append(args, like, like)
	}
	if filter.Description != "" {
		like := "%" + filter.Description + "%"
		where = append(where, "(protein_name LIKE ? OR organism LIKE ?)")
		args = append(args, like, like)
	}

	query := `SELECT ` + proteinColumns + ` FROM proteins`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY entry"

	proteins := []model.Protein{}
	if err := repo.dbConn.Select(&proteins, query, args...); err != nil {
		return nil, fmt.Errorf("selecting proteins: %w", err)
	}
	return proteins, nil
}

func (repo *Repository) GetProtein(entry string) (model.Protein, error) {
	var p model.Protein
	err := repo.dbConn.Get(&p, `SELECT `+proteinColumns+` FROM proteins WHERE entry = ?`, entry)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Protein{}, fmt.Errorf("%s: %w", entry, ErrProteinNotFound)
	}
	if err != nil {
		return model.Protein{}, fmt.Errorf("getting protein %s: %w", entry, err)
	}
	return p, nil
}

func (repo *Repository) CountProteins() (int, error) {
	var count int
	if err := repo.dbConn.Get(&count, `SELECT COUNT(*) FROM proteins`); err != nil {
		return 0, fmt.Errorf("getting protein count: %w", err)
	}
	return count, nil
}
