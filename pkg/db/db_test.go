package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yumyai/protview/pkg/model"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tempFile, err := os.CreateTemp(t.TempDir(), "registry_*.db")
	require.NoError(t, err)
	tempFile.Close()

	dbConn, err := New(tempFile.Name())
	require.NoError(t, err, "db.New()")

	repo := NewRepository(dbConn)
	teardown := func() {
		repo.Close()
		os.Remove(tempFile.Name())
	}
	return repo, teardown
}

func seedProteins(t *testing.T, repo *Repository) {
	t.Helper()
	err := repo.InsertProteins([]model.Protein{
		{Entry: "P1", EntryName: "ALPHA_HUMAN", ProteinName: "Alpha kinase (AK1)", Organism: "Homo sapiens",
			GeneName: "AK1", ECNumber: "2.7.11.1", InterPro: "IPR000719;IPR011009", Reviewed: model.ReviewStatusReviewed, Sequence: "MKVLAAG"},
		{Entry: "P2", EntryName: "BETA_MOUSE", ProteinName: "Beta kinase", Organism: "Mus musculus",
			ECNumber: "2.7.11.1", InterPro: "IPR000719;IPR011009", Reviewed: model.ReviewStatusUnreviewed, Sequence: "MAA"},
		{Entry: "P3", EntryName: "GAMMA_HUMAN", ProteinName: "Gamma transporter", Organism: "Homo sapiens",
			Reviewed: model.ReviewStatusReviewed, Sequence: "MGGGG"},
	})
	require.NoError(t, err)
}

func TestNewAppliesMigrations(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, repo.Ping())
	count, err := repo.CountProteins()
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestNewIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/registry.db"

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}
