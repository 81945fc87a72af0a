package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/protview/pkg/model"
)

func pairs(entry string, scores ...model.JaccardScore) model.Correlation {
	return model.Correlation{Entry: entry, JaccardCorrelations: scores}
}

func TestCorrelationRepo_ThresholdAndOrder(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	err := repo.ReplaceCorrelations([]model.Correlation{
		pairs("P1",
			model.JaccardScore{Entry: "P3", Jaccard: 0.9},
			model.JaccardScore{Entry: "P2", Jaccard: 0.3},
			model.JaccardScore{Entry: "P9", Jaccard: 0.4},
		),
	}, 0.4)
	require.NoError(t, err)

	got, err := repo.Correlations("P1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []model.JaccardScore{{Entry: "P3", Jaccard: 0.9}, {Entry: "P9", Jaccard: 0.4}}, got[0].JaccardCorrelations)
}

func TestCorrelationRepo_ReplacesPerSource(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, repo.ReplaceCorrelations([]model.Correlation{
		pairs("P1", model.JaccardScore{Entry: "P2", Jaccard: 0.5}),
		pairs("P2", model.JaccardScore{Entry: "P1", Jaccard: 0.5}),
	}, 0))
	require.NoError(t, repo.ReplaceCorrelations([]model.Correlation{
		pairs("P1", model.JaccardScore{Entry: "P3", Jaccard: 0.7}),
	}, 0))

	all, err := repo.Correlations("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "P1", all[0].Entry)
	assert.Equal(t, []string{"P3"}, model.RelatedEntries("P1", all))
	assert.Equal(t, []string{"P1"}, model.RelatedEntries("P2", all))
}

func TestCorrelationRepo_UnknownSourceIsEmpty(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	got, err := repo.Correlations("P404")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCorrelationRepo_RejectsInvalidScores(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	err := repo.ReplaceCorrelations([]model.Correlation{
		pairs("P1", model.JaccardScore{Entry: "P2", Jaccard: 0.5}),
		pairs("P2", model.JaccardScore{Entry: "P1", Jaccard: 1.5}),
	}, 0)
	require.Error(t, err)

	all, err := repo.Correlations("")
	require.NoError(t, err)
	assert.Empty(t, all, "nothing is written when one correlation is invalid")
}
