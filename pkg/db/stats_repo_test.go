package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/protview/pkg/model"
)

func TestStatsRepo_Statistics(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()
	seedProteins(t, repo)

	stats, err := repo.Statistics()
	require.NoError(t, err)

	require.Len(t, stats.Coverage, 2)
	reviewed := stats.Coverage[0]
	assert.Equal(t, model.ReviewStatusReviewed, reviewed.Reviewed)
	assert.Equal(t, 2, reviewed.Total)
	assert.Equal(t, 1, reviewed.WithInterPro)
	assert.Equal(t, 1, reviewed.WithEC)
	assert.Equal(t, 1, reviewed.WithGene)

	assert.Equal(t, []model.GroupCount{{Key: "IPR000719", Count: 2}, {Key: "IPR011009", Count: 2}}, stats.InterProGroups)
	assert.Equal(t, []model.GroupCount{{Key: "2.7.11.1", Count: 2}}, stats.ECGroups)

	require.Len(t, stats.SequenceLength, 2)
	assert.Equal(t, model.SequenceLengthStats{Reviewed: model.ReviewStatusReviewed, Min: 5, Max: 7, Avg: 6}, stats.SequenceLength[0])
	assert.Equal(t, model.SequenceLengthStats{Reviewed: model.ReviewStatusUnreviewed, Min: 3, Max: 3, Avg: 3}, stats.SequenceLength[1])
}

func TestStatsRepo_EmptyRegistry(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	stats, err := repo.Statistics()
	require.NoError(t, err)
	assert.Empty(t, stats.Coverage)
	assert.Empty(t, stats.InterProGroups)
	assert.Empty(t, stats.SequenceLength)
}

func TestStatsRepo_InterProGroupsPerDomain(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, repo.InsertProteins([]model.Protein{
		{Entry: "A", Reviewed: model.ReviewStatusReviewed, InterPro: "IPR001;IPR002;", Sequence: "MK"},
		{Entry: "B", Reviewed: model.ReviewStatusReviewed, InterPro: "IPR001", Sequence: "MK"},
		{Entry: "C", Reviewed: model.ReviewStatusUnreviewed, InterPro: "IPR003; IPR003", Sequence: "MK"},
		{Entry: "D", Reviewed: model.ReviewStatusUnreviewed, Sequence: "MK"},
	}))

	groups, err := repo.InterProGroups()
	require.NoError(t, err)
	assert.Equal(t, []model.GroupCount{
		{Key: "IPR001", Count: 2},
		{Key: "IPR002", Count: 1},
		{Key: "IPR003", Count: 1},
	}, groups)
}

func TestStatsRepo_InterProGroupsKeepsTop(t *testing.T) {
	repo, teardown := setupTestDB(t)
	defer teardown()

	domains := make([]string, 0, 30)
	for i := range 30 {
		domains = append(domains, fmt.Sprintf("IPR%06d", i))
	}
	require.NoError(t, repo.InsertProteins([]model.Protein{
		{Entry: "A", Reviewed: model.ReviewStatusReviewed, InterPro: strings.Join(domains, ";"), Sequence: "MK"},
		{Entry: "B", Reviewed: model.ReviewStatusReviewed, InterPro: "IPR000029", Sequence: "MK"},
	}))

	groups, err := repo.InterProGroups()
	require.NoError(t, err)
	require.Len(t, groups, 20)
	assert.Equal(t, model.GroupCount{Key: "IPR000029", Count: 2}, groups[0])
	assert.Equal(t, model.GroupCount{Key: "IPR000000", Count: 1}, groups[1])
}
