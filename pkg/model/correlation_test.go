package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelatedEntries(t *testing.T) {
	correlations := []Correlation{
		{Entry: "P1", JaccardCorrelations: []JaccardScore{{"P2", 0.7}, {"P9", 0.5}, {"P1", 1}, {"P2", 0.7}}},
		{Entry: "P3", JaccardCorrelations: []JaccardScore{{"P4", 0.9}}},
		{Entry: "P1", JaccardCorrelations: []JaccardScore{{"", 0.1}, {"P5", 0.2}}},
	}

	assert.Equal(t, []string{"P2", "P9", "P5"}, RelatedEntries("P1", correlations))
	assert.Equal(t, []string{"P4"}, RelatedEntries("P3", correlations))
	assert.Empty(t, RelatedEntries("P7", correlations))
	assert.Empty(t, RelatedEntries("P1", nil))
}

func TestCorrelationDecodesCapitalisedKeys(t *testing.T) {
	raw := `[{"Entry":"A0A087QH05","JaccardCorrelations":[{"Entry":"A0A087QKA0","Jaccard":0.7}]}]`

	var got []Correlation
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "A0A087QH05", got[0].Entry)
	assert.Equal(t, []JaccardScore{{Entry: "A0A087QKA0", Jaccard: 0.7}}, got[0].JaccardCorrelations)

	out, err := json.Marshal(got[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), `"jaccardCorrelations"`))
}

func TestCorrelationValidate(t *testing.T) {
	assert.NoError(t, Correlation{Entry: "P1", JaccardCorrelations: []JaccardScore{{"P2", 0}, {"P3", 1}}}.Validate())
	assert.Error(t, Correlation{Entry: " "}.Validate())
	assert.Error(t, Correlation{Entry: "P1", JaccardCorrelations: []JaccardScore{{"P2", 1.2}}}.Validate())
	assert.Error(t, Correlation{Entry: "P1", JaccardCorrelations: []JaccardScore{{"", 0.5}}}.Validate())
}

func TestBuildGraph(t *testing.T) {
	correlations := []Correlation{
		{Entry: "P1", JaccardCorrelations: []JaccardScore{{"P2", 0.8}, {"P3", 0.2}, {"P2", 0.8}}},
		{Entry: "P4", JaccardCorrelations: []JaccardScore{{"P1", 0.9}}},
	}

	g := BuildGraph("P1", correlations, 0.5, map[string]string{"P1": "Alpha", "P2": ""})

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, Node{ID: "P1", Label: "Alpha", Group: GroupCenter}, g.Nodes[0])
	assert.Equal(t, Node{ID: "P2", Label: "P2", Group: GroupRelated}, g.Nodes[1])
	assert.Equal(t, []Edge{{Source: "P1", Target: "P2", Similarity: 0.8}}, g.Edges)

	empty := BuildGraph("P9", correlations, 0, nil)
	assert.Len(t, empty.Nodes, 1)
	assert.NotNil(t, empty.Edges)
}

func TestFormatFasta(t *testing.T) {
	p := Protein{
		Entry:       "P69905",
		EntryName:   "HBA_HUMAN",
		ProteinName: "Hemoglobin subunit alpha (Alpha-globin)",
		Organism:    "Homo sapiens (Human)",
		GeneName:    "HBA1 HBA2",
		Reviewed:    ReviewStatusReviewed,
		Sequence:    "MVLSPADKTNVKAAWGKVGA",
	}

	got := FormatFasta(p, 8)
	want := ">sp|P69905|HBA_HUMAN Hemoglobin subunit alpha OS=Homo sapiens (Human) GN=HBA1\n" +
		"MVLSPADK\nTNVKAAWG\nKVGA\n"
	assert.Equal(t, want, got)

	p.Reviewed = ReviewStatusUnreviewed
	p.GeneName = ""
	assert.True(t, strings.HasPrefix(FormatFasta(p, 0), ">tr|P69905|HBA_HUMAN"))
	assert.NotContains(t, FormatFasta(p, 0), "GN=")
}
