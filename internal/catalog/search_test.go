package catalog

import (
	"strings"
	"testing"

	"certificate-system/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_EmptyQueryIsNoFilter(t *testing.T) {
	store := newFireStore(t)

	for _, q := range []string{"", " ", "\t\n "} {
		records, filtered := store.Search(q)
		assert.False(t, filtered, "query %q", q)
		assert.Nil(t, records)
	}
}

func TestSearch_NoMatchIsEmptyFilteredResult(t *testing.T) {
	store := newFireStore(t)

	records, filtered := store.Search("zzz-no-such-panel")
	assert.True(t, filtered)
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSearch_MatchesMakeModelAndProtocol(t *testing.T) {
	store := newFireStore(t)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "advanced", want: []string{"adv-1", "adv-2"}},
		{query: "VIGILON", want: []string{"gent-1"}},
		{query: "apollo", want: []string{"adv-1"}},
		{query: "esp", want: []string{"adv-2"}},
		{query: "  conventional ", want: []string{"kentec-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			records, filtered := store.Search(tt.query)
			require.True(t, filtered)
			ids := make([]string, 0, len(records))
			for _, r := range records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSearch_ResultIsOrderedSubsequenceOfMatches(t *testing.T) {
	store := newFireStore(t)
	all := store.All()

	for _, q := range []string{"a", "e", "gent", "o", "5", "x"} {
		records, filtered := store.Search(q)
		require.True(t, filtered)

		pos := 0
		for _, r := range records {
			hay := strings.ToLower(r.Manufacturer + "\x00" + r.Model + "\x00" + r.Protocol)
			assert.Contains(t, hay, strings.ToLower(q))
			for pos < len(all) && all[pos].ID != r.ID {
				pos++
			}
			require.Less(t, pos, len(all), "record %s out of catalog order", r.ID)
			pos++
		}

		matched := 0
		for _, r := range all {
			if Matches(r, strings.ToLower(q)) {
				matched++
			}
		}
		assert.Len(t, records, matched)
	}
}

func TestSearch_SolarPanelWattage(t *testing.T) {
	store, err := NewStore([]entities.SolarPanel{
		{ID: "a", Manufacturer: "JinkoSolar", Model: "Tiger Neo", Wattage: 475},
		{ID: "b", Manufacturer: "LONGi", Model: "Hi-MO 6", Wattage: 430},
		{ID: "c", Manufacturer: "Generic", Model: "Legacy"},
	})
	require.NoError(t, err)

	records, filtered := store.Search("475")
	require.True(t, filtered)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)

	records, _ = store.Search("0")
	require.Len(t, records, 1, "a missing wattage is not searchable as 0")
	assert.Equal(t, "b", records[0].ID)
}

func TestSearch_InverterRating(t *testing.T) {
	store, err := NewStore([]entities.SolarInverter{
		{ID: "a", Manufacturer: "Solis", Model: "Mini", RatedPowerKW: 3.6, Phase: entities.PhaseSingle},
		{ID: "b", Manufacturer: "Fronius", Model: "Symo", RatedPowerKW: 10, Phase: entities.PhaseThree},
	})
	require.NoError(t, err)

	records, _ := store.Search("3.6")
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)

	records, _ = store.Search("three")
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].ID)
}
