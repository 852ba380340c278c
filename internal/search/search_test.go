package search_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/render"
	"github.com/alexanderramin/tripboard/internal/search"
	"github.com/alexanderramin/tripboard/internal/testutil"
	"github.com/alexanderramin/tripboard/internal/view"
)

func kyotoIndex(t *testing.T) *search.Index {
	t.Helper()
	ct, sum := testutil.Pipeline(testutil.KyotoTrip())
	var buf bytes.Buffer
	require.NoError(t, render.Page(&buf, view.Build(ct, sum, config.Default().Content)))

	idx, err := search.NewIndex(&buf)
	require.NoError(t, err)
	return idx
}

func labels(ms []search.Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Label)
	}
	return out
}

func TestFilter(t *testing.T) {
	idx := kyotoIndex(t)
	require.Equal(t, 2, idx.Len())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank matches all", "   ", []string{"Day 1 東山", "Day 2 大阪"}},
		{"item title", "清水寺", []string{"Day 1 東山"}},
		{"note text", "回飯店", []string{"Day 1 東山"}},
		{"warning detail", "京都到大阪", []string{"Day 2 大阪"}},
		{"case insensitive", "DAY 2", []string{"Day 2 大阪"}},
		{"no match", "札幌", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels(idx.Filter(tt.query)))
		})
	}
}

func TestFilter_ReturnsCardIDs(t *testing.T) {
	got := kyotoIndex(t).Filter("海遊館")
	require.Len(t, got, 1)
	assert.Equal(t, "day-2", got[0].ID)
}

func TestNewIndex_FailurePageHasNoCards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Failure(&buf, ""))

	idx, err := search.NewIndex(&buf)
	require.NoError(t, err)
	assert.Zero(t, idx.Len())
	assert.Empty(t, idx.Filter(""))
}

func TestNewIndex_PlainHTML(t *testing.T) {
	html := `<div class="day" id="d1"><div class="dayHead"><h3> Arrival </h3></div><p>Kansai Airport</p></div>`
	idx, err := search.NewIndex(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, []search.Match{{ID: "d1", Label: "Arrival"}}, idx.Filter("airport"))
}
