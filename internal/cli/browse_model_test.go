package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/teatest"
	"github.com/alexanderramin/tripboard/internal/testutil"
	"github.com/alexanderramin/tripboard/internal/view"
)

func kyotoBrowser(t *testing.T) *teatest.Driver {
	t.Helper()
	ct, sum := testutil.Pipeline(testutil.KyotoTrip())
	page := view.Build(ct, sum, config.Default().Content)
	return teatest.New(t, newBrowseModel(page), teatest.WithSize(100, 40))
}

func browseState(t *testing.T, d *teatest.Driver) browseModel {
	t.Helper()
	m, ok := d.Model.(browseModel)
	require.True(t, ok)
	return m
}

func TestBrowse_FirstDayOpen(t *testing.T) {
	d := kyotoBrowser(t)

	assert.True(t, d.ViewContains("京都小旅行", "▾ Day 1 東山", "▸ Day 2 大阪", "湯豆腐午餐"))
	assert.NotContains(t, d.View(), "大阪城")
}

func TestBrowse_ToggleDay(t *testing.T) {
	d := kyotoBrowser(t)

	d.Key(tea.KeyDown)
	d.Key(tea.KeyEnter)
	assert.True(t, d.ViewContains("▾ Day 2 大阪", "大阪城", "雨天備案：海遊館"))

	d.Press(' ')
	assert.NotContains(t, d.View(), "大阪城")
}

func TestBrowse_CursorStaysInRange(t *testing.T) {
	d := kyotoBrowser(t)

	d.Key(tea.KeyUp)
	assert.Equal(t, 0, browseState(t, d).cursor)
	d.Press('j')
	d.Press('j')
	d.Press('j')
	assert.Equal(t, 1, browseState(t, d).cursor)
}

func TestBrowse_ExpandAndCollapseAll(t *testing.T) {
	d := kyotoBrowser(t)

	d.Press('e')
	assert.True(t, d.ViewContains("湯豆腐午餐", "大阪城"))

	d.Press('c')
	v := d.View()
	assert.NotContains(t, v, "湯豆腐午餐")
	assert.NotContains(t, v, "大阪城")
	assert.Equal(t, []bool{false, false}, browseState(t, d).open)
}

func TestBrowse_Filter(t *testing.T) {
	d := kyotoBrowser(t)

	d.Press('/')
	d.Type("大阪城")
	assert.True(t, browseState(t, d).filtering)
	assert.NotContains(t, d.View(), "Day 1 東山")
	assert.Contains(t, d.View(), "Day 2 大阪")

	// Keys typed while filtering go to the input, not the key map.
	d.Key(tea.KeyEnter)
	assert.False(t, browseState(t, d).filtering)
	assert.Equal(t, "大阪城", browseState(t, d).filter.Value())

	d.Key(tea.KeyEnter)
	assert.Contains(t, d.View(), "雨天備案：海遊館")

	d.Key(tea.KeyEsc)
	assert.Contains(t, d.View(), "Day 1 東山")
}

func TestBrowse_FilterNoMatch(t *testing.T) {
	d := kyotoBrowser(t)

	d.Press('/')
	d.Type("札幌")
	assert.Contains(t, d.View(), `No day matches "札幌"`)

	d.Key(tea.KeyEsc)
	assert.False(t, browseState(t, d).filtering)
	assert.Contains(t, d.View(), "Day 1 東山")
}

func TestBrowse_FilterMatchesEnrichmentAndTags(t *testing.T) {
	d := kyotoBrowser(t)

	d.Press('/')
	d.Type("世界遺產")
	assert.Contains(t, d.View(), "Day 1 東山")
	assert.NotContains(t, d.View(), "Day 2 大阪")
}

func TestBrowse_Tabs(t *testing.T) {
	d := kyotoBrowser(t)

	d.Key(tea.KeyTab)
	assert.Equal(t, tabInsights, browseState(t, d).tab)
	assert.True(t, d.ViewContains("跨區緊湊日", "Day 2 大阪", "路線"))

	d.Key(tea.KeyTab)
	assert.True(t, d.ViewContains("ICOCA", "https://www.westjr.co.jp/"))

	d.Key(tea.KeyTab)
	assert.Equal(t, tabDays, browseState(t, d).tab)

	d.Key(tea.KeyShiftTab)
	assert.Equal(t, tabTransport, browseState(t, d).tab)
}

func TestBrowse_DayKeysIgnoredOnOtherTabs(t *testing.T) {
	d := kyotoBrowser(t)

	d.Key(tea.KeyTab)
	d.Press('e')
	assert.Equal(t, []bool{true, false}, browseState(t, d).open)
}

func TestBrowse_Quit(t *testing.T) {
	d := kyotoBrowser(t)

	d.Press('q')
	assert.True(t, d.Quitting)
}
