package render

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/testutil"
	"github.com/alexanderramin/tripboard/internal/view"
)

func kyotoPage(t *testing.T) *view.Page {
	t.Helper()
	ct, sum := testutil.Pipeline(testutil.KyotoTrip())
	return view.Build(ct, sum, config.Default().Content)
}

func renderDoc(t *testing.T, p *view.Page) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, p))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestPage_Header(t *testing.T) {
	doc := renderDoc(t, kyotoPage(t))

	assert.Equal(t, "京都小旅行", doc.Find("#title").Text())
	assert.Equal(t, "產出日期：2025-03-01", doc.Find("#generated").Text())
	assert.Equal(t, 4, doc.Find("#heroStats .stat").Length())
	assert.Equal(t, "2 天", doc.Find("#heroStats .stat .v").First().Text())
}

func TestPage_DayCards(t *testing.T) {
	doc := renderDoc(t, kyotoPage(t))

	days := doc.Find(".day")
	require.Equal(t, 2, days.Length())
	assert.True(t, days.First().HasClass("open"), "first day starts open")
	assert.False(t, days.Last().HasClass("open"))

	first := days.First()
	assert.Equal(t, "Day 1 東山", first.Find("h3").Text())
	assert.Equal(t, "3 項", first.Find(".badge").First().Text())
	assert.Equal(t, "重點：清水寺", first.Find(".badgeStrong").Text())
	assert.Contains(t, first.Find(".warn .t").Text(), "注意 步行量大")

	var buckets []string
	first.Find(".section").Each(func(_ int, s *goquery.Selection) {
		buckets = append(buckets, s.AttrOr("data-bucket", ""))
	})
	assert.Equal(t, []string{"今日重點", "餐食", "其他"}, buckets)
	assert.Equal(t, "mFocus", strings.TrimPrefix(first.Find(".section .marker").First().AttrOr("class", ""), "marker "))
}

func TestPage_ItemDetails(t *testing.T) {
	doc := renderDoc(t, kyotoPage(t))
	first := doc.Find(".day").First()

	kiyomizu := first.Find(".item").First()
	assert.Equal(t, "清水寺", kiyomizu.Find(".name").Text())
	href, ok := kiyomizu.Find("a").Attr("href")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(href, "https://www.google.com/maps/search/?api=1&query="))
	assert.Contains(t, kiyomizu.Find(".enrich").Text(), "補充資訊 · 寺院")
	assert.Contains(t, kiyomizu.Find(".enrich").Text(), "票券：500 円")
	assert.Equal(t, "世界遺產", kiyomizu.Find(".tag").Text())

	untitled := first.Find(`.section[data-bucket="其他"] .item`)
	assert.Equal(t, "備註", untitled.Find(".itemTitle .muted").Text())
	assert.Equal(t, 0, untitled.Find("a").Length(), "untitled items get no map link")
}

func TestPage_TransportCards(t *testing.T) {
	doc := renderDoc(t, kyotoPage(t))

	items := doc.Find("#transportCards li")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, 0, items.First().Find("a").Length())
	link := items.Last().Find("a")
	assert.Equal(t, "連結", link.Text())
	assert.Equal(t, "https://www.westjr.co.jp/", link.AttrOr("href", ""))
}

func TestPage_OverviewFromContent(t *testing.T) {
	doc := renderDoc(t, kyotoPage(t))

	assert.Equal(t, 4, doc.Find("#pace li").Length())
	assert.Equal(t, 4, doc.Find("#opsTips .tip").Length())
}

func TestPage_Insights(t *testing.T) {
	doc := renderDoc(t, kyotoPage(t))

	assert.Equal(t, 7, doc.Find("#mix .barRow").Length())
	assert.Equal(t, 2, doc.Find("#busiest .barRow").Length())
	assert.Contains(t, doc.Find("#tight").Text(), "Day 2 大阪")
	assert.Contains(t, doc.Find("#walk").Text(), "Day 1 東山：步行量大（坡道多）")
	assert.Equal(t, 2, doc.Find("#routes .routeLine").Length())
}

func TestPage_EscapesDocumentText(t *testing.T) {
	p := kyotoPage(t)
	p.Days[0].Label = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, p))
	assert.NotContains(t, buf.String(), `<script>alert("x")</script>`)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestPage_EmbedsAssets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, kyotoPage(t)))
	out := buf.String()

	assert.Contains(t, out, ".day.open .dayBody")
	assert.Contains(t, out, "getElementById('expandAll')")
}

func TestFailure(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Failure(&buf, ""))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultLoadError, doc.Find(".loadError").Text())
	assert.Equal(t, 0, doc.Find(".day").Length())
}

func TestFailure_CustomMessage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Failure(&buf, "load failed"))
	assert.Contains(t, buf.String(), "load failed")
}

func TestPDF_RequiresFont(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, PDF(&buf, kyotoPage(t), ""), ErrFontRequired)
	assert.Zero(t, buf.Len())
}

func TestPDF_MissingFontFile(t *testing.T) {
	var buf bytes.Buffer
	err := PDF(&buf, kyotoPage(t), "/nonexistent/font.ttf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFontRequired)
}

func TestPDF_WithFont(t *testing.T) {
	font := os.Getenv("TRIPBOARD_TEST_FONT")
	if font == "" {
		t.Skip("set TRIPBOARD_TEST_FONT to a CJK TrueType font to run")
	}

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, kyotoPage(t), font))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
