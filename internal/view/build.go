package view

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/alexanderramin/tripboard/internal/aggregate"
	"github.com/alexanderramin/tripboard/internal/classify"
	"github.com/alexanderramin/tripboard/internal/config"
	"github.com/alexanderramin/tripboard/internal/domain"
)

const mapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// MapURL returns a map search link for a place name.
func MapURL(name string) string {
	return mapSearchURL + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}

// Build assembles the page model from a classified trip and its summary.
func Build(trip *classify.Trip, sum *aggregate.TripSummary, content config.ContentConfig) *Page {
	src := trip.Source
	p := &Page{
		Title:     domain.CoalesceStr(src.Title, "行程"),
		Subtitle:  src.Subtitle,
		Generated: "產出日期：" + src.GeneratedOn,
		Stats:     heroStats(sum),
		Pace:      domain.CleanStrings(content.Pace),
		Risks:     domain.CleanStrings(content.Risks),
		Tweaks:    domain.CleanStrings(content.Tweaks),
		Transport: transportLines(src.TransportCards),
		Days:      make([]DayCard, 0, len(trip.Days)),
		Insights:  insights(sum),
	}
	for _, t := range content.OpsTips {
		p.Tips = append(p.Tips, Tip{Title: t.Title, Body: t.Body})
	}
	for i := range trip.Days {
		p.Days = append(p.Days, dayCard(src, &trip.Days[i], &sum.Days[i], i == 0))
	}
	return p
}

func heroStats(sum *aggregate.TripSummary) []Stat {
	return []Stat{
		{Key: "天數", Value: fmt.Sprintf("%d 天", sum.DayCount)},
		{Key: "今日重點", Value: fmt.Sprintf("%d 個", sum.Counts.Get(domain.BucketFocus))},
		{Key: "景點/順遊", Value: fmt.Sprintf("%d 個", sum.Counts.Sightseeing())},
		{Key: "備案/警示", Value: fmt.Sprintf("%d 個", sum.Counts.Get(domain.BucketBackup))},
	}
}

func transportLines(cards []domain.TransportCard) []TransportLine {
	out := make([]TransportLine, 0, len(cards))
	for _, c := range cards {
		out = append(out, TransportLine{Key: c.Key, Value: c.Value, Link: c.IsLink()})
	}
	return out
}

func dayCard(trip *domain.Trip, day *classify.Day, ds *aggregate.DaySummary, open bool) DayCard {
	src := day.Source
	highlights := domain.CleanStrings(src.Highlights)
	card := DayCard{
		ID:         fmt.Sprintf("day-%d", src.Index+1),
		Label:      src.Label,
		Open:       open,
		Highlights: highlights,
		Route:      ds.Route,
	}

	if n := len(src.Items); n > 0 {
		card.Badges = append(card.Badges, Badge{Text: fmt.Sprintf("%d 項", n)})
	}
	if len(highlights) > 0 {
		card.Badges = append(card.Badges, Badge{Text: "重點：" + strings.Join(highlights, "、"), Strong: true})
	}

	for _, w := range src.Warnings {
		card.Warnings = append(card.Warnings, WarningLine{
			Head:   strings.TrimSpace(w.Level + " " + w.Title),
			Detail: w.Detail,
		})
	}

	for _, b := range domain.Buckets {
		items := day.InBucket(b)
		if len(items) == 0 {
			continue
		}
		sec := Section{Bucket: b.Key(), Label: b.Label(), Marker: b.Marker()}
		for _, it := range items {
			sec.Items = append(sec.Items, itemCard(trip, it))
		}
		card.Sections = append(card.Sections, sec)
	}

	card.Slots = slotLines(ds.Slots)
	return card
}

func itemCard(trip *domain.Trip, it classify.Item) ItemCard {
	c := ItemCard{
		Name:          it.Source.Title,
		Note:          it.Source.Note,
		Tags:          it.Source.Tags,
		KidActivities: it.Source.KidActivities,
		WalkHeavy:     it.WalkHeavy,
		QueueRisk:     it.QueueRisk,
	}
	if c.Name == "" {
		return c
	}
	c.MapURL = MapURL(c.Name)
	if e, ok := trip.EnrichmentFor(c.Name); ok {
		c.Enrichment = enrichmentBlock(e)
	}
	return c
}

func enrichmentBlock(e domain.Enrichment) *EnrichmentBlock {
	b := &EnrichmentBlock{Category: e.Category}
	add := func(label, v string) {
		if v != "" {
			b.Lines = append(b.Lines, label+"："+v)
		}
	}
	add("區域", e.Area)
	add("建議停留", e.TimeSuggest)
	add("建議時段", e.BestTime)
	add("票券", e.Ticket)
	add("親子提示", e.KidTip)
	return b
}

// slotLines is empty when nothing on the day has a time slot.
func slotLines(groups []aggregate.SlotGroup) []SlotLine {
	if len(groups) == 0 || (len(groups) == 1 && groups[0].Slot == domain.SlotNone) {
		return nil
	}
	out := make([]SlotLine, 0, len(groups))
	for _, g := range groups {
		line := SlotLine{Label: g.Slot.Label()}
		for _, it := range g.Items {
			line.Titles = append(line.Titles, domain.CoalesceStr(it.Source.Title, "備註"))
		}
		out = append(out, line)
	}
	return out
}

func insights(sum *aggregate.TripSummary) Insights {
	in := Insights{
		TightNote: sum.TightNote,
		FoodTotal: sum.Food.Total,
		WalkTips:  sum.Walk.Tips,
	}

	total := sum.Counts.Total()
	for _, b := range domain.Buckets {
		in.Mix = append(in.Mix, BarRow{Label: b.Key(), Value: sum.Counts.Get(b), Percent: percent(sum.Counts.Get(b), total)})
	}
	for _, d := range sum.Busiest {
		in.Busiest = append(in.Busiest, BarRow{Label: d.Label, Value: d.Total, Percent: percent(d.Total, sum.MaxDayLoad)})
	}
	for _, d := range sum.TightDays {
		in.Tight = append(in.Tight, d.Label)
	}
	for _, k := range aggregate.FoodKinds {
		n := sum.Food.Counts[k]
		in.Food = append(in.Food, BarRow{Label: k.Label(), Value: n, Percent: percent(n, sum.Food.Total)})
	}
	for _, ex := range sum.Food.Examples {
		in.FoodExamples = append(in.FoodExamples, fmt.Sprintf("%s：%s（%s）", ex.DayLabel, ex.Title, ex.Kind.Label()))
	}
	for _, d := range sum.Walk.PerDay {
		in.Walk = append(in.Walk, BarRow{Label: d.Label, Value: d.Count, Percent: percent(d.Count, sum.Walk.Max)})
	}
	for _, d := range sum.Days {
		if len(d.Route) > 0 {
			in.Routes = append(in.Routes, RouteLine{Day: d.Label, Stops: d.Route})
		}
	}
	return in
}

func percent(n, of int) int {
	if of == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(of)))
}
