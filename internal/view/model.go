// Package view builds the immutable page model that every output format
// (HTML, PDF, terminal) renders from.
package view

// Page is everything the itinerary page shows. It is built once per load
// and never mutated afterwards.
type Page struct {
	Title     string
	Subtitle  string
	Generated string

	Stats     []Stat
	Pace      []string
	Risks     []string
	Tweaks    []string
	Tips      []Tip
	Transport []TransportLine
	Days      []DayCard
	Insights  Insights
}

// Stat is one hero figure.
type Stat struct {
	Key   string
	Value string
}

type Tip struct {
	Title string
	Body  string
}

// TransportLine is a transport card. Link is set when Value is a URL.
type TransportLine struct {
	Key   string
	Value string
	Link  bool
}

// DayCard is one collapsible day.
type DayCard struct {
	ID         string
	Label      string
	Open       bool
	Badges     []Badge
	Highlights []string
	Warnings   []WarningLine
	Sections   []Section
	Route      []string
	Slots      []SlotLine
}

type Badge struct {
	Text   string
	Strong bool
}

type WarningLine struct {
	Head   string
	Detail string
}

// Section groups a day's items of one bucket.
type Section struct {
	Bucket string
	Label  string
	Marker string
	Items  []ItemCard
}

// ItemCard is a single itinerary entry. Name is empty for untitled notes.
type ItemCard struct {
	Name          string
	Note          string
	MapURL        string
	Tags          []string
	KidActivities []string
	WalkHeavy     bool
	QueueRisk     bool
	Enrichment    *EnrichmentBlock
}

// EnrichmentBlock is the supplementary metadata shown under an item.
type EnrichmentBlock struct {
	Category string
	Lines    []string
}

// SlotLine lists the items scheduled in one time of day.
type SlotLine struct {
	Label  string
	Titles []string
}

// Insights is the whole-trip analysis panel.
type Insights struct {
	Mix          []BarRow
	Busiest      []BarRow
	Tight        []string
	TightNote    string
	Food         []BarRow
	FoodTotal    int
	FoodExamples []string
	Walk         []BarRow
	WalkTips     []string
	Routes       []RouteLine
}

// BarRow is one bar of a horizontal bar chart. Percent is the bar width.
type BarRow struct {
	Label   string
	Value   int
	Percent int
}

type RouteLine struct {
	Day   string
	Stops []string
}
