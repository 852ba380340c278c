package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tripboard/internal/cli/formatter"
	"github.com/alexanderramin/tripboard/internal/view"
)

type browseTab int

const (
	tabDays browseTab = iota
	tabInsights
	tabTransport
)

var browseTabs = []struct {
	tab   browseTab
	label string
}{
	{tabDays, "每日行程"},
	{tabInsights, "分析"},
	{tabTransport, "交通"},
}

type browseKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Filter      key.Binding
	Clear       key.Binding
	Quit        key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/close")),
		ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		NextTab:     key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev tab")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseModel is the terminal counterpart of the page's interaction layer:
// a day list with a substring filter, per-day and bulk expand/collapse and
// tabs for the insight and transport panels.
type browseModel struct {
	page *view.Page
	keys browseKeyMap

	filter    textinput.Model
	filtering bool

	tab    browseTab
	cursor int
	open   []bool
	texts  []string

	width  int
	height int
}

func newBrowseModel(page *view.Page) browseModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "搜尋景點、餐廳、提醒…"
	ti.CharLimit = 64

	m := browseModel{
		page:   page,
		keys:   defaultBrowseKeys(),
		filter: ti,
		open:   make([]bool, len(page.Days)),
		texts:  make([]string, len(page.Days)),
	}
	for i := range page.Days {
		m.open[i] = page.Days[i].Open
		m.texts[i] = strings.ToLower(dayText(&page.Days[i]))
	}
	return m
}

// dayText is the searchable text of a day card.
func dayText(d *view.DayCard) string {
	parts := []string{d.Label}
	parts = append(parts, d.Highlights...)
	for _, w := range d.Warnings {
		parts = append(parts, w.Head, w.Detail)
	}
	for _, s := range d.Sections {
		parts = append(parts, s.Label)
		for _, it := range s.Items {
			parts = append(parts, it.Name, it.Note)
			parts = append(parts, it.Tags...)
			parts = append(parts, it.KidActivities...)
			if it.Enrichment != nil {
				parts = append(parts, it.Enrichment.Category)
				parts = append(parts, it.Enrichment.Lines...)
			}
		}
	}
	parts = append(parts, d.Route...)
	return strings.Join(parts, " ")
}

// visible returns the indexes of the days matching the filter.
func (m browseModel) visible() []int {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	out := make([]int, 0, len(m.page.Days))
	for i, t := range m.texts {
		if q == "" || strings.Contains(t, q) {
			out = append(out, i)
		}
	}
	return out
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.filter.Width = max(msg.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % browseTab(len(browseTabs))
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + browseTab(len(browseTabs)) - 1) % browseTab(len(browseTabs))
	case key.Matches(msg, m.keys.Filter):
		m.tab = tabDays
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.filter.SetValue("")
		m.clampCursor()
	case m.tab != tabDays:
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if vis := m.visible(); m.cursor < len(vis) {
			i := vis[m.cursor]
			m.open = cloneBools(m.open)
			m.open[i] = !m.open[i]
		}
	case key.Matches(msg, m.keys.ExpandAll):
		m.setAll(true)
	case key.Matches(msg, m.keys.CollapseAll):
		m.setAll(false)
	}
	return m, nil
}

// setAll opens or closes every visible day.
func (m *browseModel) setAll(open bool) {
	m.open = cloneBools(m.open)
	for _, i := range m.visible() {
		m.open[i] = open
	}
}

func (m *browseModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func cloneBools(b []bool) []bool {
	out := make([]bool, len(b))
	copy(out, b)
	return out
}

// ── View ─────────────────────────────────────────────────────────────────────

var (
	browseTabActive   = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	browseTabInactive = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	browseCursor      = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
)

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Bold(m.page.Title))
	if m.page.Subtitle != "" {
		b.WriteString("  " + formatter.Dim(m.page.Subtitle))
	}
	b.WriteString("\n")

	tabs := make([]string, 0, len(browseTabs))
	for _, t := range browseTabs {
		if t.tab == m.tab {
			tabs = append(tabs, browseTabActive.Render(t.label))
		} else {
			tabs = append(tabs, browseTabInactive.Render(t.label))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	switch m.tab {
	case tabInsights:
		b.WriteString(m.viewInsights())
	case tabTransport:
		b.WriteString(m.viewTransport())
	default:
		b.WriteString(m.viewDays())
	}

	b.WriteString("\n" + formatter.Dim(m.helpLine()))
	return b.String()
}

func (m browseModel) viewDays() string {
	var b strings.Builder
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "\n\n")
	}

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("No day matches %q.", m.filter.Value())) + "\n")
		return b.String()
	}

	for pos, i := range vis {
		d := &m.page.Days[i]
		marker := "▸"
		if m.open[i] {
			marker = "▾"
		}
		line := fmt.Sprintf("%s %s", marker, d.Label)
		if pos == m.cursor {
			line = browseCursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		badges := make([]string, 0, len(d.Badges))
		for _, bd := range d.Badges {
			badges = append(badges, bd.Text)
		}
		b.WriteString(line + "  " + formatter.Dim(strings.Join(badges, " · ")) + "\n")
		if m.open[i] {
			b.WriteString(viewDayBody(d))
		}
	}
	return b.String()
}

func viewDayBody(d *view.DayCard) string {
	var b strings.Builder
	for _, w := range d.Warnings {
		b.WriteString("    " + formatter.StyleYellow.Render("⚠ "+w.Head) + " " + formatter.Dim(w.Detail) + "\n")
	}
	for _, s := range d.Sections {
		b.WriteString("    " + formatter.StyleHeader.Render(s.Label) + "\n")
		for _, it := range s.Items {
			name := it.Name
			if name == "" {
				name = formatter.Dim("備註")
			}
			line := "      • " + name
			if it.Note != "" {
				line += " " + formatter.Dim(it.Note)
			}
			if len(it.Tags) > 0 {
				line += " " + formatter.StyleAqua.Render("#"+strings.Join(it.Tags, " #"))
			}
			b.WriteString(line + "\n")
		}
	}
	if len(d.Route) > 0 {
		b.WriteString("    " + formatter.Dim("路線："+strings.Join(d.Route, " → ")) + "\n")
	}
	return b.String()
}

func (m browseModel) viewInsights() string {
	in := m.page.Insights
	var b strings.Builder

	b.WriteString(formatter.Header("最滿的兩天") + "\n")
	for _, r := range in.Busiest {
		b.WriteString(fmt.Sprintf("  %s  %s\n", r.Label, formatter.RenderPercent(r.Percent, 12)))
	}

	b.WriteString("\n" + formatter.Header("跨區緊湊日") + "\n")
	if len(in.Tight) > 0 {
		b.WriteString(formatter.Bullets(in.Tight))
	} else {
		b.WriteString("  " + formatter.Dim(in.TightNote) + "\n")
	}

	b.WriteString("\n" + formatter.Header(fmt.Sprintf("餐食分布（%d）", in.FoodTotal)) + "\n")
	for _, r := range in.Food {
		b.WriteString(fmt.Sprintf("  %s  %d\n", r.Label, r.Value))
	}

	b.WriteString("\n" + formatter.Header("步行量") + "\n")
	b.WriteString(formatter.Bullets(in.WalkTips))

	if len(in.Routes) > 0 {
		b.WriteString("\n" + formatter.Header("路線") + "\n")
		for _, r := range in.Routes {
			b.WriteString(fmt.Sprintf("  %s  %s\n", r.Day, strings.Join(r.Stops, " → ")))
		}
	}
	return b.String()
}

func (m browseModel) viewTransport() string {
	if len(m.page.Transport) == 0 {
		return formatter.Dim("No transport notes.") + "\n"
	}
	var b strings.Builder
	for _, t := range m.page.Transport {
		v := t.Value
		if t.Link {
			v = formatter.StyleBlue.Render(v)
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.Bold(t.Key), v))
	}
	return b.String()
}

func (m browseModel) helpLine() string {
	if m.filtering {
		return "enter keep search · esc clear"
	}
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.ExpandAll,
		m.keys.CollapseAll, m.keys.NextTab, m.keys.Filter, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
