package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// echoModel records typed runes and answers "!" with an async message.
type echoModel struct {
	typed  string
	echoed []string
	width  int
}

func (m echoModel) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (m echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case echoMsg:
		m.echoed = append(m.echoed, string(msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "!":
			return m, tea.Batch(
				func() tea.Msg { return echoMsg("a") },
				func() tea.Msg { return echoMsg("b") },
			)
		default:
			m.typed += msg.String()
		}
	}
	return m, nil
}

func (m echoModel) View() string {
	return "typed:" + m.typed
}

func TestDriver_InitAndSize(t *testing.T) {
	d := New(t, echoModel{}, WithSize(80, 24))
	m := d.Model.(echoModel)
	assert.Equal(t, 80, m.width)
	assert.Equal(t, []string{"init"}, m.echoed)
}

func TestDriver_TypeAndBatch(t *testing.T) {
	d := New(t, echoModel{})
	d.Type("ab")
	d.Press('!')

	assert.True(t, d.ViewContains("typed:ab"))
	assert.Equal(t, []string{"init", "a", "b"}, d.Model.(echoModel).echoed)
}

func TestDriver_QuitStopsInput(t *testing.T) {
	d := New(t, echoModel{})
	d.Press('q')
	assert.True(t, d.Quitting)

	d.Type("zz")
	assert.Equal(t, "typed:", d.View())
}
