package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type pagerKeyMap struct {
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultPagerKeys() pagerKeyMap {
	return pagerKeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// pagerModel shows rendered output in a scrollable viewport with a title
// bar and a footer carrying the scroll position.
type pagerModel struct {
	title   string
	content string
	keys    pagerKeyMap
	vp      viewport.Model
	ready   bool
}

func newPagerModel(title, content string) pagerModel {
	if title == "" {
		title = "run"
	}
	return pagerModel{title: title, content: content, keys: defaultPagerKeys()}
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 2
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := formatter.StyleHeader.Render(strings.ToUpper(m.title))
	footer := fmt.Sprintf("%s  %s", scrollIndicator(m.vp), formatter.Dim("↑/↓ scroll · g/G top/bottom · q quit"))
	return header + "\n" + m.vp.View() + "\n" + footer
}

func scrollIndicator(vp viewport.Model) string {
	switch {
	case vp.AtTop():
		return formatter.Dim("[TOP]")
	case vp.AtBottom():
		return formatter.Dim("[END]")
	default:
		return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
	}
}

func runPager(in io.Reader, out io.Writer, title, content string) error {
	p := tea.NewProgram(newPagerModel(title, content),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
