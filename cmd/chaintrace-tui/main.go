package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-chaintrace/pkg/catalog"
	"github.com/dd0wney/cluso-chaintrace/pkg/chain"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	chainBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(1, 2).
			MarginLeft(2)

	layerHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#00FF00"))

	originStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Enter key.Binding
	Reset key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "trace chain"),
	),
	Reset: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "reset selection"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Enter, k.Reset, k.Quit}}
}

// nodeItem adapts a catalog node to the bubbles list
type nodeItem struct {
	id    string
	label string
	layer string
}

func (i nodeItem) Title() string       { return i.id }
func (i nodeItem) Description() string { return i.layer + "  " + i.label }
func (i nodeItem) FilterValue() string { return i.id + " " + i.label }

type model struct {
	cat      *catalog.Catalog
	list     list.Model
	help     help.Model
	selected string
	steps    []chain.Step
	width    int
	height   int
}

func newModel(cat *catalog.Catalog) model {
	items := make([]list.Item, 0, cat.Len())
	for _, id := range cat.IDs() {
		n, _ := cat.Get(id)
		items = append(items, nodeItem{id: n.ID, label: n.Label, layer: n.Layer.String()})
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Components"
	l.SetShowHelp(false)

	return model{
		cat:  cat,
		list: l,
		help: help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width/2, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		// Don't steal keys while the list filter input is active.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if item, ok := m.list.SelectedItem().(nodeItem); ok {
				m.selected = item.id
				m.steps = chain.Traverse(m.cat, item.id)
			}
			return m, nil

		case key.Matches(msg, keys.Reset):
			// Reset means "traverse with no start": nothing highlighted.
			m.selected = ""
			m.steps = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	title := titleStyle.Render("chaintrace — dependency chain explorer")

	left := m.list.View()
	right := chainBoxStyle.Render(m.renderChain())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	helpView := helpStyle.Render(m.help.View(keys))

	return title + "\n" + body + "\n" + helpView
}

// renderChain shows every catalog node grouped by layer with three visual
// states: origin, highlighted (chain member), dimmed (not in chain).
func (m model) renderChain() string {
	if m.selected == "" {
		return dimmedStyle.Render("select a component and press enter")
	}

	inChain := make(map[string]chain.Relation, len(m.steps))
	for _, s := range m.steps {
		inChain[s.ID] = s.Relation
	}

	var b strings.Builder
	fmt.Fprintf(&b, "chain for %s (%d steps)\n\n", m.selected, len(m.steps))

	for _, layer := range catalog.Layers() {
		var lines []string
		for _, id := range m.cat.IDs() {
			n, _ := m.cat.Get(id)
			if n.Layer != layer {
				continue
			}
			lines = append(lines, "  "+m.renderNode(n, inChain))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(layerHeadingStyle.Render(layer.String()) + "\n")
		b.WriteString(strings.Join(lines, "\n") + "\n")
	}

	return b.String()
}

func (m model) renderNode(n *catalog.Node, inChain map[string]chain.Relation) string {
	rel, member := inChain[n.ID]
	if !member {
		return dimmedStyle.Render(n.ID)
	}
	switch rel {
	case chain.RelationOrigin:
		return originStyle.Render("● " + n.ID)
	case chain.RelationUpstream:
		return highlightStyle.Render("↑ " + n.ID)
	default:
		return highlightStyle.Render("↓ " + n.ID)
	}
}

func main() {
	catalogPath := flag.String("catalog", "catalog.yaml", "Catalog manifest file (.yaml or .yaml.snappy)")
	flag.Parse()

	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(cat), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}
