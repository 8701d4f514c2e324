package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/statgraph/pkg/graph"
	"github.com/dd0wney/statgraph/pkg/pipeline"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	membersBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	communitiesView view = iota
	kmeansView
)

type keyMap struct {
	Tab  key.Binding
	Quit key.Binding
	Up   key.Binding
	Down key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Up, k.Down, k.Quit}}
}

type communityItem struct {
	id      int
	size    int
	members []string
}

func (c communityItem) Title() string       { return fmt.Sprintf("Community %d", c.id) }
func (c communityItem) Description() string { return fmt.Sprintf("%d members", c.size) }
func (c communityItem) FilterValue() string { return strings.Join(c.members, " ") }

type model struct {
	result        *pipeline.Result
	currentView   view
	communityList list.Model
	kmeansTable   table.Model
	help          help.Model
	width         int
	height        int
}

func newModel(result *pipeline.Result) model {
	items := make([]list.Item, 0)
	if result.Communities != nil {
		for _, community := range result.Communities.Communities {
			members := make([]string, 0, len(community.Nodes))
			for _, idx := range community.Nodes {
				members = append(members, result.Labels[idx])
			}
			items = append(items, communityItem{id: community.ID, size: community.Size, members: members})
		}
	}

	communityList := list.New(items, list.NewDefaultDelegate(), 40, 20)
	communityList.Title = "Communities"
	communityList.SetShowHelp(false)

	columns := []table.Column{
		{Title: "Entity", Width: 40},
		{Title: "Cluster", Width: 8},
	}
	rows := make([]table.Row, 0, len(result.KMeansLabels))
	for i, label := range result.KMeansLabels {
		rows = append(rows, table.Row{result.Labels[i], fmt.Sprintf("%d", label)})
	}
	kmeansTable := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	return model{
		result:        result,
		currentView:   communitiesView,
		communityList: communityList,
		kmeansTable:   kmeansTable,
		help:          help.New(),
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
		m.communityList.SetSize(msg.Width/2, msg.Height-8)
		m.kmeansTable.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Tab):
			if m.currentView == communitiesView {
				m.currentView = kmeansView
			} else {
				m.currentView = communitiesView
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case communitiesView:
		m.communityList, cmd = m.communityList.Update(msg)
	case kmeansView:
		m.kmeansTable, cmd = m.kmeansTable.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("statgraph explorer"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.currentView {
	case communitiesView:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.communityList.View(),
			m.renderSelectedCommunity(),
		))
	case kmeansView:
		b.WriteString(m.kmeansTable.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return b.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Communities", "k-means"}
	rendered := make([]string, len(tabs))
	for i, tab := range tabs {
		if view(i) == m.currentView {
			rendered[i] = activeTabStyle.Render(tab)
		} else {
			rendered[i] = inactiveTabStyle.Render(tab)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderSelectedCommunity() string {
	item, ok := m.communityList.SelectedItem().(communityItem)
	if !ok {
		return membersBoxStyle.Render("no communities")
	}
	return membersBoxStyle.Render(
		fmt.Sprintf("Community %d\n\n%s", item.id, strings.Join(item.members, "\n")))
}

func (m model) renderStats() string {
	stats := fmt.Sprintf("Nodes: %d  Edges: %d", m.result.Graph.NodeCount(), m.result.Graph.EdgeCount())
	if m.result.Communities != nil {
		stats += fmt.Sprintf("  Communities: %d  Modularity: %.4f",
			len(m.result.Communities.Communities), m.result.Communities.Modularity)
	}
	return statsBoxStyle.Render(stats)
}

func main() {
	var (
		input    = flag.String("input", "", "Path to the statistics CSV file")
		policy   = flag.String("policy", "self-weight", "Accumulation policy: self-weight or temporal-decay")
		clusters = flag.Int("k", 3, "Number of k-means clusters")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: statgraph-tui --input data.csv [--k 3] [--policy self-weight]")
		os.Exit(1)
	}

	accPolicy, err := graph.ParsePolicy(*policy)
	if err != nil {
		log.Fatalf("invalid policy: %v", err)
	}

	opts := pipeline.DefaultOptions()
	opts.Policy = accPolicy
	opts.Clusters = *clusters

	result, err := pipeline.RunFile(*input, opts)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	if _, err := tea.NewProgram(newModel(result), tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}
