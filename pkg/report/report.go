// Package report renders a finished pipeline run for terminal inspection.
// Formatting lives here so the pipeline itself never prints anything.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/statgraph/pkg/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2)

	clusterHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF00FF"))

	memberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")).
			MarginLeft(2)
)

// Render formats the whole run: graph statistics, the community partition
// with entity labels, and per-entity k-means labels.
func Render(result *pipeline.Result) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("statgraph run %s", result.RunID)))
	b.WriteString("\n")
	b.WriteString(renderStats(result))
	b.WriteString("\n")
	b.WriteString(renderCommunities(result))
	b.WriteString("\n")
	b.WriteString(renderKMeans(result))

	return b.String()
}

func renderStats(result *pipeline.Result) string {
	stats := fmt.Sprintf("Nodes: %d\nEdges: %d", result.Graph.NodeCount(), result.Graph.EdgeCount())
	if result.Communities != nil {
		stats += fmt.Sprintf("\nCommunities: %d\nModularity: %.4f",
			len(result.Communities.Communities), result.Communities.Modularity)
	}
	return statsBoxStyle.Render(stats) + "\n"
}

func renderCommunities(result *pipeline.Result) string {
	if result.Communities == nil || len(result.Communities.Communities) == 0 {
		return clusterHeaderStyle.Render("Communities") + "\n" + memberStyle.Render("(none)") + "\n"
	}

	var b strings.Builder
	b.WriteString(clusterHeaderStyle.Render("Communities") + "\n")
	for _, community := range result.Communities.Communities {
		names := make([]string, 0, len(community.Nodes))
		for _, idx := range community.Nodes {
			names = append(names, result.Labels[idx])
		}
		b.WriteString(memberStyle.Render(
			fmt.Sprintf("Community %d (%d): %s", community.ID, community.Size, strings.Join(names, ", "))))
		b.WriteString("\n")
	}
	return b.String()
}

func renderKMeans(result *pipeline.Result) string {
	var b strings.Builder
	b.WriteString(clusterHeaderStyle.Render("k-means labels") + "\n")
	if result.KMeansLabels == nil {
		b.WriteString(memberStyle.Render("(skipped: empty graph)") + "\n")
		return b.String()
	}
	for i, label := range result.KMeansLabels {
		b.WriteString(memberStyle.Render(fmt.Sprintf("%s: cluster %d", result.Labels[i], label)))
		b.WriteString("\n")
	}
	return b.String()
}
