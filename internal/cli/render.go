package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/services"
)

const columnWidth = 30

type styles struct {
	title       lipgloss.Style
	column      lipgloss.Style
	header      lipgloss.Style
	overWIP     lipgloss.Style
	muted       lipgloss.Style
	moving      lipgloss.Style
	destructive lipgloss.Style
	priority    map[models.Priority]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().Bold(true).MarginBottom(1),
		column: r.NewStyle().
			Width(columnWidth).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),
		header:      r.NewStyle().Bold(true),
		overWIP:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		muted:       r.NewStyle().Foreground(lipgloss.Color("243")),
		moving:      r.NewStyle().Faint(true),
		destructive: r.NewStyle().Foreground(lipgloss.Color("9")),
		priority: map[models.Priority]lipgloss.Style{
			models.PriorityBaixa:   r.NewStyle().Foreground(lipgloss.Color("244")),
			models.PriorityMedia:   r.NewStyle().Foreground(lipgloss.Color("33")),
			models.PriorityAlta:    r.NewStyle().Foreground(lipgloss.Color("214")),
			models.PriorityUrgente: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		},
	}
}

func (s styles) notice(n services.Notice) string {
	line := n.Title
	if n.Description != "" {
		line += ": " + n.Description
	}
	if n.Variant == services.VariantDestructive {
		return s.destructive.Render("✗ " + line)
	}
	return "✓ " + line
}

// renderBoard draws the columns of board side by side.
func renderBoard(s styles, project *models.Project, board *models.KanbanBoard, movingTaskID string) string {
	columns := make([]string, 0, len(board.Columns))
	for _, col := range board.Columns {
		columns = append(columns, renderColumn(s, col, movingTaskID))
	}

	title := board.Name
	if project != nil {
		title = project.Name + " / " + board.Name
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(title),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	)
}

func renderColumn(s styles, col models.KanbanColumn, movingTaskID string) string {
	count := fmt.Sprintf("%d", len(col.Tasks))
	if col.WIPLimit != nil {
		count = fmt.Sprintf("%d/%d", len(col.Tasks), *col.WIPLimit)
	}
	header := s.header.Render(col.Title) + " " + s.muted.Render(count)
	if col.OverWIP() {
		header = s.overWIP.Render(col.Title+" "+count+" over WIP limit")
	}

	lines := []string{header, ""}
	if len(col.Tasks) == 0 {
		lines = append(lines, s.muted.Render("(empty)"))
	}
	for _, t := range col.Tasks {
		lines = append(lines, renderTask(s, t, t.ID == movingTaskID))
	}
	return s.column.Render(strings.Join(lines, "\n"))
}

func renderTask(s styles, t models.Task, moving bool) string {
	meta := s.priority[t.Priority].Render(t.Priority.Label()) + " " + s.muted.Render(t.ID)
	if t.DueDate != nil {
		meta += " " + s.muted.Render("due "+t.DueDate.Format("2006-01-02"))
	}
	line := "• " + t.Title + "\n  " + meta
	if moving {
		return s.moving.Render(line)
	}
	return line
}

func renderProjects(projects []models.Project, selectedID string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "NAME", "DESCRIPTION")
	for _, p := range projects {
		marker := ""
		if p.ID == selectedID {
			marker = "*"
		}
		t.Row(marker, p.ID, p.Name, p.Description)
	}
	return t.String()
}

func renderReport(s styles, project *models.Project, r services.Report) string {
	var b strings.Builder
	if project != nil {
		b.WriteString(s.title.Render("Report for " + project.Name))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total tasks:     %d\n", r.Total)
	fmt.Fprintf(&b, "Completed:       %d\n", r.Completed)
	fmt.Fprintf(&b, "Completion rate: %s%%\n", r.CompletionRate)

	byStatus := table.New().Border(lipgloss.NormalBorder()).Headers("STATUS", "TASKS")
	for _, sc := range r.ByStatus {
		byStatus.Row(sc.Title, fmt.Sprintf("%d", sc.Count))
	}
	b.WriteString(byStatus.String())
	b.WriteString("\n")

	if len(r.ByPriority) > 0 {
		byPriority := table.New().Border(lipgloss.NormalBorder()).Headers("PRIORITY", "TASKS")
		for _, pc := range r.ByPriority {
			byPriority.Row(pc.Label, fmt.Sprintf("%d", pc.Count))
		}
		b.WriteString(byPriority.String())
		b.WriteString("\n")
	}
	return b.String()
}
