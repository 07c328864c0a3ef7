package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/horizon/internal/clock"
	"github.com/mrz1836/horizon/internal/dates"
	"github.com/mrz1836/horizon/internal/domain"
)

// timelineWidth is the inner width of a rendered month block.
const timelineWidth = 60

// TimelineRenderer renders a roadmap as a vertical sequence of month
// blocks, one per calendar month in the roadmap's year range. Months
// without stored data render as placeholders, so the timeline always
// shows the complete range.
type TimelineRenderer struct {
	clk        clock.Clock
	settings   domain.AppSettings
	base       lipgloss.Style
	current    lipgloss.Style
	past       lipgloss.Style
	headerBold lipgloss.Style
	dim        lipgloss.Style
}

// NewTimelineRenderer creates a renderer. A nil clock defaults to the
// real clock; settings control the date display format.
func NewTimelineRenderer(clk clock.Clock, settings domain.AppSettings) *TimelineRenderer {
	if clk == nil {
		clk = clock.RealClock{}
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(timelineWidth)

	return &TimelineRenderer{
		clk:        clk,
		settings:   settings,
		base:       border,
		current:    border.BorderForeground(ColorPrimary),
		past:       border.BorderForeground(ColorMuted),
		headerBold: StyleBold,
		dim:        lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// Render returns the full timeline for the roadmap.
func (r *TimelineRenderer) Render(rm *domain.Roadmap) string {
	var b strings.Builder

	title := r.headerBold.Render(rm.Title)
	if rm.Icon != "" {
		title = rm.Icon + " " + title
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(r.dim.Render(fmt.Sprintf("%d – %d", rm.StartYear, rm.EndYear)))
	b.WriteString("\n\n")

	for _, key := range dates.GenerateMonthKeys(rm.StartYear, rm.EndYear) {
		month, ok := rm.Months[key]
		b.WriteString(r.renderMonth(key, month, ok))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderMonth returns a single month block for the given key.
func (r *TimelineRenderer) RenderMonth(rm *domain.Roadmap, key string) string {
	month, ok := rm.Months[key]
	return r.renderMonth(key, month, ok)
}

func (r *TimelineRenderer) renderMonth(key string, month domain.MonthBlock, stored bool) string {
	year, monthNum, err := dates.ParseMonthKey(key)
	if err != nil {
		return ""
	}

	header := r.headerBold.Render(dates.FormatMonthDisplay(year, monthNum))
	switch {
	case dates.IsMonthCurrent(r.clk, year, monthNum):
		header += r.dim.Render(fmt.Sprintf("  · current · %d%%", dates.MonthProgress(r.clk, year, monthNum)))
	case dates.IsMonthPast(r.clk, year, monthNum):
		header += r.dim.Render("  · past")
	}

	var lines []string
	lines = append(lines, header)

	if !stored || len(month.Objectives) == 0 {
		lines = append(lines, r.dim.Render("no objectives"))
	} else {
		for _, obj := range dates.SortObjectivesInMonth(month.Objectives) {
			lines = append(lines, r.renderObjective(obj))
		}
		if month.Reflection != nil && month.Reflection.Summary != "" {
			lines = append(lines, r.dim.Render("reflection: "+month.Reflection.Summary))
		}
	}

	style := r.base
	switch {
	case dates.IsMonthCurrent(r.clk, year, monthNum):
		style = r.current
	case dates.IsMonthPast(r.clk, year, monthNum):
		style = r.past
	}

	return style.Render(strings.Join(lines, "\n"))
}

// renderObjective formats one objective line: icon, pin, title, priority,
// date range, and progress.
func (r *TimelineRenderer) renderObjective(obj domain.Objective) string {
	statusStyle := lipgloss.NewStyle().Foreground(StatusColors()[obj.Status])

	var parts []string
	parts = append(parts, statusStyle.Render(StatusIcon(obj.Status)))
	if obj.IsPinned {
		parts = append(parts, "📌")
	}
	parts = append(parts, obj.Title)

	if label := PriorityLabel(obj.Priority); label != "" {
		priorityStyle := lipgloss.NewStyle().Foreground(PriorityColors()[obj.Priority])
		parts = append(parts, priorityStyle.Render(label))
	}

	line := strings.Join(parts, " ")

	detail := fmt.Sprintf("%s → %s",
		dates.FormatDateDisplay(obj.StartDate, r.settings.DateFormat),
		dates.FormatDateDisplay(obj.EndDate, r.settings.DateFormat))
	if obj.Progress > 0 {
		detail += fmt.Sprintf(" · %d%%", obj.Progress)
	}

	return line + "\n" + r.dim.Render("  "+detail)
}
