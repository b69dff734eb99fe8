package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/suggest"
)

// View implements tea.Model
func (e *Editor) View() string {
	if e.done || e.canceled {
		return ""
	}

	var s strings.Builder

	if e.opts.Title != "" {
		s.WriteString(HeaderStyle.Render(e.opts.Title))
		s.WriteString("\n\n")
	}

	box := InactiveBorderStyle
	if e.machine.Focused() {
		box = ActiveBorderStyle
	}
	inner := e.width - 4
	if inner < 10 {
		inner = 10
	}

	var body strings.Builder
	if pills := e.renderTags(inner); pills != "" {
		body.WriteString(pills)
		body.WriteString("\n")
	}
	body.WriteString(e.input.View())
	if e.machine.Expanded() {
		body.WriteString("\n")
		body.WriteString(e.renderSuggestions(inner))
	}
	s.WriteString(box.Width(inner).Render(body.String()))
	s.WriteString("\n")

	if e.confirm.Active() {
		s.WriteString(e.confirm.View())
		s.WriteString("\n")
	} else if e.status != "" {
		s.WriteString(e.renderStatus())
		s.WriteString("\n")
	}

	if e.opts.ShowHelp {
		s.WriteString(e.help.View(e.keys))
	}

	return ContentPaddingStyle.Render(s.String())
}

// renderTags lays committed tags out as coloured pills, wrapping onto new
// lines at width
func (e *Editor) renderTags(width int) string {
	tags := e.machine.Tags()
	if len(tags) == 0 {
		return ""
	}

	var lines []string
	var line []string
	lineWidth := 0
	for i, tag := range tags {
		pill := renderPill(tag, i == e.tagCursor)
		w := lipgloss.Width(pill)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		if lineWidth > 0 {
			lineWidth++
		}
		line = append(line, pill)
		lineWidth += w
	}
	lines = append(lines, strings.Join(line, " "))
	return strings.Join(lines, "\n")
}

func renderPill(tag models.Tag, selected bool) string {
	color := models.GetTagColor(tag.Name, tag.Field("color"))
	if !models.IsHierarchicalTag(tag.Name) {
		return tagPillStyle(color, selected).Render(tag.Name)
	}

	// Parent path dimmed, leaf on the tag colour
	parent := DimStyle.Render(models.GetTagParent(tag.Name) + "/")
	return parent + tagPillStyle(color, selected).Render(models.GetTagLeaf(tag.Name))
}

// renderSuggestions lists the current options with the query highlighted
// and the active option marked
func (e *Editor) renderSuggestions(width int) string {
	options := e.machine.Options()
	active := e.machine.Index()
	query := e.machine.HighlightedQuery()

	var lines []string
	for i, option := range options {
		label := truncate.StringWithTail(option.Name, uint(width-4), "…")

		var text string
		switch {
		case option.Placeholder:
			text = PlaceholderStyle.Render(label)
		case option.Disabled:
			text = DisabledStyle.Render(label)
		default:
			text = renderHighlighted(label, query)
		}

		if i == active {
			lines = append(lines, SelectedStyle.Render("▸ ")+text)
		} else {
			lines = append(lines, "  "+text)
		}
	}
	return strings.Join(lines, "\n")
}

func renderHighlighted(label, query string) string {
	var b strings.Builder
	for _, seg := range suggest.Highlight(label, query) {
		if seg.Matched {
			b.WriteString(MarkStyle.Render(seg.Text))
		} else {
			b.WriteString(NormalStyle.Render(seg.Text))
		}
	}
	return b.String()
}

func (e *Editor) renderStatus() string {
	style := StatusStyle
	switch {
	case e.statusLevel >= slog.LevelError:
		style = ErrorStyle
	case e.statusLevel >= slog.LevelWarn:
		style = WarningStyle
	}
	return style.Render(wordwrap.String(e.status, e.width-2))
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

// Summary describes the committed tags for the terminal after the program
// exits
func Summary(tags []models.Tag) string {
	if len(tags) == 0 {
		return "No tags selected"
	}
	return fmt.Sprintf("%d tag(s): %s", len(tags), joinNames(models.TagNames(tags)))
}
