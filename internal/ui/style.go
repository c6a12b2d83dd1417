// Package ui renders resolved streams for a terminal and lets the user pick one.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reel/internal/media"
)

var (
	accentColor = lipgloss.Color("#89b4fa")
	faintColor  = lipgloss.Color("#6c7086")
	greenColor  = lipgloss.Color("#a6e3a1")
	yellowColor = lipgloss.Color("#f9e2af")

	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	faintStyle  = lipgloss.NewStyle().Foreground(faintColor)
	badgeStyle  = lipgloss.NewStyle().Foreground(greenColor)
	cachedStyle = lipgloss.NewStyle().Foreground(yellowColor)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
)

// Details is the one-line summary shown under a stream's label.
func Details(r media.StreamResult) string {
	parts := []string{
		badgeStyle.Render(r.Quality()),
		strings.ToUpper(string(r.Format)),
		string(r.Meta.CountryCode),
	}
	if r.TTL > 0 {
		parts = append(parts, cachedStyle.Render(fmt.Sprintf("ttl %ds", r.TTL)))
	} else {
		parts = append(parts, cachedStyle.Render("no cache"))
	}
	return strings.Join(parts, " • ")
}

// RenderResults formats results as a styled, human-readable block.
func RenderResults(results []media.StreamResult) string {
	var sb strings.Builder

	title := "Streams"
	if len(results) > 0 && results[0].Meta.Title != "" {
		title = results[0].Meta.Title
	}
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n\n")

	for i, r := range results {
		fmt.Fprintf(&sb, "%s %s\n", faintStyle.Render(fmt.Sprintf("%d.", i+1)), labelStyle.Render(r.Label))
		fmt.Fprintf(&sb, "   %s\n", Details(r))
		fmt.Fprintf(&sb, "   %s\n", faintStyle.Render(r.SourceID))
		fmt.Fprintf(&sb, "   %s\n", r.URL)
	}

	return sb.String()
}
