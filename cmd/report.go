package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/kass/location-history/pkg/history"
	"github.com/kass/location-history/pkg/models"
)

var (
	// Styles
	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))
)

func printSummary(w io.Writer, sel *selection) {
	fmt.Fprintln(w, sel.summary.Report())
	if len(sel.selected) != len(sel.records) {
		fmt.Fprintf(w, "%s %s of %d\n",
			dimStyle.Render("Selected:"), statStyle.Render(fmt.Sprintf("%d", len(sel.selected))), len(sel.records))
	}
	fmt.Fprintf(w, "%s %s\n",
		dimStyle.Render("With altitude:"), statStyle.Render(fmt.Sprintf("%d", sel.picked.WithAltitude)))
	fmt.Fprintf(w, "%s %s\n",
		dimStyle.Render("Distance:"), statStyle.Render(fmt.Sprintf("%.1f km", sel.picked.DistanceKm)))
}

func printBox(w io.Writer, label string, box models.BoundingBox) {
	fmt.Fprintln(w, subtitleStyle.Render(label))
	fmt.Fprintf(w, "  lat: %.7f .. %.7f\n", box.MinLat(), box.MaxLat())
	fmt.Fprintf(w, "  lon: %.7f .. %.7f\n", box.MinLon(), box.MaxLon())
}

// boundsReport is the --json form of the bounds command
type boundsReport struct {
	Summary  history.Summary    `json:"summary"`
	Selected int                `json:"selected"`
	Raw      models.BoundingBox `json:"raw"`
	Padded   models.BoundingBox `json:"padded"`
	Padding  history.Padding    `json:"padding"`
}

func writeBoundsJSON(w io.Writer, sel *selection, raw, padded models.BoundingBox, padding history.Padding) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(boundsReport{
		Summary:  sel.summary,
		Selected: len(sel.selected),
		Raw:      raw,
		Padded:   padded,
		Padding:  padding,
	}); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
