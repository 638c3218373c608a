package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/imamik/snapimage/internal/module"
	"github.com/imamik/snapimage/internal/snapshot"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

func validateOutput(format string) error {
	if format != OutputText && format != OutputJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}
	return nil
}

// render writes the report in the requested format.
func render(w io.Writer, format string, req snapshot.Request, rep snapshot.Report) error {
	if format == OutputJSON {
		return module.NewResponse(rep).Write(w)
	}
	_, err := io.WriteString(w, renderReport(req, rep))
	return err
}

// renderReport produces a lipgloss-styled summary of one reconciliation.
func renderReport(req snapshot.Request, rep snapshot.Report) string {
	var b strings.Builder

	action := snapshot.ActionCreate
	if req.State == snapshot.StateAbsent {
		action = snapshot.ActionDelete
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  snapimage %s: %s", action, req.ImageName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	res := rep.Result
	if res != nil {
		if len(res.Images) == 0 {
			b.WriteString(dimStyle.Render("  No matching images"))
			b.WriteString("\n")
		}
		for _, img := range res.Images {
			fmt.Fprintf(&b, "  %-10s %-24s %-8s %s\n",
				img.Image.ID, img.Image.Name, img.Image.Status, renderOutcome(img))
		}

		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Summary"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %-10s %t\n", "Changed:", res.Changed)
	}

	switch {
	case rep.Failed:
		fmt.Fprintf(&b, "  %-10s %s\n", "Result:", redStyle.Render(rep.Msg))
	case res != nil && res.Success != "":
		fmt.Fprintf(&b, "  %-10s %s\n", "Result:", greenStyle.Render(res.Success))
	default:
		fmt.Fprintf(&b, "  %-10s %s\n", "Result:", dimStyle.Render("requested"))
	}
	b.WriteString("\n")

	return b.String()
}

func renderOutcome(img snapshot.AffectedImage) string {
	switch {
	case img.Error != "":
		return redStyle.Render(img.Error)
	case img.Success != "":
		return greenStyle.Render(img.Success)
	default:
		return dimStyle.Render("pending")
	}
}

// renderImageList lists images for the confirmation prompt.
func renderImageList(images []snapshot.Image) string {
	lines := lo.Map(images, func(img snapshot.Image, _ int) string {
		created := "-"
		if !img.Created.IsZero() {
			created = img.Created.Format("2006-01-02 15:04")
		}
		return fmt.Sprintf("%s  %s  %s", img.ID, img.Status, created)
	})
	return strings.Join(lines, "\n")
}
