package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1877F2")).
			MarginTop(1)
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1877F2")).
			Padding(0, 1)
	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245"))
	calloutStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#1877F2")).
			PaddingLeft(1)
)

// Terminal writes a styled plain-text rendering of the report to w.
func Terminal(w io.Writer, r *models.Report) error {
	var b strings.Builder

	field := func(label, value string) {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render(label+":"), value)
	}

	for _, s := range View(r) {
		b.WriteString(titleStyle.Render(strings.ToUpper(s.Title)))
		b.WriteString("\n")

		switch body := s.Body.(type) {
		case []CompetitorCard:
			for _, c := range body {
				b.WriteString(headingStyle.Render("• "+c.Name) + "\n")
				field("Products", c.Products)
				field("Audience", c.Audience)
				field("Ad style", c.AdStyle)
			}
		case []TrendLine:
			for _, t := range body {
				fmt.Fprintf(&b, "• %s %s\n", headingStyle.Render(t.Insight+":"), t.Explanation)
			}
		case AudienceView:
			field("Location", body.Location)
			field("Age ranges", body.AgeRanges)
			field("Gender", body.Gender)
			field("Languages", body.Languages)
			tags := make([]string, 0, len(body.Tags))
			for _, tag := range body.Tags {
				tags = append(tags, tagStyle.Render("#"+tag))
			}
			if len(tags) > 0 {
				b.WriteString("  " + strings.Join(tags, " ") + "\n")
			}
			b.WriteString(calloutStyle.Render(body.Rationale) + "\n")
		case CreativeList:
			for _, c := range body.Items {
				b.WriteString(headingStyle.Render("• "+c.Direction) + "\n")
				field("Hook", c.Hook)
				field("Ad copy", c.AdCopy)
				field("CTA", c.CTA)
				field("Visual", c.Visual)
			}
			if body.TrendingStyles != "" {
				b.WriteString(noteStyle.Render("Trending styles: "+body.TrendingStyles) + "\n")
			}
		case BudgetView:
			field("Placements", body.Placements)
			field("Daily budget", body.DailyBudget)
			field("Scaling", body.ScalingStrategy)
		case []TimelineStep:
			for _, step := range body {
				b.WriteString(headingStyle.Render(step.Days+" · "+step.Phase) + "\n")
				b.WriteString("  " + step.Plan + "\n")
			}
		case []string:
			for _, tip := range body {
				b.WriteString("• " + tip + "\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
