package render

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
)

// Markdown renders the report as a Markdown document, one "##" heading per
// section. It is used for A2A text parts and the CLI markdown format.
func Markdown(r *models.Report) string {
	var b strings.Builder

	for i, s := range View(r) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", s.Title)

		switch body := s.Body.(type) {
		case []CompetitorCard:
			for _, c := range body {
				fmt.Fprintf(&b, "### %s\n", c.Name)
				fmt.Fprintf(&b, "- **Products:** %s\n", c.Products)
				fmt.Fprintf(&b, "- **Audience:** %s\n", c.Audience)
				fmt.Fprintf(&b, "- **Ad style:** %s\n\n", c.AdStyle)
			}
		case []TrendLine:
			for _, t := range body {
				fmt.Fprintf(&b, "- **%s:** %s\n", t.Insight, t.Explanation)
			}
		case AudienceView:
			fmt.Fprintf(&b, "- **Location:** %s\n", body.Location)
			fmt.Fprintf(&b, "- **Age ranges:** %s\n", body.AgeRanges)
			fmt.Fprintf(&b, "- **Gender:** %s\n", body.Gender)
			fmt.Fprintf(&b, "- **Languages:** %s\n", body.Languages)
			if len(body.Tags) > 0 {
				fmt.Fprintf(&b, "- **Interests & behaviors:** %s\n", strings.Join(body.Tags, ", "))
			}
			fmt.Fprintf(&b, "\n> %s\n", body.Rationale)
		case CreativeList:
			for _, c := range body.Items {
				fmt.Fprintf(&b, "### %s\n", c.Direction)
				fmt.Fprintf(&b, "- **Hook:** %s\n", c.Hook)
				fmt.Fprintf(&b, "- **Ad copy:** %s\n", c.AdCopy)
				fmt.Fprintf(&b, "- **CTA:** %s\n", c.CTA)
				fmt.Fprintf(&b, "- **Visual:** %s\n\n", c.Visual)
			}
			if body.TrendingStyles != "" {
				fmt.Fprintf(&b, "_Trending styles: %s_\n", body.TrendingStyles)
			}
		case BudgetView:
			fmt.Fprintf(&b, "- **Placements:** %s\n", body.Placements)
			fmt.Fprintf(&b, "- **Daily budget:** %s\n", body.DailyBudget)
			fmt.Fprintf(&b, "- **Scaling strategy:** %s\n", body.ScalingStrategy)
		case []TimelineStep:
			for _, step := range body {
				fmt.Fprintf(&b, "- **%s (%s):** %s\n", step.Days, step.Phase, step.Plan)
			}
		case []string:
			for _, tip := range body {
				fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(tip))
			}
		}
	}

	return b.String()
}
