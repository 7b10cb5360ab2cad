// Package render projects a Report into display-ready view models. The HTML
// page, the Markdown writer and the terminal writer all build on the same
// projections, so every surface shows the same seven sections.
package render

import (
	"strings"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
)

const (
	TitleCompetitors = "Competitor Research"
	TitleTrends      = "Trend Insights"
	TitleAudience    = "Target Audience"
	TitleCreatives   = "Creative Recommendations"
	TitleBudget      = "Placements & Budget"
	TitleTimeline    = "7-Day Action Plan"
	TitleTips        = "Pro Tips"
)

// Section IDs double as HTML anchors.
const (
	SectionCompetitors = "competitors"
	SectionTrends      = "trends"
	SectionAudience    = "audience"
	SectionCreatives   = "creatives"
	SectionBudget      = "budget"
	SectionTimeline    = "timeline"
	SectionTips        = "tips"
)

// Section is one titled block of the report. Body holds the projection for
// the section: []CompetitorCard, []TrendLine, AudienceView, CreativeList,
// BudgetView, []TimelineStep or []string.
type Section struct {
	ID    string
	Title string
	Body  any
}

type CompetitorCard struct {
	Name     string
	Products string
	Audience string
	AdStyle  string
}

type TrendLine struct {
	Insight     string
	Explanation string
}

func (t TrendLine) String() string { return t.Insight + ": " + t.Explanation }

type AudienceView struct {
	Location  string
	AgeRanges string
	Gender    string
	Languages string
	// Tags is interests followed by behaviors, rendered as one tag cloud.
	Tags      []string
	Rationale string
}

type CreativeCard struct {
	Direction string
	Hook      string
	AdCopy    string
	CTA       string
	Visual    string
}

type CreativeList struct {
	Items []CreativeCard
	// TrendingStyles comes from the first creative only and is shown once
	// after the whole list.
	TrendingStyles string
}

type BudgetView struct {
	Placements      string
	DailyBudget     string
	ScalingStrategy string
}

type TimelineStep struct {
	Days  string
	Phase string
	Plan  string
}

// View assembles the seven sections in display order.
func View(r *models.Report) []Section {
	return []Section{
		{ID: SectionCompetitors, Title: TitleCompetitors, Body: Competitors(r)},
		{ID: SectionTrends, Title: TitleTrends, Body: Trends(r)},
		{ID: SectionAudience, Title: TitleAudience, Body: Audience(r)},
		{ID: SectionCreatives, Title: TitleCreatives, Body: Creatives(r)},
		{ID: SectionBudget, Title: TitleBudget, Body: Budget(r)},
		{ID: SectionTimeline, Title: TitleTimeline, Body: Timeline(r)},
		{ID: SectionTips, Title: TitleTips, Body: Tips(r)},
	}
}

func Competitors(r *models.Report) []CompetitorCard {
	cards := make([]CompetitorCard, 0, len(r.CompetitorResearch))
	for _, c := range r.CompetitorResearch {
		cards = append(cards, CompetitorCard{
			Name:     c.Name,
			Products: c.Products,
			Audience: c.Audience,
			AdStyle:  c.AdStyle,
		})
	}
	return cards
}

func Trends(r *models.Report) []TrendLine {
	lines := make([]TrendLine, 0, len(r.TrendInsights))
	for _, t := range r.TrendInsights {
		lines = append(lines, TrendLine{Insight: t.Insight, Explanation: t.Explanation})
	}
	return lines
}

func Audience(r *models.Report) AudienceView {
	a := r.TargetAudience
	tags := make([]string, 0, len(a.Interests)+len(a.Behaviors))
	tags = append(tags, a.Interests...)
	tags = append(tags, a.Behaviors...)

	return AudienceView{
		Location:  a.Location,
		AgeRanges: strings.Join(a.AgeRanges, ", "),
		Gender:    a.Gender,
		Languages: strings.Join(a.Languages, ", "),
		Tags:      tags,
		Rationale: a.Rationale,
	}
}

func Creatives(r *models.Report) CreativeList {
	list := CreativeList{Items: make([]CreativeCard, 0, len(r.CreativeRecommendations))}
	for _, c := range r.CreativeRecommendations {
		list.Items = append(list.Items, CreativeCard{
			Direction: c.Direction,
			Hook:      c.Hook,
			AdCopy:    c.AdCopy,
			CTA:       c.CTA,
			Visual:    c.VisualSuggestion,
		})
	}
	if len(r.CreativeRecommendations) > 0 {
		list.TrendingStyles = r.CreativeRecommendations[0].TrendingStyles
	}
	return list
}

func Budget(r *models.Report) BudgetView {
	pb := r.PlacementsAndBudget
	return BudgetView{
		Placements:      pb.Placements,
		DailyBudget:     FormatINR(pb.DailyBudgetINR),
		ScalingStrategy: pb.ScalingStrategy,
	}
}

// Timeline always returns exactly three steps.
func Timeline(r *models.Report) []TimelineStep {
	p := r.ActionPlan
	return []TimelineStep{
		{Days: "Days 1-3", Phase: "Testing Phase", Plan: p.Days1To3},
		{Days: "Days 4-5", Phase: "Monitoring & Optimization", Plan: p.Days4To5},
		{Days: "Days 6-7", Phase: "Scaling & Retargeting", Plan: p.Days6To7},
	}
}

func Tips(r *models.Report) []string {
	tips := make([]string, 0, len(r.ProTips))
	for _, t := range r.ProTips {
		tips = append(tips, t.Tip)
	}
	return tips
}
