package models

// Report is the structured output of one generation cycle. Every section is
// required; array minimums are requested in the prompt but not enforced.
type Report struct {
	CompetitorResearch      []Competitor    `json:"competitorResearch" yaml:"competitorResearch"`
	TrendInsights           []Trend         `json:"trendInsights" yaml:"trendInsights"`
	TargetAudience          Audience        `json:"targetAudience" yaml:"targetAudience"`
	CreativeRecommendations []Creative      `json:"creativeRecommendations" yaml:"creativeRecommendations"`
	PlacementsAndBudget     PlacementBudget `json:"placementsAndBudget" yaml:"placementsAndBudget"`
	ActionPlan              ActionPlan      `json:"actionPlan" yaml:"actionPlan"`
	ProTips                 []ProTip        `json:"proTips" yaml:"proTips"`
}

type Competitor struct {
	Name     string `json:"name" yaml:"name"`
	Products string `json:"products" yaml:"products"`
	Audience string `json:"audience" yaml:"audience"`
	AdStyle  string `json:"adStyle" yaml:"adStyle"`
}

type Trend struct {
	Insight     string `json:"insight" yaml:"insight"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

type Audience struct {
	Location  string   `json:"location" yaml:"location"`
	AgeRanges []string `json:"ageRanges" yaml:"ageRanges"`
	Gender    string   `json:"gender" yaml:"gender"`
	Languages []string `json:"languages" yaml:"languages"`
	Interests []string `json:"interests" yaml:"interests"`
	Behaviors []string `json:"behaviors" yaml:"behaviors"`
	Rationale string   `json:"rationale" yaml:"rationale"`
}

type Creative struct {
	Direction        string `json:"direction" yaml:"direction"`
	Hook             string `json:"hook" yaml:"hook"`
	AdCopy           string `json:"adCopy" yaml:"adCopy"`
	CTA              string `json:"cta" yaml:"cta"`
	VisualSuggestion string `json:"visualSuggestion" yaml:"visualSuggestion"`
	TrendingStyles   string `json:"trendingStyles,omitempty" yaml:"trendingStyles,omitempty"`
}

// PlacementBudget holds the spend recommendation. DailyBudgetINR is always in
// Indian rupees.
type PlacementBudget struct {
	Placements      string  `json:"placements" yaml:"placements"`
	DailyBudgetINR  float64 `json:"dailyBudgetINR" yaml:"dailyBudgetINR"`
	ScalingStrategy string  `json:"scalingStrategy" yaml:"scalingStrategy"`
}

// ActionPlan is a fixed three-phase week, not a variable-length list.
type ActionPlan struct {
	Days1To3 string `json:"days1_3" yaml:"days1_3"`
	Days4To5 string `json:"days4_5" yaml:"days4_5"`
	Days6To7 string `json:"days6_7" yaml:"days6_7"`
}

type ProTip struct {
	Tip string `json:"tip" yaml:"tip"`
}
