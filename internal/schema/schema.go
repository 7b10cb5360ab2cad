// Package schema describes the JSON shape the generation service must emit
// and validates decoded payloads against it. Provider clients convert the
// same description into their own request schema types.
package schema

// Type is a JSON value type understood by every provider.
type Type string

const (
	TypeObject Type = "object"
	TypeArray  Type = "array"
	TypeString Type = "string"
	TypeNumber Type = "number"
)

// Property is a named member of an object schema. Properties keep their
// declaration order so converted schemas and error paths are stable.
type Property struct {
	Name   string
	Schema *Schema
}

type Schema struct {
	Type        Type
	Description string
	Properties  []Property
	Required    []string
	Items       *Schema
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

func (s *Schema) isRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

func str(desc string) *Schema {
	return &Schema{Type: TypeString, Description: desc}
}

func strList(desc string) *Schema {
	return &Schema{Type: TypeArray, Description: desc, Items: &Schema{Type: TypeString}}
}

// object builds an object schema whose required list is every property
// except the ones named in optional.
func object(desc string, props []Property, optional ...string) *Schema {
	s := &Schema{Type: TypeObject, Description: desc, Properties: props}
outer:
	for _, p := range props {
		for _, o := range optional {
			if p.Name == o {
				continue outer
			}
		}
		s.Required = append(s.Required, p.Name)
	}
	return s
}

func list(desc string, item *Schema) *Schema {
	return &Schema{Type: TypeArray, Description: desc, Items: item}
}

// Report returns the output schema of a Meta Ads strategy report. A fresh
// value is built on every call so callers may not alias each other.
func Report() *Schema {
	competitor := object("A competitor active in the niche and city.", []Property{
		{"name", str("Competitor or inferred business name.")},
		{"products", str("Main products or services.")},
		{"audience", str("Who the competitor sells to.")},
		{"adStyle", str("How the competitor advertises.")},
	})

	trend := object("A current market or creative trend.", []Property{
		{"insight", str("Short trend headline.")},
		{"explanation", str("Why the trend matters for the campaign.")},
	})

	audience := object("Meta Ads targeting recommendation.", []Property{
		{"location", str("Geographic targeting.")},
		{"ageRanges", strList("Age ranges to target.")},
		{"gender", str("Gender targeting.")},
		{"languages", strList("Languages to target.")},
		{"interests", strList("Detailed targeting interests.")},
		{"behaviors", strList("Detailed targeting behaviors.")},
		{"rationale", str("Why this audience fits.")},
	})

	creative := object("One creative direction.", []Property{
		{"direction", str("Creative concept name.")},
		{"hook", str("Opening hook for the first three seconds.")},
		{"adCopy", str("Primary text for the ad.")},
		{"cta", str("Call to action button text.")},
		{"visualSuggestion", str("What the visual should show.")},
		{"trendingStyles", str("Trending creative styles combined into one string.")},
	}, "trendingStyles")

	budget := object("Placements and starting budget.", []Property{
		{"placements", str("Recommended Meta placements.")},
		{"dailyBudgetINR", &Schema{Type: TypeNumber, Description: "Starting daily budget in Indian rupees."}},
		{"scalingStrategy", str("How to scale spend.")},
	})

	plan := object("Seven day launch plan.", []Property{
		{"days1_3", str("Testing phase actions.")},
		{"days4_5", str("Monitoring and optimization actions.")},
		{"days6_7", str("Scaling and retargeting actions.")},
	})

	tip := object("A practical tip.", []Property{
		{"tip", str("The tip text.")},
	})

	return object("Meta Ads strategy report.", []Property{
		{"competitorResearch", list("Competitor research.", competitor)},
		{"trendInsights", list("Trend insights.", trend)},
		{"targetAudience", audience},
		{"creativeRecommendations", list("Creative recommendations.", creative)},
		{"placementsAndBudget", budget},
		{"actionPlan", plan},
		{"proTips", list("Pro tips.", tip)},
	})
}
