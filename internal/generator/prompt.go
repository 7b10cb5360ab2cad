package generator

import "fmt"

func buildPrompt(niche, location string) string {
	return fmt.Sprintf(`You are an expert Meta Ads media buyer and market research analyst.
Produce a complete Meta Ads strategy report for a business, using only the niche and city/state below.
Work out the competitor analysis, trend analysis and audience targeting yourself.

INPUTS:
Niche/Product: %s
City/State: %s

OUTPUT:
Return one JSON object that follows the provided response schema. Do not add any other text.

RULES:
- Be practical and data-driven.
- When real-time data is unavailable, infer it and label it "inferred" (for example a competitor called "Inferred Local Boutique").
- Never fabricate URLs.
- The report must be ready to use when launching campaigns in Meta Ads Manager.
- Provide 3-5 competitors, 3 trend insights, 6-10 interests, 2-3 behaviors, 2 creative directions and 2-3 pro tips.
- The daily budget is a number in INR.
- Combine trending creative styles into a single string in the "trendingStyles" field.`, niche, location)
}
