// Package fixtures holds a canned generation payload shared by package tests.
package fixtures

import (
	_ "embed"
	"encoding/json"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
)

// ReportJSON is a complete, schema-conforming report for
// "Handcrafted leather bags" in "Jaipur, Rajasthan": 4 competitors, 3 trends,
// 2 creatives (only the first carries trendingStyles) and 2 pro tips.
//
//go:embed report.json
var ReportJSON string

// Report decodes ReportJSON. It panics on a broken fixture.
func Report() *models.Report {
	var r models.Report
	if err := json.Unmarshal([]byte(ReportJSON), &r); err != nil {
		panic("fixtures: invalid report.json: " + err.Error())
	}
	return &r
}
