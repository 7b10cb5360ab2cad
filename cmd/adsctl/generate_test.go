package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/fixtures"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
)

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatJSON, fixtures.Report()))

	var got models.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *fixtures.Report(), got)
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatYAML, fixtures.Report()))

	assert.Contains(t, buf.String(), "competitorResearch:")
	assert.Contains(t, buf.String(), "days1_3:")

	var got models.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1500.0, got.PlacementsAndBudget.DailyBudgetINR)
	assert.Len(t, got.CompetitorResearch, 4)
}

func TestWriteReport_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatMarkdown, fixtures.Report()))

	assert.Contains(t, buf.String(), "## Placements & Budget")
}

func TestWriteReport_Terminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatTerminal, fixtures.Report()))

	assert.Contains(t, buf.String(), "TREND INSIGHTS")
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"terminal", "markdown", "json", "yaml"} {
		assert.NoError(t, validateFormat(f))
	}
	assert.EqualError(t, validateFormat("pdf"), `unknown format "pdf": must be terminal, markdown, json or yaml`)
}

func TestGenerateCmd_RejectsEmptyInput(t *testing.T) {
	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"--niche", "  ", "--location", "Pune"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	assert.EqualError(t, err, "Both fields are required.")
}

func TestGenerateCmd_RejectsUnknownFormat(t *testing.T) {
	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"--format", "pdf"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.Execute(), "unknown format")
}
