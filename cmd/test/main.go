package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/form"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/schema"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	testStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

const testNames = "all, health, agent-card, report, a2a"

type TestClient struct {
	baseURL  string
	niche    string
	location string
	client   *http.Client
	out      io.Writer
}

func NewTestClient(baseURL string, out io.Writer) *TestClient {
	return &TestClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		niche:    form.DefaultNiche,
		location: form.DefaultLocation,
		client: &http.Client{
			// A generation can take most of the server's 90s budget.
			Timeout: 2 * time.Minute,
		},
		out: out,
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: "+testNames)
	niche := flag.String("niche", form.DefaultNiche, "Niche used by the report and a2a tests")
	location := flag.String("location", form.DefaultLocation, "City/state used by the report and a2a tests")
	flag.Parse()

	tc := NewTestClient(*baseURL, os.Stdout)
	tc.niche, tc.location = *niche, *location

	tc.printHeader("Meta Ads Strategist - Test Suite")
	fmt.Fprintf(tc.out, "%s\n\n", testStyle.Render("Base URL: "+tc.baseURL))

	os.Exit(tc.run(*testType))
}

// run executes the named test and returns the process exit code.
func (tc *TestClient) run(testType string) int {
	tests := map[string]func() bool{
		"health":     tc.testHealthCheck,
		"agent-card": tc.testAgentCard,
		"report":     tc.testReport,
		"a2a":        tc.testA2A,
	}

	if testType == "all" {
		return tc.runAllTests()
	}
	fn, ok := tests[testType]
	if !ok {
		tc.printError(fmt.Sprintf("Unknown test type: %s", testType))
		fmt.Fprintf(tc.out, "\nAvailable tests: %s\n", testNames)
		return 1
	}
	if !fn() {
		return 1
	}
	return 0
}

func (tc *TestClient) runAllTests() int {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Report API", tc.testReport},
		{"A2A Report", tc.testA2A},
	}

	passed, failed := 0, 0
	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Fprintln(tc.out)
	}

	tc.printHeader("Test Summary")
	fmt.Fprintln(tc.out, successStyle.Render(fmt.Sprintf("Passed: %d", passed)))
	fmt.Fprintln(tc.out, errorStyle.Render(fmt.Sprintf("Failed: %d", failed)))
	fmt.Fprintf(tc.out, "Total: %d\n", passed+failed)

	if failed > 0 {
		return 1
	}
	return 0
}

func (tc *TestClient) testHealthCheck() bool {
	tc.printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.do(http.MethodGet, "/health", nil)
	if err != nil {
		tc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		tc.printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		tc.printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	tc.printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	tc.printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.do(http.MethodGet, "/.well-known/agent.json", nil)
	if err != nil {
		tc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		tc.printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var card map[string]any
	if err := json.Unmarshal(body, &card); err != nil {
		tc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	for _, field := range []string{"name", "description", "url", "version", "capabilities", "skills"} {
		if _, ok := card[field]; !ok {
			tc.printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	tc.printSuccess("Agent card is valid")
	tc.printJSON(body)
	return true
}

func (tc *TestClient) testReport() bool {
	tc.printTestHeader("Testing Report API")
	fmt.Fprintf(tc.out, "%s %s | %s\n\n", noteStyle.Render("Input:"), tc.niche, tc.location)

	payload, _ := json.Marshal(form.Input{Niche: tc.niche, Location: tc.location})
	status, body, err := tc.do(http.MethodPost, "/api/report", payload)
	if err != nil {
		tc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		tc.printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Fprintf(tc.out, "Response: %s\n", string(body))
		return false
	}

	if !tc.checkReport(body) {
		return false
	}
	tc.printSuccess("Report generated and matches the schema")
	return true
}

func (tc *TestClient) testA2A() bool {
	tc.printTestHeader("Testing A2A Report Generation")

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      "test-" + uuid.NewString(),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind":      "message",
				"role":      "user",
				"messageId": uuid.NewString(),
				"parts": []map[string]any{
					{"kind": "text", "text": tc.niche + " | " + tc.location},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}
	payload, _ := json.MarshalIndent(request, "", "  ")
	fmt.Fprintln(tc.out, noteStyle.Render("Request:"))
	fmt.Fprintln(tc.out, string(payload))

	status, body, err := tc.do(http.MethodPost, "/a2a/strategist", payload)
	if err != nil {
		tc.printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		tc.printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var response struct {
		Error  json.RawMessage `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
			Artifacts []struct {
				Name  string `json:"name"`
				Parts []struct {
					Kind string          `json:"kind"`
					Data json.RawMessage `json:"data"`
				} `json:"parts"`
			} `json:"artifacts"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		tc.printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(response.Error) > 0 {
		tc.printError("Request returned an error: " + string(response.Error))
		return false
	}
	if state := response.Result.Status.State; state != "completed" {
		tc.printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		for _, p := range response.Result.Status.Message.Parts {
			fmt.Fprintln(tc.out, p.Text)
		}
		return false
	}

	var data json.RawMessage
	for _, a := range response.Result.Artifacts {
		for _, p := range a.Parts {
			if p.Kind == "data" {
				data = p.Data
			}
		}
	}
	if data == nil {
		tc.printError("Missing report data artifact")
		return false
	}
	if !tc.checkReport(data) {
		return false
	}

	tc.printSuccess("A2A report generation completed successfully")
	fmt.Fprintln(tc.out, strings.Repeat("=", 80))
	for _, p := range response.Result.Status.Message.Parts {
		fmt.Fprintln(tc.out, p.Text)
	}
	fmt.Fprintln(tc.out, strings.Repeat("=", 80))
	return true
}

func (tc *TestClient) checkReport(body []byte) bool {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		tc.printError(fmt.Sprintf("Invalid JSON report: %v", err))
		return false
	}
	if err := schema.Validate(schema.Report(), raw); err != nil {
		tc.printError(fmt.Sprintf("Report does not match the schema: %v", err))
		return false
	}
	return true
}

func (tc *TestClient) do(method, path string, payload []byte) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Fprintf(tc.out, "%s %s\n", method, url)

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) printHeader(text string) {
	bar := strings.Repeat("=", len(text)+4)
	fmt.Fprintf(tc.out, "\n%s\n%s\n%s\n\n",
		headerStyle.Render(bar), headerStyle.Render("= "+text+" ="), headerStyle.Render(bar))
}

func (tc *TestClient) printTestHeader(text string) {
	fmt.Fprintln(tc.out, testStyle.Render("[TEST] "+text))
	fmt.Fprintln(tc.out, strings.Repeat("-", 80))
}

func (tc *TestClient) printSuccess(text string) {
	fmt.Fprintln(tc.out, successStyle.Render("✓ "+text))
}

func (tc *TestClient) printError(text string) {
	fmt.Fprintln(tc.out, errorStyle.Render("✗ "+text))
}

func (tc *TestClient) printJSON(data []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err == nil {
		fmt.Fprintf(tc.out, "\n%s\n%s\n", noteStyle.Render("Response:"), pretty.String())
	}
}
