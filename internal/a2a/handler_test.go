package a2a

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/agent"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/fixtures"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/mocks"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, gen generator.Generator) *gin.Engine {
	t.Helper()
	card, err := agent.LoadCard()
	require.NoError(t, err)

	h := NewHandler(gen, card, zap.NewNop())
	r := gin.New()
	r.POST(EndpointPath, h.HandleStrategist)
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	return r
}

func post(t *testing.T, r http.Handler, body string) JSONRPCResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, EndpointPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func taskOf(t *testing.T, resp JSONRPCResponse) TaskResult {
	t.Helper()
	require.Nil(t, resp.Error)
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var task TaskResult
	require.NoError(t, json.Unmarshal(raw, &task))
	return task
}

func rpc(method string, parts string) string {
	return `{"jsonrpc":"2.0","id":"req-1","method":"` + method + `","params":{"message":{"kind":"message","role":"user","messageId":"m1","contextId":"ctx-9","parts":` + parts + `}}}`
}

func TestHandleStrategist_DataPart(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, "Handcrafted leather bags", "Jaipur, Rajasthan").
		Return(fixtures.Report(), nil).Once()
	r := newRouter(t, gen)

	resp := post(t, r, rpc("message/send", `[{"kind":"data","data":{"niche":" Handcrafted leather bags ","location":"Jaipur, Rajasthan"}}]`))

	assert.Equal(t, "req-1", resp.ID)
	task := taskOf(t, resp)
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.Equal(t, "ctx-9", task.ContextID)
	require.NotNil(t, task.Status.Message)
	text := task.Status.Message.Parts[0].Text
	assert.True(t, strings.HasPrefix(text, "# Meta Ads Strategy: Handcrafted leather bags in Jaipur, Rajasthan"))
	assert.Contains(t, text, "## 7-Day Action Plan")

	require.Len(t, task.Artifacts, 2)
	data := task.Artifacts[1].Parts[0]
	assert.Equal(t, KindData, data.Kind)
	var report models.Report
	require.NoError(t, json.Unmarshal(data.Data, &report))
	assert.Equal(t, *fixtures.Report(), report)
}

func TestHandleStrategist_TextInputs(t *testing.T) {
	tests := []struct {
		name     string
		parts    string
		niche    string
		location string
	}{
		{"pipe", `[{"kind":"text","text":"Organic honey | Pune, Maharashtra"}]`, "Organic honey", "Pune, Maharashtra"},
		{"labelled lines", `[{"kind":"text","text":"Niche: Organic honey\nLocation: Pune, Maharashtra"}]`, "Organic honey", "Pune, Maharashtra"},
		{
			"history",
			`[{"kind":"data","data":[{"kind":"text","text":"<p>Organic honey | Pune</p>"},{"kind":"text","text":"Generating..."}]}]`,
			"Organic honey", "Pune",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := mocks.NewMockGenerator(t)
			gen.On("Generate", mock.Anything, tt.niche, tt.location).Return(fixtures.Report(), nil).Once()
			r := newRouter(t, gen)

			task := taskOf(t, post(t, r, rpc("agent/task", tt.parts)))

			assert.Equal(t, StateCompleted, task.Status.State)
		})
	}
}

func TestHandleStrategist_MissingLocation(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	r := newRouter(t, gen)

	task := taskOf(t, post(t, r, rpc("message/send", `[{"kind":"text","text":"Organic honey"}]`)))

	assert.Equal(t, StateFailed, task.Status.State)
	assert.Contains(t, task.Status.Message.Parts[0].Text, "Both fields are required.")
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleStrategist_GenerationFailure(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, "Organic honey", "Pune").
		Return(nil, &generator.GenerationError{Kind: generator.KindMalformedReport, Err: errors.New("bad")}).Once()
	r := newRouter(t, gen)

	task := taskOf(t, post(t, r, rpc("message/send", `[{"kind":"text","text":"Organic honey | Pune"}]`)))

	assert.Equal(t, StateFailed, task.Status.State)
	assert.Contains(t, task.Status.Message.Parts[0].Text, "invalid format")
	assert.Empty(t, task.Artifacts)
}

func TestHandleStrategist_DirectMessage(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	gen.On("Generate", mock.Anything, "Organic honey", "Pune").Return(fixtures.Report(), nil).Once()
	r := newRouter(t, gen)

	task := taskOf(t, post(t, r, `{"message":{"kind":"message","role":"user","parts":[{"kind":"text","text":"Organic honey | Pune"}]}}`))

	assert.Equal(t, StateCompleted, task.Status.State)
	assert.NotEmpty(t, task.ID)
}

func TestHandleStrategist_RPCErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"garbage", `not json`, CodeParseError},
		{"wrong version", `{"jsonrpc":"1.0","id":"1","method":"message/send","params":{}}`, CodeInvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","id":"1","method":"tasks/cancel","params":{}}`, CodeMethodNotFound},
		{"bad params", `{"jsonrpc":"2.0","id":"1","method":"message/send","params":"nope"}`, CodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(t, mocks.NewMockGenerator(t))

			resp := post(t, r, tt.body)

			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestServeAgentCard(t *testing.T) {
	r := newRouter(t, mocks.NewMockGenerator(t))

	req := httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil)
	req.Host = "ads.example.com"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var card agent.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "http://ads.example.com/a2a/strategist", card.URL)
	assert.Equal(t, "Meta Ads Strategist", card.Name)
}

func TestExtractInput_DataWinsOverText(t *testing.T) {
	msg := A2AMessage{Parts: []MessagePart{
		TextPart("Candles | Goa"),
		DataPart(map[string]string{"niche": "Organic honey", "location": "Pune"}),
	}}

	in := extractInput(msg)

	assert.Equal(t, "Organic honey", in.Niche)
	assert.Equal(t, "Pune", in.Location)
}
