package a2a

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/meta-ads-strategist/internal/agent"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/form"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/generator"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/models"
	"github.com/BerylCAtieno/meta-ads-strategist/internal/render"
)

const (
	// EndpointPath is where the JSON-RPC endpoint is mounted.
	EndpointPath = "/a2a/strategist"

	maxBodyBytes = 1 << 20

	inputHint = `Send "<niche> | <city, state>", e.g. "Handcrafted leather bags | Jaipur, Rajasthan".`
)

type Handler struct {
	gen    generator.Generator
	card   *agent.Card
	logger *zap.Logger
}

func NewHandler(gen generator.Generator, card *agent.Card, logger *zap.Logger) *Handler {
	return &Handler{
		gen:    gen,
		card:   card,
		logger: logger.Named("a2a"),
	}
}

// HandleStrategist processes A2A messages. Bodies that are not JSON-RPC
// envelopes are tried as bare message params.
func (h *Handler) HandleStrategist(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil || rpcReq.JSONRPC == "" {
		h.handleDirectMessage(c, body)
		return
	}

	if rpcReq.JSONRPC != jsonRPCVersion {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *Handler) handleDirectMessage(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	taskID := uuid.NewString()
	h.sendSuccessResponse(c, taskID, h.run(c, taskID, params.Message))
}

func (h *Handler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var params MessageParams
	if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	taskID := params.Message.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}
	result := h.run(c, taskID, params.Message)
	result.ContextID = params.Message.ContextID
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// run executes one generation cycle for a message and always yields a task;
// failures are reported as failed tasks rather than JSON-RPC errors.
func (h *Handler) run(c *gin.Context, taskID string, msg A2AMessage) TaskResult {
	in := extractInput(msg)
	if err := in.Validate(); err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			return createErrorTaskResult(taskID, verr.Message+" "+inputHint)
		}
		return createErrorTaskResult(taskID, err.Error())
	}

	h.logger.Info("generating report",
		zap.String("task_id", taskID),
		zap.String("niche", in.Niche),
		zap.String("location", in.Location),
	)

	report, err := h.gen.Generate(c.Request.Context(), in.Niche, in.Location)
	if err != nil {
		h.logger.Warn("report generation failed",
			zap.String("task_id", taskID),
			zap.String("kind", generator.KindOf(err).String()),
		)
		return createErrorTaskResult(taskID, generator.UserMessage(err))
	}

	return createSuccessTaskResult(taskID, in, report)
}

// ServeAgentCard serves the agent card with the URL of this deployment.
func (h *Handler) ServeAgentCard(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	c.JSON(http.StatusOK, h.card.WithURL(scheme+"://"+c.Request.Host+EndpointPath))
}

func createSuccessTaskResult(taskID string, in form.Input, report *models.Report) TaskResult {
	text := formatReport(in, report)

	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.NewString(),
				Name:       "Meta Ads Strategy",
				Parts:      []MessagePart{TextPart(text)},
			},
			{
				ArtifactID: uuid.NewString(),
				Name:       "Meta Ads Strategy Data",
				Parts:      []MessagePart{DataPart(report)},
			},
		},
	}
}

func createErrorTaskResult(taskID string, errorMsg string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(errorMsg)},
			},
		},
	}
}

func formatReport(in form.Input, report *models.Report) string {
	return fmt.Sprintf("# Meta Ads Strategy: %s in %s\n\n%s", in.Niche, in.Location, render.Markdown(report))
}

func (h *Handler) sendSuccessResponse(c *gin.Context, id string, result TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK.
func (h *Handler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	h.logger.Warn("rejecting A2A request",
		zap.Int("code", code),
		zap.String("message", message),
	)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
