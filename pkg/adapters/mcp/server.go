// Package mcp exposes the survey engine as a Model Context Protocol server,
// so agent tooling can validate configs, dry-run answers and inspect the
// question graph without a REST client.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/internal/presentation/graph"
	"github.com/dialbird/canvass/pkg/survey"
)

// ValidationResult reports validator output for a candidate config.
type ValidationResult struct {
	Valid      bool               `json:"valid" jsonschema_description:"True when the config has no violations"`
	Violations []survey.Violation `json:"violations,omitempty" jsonschema_description:"Structural violations, empty when valid"`
}

// TurnResult carries a validated answer and its traversal outcome.
type TurnResult struct {
	Answer  *survey.Answer      `json:"answer,omitempty" jsonschema_description:"The normalized answer"`
	Outcome *survey.Outcome     `json:"outcome,omitempty" jsonschema_description:"The traversal outcome"`
	Reject  *survey.AnswerError `json:"reject,omitempty" jsonschema_description:"Set when the answer failed validation"`
}

// Server wraps the survey engine and exposes it as an MCP server.
type Server struct {
	engine    *canvass.Engine
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers tools and resources.
func NewServer(engine *canvass.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("canvass-mcp", strings.TrimSpace(canvass.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: validate_config
	validateTool := mcp.NewTool("validate_config",
		mcp.WithDescription("Validate a survey config, returning every structural violation."),
		mcp.WithString("config", mcp.Required(), mcp.Description("JSON survey config object")),
		mcp.WithOutputSchema[ValidationResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateConfig))

	// TOOL: submit_answer
	submitTool := mcp.NewTool("submit_answer",
		mcp.WithDescription("Validate an answer against a question and resolve the next step. Stateless dry run, no session is touched."),
		mcp.WithString("question_id", mcp.Required(), mcp.Description("ID of the question being answered")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("Raw answer: a plain string, or a JSON value for multi-select and numeric answers")),
		mcp.WithOutputSchema[TurnResult](),
	)
	s.mcpServer.AddTool(submitTool, mcp.NewStructuredToolHandler(s.handleSubmitAnswer))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the full question list for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidateConfig(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidationResult, error) {
	raw, _ := args["config"].(string)
	cfg, err := survey.DecodeJSON([]byte(raw))
	if err != nil {
		return ValidationResult{}, fmt.Errorf("config decode failed: %w", err)
	}
	vs := survey.Validate(cfg)
	return ValidationResult{Valid: len(vs) == 0, Violations: vs}, nil
}

func (s *Server) handleSubmitAnswer(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TurnResult, error) {
	questionID, _ := args["question_id"].(string)
	rawStr, _ := args["answer"].(string)

	// Accept JSON values (arrays, numbers) as well as plain strings.
	var raw any = rawStr
	var decoded any
	if err := json.Unmarshal([]byte(rawStr), &decoded); err == nil {
		switch decoded.(type) {
		case []any, float64, bool:
			raw = decoded
		}
	}

	ans, err := s.engine.ValidateAnswer(questionID, raw)
	if err != nil {
		if ae, ok := survey.AsAnswerError(err); ok {
			return TurnResult{Reject: ae}, nil
		}
		return TurnResult{}, err
	}

	outcome, err := s.engine.Advance(questionID, ans)
	if err != nil {
		return TurnResult{}, err
	}
	return TurnResult{Answer: &ans, Outcome: &outcome}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: canvass://graph
	s.mcpServer.AddResource(mcp.NewResource("canvass://graph", "Survey Question Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Inspect())
		if err != nil {
			return nil, fmt.Errorf("failed to inspect graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "canvass://graph",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: canvass://graph.mmd
	s.mcpServer.AddResource(mcp.NewResource("canvass://graph.mmd", "Survey Flow Diagram (Mermaid)",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "canvass://graph.mmd",
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(s.engine.Config(), nil),
			},
		}, nil
	})
}
