// Package server wires the documentation service into an MCP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/paymanai/payman-docs-mcp/pkg/config"
	"github.com/paymanai/payman-docs-mcp/pkg/docs"
	"github.com/paymanai/payman-docs-mcp/pkg/tokens"
	"github.com/paymanai/payman-docs-mcp/pkg/toolspec"
)

const serverName = "payman-docs"

// httpShutdownTimeout bounds how long in-flight HTTP requests may drain after
// the context ends.
const httpShutdownTimeout = 5 * time.Second

// QuickstartResourceURI is the fixed identifier of the quickstart resource.
const QuickstartResourceURI = "docs://quickstart"

// Server exposes the documentation operations as MCP tools over stdio or
// streamable HTTP.
type Server struct {
	cfg        config.Config
	docs       *docs.Service
	log        zerolog.Logger
	mcp        *mcp.Server
	instanceID string
}

// New builds the MCP server and registers the five documentation tools and
// the quickstart resource.
func New(cfg config.Config, service *docs.Service, log zerolog.Logger, version string) *Server {
	s := &Server{
		cfg:        cfg,
		docs:       service,
		log:        log,
		mcp:        mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil),
		instanceID: uuid.NewString(),
	}
	s.registerTools()
	s.registerResources()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolspec.GetDocumentationName,
		Description: toolspec.GetDocumentationDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Get Documentation"},
		InputSchema: toolspec.GetDocumentationSchema(),
	}, s.handleGetDocumentation)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolspec.SearchDocumentationName,
		Description: toolspec.SearchDocumentationDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Search Documentation"},
		InputSchema: toolspec.SearchDocumentationSchema(),
	}, s.handleSearchDocumentation)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolspec.GetCodeExamplesName,
		Description: toolspec.GetCodeExamplesDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Get Code Examples"},
		InputSchema: toolspec.GetCodeExamplesSchema(),
	}, s.handleGetCodeExamples)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolspec.SolveProblemName,
		Description: toolspec.SolveProblemDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Solve Problem"},
		InputSchema: toolspec.SolveProblemSchema(),
	}, s.handleSolveProblem)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolspec.GetSDKHelpName,
		Description: toolspec.GetSDKHelpDescription,
		Annotations: &mcp.ToolAnnotations{Title: "Get SDK Help"},
		InputSchema: toolspec.GetSDKHelpSchema(),
	}, s.handleGetSDKHelp)
}

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         QuickstartResourceURI,
		Name:        "quickstart",
		Description: "The Payman quickstart guide",
		MIMEType:    "text/markdown",
	}, s.handleQuickstartResource)
}

type getDocumentationInput struct {
	Topic string `json:"topic"`
}

type searchDocumentationInput struct {
	Query string `json:"query"`
}

type getCodeExamplesInput struct {
	Feature  string `json:"feature"`
	Language string `json:"language,omitempty"`
}

type solveProblemInput struct {
	Problem string `json:"problem"`
	SDK     string `json:"sdk,omitempty"`
}

type getSDKHelpInput struct {
	SDK     string `json:"sdk"`
	Feature string `json:"feature"`
}

func (s *Server) handleGetDocumentation(ctx context.Context, _ *mcp.CallToolRequest, input getDocumentationInput) (*mcp.CallToolResult, any, error) {
	log := s.callLogger(toolspec.GetDocumentationName).With().Str("topic", input.Topic).Logger()
	out, err := s.docs.GetDocumentation(ctx, docs.TopicID(input.Topic))
	if err != nil {
		log.Warn().Err(err).Msg("Tool call rejected")
		return nil, nil, err
	}
	s.logResponse(log, out)
	return textResult(out), nil, nil
}

func (s *Server) handleSearchDocumentation(ctx context.Context, _ *mcp.CallToolRequest, input searchDocumentationInput) (*mcp.CallToolResult, any, error) {
	log := s.callLogger(toolspec.SearchDocumentationName).With().Str("query", input.Query).Logger()
	out := s.docs.SearchDocumentation(ctx, input.Query)
	s.logResponse(log, out)
	return textResult(out), nil, nil
}

func (s *Server) handleGetCodeExamples(ctx context.Context, _ *mcp.CallToolRequest, input getCodeExamplesInput) (*mcp.CallToolResult, any, error) {
	sdk := docs.SDK(input.Language)
	if input.Language == "" {
		sdk = docs.SDKNode
	}
	log := s.callLogger(toolspec.GetCodeExamplesName).With().
		Str("feature", input.Feature).
		Str("language", string(sdk)).
		Logger()
	out := s.docs.GetCodeExamples(ctx, input.Feature, sdk)
	s.logResponse(log, out)
	return textResult(out), nil, nil
}

func (s *Server) handleSolveProblem(_ context.Context, _ *mcp.CallToolRequest, input solveProblemInput) (*mcp.CallToolResult, any, error) {
	log := s.callLogger(toolspec.SolveProblemName).With().Str("sdk", input.SDK).Logger()
	out := s.docs.SolveProblem(input.Problem, docs.SDK(input.SDK))
	s.logResponse(log, out)
	return textResult(out), nil, nil
}

func (s *Server) handleGetSDKHelp(ctx context.Context, _ *mcp.CallToolRequest, input getSDKHelpInput) (*mcp.CallToolResult, any, error) {
	log := s.callLogger(toolspec.GetSDKHelpName).With().
		Str("sdk", input.SDK).
		Str("feature", input.Feature).
		Logger()
	out := s.docs.GetSDKHelp(ctx, docs.SDK(input.SDK), input.Feature)
	s.logResponse(log, out)
	return textResult(out), nil, nil
}

func (s *Server) handleQuickstartResource(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	content, err := s.docs.Document(ctx, docs.TopicQuickstart)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      QuickstartResourceURI,
			MIMEType: "text/markdown",
			Text:     content,
		}},
	}, nil
}

// callLogger binds a fresh call ID into the logger for one tool invocation.
func (s *Server) callLogger(tool string) zerolog.Logger {
	return s.log.With().
		Str("tool", tool).
		Str("call_id", xid.New().String()).
		Logger()
}

func (s *Server) logResponse(log zerolog.Logger, payload string) {
	evt := log.Info().Int("response_chars", len(payload))
	if s.cfg.Tokens.IsEnabled() {
		if count, err := tokens.Estimate(payload, s.cfg.Tokens.Model); err == nil {
			evt = evt.Int("approx_tokens", count)
		}
	}
	evt.Msg("Tool call served")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// Run serves MCP over stdio until the context ends or the client closes the
// stream.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().
		Str("instance_id", s.instanceID).
		Str("base_url", s.docs.BaseURL()).
		Msg("Starting MCP server on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler exposes the server over the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

// ListenAndServe serves MCP over streamable HTTP on addr until the context
// ends, then shuts the listener down and drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.log.Info().
		Str("instance_id", s.instanceID).
		Str("addr", addr).
		Str("base_url", s.docs.BaseURL()).
		Msg("Starting MCP server on HTTP")
	httpSrv := &http.Server{Addr: addr, Handler: s.HTTPHandler()}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("HTTP server did not drain cleanly")
		}
	}()
	err := httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-drained
		s.log.Info().Str("addr", addr).Msg("HTTP server stopped")
		return nil
	}
	return err
}
