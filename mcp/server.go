package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// ServerConfig wires protocol handling to the tool layer.
type ServerConfig struct {
	Info      ServerInfo
	ListTools func(ctx context.Context) []Tool
	CallTool  func(ctx context.Context, name string, arguments map[string]any) (ToolsCallResult, error)
	Logger    *slog.Logger
}

// Server runs one MCP session over a transport. Requests are dispatched
// sequentially: each invocation performs at most one outbound provider
// call before the next request is read.
type Server struct {
	transport Transport
	info      ServerInfo
	listTools func(ctx context.Context) []Tool
	callTool  func(ctx context.Context, name string, arguments map[string]any) (ToolsCallResult, error)
	logger    *slog.Logger
}

// NewServer creates a server for a given transport.
func NewServer(transport Transport, cfg ServerConfig) (*Server, error) {
	if transport == nil {
		return nil, errors.New("mcp: transport is nil")
	}
	if cfg.ListTools == nil {
		return nil, errors.New("mcp: ListTools handler is nil")
	}
	if cfg.CallTool == nil {
		return nil, errors.New("mcp: CallTool handler is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		transport: transport,
		info:      cfg.Info,
		listTools: cfg.ListTools,
		callTool:  cfg.CallTool,
		logger:    logger,
	}, nil
}

// Serve reads and dispatches messages until the transport ends or the
// context is cancelled. A clean end of input is not an error.
func (s *Server) Serve(ctx context.Context) error {
	for {
		message, err := s.transport.Receive(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		s.handle(ctx, message)
	}
}

func (s *Server) handle(ctx context.Context, message Message) {
	if message.IsNotification() {
		// notifications/initialized, close, and anything else a client
		// fires without expecting a reply.
		return
	}
	if message.Method == "" {
		// Not a request; nothing to dispatch.
		return
	}

	switch message.Method {
	case "initialize":
		s.reply(ctx, message.ID, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: map[string]any{
				"tools": map[string]any{},
			},
			ServerInfo: s.info,
		})
	case "ping":
		s.reply(ctx, message.ID, map[string]any{})
	case "tools/list":
		tools := s.listTools(ctx)
		if tools == nil {
			tools = []Tool{}
		}
		s.reply(ctx, message.ID, ToolsListResult{Tools: tools})
	case "tools/call":
		s.handleToolsCall(ctx, message)
	default:
		s.replyError(ctx, message.ID, CodeMethodNotFound, fmt.Sprintf("method %q not found", message.Method))
	}
}

func (s *Server) handleToolsCall(ctx context.Context, message Message) {
	var params ToolsCallParams
	if err := json.Unmarshal(message.Params, &params); err != nil {
		s.replyError(ctx, message.ID, CodeInvalidParams, fmt.Sprintf("invalid tools/call params: %v", err))
		return
	}

	invocationID := uuid.New().String()
	s.logger.Debug("tool call", "invocation_id", invocationID, "tool", params.Name)

	result, err := s.callTool(ctx, params.Name, params.Arguments)
	if err != nil {
		// Unknown tool is a protocol-level fault, not tool output.
		s.logger.Warn("tool call failed", "invocation_id", invocationID, "tool", params.Name, "error", err)
		s.replyError(ctx, message.ID, CodeInvalidParams, err.Error())
		return
	}
	s.reply(ctx, message.ID, result)
}

func (s *Server) reply(ctx context.Context, id json.RawMessage, result any) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.replyError(ctx, id, CodeInternalError, fmt.Sprintf("encode result: %v", err))
		return
	}
	s.send(ctx, Message{JSONRPC: jsonRPCVersion, ID: id, Result: raw})
}

func (s *Server) replyError(ctx context.Context, id json.RawMessage, code int, message string) {
	s.send(ctx, Message{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}

func (s *Server) send(ctx context.Context, message Message) {
	if err := s.transport.Send(ctx, message); err != nil {
		s.logger.Error("send response", "error", err)
	}
}
