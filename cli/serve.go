package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"github.com/meridianhq/newswire/config"
	"github.com/meridianhq/newswire/mcp"
	"github.com/meridianhq/newswire/newsapi"
	newswireotel "github.com/meridianhq/newswire/otel"
	"github.com/meridianhq/newswire/tool"
)

// ServerVersion is stamped by main from the build version.
var ServerVersion = "dev"

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the news tools over MCP stdio",
		Long: "Run an MCP server on stdin/stdout publishing the get_today_news tool. " +
			"All logging goes to stderr; stdout carries protocol traffic only.",
		RunE: runServe,
	}

	cmd.Flags().String("config", "", "Path to newswire.yaml config")
	cmd.Flags().Duration("request-timeout", newsapi.DefaultTimeout, "Outbound provider request timeout")
	cmd.Flags().Duration("health-interval", 0, "Provider reachability probe interval (0 disables)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	explicitConfigPath, _ := cmd.Flags().GetString("config")
	requestTimeout, _ := cmd.Flags().GetDuration("request-timeout")
	healthInterval, _ := cmd.Flags().GetDuration("health-interval")

	cfg, err := config.Resolve(explicitConfigPath)
	if err != nil {
		return exitError(exitConfig, "resolving config: %v", err)
	}
	if !cmd.Flags().Changed("request-timeout") {
		requestTimeout = cfg.RequestTimeoutOrDefault(requestTimeout)
	}
	if !cmd.Flags().Changed("health-interval") {
		if d := time.Duration(cfg.HealthInterval); d > 0 {
			healthInterval = d
		}
	}

	// stdout is the protocol channel; logs must go to stderr.
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := newswireotel.Setup(ctx, cfg.OTLPEndpoint, "newswire", ServerVersion)
	if err != nil {
		return exitError(exitConfig, "initializing tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	observer, err := newswireotel.NewToolObserver(
		otelapi.GetMeterProvider().Meter("newswire/tool"),
		otelapi.GetTracerProvider().Tracer("newswire/tool"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing tool observability: %v", err)
	}
	tool.SetObserver(observer)
	defer tool.SetObserver(nil)

	client := newsapi.NewClient(newsapi.ClientConfig{
		APIKey:     cfg.APIKey,
		Endpoint:   cfg.Endpoint,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	})
	if !client.HasAPIKey() {
		// Recoverable: every invocation answers with a descriptive text
		// block until the credential appears in the environment.
		logger.Warn("no provider credential configured", "env", config.EnvAPIKey)
	}

	catalog := tool.NewCatalog()
	if err := catalog.Register(tool.NewsDescriptor(), tool.NewNewsHandler(client).Handle); err != nil {
		return exitError(exitRuntime, "registering news tool: %v", err)
	}

	if healthInterval > 0 {
		scheduler, err := tool.NewHealthScheduler(tool.HealthSchedulerConfig{
			Checker:  client,
			Endpoint: cfg.Endpoint,
			Interval: healthInterval,
			Logger:   logger,
		})
		if err != nil {
			return exitError(exitRuntime, "creating health scheduler: %v", err)
		}
		if err := scheduler.Start(ctx); err != nil {
			return exitError(exitRuntime, "starting health scheduler: %v", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = scheduler.Stop(stopCtx)
		}()
	}

	transport := mcp.NewStdioTransport(cmd.InOrStdin(), cmd.OutOrStdout())
	defer func() {
		_ = transport.Close(context.Background())
	}()

	server, err := mcp.NewServer(transport, mcp.ServerConfig{
		Info:      mcp.ServerInfo{Name: "newswire", Version: ServerVersion},
		ListTools: func(context.Context) []mcp.Tool { return publishedTools(catalog) },
		CallTool: func(ctx context.Context, name string, arguments map[string]any) (mcp.ToolsCallResult, error) {
			content, err := catalog.Call(ctx, name, arguments)
			if err != nil {
				return mcp.ToolsCallResult{}, err
			}
			return mcp.ToolsCallResult{Content: contentBlocks(content)}, nil
		},
		Logger: logger,
	})
	if err != nil {
		return exitError(exitRuntime, "creating MCP server: %v", err)
	}

	logger.Info("newswire MCP server started", "version", ServerVersion)
	if err := server.Serve(ctx); err != nil {
		return exitError(exitRuntime, "server error: %v", err)
	}
	return nil
}

func publishedTools(catalog *tool.Catalog) []mcp.Tool {
	descriptors := catalog.Descriptors()
	tools := make([]mcp.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		tools = append(tools, mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		})
	}
	return tools
}

func contentBlocks(content []tool.Content) []mcp.ContentBlock {
	blocks := make([]mcp.ContentBlock, 0, len(content))
	for _, c := range content {
		blocks = append(blocks, mcp.ContentBlock{Type: c.Type, Text: c.Text})
	}
	return blocks
}
