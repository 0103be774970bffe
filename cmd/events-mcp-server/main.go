package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/open-ug/cloudnative-kampala/internal/events"
	"github.com/open-ug/cloudnative-kampala/internal/logging"
)

const serverVersion = "v1.0.0"

func main() {
	_ = godotenv.Load()

	// zap writes to stderr; stdout belongs to the transport.
	logger, err := logging.New(os.Getenv("GO_ENV"), os.Getenv("LOG_LEVEL"))
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := events.Open(os.Getenv("EVENTS_FILE"))
	if err != nil {
		logger.Fatal("Failed to load events catalog", zap.Error(err))
	}

	server := newServer(catalog, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting events MCP server on stdio",
		zap.String("version", serverVersion),
		zap.Int("events", catalog.Len()),
	)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped gracefully")
}

func newServer(catalog *events.Catalog, logger *zap.Logger) *mcp.Server {
	h := &toolHandlers{catalog: catalog, logger: logger}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cloudnative-kampala-events",
		Version: serverVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_events",
		Description: "List Cloud Native Kampala events in catalog order, optionally filtered by status",
	}, h.HandleListEvents)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_event",
		Description: "Get a single Cloud Native Kampala event by id, including RSVP and recording links",
	}, h.HandleGetEvent)

	return server
}
