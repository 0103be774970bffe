package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-ug/cloudnative-kampala/internal/config"
	"github.com/open-ug/cloudnative-kampala/internal/events"
	"github.com/open-ug/cloudnative-kampala/internal/github"
	"github.com/open-ug/cloudnative-kampala/internal/intake"
	"github.com/open-ug/cloudnative-kampala/internal/logging"
	"github.com/open-ug/cloudnative-kampala/internal/middleware"
	"github.com/open-ug/cloudnative-kampala/internal/web"
)

var (
	loadDotEnv         = godotenv.Load
	newLogger          = logging.New
	defaultListenServe = listenAndServe
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "kampala",
	Short: "Cloud Native Kampala community site backend",
	Long: `kampala serves the speaker proposal intake and the events catalog
for the Cloud Native Kampala community site.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, eventsCmd, checkProposalCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, defaultListenServe)
}

func run(ctx context.Context, serve func(context.Context, string, http.Handler) error) error {
	// Load .env file (ignore error if file doesn't exist)
	_ = loadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	handler, err := newRouter(cfg, logger)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("server listening",
		zap.String("addr", addr),
		zap.String("environment", cfg.Environment),
		zap.Bool("github_configured", cfg.GitHub.HasCredentials()),
		zap.Strings("labels", cfg.GitHub.Labels),
	)
	if !cfg.GitHub.HasCredentials() {
		logger.Warn("GitHub App credentials missing; proposal submissions will be rejected")
	}

	if err := serve(ctx, addr, handler); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// listenAndServe serves handler on addr until ctx is cancelled, then drains
// in-flight requests.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRouter wires every HTTP surface behind the shared middleware chain.
func newRouter(cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	catalog, err := events.Open(cfg.EventsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	logger.Info("events catalog loaded", zap.Int("events", catalog.Len()))

	appAuth := &github.AppAuth{
		AppID:          cfg.GitHub.AppID,
		InstallationID: cfg.GitHub.InstallationID,
		PrivateKey:     cfg.GitHub.PrivateKey,
		BaseURL:        cfg.GitHub.APIURL,
	}
	filer := github.NewIssueFiler(appAuth, nil, cfg.GitHub.APIURL)

	r := mux.NewRouter()

	intake.NewHandler(cfg.GitHub, filer, logger.Named("intake")).RegisterRoutes(r)
	web.NewHandler(catalog).RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// Root endpoint with info
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"service":"cloudnative-kampala","status":"running","proposals":"%s"}`, filer.Repo())
	}).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests never hit method matching.
	var h http.Handler = middleware.CORS(cfg.AllowedOrigins, r)
	h = middleware.Logging(logger.Named("http"), h)
	h = middleware.RequestID(h)
	return h, nil
}
