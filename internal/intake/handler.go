// Package intake receives speaker proposals from the website and files them
// as issues on the organizers' repository.
package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/open-ug/cloudnative-kampala/internal/config"
	"github.com/open-ug/cloudnative-kampala/internal/github"
	"github.com/open-ug/cloudnative-kampala/internal/middleware"
	"github.com/open-ug/cloudnative-kampala/internal/proposal"
)

// maxBodyBytes bounds a submission; real proposals are a few KiB.
const maxBodyBytes = 1 << 20

// ReportFiler files a formatted report in the issue tracker.
type ReportFiler interface {
	CreateReport(ctx context.Context, title, body string, labels, assignees []string) (*github.IssueRef, error)
}

// Handler serves the speaker proposal endpoints.
type Handler struct {
	cfg    config.GitHubConfig
	filer  ReportFiler
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a proposal intake handler. cfg supplies the credential
// check and the label/assignee lists; filer performs the GitHub call.
func NewHandler(cfg config.GitHubConfig, filer ReportFiler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cfg:    cfg,
		filer:  filer,
		logger: logger,
		now:    time.Now,
	}
}

// RegisterRoutes registers the intake routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/speakers", h.Submit).Methods(http.MethodPost)
	r.HandleFunc("/api/speakers/validate", h.Validate).Methods(http.MethodPost)
	r.HandleFunc("/api/speakers/options", h.Options).Methods(http.MethodGet)
}

// Received echoes who submitted what.
type Received struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Title string `json:"title"`
}

// SubmitResponse is returned with 201 Created.
type SubmitResponse struct {
	Message  string   `json:"message"`
	IssueURL string   `json:"issueUrl"`
	Received Received `json:"received"`
}

// ErrorResponse is returned for every failure. Details is only set for
// validation failures.
type ErrorResponse struct {
	Error   string                    `json:"error"`
	Details proposal.ValidationErrors `json:"details,omitempty"`
}

// Submit validates a proposal and files it as an issue.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", middleware.RequestIDFromContext(r.Context())))

	// 1. Parse payload
	p, err := proposal.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn("Rejecting unparseable proposal", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgServerError})
		return
	}

	// 2. Validate
	if errs := proposal.Validate(*p); !errs.Valid() {
		logger.Info("Proposal failed validation", zap.Strings("fields", fieldNames(errs)))
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: msgValidationFailed, Details: errs})
		return
	}

	// 3. Credentials
	if !h.cfg.HasCredentials() {
		logger.Error("Cannot file proposal", zap.Error(ErrNotConfigured))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgNotConfigured})
		return
	}

	// 4-5. Build the report
	meta := proposal.Meta{
		ReceivedAt: h.now(),
		SourceAddr: strings.TrimSpace(r.Header.Get("X-Forwarded-For")),
	}
	title := github.SanitizeIssueText(proposal.IssueTitle(*p))
	body := github.SanitizeIssueText(proposal.IssueBody(*p, meta))

	// 6. File it
	ref, err := h.filer.CreateReport(r.Context(), title, body, h.cfg.Labels, h.cfg.Assignees)
	if err != nil {
		logger.Error("Failed to file proposal", zap.String("title", title), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgServerError})
		return
	}

	logger.Info("Proposal filed",
		zap.Int("issue", ref.Number),
		zap.String("url", ref.URL),
		zap.String("title", title),
	)

	writeJSON(w, http.StatusCreated, SubmitResponse{
		Message:  "Proposal received",
		IssueURL: ref.URL,
		Received: Received{
			Name:  p.Name,
			Email: p.Email,
			Title: p.Title,
		},
	})
}

// Validate runs the acceptance rules without filing anything, so the form
// can show the same messages the submit endpoint would.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	p, err := proposal.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	if errs := proposal.Validate(*p); !errs.Valid() {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: msgValidationFailed, Details: errs})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// OptionsResponse lists the choices the form offers for optional fields.
type OptionsResponse struct {
	Levels            []proposal.Level `json:"levels"`
	Durations         []string         `json:"durations"`
	MinAbstractLength int              `json:"minAbstractLength"`
}

// Options serves the form's select options.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OptionsResponse{
		Levels:            proposal.Levels,
		Durations:         proposal.Durations,
		MinAbstractLength: proposal.MinAbstractLength,
	})
}

func fieldNames(errs proposal.ValidationErrors) []string {
	names := make([]string, 0, len(errs))
	for field := range errs {
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
