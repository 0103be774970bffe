package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/open-ug/cloudnative-kampala/internal/events"
)

// Handler serves the read-only events API
type Handler struct {
	catalog *events.Catalog
}

// NewHandler creates a new events handler
func NewHandler(catalog *events.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes registers the events routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/events", h.ListEvents).Methods(http.MethodGet)
	r.HandleFunc("/api/events/{id}", h.EventDetail).Methods(http.MethodGet)
}

// EventView is an event plus the values the pages derive from it.
type EventView struct {
	events.Event
	FormattedDate string               `json:"formattedDate"`
	RSVPLink      string               `json:"rsvpLink"`
	RecordingKind events.RecordingKind `json:"recordingKind,omitempty"`
	EmbedURL      string               `json:"embedUrl,omitempty"`
}

// NewEventView derives the display fields for e.
func NewEventView(e events.Event) EventView {
	v := EventView{
		Event:         e,
		FormattedDate: e.FormattedDate(),
		RSVPLink:      e.RSVPLink(),
	}
	if e.RecordingURL != "" {
		v.RecordingKind = e.RecordingKind()
		v.EmbedURL = e.EmbedURL()
	}
	return v
}

// ListEvents returns every event, or only those matching ?status=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	list := h.catalog.All()
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := events.ParseStatus(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		list = h.catalog.ByStatus(status)
	}

	views := make([]EventView, 0, len(list))
	for _, e := range list {
		views = append(views, NewEventView(e))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": views,
		"count":  len(views),
	})
}

// EventDetail returns a single event by id
func (h *Handler) EventDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	e, ok := h.catalog.Find(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Event not found"})
		return
	}

	writeJSON(w, http.StatusOK, NewEventView(e))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
