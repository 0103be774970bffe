package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/open-ug/cloudnative-kampala/internal/events"
)

const testCatalog = `[
	{"id": "past-1", "title": "Past", "date": "2024-06-15", "description": "d", "status": "past",
	 "recordingUrl": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	{"id": "next-1", "title": "Next", "date": "2030-01-10", "description": "d", "status": "upcoming"}
]`

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	catalog, err := events.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return NewHandler(catalog)
}

type listResponse struct {
	Events []EventView `json:"events"`
	Count  int         `json:"count"`
}

func TestHandler_ListEvents(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/events", nil)
	w := httptest.NewRecorder()

	handler.ListEvents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Count != 2 || len(resp.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", resp.Count)
	}
	if resp.Events[0].ID != "past-1" {
		t.Errorf("Expected catalog order, got %s first", resp.Events[0].ID)
	}
}

func TestHandler_ListEventsByStatus(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/events?status=upcoming", nil)
	w := httptest.NewRecorder()

	handler.ListEvents(w, req)

	var resp listResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Count != 1 || resp.Events[0].ID != "next-1" {
		t.Errorf("Expected only next-1, got %+v", resp.Events)
	}
	if resp.Events[0].RSVPLink != events.CommunityPage {
		t.Errorf("Expected community page fallback, got %s", resp.Events[0].RSVPLink)
	}
}

func TestHandler_ListEventsBadStatus(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/events?status=cancelled", nil)
	w := httptest.NewRecorder()

	handler.ListEvents(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestHandler_EventDetail(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/events/past-1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "past-1"})
	w := httptest.NewRecorder()

	handler.EventDetail(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var view EventView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if view.Title != "Past" || view.FormattedDate != "Sat, Jun 15, 2024" {
		t.Errorf("unexpected view: %+v", view)
	}
	if view.RecordingKind != events.RecordingYouTube || view.EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("unexpected recording fields: %s %s", view.RecordingKind, view.EmbedURL)
	}
}

func TestHandler_EventDetailNotFound(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/events/nonexistent", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nonexistent"})
	w := httptest.NewRecorder()

	handler.EventDetail(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandler_Routes(t *testing.T) {
	r := mux.NewRouter()
	newTestHandler(t).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/events/next-1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/events", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}
