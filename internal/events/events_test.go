package events

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotZero(t, c.Len())

	for _, e := range c.All() {
		_, err := e.StartDate()
		assert.NoError(t, err, e.ID)
	}
}

func TestCatalog_ByStatus(t *testing.T) {
	c, err := Parse([]byte(`[
		{"id": "a", "title": "A", "date": "2024-01-01", "description": "d", "status": "past"},
		{"id": "b", "title": "B", "date": "2030-01-01", "description": "d", "status": "upcoming"},
		{"id": "c", "title": "C", "date": "2023-01-01", "description": "d", "status": "past"}
	]`))
	require.NoError(t, err)

	ids := func(list []Event) []string {
		out := []string{}
		for _, e := range list {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "c"}, ids(c.ByStatus(StatusPast)))
	assert.Equal(t, []string{"b"}, ids(c.ByStatus(StatusUpcoming)))
	assert.Empty(t, c.ByStatus(StatusOngoing))
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.All()))

	e, ok := c.Find("b")
	require.True(t, ok)
	assert.Equal(t, "B", e.Title)

	_, ok = c.Find("missing")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"not an array":    `{"id": "a"}`,
		"missing title":   `[{"id": "a", "date": "2024-01-01", "description": "d", "status": "past"}]`,
		"bad date":        `[{"id": "a", "title": "A", "date": "15/06/2024", "description": "d", "status": "past"}]`,
		"bad status":      `[{"id": "a", "title": "A", "date": "2024-01-01", "description": "d", "status": "cancelled"}]`,
		"speaker no name": `[{"id": "a", "title": "A", "date": "2024-01-01", "description": "d", "status": "past", "speakers": [{"title": "x"}]}]`,
		"negative count":  `[{"id": "a", "title": "A", "date": "2024-01-01", "description": "d", "status": "past", "attendeeCount": -1}]`,
		"unknown field":   `[{"id": "a", "title": "A", "date": "2024-01-01", "description": "d", "status": "past", "venue": "x"}]`,
		"duplicate ids":   `[{"id": "a", "title": "A", "date": "2024-01-01", "description": "d", "status": "past"}, {"id": "a", "title": "B", "date": "2024-01-02", "description": "d", "status": "past"}]`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestOpen(t *testing.T) {
	c, err := Open("")
	require.NoError(t, err)
	assert.NotZero(t, c.Len())

	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "x", "title": "X", "date": "2025-02-01", "description": "d", "status": "ongoing"}]`), 0o600))

	c, err = Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Open(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Upcoming ")
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, s)

	_, err = ParseStatus("cancelled")
	assert.Error(t, err)
}

func TestEvent_Helpers(t *testing.T) {
	e := Event{Date: "2024-06-15"}
	assert.Equal(t, "Sat, Jun 15, 2024", e.FormattedDate())
	assert.Equal(t, CommunityPage, e.RSVPLink())
	assert.Equal(t, RecordingOther, e.RecordingKind())
	assert.Empty(t, e.EmbedURL())

	e = Event{Date: "soon", RSVPURL: "https://example.com/rsvp", RecordingURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10"}
	assert.Equal(t, "soon", e.FormattedDate())
	assert.Equal(t, "https://example.com/rsvp", e.RSVPLink())
	assert.Equal(t, RecordingYouTube, e.RecordingKind())
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", e.EmbedURL())

	e = Event{RecordingURL: "https://drive.google.com/file/d/abc/preview"}
	assert.Equal(t, RecordingGoogleDrive, e.RecordingKind())
}

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ#t=3", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := YouTubeID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
